package postgrest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"alcyxob/fitness-coach/internal/dberr"
)

// apiError is the error body returned by PostgREST.
type apiError struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details"`
	Hint    *string `json:"hint"`
}

func responseError(status int, body []byte) error {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err != nil || (apiErr.Code == "" && apiErr.Message == "") {
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return dberr.Unauthorized(http.StatusText(status))
		}
		return dberr.Store(strconv.Itoa(status), http.StatusText(status), strings.TrimSpace(string(body)), nil)
	}

	details := deref(apiErr.Details)
	switch {
	case apiErr.Code == "42501" || strings.HasPrefix(apiErr.Code, "PGRST3") ||
		status == http.StatusUnauthorized || status == http.StatusForbidden:
		return dberr.Unauthorized(apiErr.Message)
	case apiErr.Code == "23505":
		return dberr.Duplicate(duplicateField(details, apiErr.Message))
	case apiErr.Code == "23502", apiErr.Code == "23503", apiErr.Code == "23514", apiErr.Code == "22P02":
		return dberr.Validation(apiErr.Message)
	}

	detail := details
	if hint := deref(apiErr.Hint); hint != "" {
		if detail != "" {
			detail += "; "
		}
		detail += hint
	}
	return dberr.Store(apiErr.Code, apiErr.Message, detail, nil)
}

// duplicateField extracts the column list from details such as
// "Key (email)=(a@b.c) already exists.".
func duplicateField(details, message string) string {
	if start := strings.Index(details, "Key ("); start >= 0 {
		rest := details[start+len("Key ("):]
		if end := strings.Index(rest, ")"); end > 0 {
			return rest[:end]
		}
	}
	if start := strings.Index(message, `constraint "`); start >= 0 {
		rest := message[start+len(`constraint "`):]
		if end := strings.Index(rest, `"`); end > 0 {
			return rest[:end]
		}
	}
	return message
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
