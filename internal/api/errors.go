package api

import (
	"errors"
	"net/http"

	"alcyxob/fitness-coach/internal/dberr"
	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// statusFor maps a service or data-access failure to an HTTP status and client message.
// Server-side failures get a generic message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrPremiumRequired):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, err.Error()
	}

	switch dberr.KindOf(err) {
	case dberr.KindNotFound:
		return http.StatusNotFound, err.Error()
	case dberr.KindValidation:
		return http.StatusBadRequest, err.Error()
	case dberr.KindDuplicate:
		return http.StatusConflict, err.Error()
	case dberr.KindUnauthorized:
		return http.StatusUnauthorized, "Not authorized to access this resource"
	case dberr.KindNetwork:
		return http.StatusServiceUnavailable, "Data store is unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func respondError(c *gin.Context, err error) {
	status, message := statusFor(err)
	log := zerolog.Ctx(c.Request.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("kind", dberr.KindOf(err).String()).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	abortWithError(c, status, message)
}

// pathID parses the named path parameter as an entity id, responding 400 when it is not one.
func pathID(c *gin.Context, name string) (domain.ID, bool) {
	id, err := domain.ParseID(c.Param(name))
	if err != nil || id <= 0 {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return 0, false
	}
	return id, true
}
