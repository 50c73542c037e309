// Package dberr defines the closed set of failures produced by the data-access layer.
//
// Store clients are the only place where raw transport, driver or decoding errors are
// converted into an *Error; repositories and services only propagate them.
package dberr

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a data-access failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindDecoding
	KindNotFound
	KindUnauthorized
	KindValidation
	KindDuplicate
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindDecoding:
		return "decoding"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindDuplicate:
		return "duplicate"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error is a taxonomized data-access failure.
type Error struct {
	Kind     Kind
	Resource string // notFound: what was missing
	Field    string // duplicate: the conflicting field or constraint
	Message  string // validation and store failures
	Code     string // store: remote error code (SQLSTATE, PostgREST code)
	Detail   string // store: remote detail or hint
	Err      error  // wrapped cause, if any
}

// Sentinels usable with errors.Is; they match any *Error of the same kind.
var (
	ErrNetwork      = &Error{Kind: KindNetwork}
	ErrDecoding     = &Error{Kind: KindDecoding}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrValidation   = &Error{Kind: KindValidation}
	ErrDuplicate    = &Error{Kind: KindDuplicate}
	ErrStore        = &Error{Kind: KindStore}
	ErrUnknown      = &Error{Kind: KindUnknown}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindNetwork:
		return "network error: " + causeText(e.Err)
	case KindDecoding:
		return "data decoding error: " + causeText(e.Err)
	case KindNotFound:
		if e.Resource == "" {
			return "not found"
		}
		return e.Resource + " not found"
	case KindUnauthorized:
		if e.Message != "" {
			return "unauthorized access: " + e.Message
		}
		return "unauthorized access"
	case KindValidation:
		return "validation error: " + e.Message
	case KindDuplicate:
		return "duplicate entry for " + e.Field
	case KindStore:
		msg := "database error"
		if e.Code != "" {
			msg += " (" + e.Code + ")"
		}
		if e.Message != "" {
			msg += ": " + e.Message
		} else if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	default:
		return "unknown error: " + causeText(e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches kind sentinels, so errors.Is(err, ErrNotFound) holds for every not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Resource == "" && t.Field == "" && t.Message == "" && t.Err == nil
}

func causeText(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}

// Network wraps a transport or connectivity failure.
func Network(err error) *Error {
	return &Error{Kind: KindNetwork, Err: errors.WithStack(err)}
}

// Decoding wraps a response that did not match the expected shape.
func Decoding(err error) *Error {
	return &Error{Kind: KindDecoding, Err: errors.WithStack(err)}
}

// NotFound reports that resource does not exist.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Resource: resource}
}

// NotFoundf formats the missing resource description.
func NotFoundf(format string, args ...any) *Error {
	return NotFound(fmt.Sprintf(format, args...))
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Duplicate(field string) *Error {
	return &Error{Kind: KindDuplicate, Field: field}
}

// Store reports a structured failure returned by the remote store.
func Store(code, message, detail string, err error) *Error {
	if err != nil {
		err = errors.WithStack(err)
	}
	return &Error{Kind: KindStore, Code: code, Message: message, Detail: detail, Err: err}
}

// Unknown wraps an uncategorized failure.
func Unknown(err error) *Error {
	return &Error{Kind: KindUnknown, Err: errors.WithStack(err)}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}
