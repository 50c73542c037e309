package pgsql

import (
	"context"
	"database/sql/driver"
	"net"

	"alcyxob/fitness-coach/internal/dberr"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// mapError converts driver failures into the dberr taxonomy.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) {
		return dberr.Network(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return dberr.Network(err)
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return dberr.Unknown(err)
	}
	switch pqErr.Code {
	case "23505":
		field := pqErr.Constraint
		if field == "" {
			field = pqErr.Column
		}
		return dberr.Duplicate(field)
	case "23502", "23503", "23514", "22P02":
		return dberr.Validation(pqErr.Message)
	case "42501", "28000", "28P01":
		return dberr.Unauthorized(pqErr.Message)
	}
	if pqErr.Code.Class() == "08" {
		return dberr.Network(err)
	}
	detail := pqErr.Detail
	if pqErr.Hint != "" {
		if detail != "" {
			detail += "; "
		}
		detail += pqErr.Hint
	}
	return dberr.Store(string(pqErr.Code), pqErr.Message, detail, err)
}
