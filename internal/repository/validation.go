package repository

import (
	"reflect"
	"strings"

	"alcyxob/fitness-coach/internal/dberr"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// NewValidator returns a validator that reports fields by their wire names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError renders validator failures as a single validation error.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dberr.Unknown(err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Field() + " failed on " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		msgs = append(msgs, msg)
	}
	return dberr.Validation(strings.Join(msgs, "; "))
}
