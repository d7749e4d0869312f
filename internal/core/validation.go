// AngelaMos | 2026
// validation.go

package core

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// FormatValidationError flattens validator.ValidationErrors into the
// field-level detail carried in the VALIDATION_ERRORS envelope.
func FormatValidationError(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "request", Rule: "invalid"}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}

	return fields
}

func ValidationFailed(err error) *AppError {
	return &AppError{
		Err:    ErrInvalidInput,
		Status: 400,
		Code:   "VALIDATION_ERRORS",
		Data:   FormatValidationError(err),
	}
}
