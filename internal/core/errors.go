// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// AppError pairs an internal error with the envelope fields it maps to.
type AppError struct {
	Err    error
	Status int
	Code   string
	Data   any
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, status int, code string) *AppError {
	return &AppError{Err: err, Status: status, Code: code}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func UnauthorizedError(code string) *AppError {
	return &AppError{Err: ErrUnauthorized, Status: http.StatusUnauthorized, Code: code}
}

func ForbiddenError(code string) *AppError {
	return &AppError{Err: ErrForbidden, Status: http.StatusForbidden, Code: code}
}

func NotFoundError(code string) *AppError {
	return &AppError{Err: ErrNotFound, Status: http.StatusNotFound, Code: code}
}

func ConflictError(code string, data any) *AppError {
	return &AppError{
		Err:    ErrDuplicateKey,
		Status: http.StatusBadRequest,
		Code:   code,
		Data:   data,
	}
}

func TokenExpiredError() *AppError {
	return &AppError{Err: ErrTokenExpired, Status: http.StatusUnauthorized, Code: "TOKEN_EXPIRED"}
}

func TokenInvalidError() *AppError {
	return &AppError{Err: ErrTokenInvalid, Status: http.StatusUnauthorized, Code: "INVALID_TOKEN"}
}
