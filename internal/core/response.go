// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Envelope is the wire shape of every response, success or failure.
// Message is always a SCREAMING_SNAKE_CASE code.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

func WriteEnvelope(w http.ResponseWriter, status int, code string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(Envelope{
		StatusCode: status,
		Message:    code,
		Data:       data,
	})
}

func OK(w http.ResponseWriter, code string, data any) {
	WriteEnvelope(w, http.StatusOK, code, data)
}

func Created(w http.ResponseWriter, code string, data any) {
	WriteEnvelope(w, http.StatusCreated, code, data)
}

func BadRequest(w http.ResponseWriter, code string, data any) {
	WriteEnvelope(w, http.StatusBadRequest, code, data)
}

func Unauthorized(w http.ResponseWriter, code string) {
	if code == "" {
		code = "NO_TOKEN_PROVIDED"
	}
	WriteEnvelope(w, http.StatusUnauthorized, code, nil)
}

func Forbidden(w http.ResponseWriter, code string) {
	if code == "" {
		code = "FORBIDDEN"
	}
	WriteEnvelope(w, http.StatusForbidden, code, nil)
}

func NotFound(w http.ResponseWriter, code string) {
	WriteEnvelope(w, http.StatusNotFound, code, nil)
}

// InternalServerError logs the underlying error and returns a generic code.
// Callers never see internals.
func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	WriteEnvelope(w, http.StatusInternalServerError, "SERVER_ERROR", nil)
}

// JSONError maps an error to the envelope. AppErrors carry their own
// status/code; anything else is a server error.
func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		WriteEnvelope(w, appErr.Status, appErr.Code, appErr.Data)
		return
	}

	switch {
	case errors.Is(err, ErrNotFound):
		WriteEnvelope(w, http.StatusNotFound, "NOT_FOUND", nil)
	case errors.Is(err, ErrForbidden):
		WriteEnvelope(w, http.StatusForbidden, "FORBIDDEN", nil)
	case errors.Is(err, ErrUnauthorized):
		WriteEnvelope(w, http.StatusUnauthorized, "NO_TOKEN_PROVIDED", nil)
	default:
		InternalServerError(w, err)
	}
}
