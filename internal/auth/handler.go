// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/mediahub/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Get("/verify-email/{token}", h.VerifyEmail)
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	data, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists):
			core.BadRequest(w, "EMAIL_IN_USE", nil)
		case errors.Is(err, ErrUsernameExists):
			core.BadRequest(w, "USERNAME_IN_USE", nil)
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "INVALID_ROLE", nil)
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, "USER_REGISTERED", data)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	data, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailNotFound):
			core.BadRequest(w, "EMAIL_NOT_FOUND", nil)
		case errors.Is(err, ErrInvalidPassword):
			core.BadRequest(w, "INVALID_PASSWORD", nil)
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, "USER_LOGGED_IN", data)
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		core.BadRequest(w, "INVALID_TOKEN", nil)
		return
	}

	if err := h.service.VerifyEmail(r.Context(), token); err != nil {
		if errors.Is(err, ErrInvalidToken) {
			core.BadRequest(w, "INVALID_TOKEN", nil)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "EMAIL_VERIFIED_SUCCESSFULLY", nil)
}
