// AngelaMos | 2026
// handler.go

package contenttype

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/carterperez-dev/mediahub/internal/core"
	"github.com/carterperez-dev/mediahub/internal/guard"
)

type Handler struct {
	repo      Repository
	validator *validator.Validate
}

func NewHandler(repo Repository) *Handler {
	return &Handler{
		repo:      repo,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/content-types", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{contentTypeID}", h.Get)
		r.Put("/{contentTypeID}", h.Update)
		r.Delete("/{contentTypeID}", h.Delete)
		r.Delete("/{contentTypeID}/cascade", h.DeleteCascade)
		r.Post("/bulk-delete", h.BulkDelete)
		r.Post("/bulk-delete/cascade", h.BulkDeleteCascade)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.repo.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CONTENT_TYPES_FETCHED", ToResponseList(types))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ct, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "contentTypeID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "CONTENT_TYPE_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CONTENT_TYPE_FETCHED", ToResponse(ct))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	ct := &ContentType{
		ID:   uuid.New().String(),
		Name: req.Name,
		Icon: req.Icon,
	}

	if err := h.repo.Create(r.Context(), ct); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.BadRequest(w, "CONTENT_TYPE_NAME_IN_USE", nil)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, "CONTENT_TYPE_CREATED", ToResponse(ct))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	contentTypeID := chi.URLParam(r, "contentTypeID")

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	ct, err := h.repo.GetByID(r.Context(), contentTypeID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "CONTENT_TYPE_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	if req.Name != nil {
		ct.Name = *req.Name
	}
	if req.Icon != nil {
		ct.Icon = req.Icon
	}

	if err := h.repo.Update(r.Context(), ct); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.BadRequest(w, "CONTENT_TYPE_NAME_IN_USE", nil)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CONTENT_TYPE_UPDATED", ToResponse(ct))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	contentTypeID := chi.URLParam(r, "contentTypeID")

	err := guard.DeleteSafe(r.Context(), h.repo, contentTypeID)
	if err != nil {
		var depErr *guard.DependencyError
		switch {
		case errors.As(err, &depErr):
			core.BadRequest(w, "CONTENT_TYPE_HAS_DEPENDENCIES", depErr.Counts)
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "CONTENT_TYPE_NOT_FOUND")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, "CONTENT_TYPE_DELETED", nil)
}

func (h *Handler) DeleteCascade(w http.ResponseWriter, r *http.Request) {
	contentTypeID := chi.URLParam(r, "contentTypeID")

	err := guard.DeleteCascade(r.Context(), h.repo, contentTypeID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "CONTENT_TYPE_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CONTENT_TYPE_DELETED", nil)
}

func (h *Handler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	err := guard.DeleteAllSafe(r.Context(), h.repo, req.IDs)
	if err != nil {
		var depErr *guard.DependencyError
		if errors.As(err, &depErr) {
			core.BadRequest(w, "CONTENT_TYPES_HAVE_DEPENDENCIES", depErr.Blocked)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CONTENT_TYPES_DELETED", nil)
}

func (h *Handler) BulkDeleteCascade(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	if err := guard.DeleteAllCascade(r.Context(), h.repo, req.IDs); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CONTENT_TYPES_DELETED", nil)
}
