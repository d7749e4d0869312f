// AngelaMos | 2026
// handler.go

package reactiontype

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
	r.Route("/admin/reaction-types", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{reactionTypeID}", h.Get)
		r.Put("/{reactionTypeID}", h.Update)
		r.Delete("/{reactionTypeID}", h.Delete)
		r.Delete("/{reactionTypeID}/cascade", h.DeleteCascade)
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

	core.OK(w, "REACTION_TYPES_FETCHED", ToResponseList(types))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rt, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "reactionTypeID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "REACTION_TYPE_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "REACTION_TYPE_FETCHED", ToResponse(rt))
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

	rt := &ReactionType{
		ID:   uuid.New().String(),
		Name: req.Name,
		Icon: req.Icon,
	}

	if err := h.repo.Create(r.Context(), rt); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.BadRequest(w, "REACTION_TYPE_NAME_IN_USE", nil)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, "REACTION_TYPE_CREATED", ToResponse(rt))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	reactionTypeID := chi.URLParam(r, "reactionTypeID")

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	rt, err := h.repo.GetByID(r.Context(), reactionTypeID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "REACTION_TYPE_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	if req.Name != nil {
		rt.Name = *req.Name
	}
	if req.Icon != nil {
		rt.Icon = req.Icon
	}

	if err := h.repo.Update(r.Context(), rt); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.BadRequest(w, "REACTION_TYPE_NAME_IN_USE", nil)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "REACTION_TYPE_UPDATED", ToResponse(rt))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	reactionTypeID := chi.URLParam(r, "reactionTypeID")

	err := guard.DeleteSafe(r.Context(), h.repo, reactionTypeID)
	if err != nil {
		var depErr *guard.DependencyError
		switch {
		case errors.As(err, &depErr):
			core.BadRequest(w, "REACTION_TYPE_HAS_DEPENDENCIES", depErr.Counts)
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "REACTION_TYPE_NOT_FOUND")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, "REACTION_TYPE_DELETED", nil)
}

func (h *Handler) DeleteCascade(w http.ResponseWriter, r *http.Request) {
	reactionTypeID := chi.URLParam(r, "reactionTypeID")

	err := guard.DeleteCascade(r.Context(), h.repo, reactionTypeID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "REACTION_TYPE_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "REACTION_TYPE_DELETED", nil)
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
			core.BadRequest(
				w,
				"REACTION_TYPES_HAVE_DEPENDENCIES",
				depErr.Blocked,
			)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "REACTION_TYPES_DELETED", nil)
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

	core.OK(w, "REACTION_TYPES_DELETED", nil)
}
