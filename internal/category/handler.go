// AngelaMos | 2026
// handler.go

package category

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
	r.Route("/admin/categories", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{categoryID}", h.Get)
		r.Put("/{categoryID}", h.Update)
		r.Put("/{categoryID}/image", h.UpdateImage)
		r.Delete("/{categoryID}", h.Delete)
		r.Delete("/{categoryID}/cascade", h.DeleteCascade)
		r.Post("/bulk-delete", h.BulkDelete)
		r.Post("/bulk-delete/cascade", h.BulkDeleteCascade)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CATEGORIES_FETCHED", ToCategoryResponseList(categories))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "categoryID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "CATEGORY_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CATEGORY_FETCHED", ToCategoryResponse(category))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	category := &Category{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Permissions: toPermissions(req.Permissions),
	}

	if err := h.repo.Create(r.Context(), category); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.BadRequest(w, "CATEGORY_NAME_IN_USE", nil)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, "CATEGORY_CREATED", ToCategoryResponse(category))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	category, err := h.repo.GetByID(r.Context(), categoryID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "CATEGORY_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Permissions != nil {
		category.Permissions = toPermissions(req.Permissions)
	}

	if err := h.repo.Update(r.Context(), category); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.BadRequest(w, "CATEGORY_NAME_IN_USE", nil)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CATEGORY_UPDATED", ToCategoryResponse(category))
}

func (h *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	var req UpdateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	if err := h.repo.UpdateImage(r.Context(), categoryID, req.Image); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "CATEGORY_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CATEGORY_IMAGE_UPDATED", nil)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	err := guard.DeleteSafe(r.Context(), h.repo, categoryID)
	if err != nil {
		var depErr *guard.DependencyError
		switch {
		case errors.As(err, &depErr):
			core.BadRequest(w, "CATEGORY_HAS_DEPENDENCIES", depErr.Counts)
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "CATEGORY_NOT_FOUND")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, "CATEGORY_DELETED", nil)
}

func (h *Handler) DeleteCascade(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	err := guard.DeleteCascade(r.Context(), h.repo, categoryID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "CATEGORY_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CATEGORY_DELETED", nil)
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
			core.BadRequest(w, "CATEGORIES_HAVE_DEPENDENCIES", depErr.Blocked)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CATEGORIES_DELETED", nil)
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

	core.OK(w, "CATEGORIES_DELETED", nil)
}
