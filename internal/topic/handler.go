// AngelaMos | 2026
// handler.go

package topic

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
	r.Route("/admin/topics", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{topicID}", h.Get)
		r.Put("/{topicID}", h.Update)
		r.Put("/{topicID}/image", h.UpdateImage)
		r.Delete("/{topicID}", h.Delete)
		r.Delete("/{topicID}/cascade", h.DeleteCascade)
		r.Post("/bulk-delete", h.BulkDelete)
		r.Post("/bulk-delete/cascade", h.BulkDeleteCascade)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	topics, err := h.repo.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "TOPICS_FETCHED", ToTopicResponseList(topics))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	topic, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "topicID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "TOPIC_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "TOPIC_FETCHED", ToTopicResponse(topic))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	topic := &Topic{
		ID:                  uuid.New().String(),
		Name:                req.Name,
		Description:         req.Description,
		Image:               req.Image,
		AllowedContentTypes: req.AllowedContentTypes,
	}

	if err := h.repo.Create(r.Context(), topic); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.BadRequest(w, "TOPIC_NAME_IN_USE", nil)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, "TOPIC_CREATED", ToTopicResponse(topic))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "topicID")

	var req UpdateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	topic, err := h.repo.GetByID(r.Context(), topicID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "TOPIC_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	if req.Name != nil {
		topic.Name = *req.Name
	}
	if req.Description != nil {
		topic.Description = *req.Description
	}
	if req.AllowedContentTypes != nil {
		topic.AllowedContentTypes = req.AllowedContentTypes
	}

	if err := h.repo.Update(r.Context(), topic); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.BadRequest(w, "TOPIC_NAME_IN_USE", nil)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "TOPIC_UPDATED", ToTopicResponse(topic))
}

func (h *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "topicID")

	var req UpdateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	if err := h.repo.UpdateImage(r.Context(), topicID, req.Image); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "TOPIC_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "TOPIC_IMAGE_UPDATED", nil)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "topicID")

	err := guard.DeleteSafe(r.Context(), h.repo, topicID)
	if err != nil {
		var depErr *guard.DependencyError
		switch {
		case errors.As(err, &depErr):
			core.BadRequest(w, "TOPIC_HAS_DEPENDENCIES", depErr.Counts)
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "TOPIC_NOT_FOUND")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, "TOPIC_DELETED", nil)
}

func (h *Handler) DeleteCascade(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "topicID")

	err := guard.DeleteCascade(r.Context(), h.repo, topicID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "TOPIC_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "TOPIC_DELETED", nil)
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
			core.BadRequest(w, "TOPICS_HAVE_DEPENDENCIES", depErr.Blocked)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "TOPICS_DELETED", nil)
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

	core.OK(w, "TOPICS_DELETED", nil)
}
