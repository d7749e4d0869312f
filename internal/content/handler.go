// AngelaMos | 2026
// handler.go

package content

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/mediahub/internal/core"
	"github.com/carterperez-dev/mediahub/internal/guard"
	"github.com/carterperez-dev/mediahub/internal/middleware"
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

// RegisterRoutes mounts the authenticated content surface: browsing and
// interactions for every role, create/update/delete for creators (ownership
// gated).
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/contents", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Get("/{contentID}", h.GetDetail)

		r.Post("/{contentID}/comments", h.AddComment)
		r.Post("/{contentID}/ratings", h.AddRating)
		r.Post("/{contentID}/reactions", h.AddReaction)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(core.RoleCreator))

			r.Post("/", h.Create)

			r.Group(func(r chi.Router) {
				r.Use(h.RequireOwner)
				r.Put("/{contentID}", h.Update)
				r.Delete("/{contentID}", h.Delete)
				r.Delete("/{contentID}/cascade", h.DeleteCascade)
			})
		})
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/contents", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.List)
		r.Get("/{contentID}", h.GetDetail)
		r.Delete("/{contentID}", h.AdminDelete)
		r.Delete("/{contentID}/cascade", h.AdminDeleteCascade)
		r.Post("/bulk-delete", h.BulkDelete)
		r.Post("/bulk-delete/cascade", h.BulkDeleteCascade)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListContentsParams{
		CategoryID:    r.URL.Query().Get("category"),
		TopicID:       r.URL.Query().Get("topic"),
		ContentTypeID: r.URL.Query().Get("contentType"),
	}
	params.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	params.PageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))

	contents, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CONTENTS_FETCHED", ContentListResponse{
		Contents: ToContentResponseList(contents),
		Total:    total,
	})
}

func (h *Handler) GetDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetDetail(r.Context(), chi.URLParam(r, "contentID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "CONTENT_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CONTENT_FETCHED", detail)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	creatorID := middleware.GetUserID(r.Context())

	content, err := h.service.Create(r.Context(), creatorID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSource):
			core.BadRequest(w, "INVALID_CONTENT_SOURCE", nil)
		case errors.Is(err, ErrTypeNotAllowed):
			core.BadRequest(w, "CONTENT_TYPE_NOT_ALLOWED", nil)
		case errors.Is(err, core.ErrInvalidInput),
			errors.Is(err, core.ErrNotFound):
			core.BadRequest(w, "INVALID_REFERENCE", nil)
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, "CONTENT_CREATED", ToContentResponse(content))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	content := contentFromContext(r.Context())
	if content == nil {
		core.NotFound(w, "CONTENT_NOT_FOUND")
		return
	}

	var req UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	updated, err := h.service.Update(r.Context(), content, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSource):
			core.BadRequest(w, "INVALID_CONTENT_SOURCE", nil)
		case errors.Is(err, ErrTypeNotAllowed):
			core.BadRequest(w, "CONTENT_TYPE_NOT_ALLOWED", nil)
		case errors.Is(err, core.ErrInvalidInput),
			errors.Is(err, core.ErrNotFound):
			core.BadRequest(w, "INVALID_REFERENCE", nil)
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, "CONTENT_UPDATED", ToContentResponse(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	h.deleteSafe(w, r, chi.URLParam(r, "contentID"))
}

func (h *Handler) DeleteCascade(w http.ResponseWriter, r *http.Request) {
	h.deleteCascade(w, r, chi.URLParam(r, "contentID"))
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	h.deleteSafe(w, r, chi.URLParam(r, "contentID"))
}

func (h *Handler) AdminDeleteCascade(w http.ResponseWriter, r *http.Request) {
	h.deleteCascade(w, r, chi.URLParam(r, "contentID"))
}

func (h *Handler) deleteSafe(
	w http.ResponseWriter,
	r *http.Request,
	contentID string,
) {
	err := guard.DeleteSafe(r.Context(), h.service.Source(), contentID)
	if err != nil {
		var depErr *guard.DependencyError
		switch {
		case errors.As(err, &depErr):
			core.BadRequest(w, "CONTENT_HAS_DEPENDENCIES", depErr.Counts)
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "CONTENT_NOT_FOUND")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, "CONTENT_DELETED", nil)
}

func (h *Handler) deleteCascade(
	w http.ResponseWriter,
	r *http.Request,
	contentID string,
) {
	err := guard.DeleteCascade(r.Context(), h.service.Source(), contentID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "CONTENT_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CONTENT_DELETED", nil)
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

	err := guard.DeleteAllSafe(r.Context(), h.service.Source(), req.IDs)
	if err != nil {
		var depErr *guard.DependencyError
		if errors.As(err, &depErr) {
			core.BadRequest(w, "CONTENTS_HAVE_DEPENDENCIES", depErr.Blocked)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CONTENTS_DELETED", nil)
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

	err := guard.DeleteAllCascade(r.Context(), h.service.Source(), req.IDs)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, "CONTENTS_DELETED", nil)
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	userID := middleware.GetUserID(r.Context())

	comment, err := h.service.AddComment(r.Context(), contentID, userID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "CONTENT_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, "COMMENT_ADDED", CommentResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	})
}

func (h *Handler) AddRating(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")

	var req AddRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	userID := middleware.GetUserID(r.Context())

	rating, avg, err := h.service.AddRating(r.Context(), contentID, userID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "CONTENT_NOT_FOUND")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, "RATING_ADDED", map[string]any{
		"rating": RatingResponse{
			ID:        rating.ID,
			UserID:    rating.UserID,
			Score:     rating.Score,
			CreatedAt: rating.CreatedAt,
		},
		"averageRating": avg,
	})
}

func (h *Handler) AddReaction(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")

	var req AddReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "INVALID_REQUEST_BODY", nil)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailed(err))
		return
	}

	userID := middleware.GetUserID(r.Context())

	reaction, err := h.service.AddReaction(r.Context(), contentID, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrReactionExists):
			core.BadRequest(w, "REACTION_ALREADY_EXISTS", nil)
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "REACTION_TYPE_NOT_FOUND", nil)
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "CONTENT_NOT_FOUND")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, "REACTION_ADDED", ReactionResponse{
		ID:             reaction.ID,
		UserID:         reaction.UserID,
		ReactionTypeID: reaction.ReactionTypeID,
		CreatedAt:      reaction.CreatedAt,
	})
}
