// AngelaMos | 2026
// middleware.go

package content

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/mediahub/internal/core"
	"github.com/carterperez-dev/mediahub/internal/middleware"
)

type contextKey string

const contentKey contextKey = "content"

// RequireOwner loads the content addressed by {contentID} and lets the
// request through only when the caller created it. The loaded entity rides
// the context so handlers don't fetch it twice.
func (h *Handler) RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentID := chi.URLParam(r, "contentID")

		content, err := h.service.GetByID(r.Context(), contentID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				core.NotFound(w, "CONTENT_NOT_FOUND")
				return
			}
			core.InternalServerError(w, err)
			return
		}

		userID := middleware.GetUserID(r.Context())
		if !content.IsOwnedBy(userID) {
			core.Forbidden(w, "NOT_CONTENT_OWNER")
			return
		}

		ctx := context.WithValue(r.Context(), contentKey, content)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func contentFromContext(ctx context.Context) *Content {
	if c, ok := ctx.Value(contentKey).(*Content); ok {
		return c
	}
	return nil
}
