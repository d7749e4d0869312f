// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mediahub/internal/core"
)

type fakeVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (f *fakeVerifier) VerifyAccessToken(
	_ context.Context,
	_ string,
) (*AccessTokenClaims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) core.Envelope {
	t.Helper()

	var env core.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticatorMissingToken(t *testing.T) {
	verifier := &fakeVerifier{
		claims: &AccessTokenClaims{UserID: "u-1", Role: core.RoleReader},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/contents", nil)

	Authenticator(verifier)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "NO_TOKEN_PROVIDED", env.Message)
}

func TestAuthenticatorExpiredToken(t *testing.T) {
	verifier := &fakeVerifier{err: core.ErrTokenExpired}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/contents", nil)
	req.Header.Set("Authorization", "Bearer expired-token")

	Authenticator(verifier)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "TOKEN_EXPIRED", env.Message)
}

func TestAuthenticatorStashesClaims(t *testing.T) {
	verifier := &fakeVerifier{
		claims: &AccessTokenClaims{UserID: "u-1", Role: core.RoleCreator},
	}

	var gotID string
	var gotRole core.Role
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetUserID(r.Context())
		gotRole = GetUserRole(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/contents", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	Authenticator(verifier)(inner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", gotID)
	assert.Equal(t, core.RoleCreator, gotRole)
}

func TestRequireRoleForbidsOutsiders(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Authenticator(&fakeVerifier{
		claims: &AccessTokenClaims{UserID: "u-1", Role: core.RoleReader},
	}))
	router.With(RequireAdmin).Get("/admin/users", func(
		w http.ResponseWriter,
		_ *http.Request,
	) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer reader-token")

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "FORBIDDEN", env.Message)
}

func TestRequireRoleAllowsMember(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Authenticator(&fakeVerifier{
		claims: &AccessTokenClaims{UserID: "u-1", Role: core.RoleCreator},
	}))
	router.With(RequireRole(core.RoleCreator, core.RoleAdmin)).
		Post("/contents", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contents", nil)
	req.Header.Set("Authorization", "Bearer creator-token")

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRequireSelf(t *testing.T) {
	newRouter := func(callerID string) *chi.Mux {
		router := chi.NewRouter()
		router.Use(Authenticator(&fakeVerifier{
			claims: &AccessTokenClaims{
				UserID: callerID,
				Role:   core.RoleReader,
			},
		}))
		router.Route("/users/profile/{userID}", func(r chi.Router) {
			r.Use(RequireSelf("userID"))
			r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		})
		return router
	}

	t.Run("own profile allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/users/profile/u-1/", nil)
		req.Header.Set("Authorization", "Bearer token")

		newRouter("u-1").ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("someone else's profile forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/users/profile/u-1/", nil)
		req.Header.Set("Authorization", "Bearer token")

		newRouter("u-2").ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "FORBIDDEN", env.Message)
	})
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", ""},
		{"bearer token", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ExtractToken(req))
		})
	}
}
