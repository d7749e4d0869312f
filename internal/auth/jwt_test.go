// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mediahub/internal/config"
	"github.com/carterperez-dev/mediahub/internal/core"
)

func newTestManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    privatePath,
		PublicKeyPath:     publicPath,
		AccessTokenExpire: expire,
		Issuer:            "mediahub",
		Audience:          "mediahub-api",
	})
	require.NoError(t, err)

	return manager
}

func TestJWTRoundTrip(t *testing.T) {
	manager := newTestManager(t, time.Hour)
	ctx := context.Background()

	token, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: "user-123",
		Role:   core.RoleCreator,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.VerifyAccessToken(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, core.RoleCreator, claims.Role)
}

func TestJWTExpired(t *testing.T) {
	manager := newTestManager(t, -time.Minute)
	ctx := context.Background()

	token, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: "user-123",
		Role:   core.RoleReader,
	})
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(ctx, token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestJWTTampered(t *testing.T) {
	manager := newTestManager(t, time.Hour)
	other := newTestManager(t, time.Hour)
	ctx := context.Background()

	token, err := other.CreateAccessToken(AccessTokenClaims{
		UserID: "user-123",
		Role:   core.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(ctx, token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestJWTGarbage(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	_, err := manager.VerifyAccessToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}
