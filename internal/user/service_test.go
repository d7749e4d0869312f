// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carterperez-dev/mediahub/internal/auth"
	"github.com/carterperez-dev/mediahub/internal/core"
)

// stubRepo overrides only what a test exercises; everything else panics via
// the embedded nil interface.
type stubRepo struct {
	Repository
	createErr error
}

func (s *stubRepo) Create(context.Context, *User) error {
	return s.createErr
}

func TestDuplicateSentinelsAreDuplicateKeys(t *testing.T) {
	assert.ErrorIs(t, ErrEmailTaken, core.ErrDuplicateKey)
	assert.ErrorIs(t, ErrUsernameTaken, core.ErrDuplicateKey)
}

func TestCreateAccountReportsCollidingField(t *testing.T) {
	ctx := context.Background()
	params := auth.CreateAccountParams{
		Username:          "ada",
		Email:             "ada@example.com",
		PasswordHash:      "hash",
		Role:              core.RoleReader,
		Language:          "en",
		VerificationToken: "token",
	}

	t.Run("username collision", func(t *testing.T) {
		svc := NewService(&stubRepo{createErr: ErrUsernameTaken})

		_, err := svc.CreateAccount(ctx, params)
		assert.ErrorIs(t, err, auth.ErrUsernameExists)
		assert.NotErrorIs(t, err, auth.ErrEmailExists)
	})

	t.Run("email collision", func(t *testing.T) {
		svc := NewService(&stubRepo{createErr: ErrEmailTaken})

		_, err := svc.CreateAccount(ctx, params)
		assert.ErrorIs(t, err, auth.ErrEmailExists)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		svc := NewService(&stubRepo{createErr: core.ErrInvalidInput})

		_, err := svc.CreateAccount(ctx, params)
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})
}

func TestAdminCreateSkipsVerification(t *testing.T) {
	var captured *User
	svc := NewService(&captureRepo{created: &captured})

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "ada",
		Email:    "Ada@Example.com",
		Password: "correct horse",
		Role:     "creator",
	})
	assert.NoError(t, err)
	assert.True(t, user.Verified)
	assert.Nil(t, user.VerificationToken)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, core.RoleCreator, captured.Role)
}

type captureRepo struct {
	Repository
	created **User
}

func (c *captureRepo) Create(_ context.Context, u *User) error {
	*c.created = u
	return nil
}
