// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/mediahub/internal/auth"
	"github.com/carterperez-dev/mediahub/internal/core"
	"github.com/carterperez-dev/mediahub/internal/guard"
)

var ErrIncorrectOldPassword = errors.New("incorrect old password")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Source exposes the user storage surface the deletion guard drives.
func (s *Service) Source() guard.Source {
	return s.repo
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Create(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	role, err := core.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	user := &User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: passwordHash,
		Role:         role,
		Language:     language,
		// Admin-created accounts skip email verification.
		Verified: true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	if req.Role != nil {
		role, parseErr := core.ParseRole(*req.Role)
		if parseErr != nil {
			return nil, parseErr
		}
		user.Role = role
	}
	if req.Language != nil {
		user.Language = *req.Language
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	id string,
	req UpdateProfileRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Language != nil {
		user.Language = *req.Language
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePassword requires the current password even though the caller is
// already authenticated.
func (s *Service) ChangePassword(
	ctx context.Context,
	id string,
	req UpdatePasswordRequest,
) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	valid, err := core.VerifyPassword(req.OldPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return ErrIncorrectOldPassword
	}

	newHash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, id, newHash)
}

func (s *Service) UpdateImage(
	ctx context.Context,
	id, profileImage string,
) error {
	return s.repo.UpdateImage(ctx, id, profileImage)
}

// UserProvider implementation for the auth flows.

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserAccount, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	return toUserAccount(user), nil
}

func (s *Service) GetByVerificationToken(
	ctx context.Context,
	token string,
) (*auth.UserAccount, error) {
	user, err := s.repo.GetByVerificationToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return toUserAccount(user), nil
}

func (s *Service) CreateAccount(
	ctx context.Context,
	params auth.CreateAccountParams,
) (*auth.UserAccount, error) {
	user := &User{
		ID:                uuid.New().String(),
		Username:          params.Username,
		Email:             strings.ToLower(params.Email),
		PasswordHash:      params.PasswordHash,
		Role:              params.Role,
		Language:          params.Language,
		Verified:          false,
		VerificationToken: &params.VerificationToken,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// Translate to the provider contract's sentinels so auth can
		// report which field collided.
		switch {
		case errors.Is(err, ErrUsernameTaken):
			return nil, auth.ErrUsernameExists
		case errors.Is(err, core.ErrDuplicateKey):
			return nil, auth.ErrEmailExists
		default:
			return nil, err
		}
	}

	return toUserAccount(user), nil
}

func (s *Service) MarkVerified(ctx context.Context, userID string) error {
	return s.repo.MarkVerified(ctx, userID)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func toUserAccount(u *User) *auth.UserAccount {
	return &auth.UserAccount{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Language:     u.Language,
		Verified:     u.Verified,
	}
}
