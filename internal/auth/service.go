// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/mediahub/internal/core"
)

var (
	ErrEmailExists     = errors.New("email already in use")
	ErrUsernameExists  = errors.New("username already in use")
	ErrEmailNotFound   = errors.New("email not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid verification token")
)

// UserAccount is the slice of a user record the auth flows need.
type UserAccount struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         core.Role
	Language     string
	Verified     bool
}

type CreateAccountParams struct {
	Username          string
	Email             string
	PasswordHash      string
	Role              core.Role
	Language          string
	VerificationToken string
}

// UserProvider is implemented by the user service. Auth never touches the
// users table directly.
type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserAccount, error)
	GetByVerificationToken(
		ctx context.Context,
		token string,
	) (*UserAccount, error)
	CreateAccount(
		ctx context.Context,
		params CreateAccountParams,
	) (*UserAccount, error)
	MarkVerified(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// Notifier delivers the verification link to a freshly registered account.
type Notifier interface {
	SendVerificationEmail(ctx context.Context, email, link string) error
}

// LogNotifier writes the verification link to the log instead of sending
// mail. Stands in wherever no SMTP relay is wired up.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) SendVerificationEmail(
	_ context.Context,
	email, link string,
) error {
	n.Logger.Info("verification email",
		"to", email,
		"link", link,
	)
	return nil
}

type Service struct {
	users    UserProvider
	jwt      *JWTManager
	notifier Notifier
	baseURL  string
}

func NewService(
	users UserProvider,
	jwt *JWTManager,
	notifier Notifier,
	baseURL string,
) *Service {
	return &Service{
		users:    users,
		jwt:      jwt,
		notifier: notifier,
		baseURL:  baseURL,
	}
}

// Register creates an unverified account and mails a one-time verification
// link. The email must not already be registered.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*RegisterData, error) {
	role, err := core.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	token, err := core.GenerateVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	user, err := s.users.CreateAccount(ctx, CreateAccountParams{
		Username:          req.Username,
		Email:             req.Email,
		PasswordHash:      passwordHash,
		Role:              role,
		Language:          language,
		VerificationToken: token,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists), errors.Is(err, ErrUsernameExists):
			return nil, err
		case errors.Is(err, core.ErrDuplicateKey):
			return nil, ErrEmailExists
		default:
			return nil, fmt.Errorf("create account: %w", err)
		}
	}

	link := fmt.Sprintf("%s/auth/verify-email/%s", s.baseURL, token)
	if mailErr := s.notifier.SendVerificationEmail(
		ctx,
		user.Email,
		link,
	); mailErr != nil {
		slog.Warn("failed to send verification email",
			"error", mailErr,
			"user_id", user.ID,
		)
	}

	return &RegisterData{UserID: user.ID, Email: user.Email}, nil
}

// VerifyEmail consumes a verification token. Each token works exactly once:
// verifying clears it, so a replay sees no match and fails.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("find verification token: %w", err)
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}

	return nil
}

// Login verifies credentials and issues a signed access token. Password
// verification runs against a dummy hash when the email is unknown so both
// failure paths take comparable time.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginData, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // burn the same time as a real verification
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrEmailNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidPassword
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.users.UpdatePassword(ctx, user.ID, newHash)
	}

	token, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &LoginData{
		Token:    token,
		UserID:   user.ID,
		Role:     user.Role.String(),
		Language: user.Language,
	}, nil
}
