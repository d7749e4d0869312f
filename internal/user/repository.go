// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/mediahub/internal/core"
	"github.com/carterperez-dev/mediahub/internal/guard"
)

type Repository interface {
	guard.Source

	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByVerificationToken(ctx context.Context, token string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateImage(ctx context.Context, id, profileImage string) error
	MarkVerified(ctx context.Context, id string) error
	List(ctx context.Context, params ListUsersParams) ([]User, int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (
			id, username, email, password_hash, role, language,
			verified, verification_token
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, user, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Language,
		user.Verified,
		user.VerificationToken,
	)
	if err != nil {
		if dup := duplicateFieldError(err); dup != nil {
			return fmt.Errorf("create user: %w", dup)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

const userColumns = `
	id, username, email, password_hash, role, language,
	verified, verification_token, profile_image, created_at, updated_at`

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE id = $1`,
		userColumns,
	)

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE email = $1`,
		userColumns,
	)

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByVerificationToken(
	ctx context.Context,
	token string,
) (*User, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE verification_token = $1`,
		userColumns,
	)

	var user User
	err := r.db.GetContext(ctx, &user, query, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by token: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by token: %w", err)
	}

	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET username = $2, email = $3, role = $4, language = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &user.UpdatedAt, query,
		user.ID,
		user.Username,
		user.Email,
		user.Role,
		user.Language,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	if err != nil {
		if dup := duplicateFieldError(err); dup != nil {
			return fmt.Errorf("update user: %w", dup)
		}
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execExpectingRow(ctx, "update password", query, id, passwordHash)
}

func (r *repository) UpdateImage(
	ctx context.Context,
	id, profileImage string,
) error {
	query := `
		UPDATE users
		SET profile_image = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execExpectingRow(ctx, "update image", query, id, profileImage)
}

// MarkVerified flips the flag and clears the token in one statement, so the
// token can never be redeemed twice.
func (r *repository) MarkVerified(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET verified = TRUE, verification_token = NULL, updated_at = NOW()
		WHERE id = $1 AND verification_token IS NOT NULL`

	return r.execExpectingRow(ctx, "mark verified", query, id)
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR username ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, params.Role)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM users WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		userColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

// Find returns the username, the label bulk deletes report when this user
// blocks the batch.
func (r *repository) Find(ctx context.Context, id string) (string, error) {
	var username string
	err := r.db.GetContext(
		ctx,
		&username,
		`SELECT username FROM users WHERE id = $1`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("find user: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	return username, nil
}

func (r *repository) CountDependents(
	ctx context.Context,
	id string,
) ([]guard.DependentCount, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM contents WHERE creator_id = $1) AS contents,
			(SELECT COUNT(*) FROM comments WHERE user_id = $1) AS comments,
			(SELECT COUNT(*) FROM reactions WHERE user_id = $1) AS reactions,
			(SELECT COUNT(*) FROM ratings WHERE user_id = $1) AS ratings`

	var row struct {
		Contents  int64 `db:"contents"`
		Comments  int64 `db:"comments"`
		Reactions int64 `db:"reactions"`
		Ratings   int64 `db:"ratings"`
	}
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, fmt.Errorf("count user dependents: %w", err)
	}

	return []guard.DependentCount{
		{Collection: "contents", Count: row.Contents},
		{Collection: "comments", Count: row.Comments},
		{Collection: "reactions", Count: row.Reactions},
		{Collection: "ratings", Count: row.Ratings},
	}, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.execExpectingRow(
		ctx,
		"delete user",
		`DELETE FROM users WHERE id = $1`,
		id,
	)
}

// DeleteCascade removes the user together with everything they authored.
// Interactions left by other users on this user's contents go first, then
// the user's own rows, inside a single transaction.
func (r *repository) DeleteCascade(ctx context.Context, id string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		statements := []string{
			`DELETE FROM comments WHERE content_id IN
				(SELECT id FROM contents WHERE creator_id = $1)`,
			`DELETE FROM ratings WHERE content_id IN
				(SELECT id FROM contents WHERE creator_id = $1)`,
			`DELETE FROM reactions WHERE content_id IN
				(SELECT id FROM contents WHERE creator_id = $1)`,
			`DELETE FROM comments WHERE user_id = $1`,
			`DELETE FROM ratings WHERE user_id = $1`,
			`DELETE FROM reactions WHERE user_id = $1`,
			`DELETE FROM contents WHERE creator_id = $1`,
		}

		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("cascade user dependents: %w", err)
			}
		}

		result, err := tx.ExecContext(
			ctx,
			`DELETE FROM users WHERE id = $1`,
			id,
		)
		if err != nil {
			return fmt.Errorf("cascade delete user: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("cascade delete user: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("cascade delete user: %w", core.ErrNotFound)
		}

		return nil
	})
}

func (r *repository) execExpectingRow(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

// Both user unique indexes can fire on insert or update; the constraint name
// tells which field collided.
var (
	ErrEmailTaken    = fmt.Errorf("email taken: %w", core.ErrDuplicateKey)
	ErrUsernameTaken = fmt.Errorf("username taken: %w", core.ErrDuplicateKey)
)

func duplicateFieldError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}

	if pgErr.ConstraintName == "users_username_key" {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
