// AngelaMos | 2026
// repository.go

package contenttype

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/mediahub/internal/core"
	"github.com/carterperez-dev/mediahub/internal/guard"
)

type Repository interface {
	guard.Source

	Create(ctx context.Context, ct *ContentType) error
	GetByID(ctx context.Context, id string) (*ContentType, error)
	List(ctx context.Context) ([]ContentType, error)
	Update(ctx context.Context, ct *ContentType) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, ct *ContentType) error {
	query := `
		INSERT INTO content_types (id, name, icon)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, ct, query, ct.ID, ct.Name, ct.Icon)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create content type: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create content type: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*ContentType, error) {
	query := `
		SELECT id, name, icon, created_at, updated_at
		FROM content_types
		WHERE id = $1`

	var ct ContentType
	err := r.db.GetContext(ctx, &ct, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get content type: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get content type: %w", err)
	}

	return &ct, nil
}

func (r *repository) List(ctx context.Context) ([]ContentType, error) {
	query := `
		SELECT id, name, icon, created_at, updated_at
		FROM content_types
		ORDER BY name`

	var types []ContentType
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("list content types: %w", err)
	}

	return types, nil
}

func (r *repository) Update(ctx context.Context, ct *ContentType) error {
	query := `
		UPDATE content_types
		SET name = $2, icon = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &ct.UpdatedAt, query, ct.ID, ct.Name, ct.Icon)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update content type: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update content type: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update content type: %w", err)
	}

	return nil
}

func (r *repository) Find(ctx context.Context, id string) (string, error) {
	var name string
	err := r.db.GetContext(
		ctx,
		&name,
		`SELECT name FROM content_types WHERE id = $1`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("find content type: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("find content type: %w", err)
	}

	return name, nil
}

// CountDependents reports only contents. Topics referencing this type in
// their allowed set do not block deletion, matching how the allowed set is a
// filter rather than a reference.
func (r *repository) CountDependents(
	ctx context.Context,
	id string,
) ([]guard.DependentCount, error) {
	var count int64
	err := r.db.GetContext(
		ctx,
		&count,
		`SELECT COUNT(*) FROM contents WHERE content_type_id = $1`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("count content type dependents: %w", err)
	}

	return []guard.DependentCount{
		{Collection: "contents", Count: count},
	}, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM content_types WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete content type: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete content type: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete content type: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeleteCascade(ctx context.Context, id string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		statements := []string{
			`DELETE FROM comments WHERE content_id IN
				(SELECT id FROM contents WHERE content_type_id = $1)`,
			`DELETE FROM ratings WHERE content_id IN
				(SELECT id FROM contents WHERE content_type_id = $1)`,
			`DELETE FROM reactions WHERE content_id IN
				(SELECT id FROM contents WHERE content_type_id = $1)`,
			`DELETE FROM contents WHERE content_type_id = $1`,
		}

		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("cascade content type dependents: %w", err)
			}
		}

		result, err := tx.ExecContext(
			ctx,
			`DELETE FROM content_types WHERE id = $1`,
			id,
		)
		if err != nil {
			return fmt.Errorf("cascade delete content type: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("cascade delete content type: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf(
				"cascade delete content type: %w",
				core.ErrNotFound,
			)
		}

		return nil
	})
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
