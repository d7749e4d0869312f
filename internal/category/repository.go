// AngelaMos | 2026
// repository.go

package category

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

	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, category *Category) error
	UpdateImage(ctx context.Context, id, image string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, category *Category) error {
	query := `
		INSERT INTO categories (id, name, description, image, permissions)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, category, query,
		category.ID,
		category.Name,
		category.Description,
		category.Image,
		category.Permissions,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create category: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Category, error) {
	query := `
		SELECT id, name, description, image, permissions,
		       created_at, updated_at
		FROM categories
		WHERE id = $1`

	var category Category
	err := r.db.GetContext(ctx, &category, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get category: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &category, nil
}

func (r *repository) List(ctx context.Context) ([]Category, error) {
	query := `
		SELECT id, name, description, image, permissions,
		       created_at, updated_at
		FROM categories
		ORDER BY name`

	var categories []Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

func (r *repository) Update(ctx context.Context, category *Category) error {
	query := `
		UPDATE categories
		SET name = $2, description = $3, permissions = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &category.UpdatedAt, query,
		category.ID,
		category.Name,
		category.Description,
		category.Permissions,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update category: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update category: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update category: %w", err)
	}

	return nil
}

func (r *repository) UpdateImage(ctx context.Context, id, image string) error {
	query := `
		UPDATE categories
		SET image = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, image)
	if err != nil {
		return fmt.Errorf("update category image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category image: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update category image: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Find(ctx context.Context, id string) (string, error) {
	var name string
	err := r.db.GetContext(
		ctx,
		&name,
		`SELECT name FROM categories WHERE id = $1`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("find category: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("find category: %w", err)
	}

	return name, nil
}

func (r *repository) CountDependents(
	ctx context.Context,
	id string,
) ([]guard.DependentCount, error) {
	var count int64
	err := r.db.GetContext(
		ctx,
		&count,
		`SELECT COUNT(*) FROM contents WHERE category_id = $1`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("count category dependents: %w", err)
	}

	return []guard.DependentCount{
		{Collection: "contents", Count: count},
	}, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM categories WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete category: %w", core.ErrNotFound)
	}

	return nil
}

// DeleteCascade removes the category's contents (and their interaction rows)
// before the category, in one transaction.
func (r *repository) DeleteCascade(ctx context.Context, id string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		statements := []string{
			`DELETE FROM comments WHERE content_id IN
				(SELECT id FROM contents WHERE category_id = $1)`,
			`DELETE FROM ratings WHERE content_id IN
				(SELECT id FROM contents WHERE category_id = $1)`,
			`DELETE FROM reactions WHERE content_id IN
				(SELECT id FROM contents WHERE category_id = $1)`,
			`DELETE FROM contents WHERE category_id = $1`,
		}

		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("cascade category dependents: %w", err)
			}
		}

		result, err := tx.ExecContext(
			ctx,
			`DELETE FROM categories WHERE id = $1`,
			id,
		)
		if err != nil {
			return fmt.Errorf("cascade delete category: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("cascade delete category: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("cascade delete category: %w", core.ErrNotFound)
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
