// AngelaMos | 2026
// repository.go

package reactiontype

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

	Create(ctx context.Context, rt *ReactionType) error
	GetByID(ctx context.Context, id string) (*ReactionType, error)
	List(ctx context.Context) ([]ReactionType, error)
	Update(ctx context.Context, rt *ReactionType) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rt *ReactionType) error {
	query := `
		INSERT INTO reaction_types (id, name, icon)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, rt, query, rt.ID, rt.Name, rt.Icon)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create reaction type: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create reaction type: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*ReactionType, error) {
	query := `
		SELECT id, name, icon, created_at, updated_at
		FROM reaction_types
		WHERE id = $1`

	var rt ReactionType
	err := r.db.GetContext(ctx, &rt, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get reaction type: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get reaction type: %w", err)
	}

	return &rt, nil
}

func (r *repository) List(ctx context.Context) ([]ReactionType, error) {
	query := `
		SELECT id, name, icon, created_at, updated_at
		FROM reaction_types
		ORDER BY name`

	var types []ReactionType
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("list reaction types: %w", err)
	}

	return types, nil
}

func (r *repository) Update(ctx context.Context, rt *ReactionType) error {
	query := `
		UPDATE reaction_types
		SET name = $2, icon = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &rt.UpdatedAt, query, rt.ID, rt.Name, rt.Icon)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update reaction type: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update reaction type: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update reaction type: %w", err)
	}

	return nil
}

func (r *repository) Find(ctx context.Context, id string) (string, error) {
	var name string
	err := r.db.GetContext(
		ctx,
		&name,
		`SELECT name FROM reaction_types WHERE id = $1`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("find reaction type: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("find reaction type: %w", err)
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
		`SELECT COUNT(*) FROM reactions WHERE reaction_type_id = $1`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("count reaction type dependents: %w", err)
	}

	return []guard.DependentCount{
		{Collection: "reactions", Count: count},
	}, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM reaction_types WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete reaction type: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete reaction type: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete reaction type: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeleteCascade(ctx context.Context, id string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(
			ctx,
			`DELETE FROM reactions WHERE reaction_type_id = $1`,
			id,
		)
		if err != nil {
			return fmt.Errorf("cascade reaction type dependents: %w", err)
		}

		result, err := tx.ExecContext(
			ctx,
			`DELETE FROM reaction_types WHERE id = $1`,
			id,
		)
		if err != nil {
			return fmt.Errorf("cascade delete reaction type: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("cascade delete reaction type: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf(
				"cascade delete reaction type: %w",
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
