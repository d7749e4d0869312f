// AngelaMos | 2026
// repository.go

package topic

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

	Create(ctx context.Context, topic *Topic) error
	GetByID(ctx context.Context, id string) (*Topic, error)
	List(ctx context.Context) ([]Topic, error)
	Update(ctx context.Context, topic *Topic) error
	UpdateImage(ctx context.Context, id, image string) error
	AllowsContentType(
		ctx context.Context,
		topicID, contentTypeID string,
	) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, topic *Topic) error {
	query := `
		INSERT INTO topics (id, name, description, image, allowed_content_types)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, topic, query,
		topic.ID,
		topic.Name,
		topic.Description,
		topic.Image,
		topic.AllowedContentTypes,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create topic: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create topic: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Topic, error) {
	query := `
		SELECT id, name, description, image, allowed_content_types,
		       created_at, updated_at
		FROM topics
		WHERE id = $1`

	var topic Topic
	err := r.db.GetContext(ctx, &topic, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get topic: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}

	return &topic, nil
}

func (r *repository) List(ctx context.Context) ([]Topic, error) {
	query := `
		SELECT id, name, description, image, allowed_content_types,
		       created_at, updated_at
		FROM topics
		ORDER BY name`

	var topics []Topic
	if err := r.db.SelectContext(ctx, &topics, query); err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	return topics, nil
}

func (r *repository) Update(ctx context.Context, topic *Topic) error {
	query := `
		UPDATE topics
		SET name = $2, description = $3, allowed_content_types = $4,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &topic.UpdatedAt, query,
		topic.ID,
		topic.Name,
		topic.Description,
		topic.AllowedContentTypes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update topic: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update topic: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update topic: %w", err)
	}

	return nil
}

func (r *repository) UpdateImage(ctx context.Context, id, image string) error {
	query := `
		UPDATE topics
		SET image = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, image)
	if err != nil {
		return fmt.Errorf("update topic image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update topic image: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update topic image: %w", core.ErrNotFound)
	}

	return nil
}

// AllowsContentType checks the topic's allowed set for the given content
// type. An empty set means the topic accepts everything.
func (r *repository) AllowsContentType(
	ctx context.Context,
	topicID, contentTypeID string,
) (bool, error) {
	topic, err := r.GetByID(ctx, topicID)
	if err != nil {
		return false, err
	}

	return topic.AllowedContentTypes.Allows(contentTypeID), nil
}

func (r *repository) Find(ctx context.Context, id string) (string, error) {
	var name string
	err := r.db.GetContext(
		ctx,
		&name,
		`SELECT name FROM topics WHERE id = $1`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("find topic: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("find topic: %w", err)
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
		`SELECT COUNT(*) FROM contents WHERE topic_id = $1`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("count topic dependents: %w", err)
	}

	return []guard.DependentCount{
		{Collection: "contents", Count: count},
	}, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM topics WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete topic: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeleteCascade(ctx context.Context, id string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		statements := []string{
			`DELETE FROM comments WHERE content_id IN
				(SELECT id FROM contents WHERE topic_id = $1)`,
			`DELETE FROM ratings WHERE content_id IN
				(SELECT id FROM contents WHERE topic_id = $1)`,
			`DELETE FROM reactions WHERE content_id IN
				(SELECT id FROM contents WHERE topic_id = $1)`,
			`DELETE FROM contents WHERE topic_id = $1`,
		}

		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("cascade topic dependents: %w", err)
			}
		}

		result, err := tx.ExecContext(
			ctx,
			`DELETE FROM topics WHERE id = $1`,
			id,
		)
		if err != nil {
			return fmt.Errorf("cascade delete topic: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("cascade delete topic: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("cascade delete topic: %w", core.ErrNotFound)
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
