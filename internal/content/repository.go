// AngelaMos | 2026
// repository.go

package content

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

	Create(ctx context.Context, content *Content) error
	GetByID(ctx context.Context, id string) (*Content, error)
	List(ctx context.Context, params ListContentsParams) ([]Content, int, error)
	Update(ctx context.Context, content *Content) error

	ListComments(ctx context.Context, contentID string) ([]Comment, error)
	ListRatings(ctx context.Context, contentID string) ([]Rating, error)
	ListReactions(ctx context.Context, contentID string) ([]Reaction, error)

	AddComment(ctx context.Context, comment *Comment) error
	AddRating(ctx context.Context, rating *Rating) error
	AddReaction(ctx context.Context, reaction *Reaction) error

	AverageRating(ctx context.Context, contentID string) (float64, error)
	SetAverageRating(ctx context.Context, contentID string, avg float64) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const contentColumns = `
	id, title, description, source_kind, file_name, file_path, url,
	content_type_id, category_id, topic_id, creator_id, average_rating,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, content *Content) error {
	query := `
		INSERT INTO contents (
			id, title, description, source_kind, file_name, file_path, url,
			content_type_id, category_id, topic_id, creator_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, content, query,
		content.ID,
		content.Title,
		content.Description,
		content.SourceKind,
		content.FileName,
		content.FilePath,
		content.URL,
		content.ContentTypeID,
		content.CategoryID,
		content.TopicID,
		content.CreatorID,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("create content: %w", core.ErrInvalidInput)
		}
		return fmt.Errorf("create content: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Content, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM contents WHERE id = $1`,
		contentColumns,
	)

	var content Content
	err := r.db.GetContext(ctx, &content, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get content: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}

	return &content, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListContentsParams,
) ([]Content, int, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any
	argIdx := 1

	if params.CategoryID != "" {
		conditions = append(
			conditions,
			fmt.Sprintf("category_id = $%d", argIdx),
		)
		args = append(args, params.CategoryID)
		argIdx++
	}

	if params.TopicID != "" {
		conditions = append(conditions, fmt.Sprintf("topic_id = $%d", argIdx))
		args = append(args, params.TopicID)
		argIdx++
	}

	if params.ContentTypeID != "" {
		conditions = append(
			conditions,
			fmt.Sprintf("content_type_id = $%d", argIdx),
		)
		args = append(args, params.ContentTypeID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM contents WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count contents: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM contents
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		contentColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var contents []Content
	if err := r.db.SelectContext(ctx, &contents, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list contents: %w", err)
	}

	return contents, total, nil
}

func (r *repository) Update(ctx context.Context, content *Content) error {
	query := `
		UPDATE contents
		SET title = $2, description = $3, source_kind = $4, file_name = $5,
		    file_path = $6, url = $7, content_type_id = $8, category_id = $9,
		    topic_id = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &content.UpdatedAt, query,
		content.ID,
		content.Title,
		content.Description,
		content.SourceKind,
		content.FileName,
		content.FilePath,
		content.URL,
		content.ContentTypeID,
		content.CategoryID,
		content.TopicID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update content: %w", core.ErrNotFound)
	}
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("update content: %w", core.ErrInvalidInput)
		}
		return fmt.Errorf("update content: %w", err)
	}

	return nil
}

func (r *repository) ListComments(
	ctx context.Context,
	contentID string,
) ([]Comment, error) {
	var comments []Comment
	err := r.db.SelectContext(ctx, &comments, `
		SELECT id, content_id, user_id, text, created_at
		FROM comments
		WHERE content_id = $1
		ORDER BY created_at`, contentID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (r *repository) ListRatings(
	ctx context.Context,
	contentID string,
) ([]Rating, error) {
	var ratings []Rating
	err := r.db.SelectContext(ctx, &ratings, `
		SELECT id, content_id, user_id, score, created_at
		FROM ratings
		WHERE content_id = $1
		ORDER BY created_at`, contentID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}

func (r *repository) ListReactions(
	ctx context.Context,
	contentID string,
) ([]Reaction, error) {
	var reactions []Reaction
	err := r.db.SelectContext(ctx, &reactions, `
		SELECT id, content_id, user_id, reaction_type_id, created_at
		FROM reactions
		WHERE content_id = $1
		ORDER BY created_at`, contentID)
	if err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}
	return reactions, nil
}

func (r *repository) AddComment(ctx context.Context, comment *Comment) error {
	query := `
		INSERT INTO comments (id, content_id, user_id, text)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &comment.CreatedAt, query,
		comment.ID,
		comment.ContentID,
		comment.UserID,
		comment.Text,
	)
	if err != nil {
		return fmt.Errorf("add comment: %w", err)
	}

	return nil
}

func (r *repository) AddRating(ctx context.Context, rating *Rating) error {
	query := `
		INSERT INTO ratings (id, content_id, user_id, score)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &rating.CreatedAt, query,
		rating.ID,
		rating.ContentID,
		rating.UserID,
		rating.Score,
	)
	if err != nil {
		return fmt.Errorf("add rating: %w", err)
	}

	return nil
}

// AddReaction relies on the (content_id, user_id) unique index for the
// one-reaction-per-user rule.
func (r *repository) AddReaction(
	ctx context.Context,
	reaction *Reaction,
) error {
	query := `
		INSERT INTO reactions (id, content_id, user_id, reaction_type_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &reaction.CreatedAt, query,
		reaction.ID,
		reaction.ContentID,
		reaction.UserID,
		reaction.ReactionTypeID,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("add reaction: %w", core.ErrDuplicateKey)
		}
		// An unknown reaction_type_id trips the FK, which is bad input,
		// not a server fault.
		if isForeignKeyError(err) {
			return fmt.Errorf("add reaction: %w", core.ErrInvalidInput)
		}
		return fmt.Errorf("add reaction: %w", err)
	}

	return nil
}

// AverageRating computes the mean over every rating of the content, not an
// incremental update.
func (r *repository) AverageRating(
	ctx context.Context,
	contentID string,
) (float64, error) {
	var avg float64
	err := r.db.GetContext(
		ctx,
		&avg,
		`SELECT COALESCE(AVG(score), 0) FROM ratings WHERE content_id = $1`,
		contentID,
	)
	if err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}

	return avg, nil
}

func (r *repository) SetAverageRating(
	ctx context.Context,
	contentID string,
	avg float64,
) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE contents SET average_rating = $2, updated_at = NOW()
		 WHERE id = $1`,
		contentID,
		avg,
	)
	if err != nil {
		return fmt.Errorf("set average rating: %w", err)
	}

	return nil
}

func (r *repository) Find(ctx context.Context, id string) (string, error) {
	var title string
	err := r.db.GetContext(
		ctx,
		&title,
		`SELECT title FROM contents WHERE id = $1`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("find content: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("find content: %w", err)
	}

	return title, nil
}

func (r *repository) CountDependents(
	ctx context.Context,
	id string,
) ([]guard.DependentCount, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM comments WHERE content_id = $1) AS comments,
			(SELECT COUNT(*) FROM ratings WHERE content_id = $1) AS ratings,
			(SELECT COUNT(*) FROM reactions WHERE content_id = $1) AS reactions`

	var row struct {
		Comments  int64 `db:"comments"`
		Ratings   int64 `db:"ratings"`
		Reactions int64 `db:"reactions"`
	}
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, fmt.Errorf("count content dependents: %w", err)
	}

	return []guard.DependentCount{
		{Collection: "comments", Count: row.Comments},
		{Collection: "ratings", Count: row.Ratings},
		{Collection: "reactions", Count: row.Reactions},
	}, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM contents WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete content: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeleteCascade(ctx context.Context, id string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		statements := []string{
			`DELETE FROM comments WHERE content_id = $1`,
			`DELETE FROM ratings WHERE content_id = $1`,
			`DELETE FROM reactions WHERE content_id = $1`,
		}

		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("cascade content dependents: %w", err)
			}
		}

		result, err := tx.ExecContext(
			ctx,
			`DELETE FROM contents WHERE id = $1`,
			id,
		)
		if err != nil {
			return fmt.Errorf("cascade delete content: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("cascade delete content: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("cascade delete content: %w", core.ErrNotFound)
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

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
