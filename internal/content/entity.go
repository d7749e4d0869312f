// AngelaMos | 2026
// entity.go

package content

import (
	"time"
)

// SourceKind tells which source fields carry the media location.
type SourceKind string

const (
	SourceFile SourceKind = "file"
	SourceURL  SourceKind = "url"
)

// Content is a published media item. Exactly one source is populated per
// kind: file contents carry FileName/FilePath, url contents carry URL.
type Content struct {
	ID            string     `db:"id"`
	Title         string     `db:"title"`
	Description   string     `db:"description"`
	SourceKind    SourceKind `db:"source_kind"`
	FileName      *string    `db:"file_name"`
	FilePath      *string    `db:"file_path"`
	URL           *string    `db:"url"`
	ContentTypeID string     `db:"content_type_id"`
	CategoryID    string     `db:"category_id"`
	TopicID       string     `db:"topic_id"`
	CreatorID     string     `db:"creator_id"`
	AverageRating float64    `db:"average_rating"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (c *Content) IsOwnedBy(userID string) bool {
	return c.CreatorID == userID
}

// ValidSource reports whether the source fields match the kind: file needs
// both file fields and no url, url the reverse.
func (c *Content) ValidSource() bool {
	switch c.SourceKind {
	case SourceFile:
		return c.FileName != nil && c.FilePath != nil && c.URL == nil
	case SourceURL:
		return c.URL != nil && c.FileName == nil && c.FilePath == nil
	default:
		return false
	}
}

type Comment struct {
	ID        string    `db:"id"`
	ContentID string    `db:"content_id"`
	UserID    string    `db:"user_id"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}

type Rating struct {
	ID        string    `db:"id"`
	ContentID string    `db:"content_id"`
	UserID    string    `db:"user_id"`
	Score     int       `db:"score"`
	CreatedAt time.Time `db:"created_at"`
}

type Reaction struct {
	ID             string    `db:"id"`
	ContentID      string    `db:"content_id"`
	UserID         string    `db:"user_id"`
	ReactionTypeID string    `db:"reaction_type_id"`
	CreatedAt      time.Time `db:"created_at"`
}
