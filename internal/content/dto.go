// AngelaMos | 2026
// dto.go

package content

import (
	"time"
)

type CreateContentRequest struct {
	Title         string  `json:"title"         validate:"required,min=1,max=200"`
	Description   string  `json:"description"   validate:"max=2000"`
	SourceKind    string  `json:"sourceKind"    validate:"required,oneof=file url"`
	FileName      *string `json:"fileName,omitempty" validate:"omitempty,max=255"`
	FilePath      *string `json:"filePath,omitempty" validate:"omitempty,max=512"`
	URL           *string `json:"url,omitempty"      validate:"omitempty,url,max=2048"`
	ContentTypeID string  `json:"contentTypeId" validate:"required,uuid"`
	CategoryID    string  `json:"categoryId"    validate:"required,uuid"`
	TopicID       string  `json:"topicId"       validate:"required,uuid"`
}

// ValidateSource enforces the source-kind invariant: file contents carry
// both file fields and no url, url contents the reverse.
func (r *CreateContentRequest) ValidateSource() bool {
	switch SourceKind(r.SourceKind) {
	case SourceFile:
		return r.FileName != nil && r.FilePath != nil && r.URL == nil
	case SourceURL:
		return r.URL != nil && r.FileName == nil && r.FilePath == nil
	default:
		return false
	}
}

// UpdateContentRequest covers everything a creator may change, the source
// included. Switching the source kind resets the old kind's fields, so a
// file-to-url move only needs the new url.
type UpdateContentRequest struct {
	Title         *string `json:"title,omitempty"         validate:"omitempty,min=1,max=200"`
	Description   *string `json:"description,omitempty"   validate:"omitempty,max=2000"`
	SourceKind    *string `json:"sourceKind,omitempty"    validate:"omitempty,oneof=file url"`
	FileName      *string `json:"fileName,omitempty"      validate:"omitempty,max=255"`
	FilePath      *string `json:"filePath,omitempty"      validate:"omitempty,max=512"`
	URL           *string `json:"url,omitempty"           validate:"omitempty,url,max=2048"`
	ContentTypeID *string `json:"contentTypeId,omitempty" validate:"omitempty,uuid"`
	CategoryID    *string `json:"categoryId,omitempty"    validate:"omitempty,uuid"`
	TopicID       *string `json:"topicId,omitempty"       validate:"omitempty,uuid"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,dive,uuid"`
}

type AddCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

type AddRatingRequest struct {
	Score int `json:"score" validate:"required,min=1,max=5"`
}

type AddReactionRequest struct {
	ReactionTypeID string `json:"reactionTypeId" validate:"required,uuid"`
}

type ListContentsParams struct {
	CategoryID    string
	TopicID       string
	ContentTypeID string
	Page          int
	PageSize      int
}

func (p *ListContentsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListContentsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type ContentResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	SourceKind    string    `json:"sourceKind"`
	FileName      *string   `json:"fileName,omitempty"`
	FilePath      *string   `json:"filePath,omitempty"`
	URL           *string   `json:"url,omitempty"`
	ContentTypeID string    `json:"contentTypeId"`
	CategoryID    string    `json:"categoryId"`
	TopicID       string    `json:"topicId"`
	CreatorID     string    `json:"creatorId"`
	AverageRating float64   `json:"averageRating"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type RatingResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReactionResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	ReactionTypeID string    `json:"reactionTypeId"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ContentDetailResponse struct {
	ContentResponse
	Comments  []CommentResponse  `json:"comments"`
	Ratings   []RatingResponse   `json:"ratings"`
	Reactions []ReactionResponse `json:"reactions"`
}

type ContentListResponse struct {
	Contents []ContentResponse `json:"contents"`
	Total    int               `json:"total"`
}

func ToContentResponse(c *Content) ContentResponse {
	return ContentResponse{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		SourceKind:    string(c.SourceKind),
		FileName:      c.FileName,
		FilePath:      c.FilePath,
		URL:           c.URL,
		ContentTypeID: c.ContentTypeID,
		CategoryID:    c.CategoryID,
		TopicID:       c.TopicID,
		CreatorID:     c.CreatorID,
		AverageRating: c.AverageRating,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func ToContentResponseList(contents []Content) []ContentResponse {
	responses := make([]ContentResponse, 0, len(contents))
	for _, c := range contents {
		responses = append(responses, ToContentResponse(&c))
	}
	return responses
}

func toCommentResponses(comments []Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentResponse{
			ID:        c.ID,
			UserID:    c.UserID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return out
}

func toRatingResponses(ratings []Rating) []RatingResponse {
	out := make([]RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, RatingResponse{
			ID:        r.ID,
			UserID:    r.UserID,
			Score:     r.Score,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}

func toReactionResponses(reactions []Reaction) []ReactionResponse {
	out := make([]ReactionResponse, 0, len(reactions))
	for _, r := range reactions {
		out = append(out, ReactionResponse{
			ID:             r.ID,
			UserID:         r.UserID,
			ReactionTypeID: r.ReactionTypeID,
			CreatedAt:      r.CreatedAt,
		})
	}
	return out
}
