// AngelaMos | 2026
// service.go

package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/mediahub/internal/core"
	"github.com/carterperez-dev/mediahub/internal/guard"
)

var (
	ErrInvalidSource  = errors.New("source fields do not match source kind")
	ErrTypeNotAllowed = errors.New("topic does not allow this content type")
	ErrReactionExists = errors.New("user already reacted to this content")
)

// TopicPolicy answers whether a topic accepts contents of a given type.
// Implemented by the topic repository.
type TopicPolicy interface {
	AllowsContentType(
		ctx context.Context,
		topicID, contentTypeID string,
	) (bool, error)
}

type Service struct {
	repo   Repository
	topics TopicPolicy
}

func NewService(repo Repository, topics TopicPolicy) *Service {
	return &Service{repo: repo, topics: topics}
}

func (s *Service) Source() guard.Source {
	return s.repo
}

func (s *Service) Create(
	ctx context.Context,
	creatorID string,
	req CreateContentRequest,
) (*Content, error) {
	if !req.ValidateSource() {
		return nil, ErrInvalidSource
	}

	allowed, err := s.topics.AllowsContentType(
		ctx,
		req.TopicID,
		req.ContentTypeID,
	)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrTypeNotAllowed
	}

	content := &Content{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Description:   req.Description,
		SourceKind:    SourceKind(req.SourceKind),
		FileName:      req.FileName,
		FilePath:      req.FilePath,
		URL:           req.URL,
		ContentTypeID: req.ContentTypeID,
		CategoryID:    req.CategoryID,
		TopicID:       req.TopicID,
		CreatorID:     creatorID,
	}

	if err := s.repo.Create(ctx, content); err != nil {
		return nil, err
	}

	return content, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Content, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListContentsParams,
) ([]Content, int, error) {
	return s.repo.List(ctx, params)
}

// GetDetail loads the content together with its comment, rating and
// reaction rows.
func (s *Service) GetDetail(
	ctx context.Context,
	id string,
) (*ContentDetailResponse, error) {
	content, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}

	ratings, err := s.repo.ListRatings(ctx, id)
	if err != nil {
		return nil, err
	}

	reactions, err := s.repo.ListReactions(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ContentDetailResponse{
		ContentResponse: ToContentResponse(content),
		Comments:        toCommentResponses(comments),
		Ratings:         toRatingResponses(ratings),
		Reactions:       toReactionResponses(reactions),
	}, nil
}

func (s *Service) Update(
	ctx context.Context,
	content *Content,
	req UpdateContentRequest,
) (*Content, error) {
	if req.Title != nil {
		content.Title = *req.Title
	}
	if req.Description != nil {
		content.Description = *req.Description
	}
	if req.CategoryID != nil {
		content.CategoryID = *req.CategoryID
	}
	if req.TopicID != nil {
		content.TopicID = *req.TopicID
	}
	if req.ContentTypeID != nil {
		content.ContentTypeID = *req.ContentTypeID
	}

	// Changing the kind clears the old kind's fields first, so stale file
	// fields never survive a switch to url (or the reverse).
	if req.SourceKind != nil && SourceKind(*req.SourceKind) != content.SourceKind {
		content.SourceKind = SourceKind(*req.SourceKind)
		content.FileName = nil
		content.FilePath = nil
		content.URL = nil
	}
	if req.FileName != nil {
		content.FileName = req.FileName
	}
	if req.FilePath != nil {
		content.FilePath = req.FilePath
	}
	if req.URL != nil {
		content.URL = req.URL
	}

	if !content.ValidSource() {
		return nil, ErrInvalidSource
	}

	if req.TopicID != nil || req.ContentTypeID != nil {
		allowed, err := s.topics.AllowsContentType(
			ctx,
			content.TopicID,
			content.ContentTypeID,
		)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, ErrTypeNotAllowed
		}
	}

	if err := s.repo.Update(ctx, content); err != nil {
		return nil, err
	}

	return content, nil
}

func (s *Service) AddComment(
	ctx context.Context,
	contentID, userID string,
	req AddCommentRequest,
) (*Comment, error) {
	if _, err := s.repo.Find(ctx, contentID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:        uuid.New().String(),
		ContentID: contentID,
		UserID:    userID,
		Text:      req.Text,
	}

	if err := s.repo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// AddRating inserts the score, then recomputes the content's average as the
// mean over ALL its ratings and persists it. Returns the new average.
func (s *Service) AddRating(
	ctx context.Context,
	contentID, userID string,
	req AddRatingRequest,
) (*Rating, float64, error) {
	if _, err := s.repo.Find(ctx, contentID); err != nil {
		return nil, 0, err
	}

	rating := &Rating{
		ID:        uuid.New().String(),
		ContentID: contentID,
		UserID:    userID,
		Score:     req.Score,
	}

	if err := s.repo.AddRating(ctx, rating); err != nil {
		return nil, 0, err
	}

	avg, err := s.repo.AverageRating(ctx, contentID)
	if err != nil {
		return nil, 0, fmt.Errorf("recompute average: %w", err)
	}

	if err := s.repo.SetAverageRating(ctx, contentID, avg); err != nil {
		return nil, 0, err
	}

	return rating, avg, nil
}

func (s *Service) AddReaction(
	ctx context.Context,
	contentID, userID string,
	req AddReactionRequest,
) (*Reaction, error) {
	if _, err := s.repo.Find(ctx, contentID); err != nil {
		return nil, err
	}

	reaction := &Reaction{
		ID:             uuid.New().String(),
		ContentID:      contentID,
		UserID:         userID,
		ReactionTypeID: req.ReactionTypeID,
	}

	if err := s.repo.AddReaction(ctx, reaction); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrReactionExists
		}
		return nil, err
	}

	return reaction, nil
}
