// AngelaMos | 2026
// service_test.go

package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mediahub/internal/core"
	"github.com/carterperez-dev/mediahub/internal/guard"
)

type fakeRepo struct {
	contents  map[string]*Content
	comments  []Comment
	ratings   []Rating
	reactions []Reaction

	// When set, AddReaction rejects unknown reaction type IDs the way the
	// FK does.
	reactionTypes map[string]struct{}
}

func newFakeRepo(contents ...*Content) *fakeRepo {
	repo := &fakeRepo{contents: make(map[string]*Content)}
	for _, c := range contents {
		repo.contents[c.ID] = c
	}
	return repo
}

func (f *fakeRepo) Create(_ context.Context, c *Content) error {
	f.contents[c.ID] = c
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Content, error) {
	c, ok := f.contents[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepo) List(
	context.Context,
	ListContentsParams,
) ([]Content, int, error) {
	out := make([]Content, 0, len(f.contents))
	for _, c := range f.contents {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, c *Content) error {
	if _, ok := f.contents[c.ID]; !ok {
		return core.ErrNotFound
	}
	f.contents[c.ID] = c
	return nil
}

func (f *fakeRepo) ListComments(
	_ context.Context,
	contentID string,
) ([]Comment, error) {
	var out []Comment
	for _, c := range f.comments {
		if c.ContentID == contentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListRatings(
	_ context.Context,
	contentID string,
) ([]Rating, error) {
	var out []Rating
	for _, r := range f.ratings {
		if r.ContentID == contentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListReactions(
	_ context.Context,
	contentID string,
) ([]Reaction, error) {
	var out []Reaction
	for _, r := range f.reactions {
		if r.ContentID == contentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) AddComment(_ context.Context, c *Comment) error {
	f.comments = append(f.comments, *c)
	return nil
}

func (f *fakeRepo) AddRating(_ context.Context, r *Rating) error {
	f.ratings = append(f.ratings, *r)
	return nil
}

func (f *fakeRepo) AddReaction(_ context.Context, r *Reaction) error {
	if f.reactionTypes != nil {
		if _, ok := f.reactionTypes[r.ReactionTypeID]; !ok {
			return core.ErrInvalidInput
		}
	}
	for _, existing := range f.reactions {
		if existing.ContentID == r.ContentID &&
			existing.UserID == r.UserID {
			return core.ErrDuplicateKey
		}
	}
	f.reactions = append(f.reactions, *r)
	return nil
}

func (f *fakeRepo) AverageRating(
	_ context.Context,
	contentID string,
) (float64, error) {
	var sum, n int
	for _, r := range f.ratings {
		if r.ContentID == contentID {
			sum += r.Score
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func (f *fakeRepo) SetAverageRating(
	_ context.Context,
	contentID string,
	avg float64,
) error {
	c, ok := f.contents[contentID]
	if !ok {
		return core.ErrNotFound
	}
	c.AverageRating = avg
	return nil
}

func (f *fakeRepo) Find(_ context.Context, id string) (string, error) {
	c, ok := f.contents[id]
	if !ok {
		return "", core.ErrNotFound
	}
	return c.Title, nil
}

func (f *fakeRepo) CountDependents(
	_ context.Context,
	id string,
) ([]guard.DependentCount, error) {
	comments, _ := f.ListComments(context.Background(), id)
	ratings, _ := f.ListRatings(context.Background(), id)
	reactions, _ := f.ListReactions(context.Background(), id)
	return []guard.DependentCount{
		{Collection: "comments", Count: int64(len(comments))},
		{Collection: "ratings", Count: int64(len(ratings))},
		{Collection: "reactions", Count: int64(len(reactions))},
	}, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.contents[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.contents, id)
	return nil
}

func (f *fakeRepo) DeleteCascade(ctx context.Context, id string) error {
	return f.Delete(ctx, id)
}

type fakeTopicPolicy struct {
	disallowed map[string]struct{}
	err        error
}

func (p fakeTopicPolicy) AllowsContentType(
	_ context.Context,
	_, contentTypeID string,
) (bool, error) {
	if p.err != nil {
		return false, p.err
	}
	_, blocked := p.disallowed[contentTypeID]
	return !blocked, nil
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, fakeTopicPolicy{})
}

func strptr(s string) *string { return &s }

func TestCreateValidatesSource(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	t.Run("file content with url rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, "creator-1", CreateContentRequest{
			Title:         "Clip",
			SourceKind:    "file",
			FileName:      strptr("clip.mp4"),
			FilePath:      strptr("/media/clip.mp4"),
			URL:           strptr("https://example.com/clip"),
			ContentTypeID: "ct-1",
			CategoryID:    "cat-1",
			TopicID:       "top-1",
		})
		assert.ErrorIs(t, err, ErrInvalidSource)
	})

	t.Run("url content without url rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, "creator-1", CreateContentRequest{
			Title:         "Stream",
			SourceKind:    "url",
			ContentTypeID: "ct-1",
			CategoryID:    "cat-1",
			TopicID:       "top-1",
		})
		assert.ErrorIs(t, err, ErrInvalidSource)
	})

	t.Run("valid url content accepted", func(t *testing.T) {
		content, err := svc.Create(ctx, "creator-1", CreateContentRequest{
			Title:         "Stream",
			SourceKind:    "url",
			URL:           strptr("https://example.com/stream"),
			ContentTypeID: "ct-1",
			CategoryID:    "cat-1",
			TopicID:       "top-1",
		})
		require.NoError(t, err)
		assert.Equal(t, "creator-1", content.CreatorID)
		assert.Equal(t, SourceURL, content.SourceKind)
	})
}

func TestAddRatingRecomputesAverage(t *testing.T) {
	repo := newFakeRepo(&Content{ID: "c-1", Title: "Song"})
	svc := newTestService(repo)
	ctx := context.Background()

	_, avg, err := svc.AddRating(ctx, "c-1", "u-1", AddRatingRequest{Score: 3})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, avg, 1e-9)

	_, avg, err = svc.AddRating(ctx, "c-1", "u-2", AddRatingRequest{Score: 5})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, avg, 1e-9)
	assert.InDelta(t, 4.0, repo.contents["c-1"].AverageRating, 1e-9)

	// A score equal to the current mean leaves it unchanged.
	_, avg, err = svc.AddRating(ctx, "c-1", "u-3", AddRatingRequest{Score: 4})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, avg, 1e-9)
}

func TestAddRatingMissingContent(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, _, err := svc.AddRating(
		context.Background(),
		"ghost",
		"u-1",
		AddRatingRequest{Score: 5},
	)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestAddReactionUniquePerUser(t *testing.T) {
	repo := newFakeRepo(&Content{ID: "c-1", Title: "Song"})
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.AddReaction(ctx, "c-1", "u-1", AddReactionRequest{
		ReactionTypeID: "rt-like",
	})
	require.NoError(t, err)

	_, err = svc.AddReaction(ctx, "c-1", "u-1", AddReactionRequest{
		ReactionTypeID: "rt-love",
	})
	assert.ErrorIs(t, err, ErrReactionExists)
	assert.Len(t, repo.reactions, 1)

	_, err = svc.AddReaction(ctx, "c-1", "u-2", AddReactionRequest{
		ReactionTypeID: "rt-like",
	})
	require.NoError(t, err)
	assert.Len(t, repo.reactions, 2)
}

func TestAddCommentMissingContent(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.AddComment(
		context.Background(),
		"ghost",
		"u-1",
		AddCommentRequest{Text: "hello"},
	)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestGetDetailIncludesChildren(t *testing.T) {
	repo := newFakeRepo(&Content{ID: "c-1", Title: "Song"})
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.AddComment(ctx, "c-1", "u-1", AddCommentRequest{Text: "nice"})
	require.NoError(t, err)
	_, _, err = svc.AddRating(ctx, "c-1", "u-1", AddRatingRequest{Score: 5})
	require.NoError(t, err)

	detail, err := svc.GetDetail(ctx, "c-1")
	require.NoError(t, err)

	assert.Len(t, detail.Comments, 1)
	assert.Len(t, detail.Ratings, 1)
	assert.Empty(t, detail.Reactions)
	assert.InDelta(t, 5.0, detail.AverageRating, 1e-9)
}

func TestAddReactionUnknownType(t *testing.T) {
	repo := newFakeRepo(&Content{ID: "c-1", Title: "Song"})
	repo.reactionTypes = map[string]struct{}{"rt-like": {}}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.AddReaction(ctx, "c-1", "u-1", AddReactionRequest{
		ReactionTypeID: "rt-ghost",
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrReactionExists)
	assert.Empty(t, repo.reactions)

	_, err = svc.AddReaction(ctx, "c-1", "u-1", AddReactionRequest{
		ReactionTypeID: "rt-like",
	})
	require.NoError(t, err)
}

func TestCreateHonorsTopicAllowedTypes(t *testing.T) {
	ctx := context.Background()
	req := CreateContentRequest{
		Title:         "Stream",
		SourceKind:    "url",
		URL:           strptr("https://example.com/stream"),
		ContentTypeID: "ct-video",
		CategoryID:    "cat-1",
		TopicID:       "top-1",
	}

	t.Run("disallowed type rejected", func(t *testing.T) {
		svc := NewService(newFakeRepo(), fakeTopicPolicy{
			disallowed: map[string]struct{}{"ct-video": {}},
		})

		_, err := svc.Create(ctx, "creator-1", req)
		assert.ErrorIs(t, err, ErrTypeNotAllowed)
	})

	t.Run("missing topic surfaces not found", func(t *testing.T) {
		svc := NewService(newFakeRepo(), fakeTopicPolicy{
			err: core.ErrNotFound,
		})

		_, err := svc.Create(ctx, "creator-1", req)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("allowed type accepted", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		content, err := svc.Create(ctx, "creator-1", req)
		require.NoError(t, err)
		assert.Equal(t, "ct-video", content.ContentTypeID)
	})
}

func TestUpdateChangesSource(t *testing.T) {
	ctx := context.Background()

	newFileContent := func() *Content {
		return &Content{
			ID:         "c-1",
			Title:      "Clip",
			SourceKind: SourceFile,
			FileName:   strptr("clip.mp4"),
			FilePath:   strptr("/media/clip.mp4"),
		}
	}

	t.Run("switch file to url clears file fields", func(t *testing.T) {
		content := newFileContent()
		svc := newTestService(newFakeRepo(content))

		updated, err := svc.Update(ctx, content, UpdateContentRequest{
			SourceKind: strptr("url"),
			URL:        strptr("https://example.com/clip"),
		})
		require.NoError(t, err)
		assert.Equal(t, SourceURL, updated.SourceKind)
		assert.Nil(t, updated.FileName)
		assert.Nil(t, updated.FilePath)
		require.NotNil(t, updated.URL)
		assert.Equal(t, "https://example.com/clip", *updated.URL)
	})

	t.Run("switch without the new source rejected", func(t *testing.T) {
		content := newFileContent()
		svc := newTestService(newFakeRepo(content))

		_, err := svc.Update(ctx, content, UpdateContentRequest{
			SourceKind: strptr("url"),
		})
		assert.ErrorIs(t, err, ErrInvalidSource)
	})

	t.Run("content type change re-checks topic policy", func(t *testing.T) {
		content := newFileContent()
		content.TopicID = "top-1"
		svc := NewService(newFakeRepo(content), fakeTopicPolicy{
			disallowed: map[string]struct{}{"ct-audio": {}},
		})

		_, err := svc.Update(ctx, content, UpdateContentRequest{
			ContentTypeID: strptr("ct-audio"),
		})
		assert.ErrorIs(t, err, ErrTypeNotAllowed)
	})

	t.Run("content type change persisted", func(t *testing.T) {
		content := newFileContent()
		repo := newFakeRepo(content)
		svc := newTestService(repo)

		updated, err := svc.Update(ctx, content, UpdateContentRequest{
			ContentTypeID: strptr("ct-audio"),
		})
		require.NoError(t, err)
		assert.Equal(t, "ct-audio", updated.ContentTypeID)
		assert.Equal(t, "ct-audio", repo.contents["c-1"].ContentTypeID)
	})
}
