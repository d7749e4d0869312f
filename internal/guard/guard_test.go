// AngelaMos | 2026
// guard_test.go

package guard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mediahub/internal/core"
)

type fakeEntity struct {
	label      string
	dependents []DependentCount
}

type fakeSource struct {
	entities map[string]*fakeEntity
	deleted  []string
	cascaded []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{entities: make(map[string]*fakeEntity)}
}

func (f *fakeSource) add(id, label string, deps ...DependentCount) {
	f.entities[id] = &fakeEntity{label: label, dependents: deps}
}

func (f *fakeSource) Find(_ context.Context, id string) (string, error) {
	e, ok := f.entities[id]
	if !ok {
		return "", core.ErrNotFound
	}
	return e.label, nil
}

func (f *fakeSource) CountDependents(
	_ context.Context,
	id string,
) ([]DependentCount, error) {
	e, ok := f.entities[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return e.dependents, nil
}

func (f *fakeSource) Delete(_ context.Context, id string) error {
	if _, ok := f.entities[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.entities, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSource) DeleteCascade(_ context.Context, id string) error {
	if _, ok := f.entities[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.entities, id)
	f.cascaded = append(f.cascaded, id)
	return nil
}

func TestDeleteSafe(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes entity with no dependents", func(t *testing.T) {
		src := newFakeSource()
		src.add("cat-1", "Music")

		err := DeleteSafe(ctx, src, "cat-1")

		require.NoError(t, err)
		assert.Equal(t, []string{"cat-1"}, src.deleted)
	})

	t.Run("blocks when dependents exist", func(t *testing.T) {
		src := newFakeSource()
		src.add("cat-1", "Music", DependentCount{
			Collection: "contents",
			Count:      3,
		})

		err := DeleteSafe(ctx, src, "cat-1")

		var depErr *DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Equal(t, []string{"Music"}, depErr.Blocked)
		assert.Empty(t, src.deleted)
		assert.Contains(t, src.entities, "cat-1")
	})

	t.Run("missing entity", func(t *testing.T) {
		src := newFakeSource()

		err := DeleteSafe(ctx, src, "nope")

		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("zero-count dependents do not block", func(t *testing.T) {
		src := newFakeSource()
		src.add("cat-1", "Music", DependentCount{
			Collection: "contents",
			Count:      0,
		})

		err := DeleteSafe(ctx, src, "cat-1")

		require.NoError(t, err)
		assert.Equal(t, []string{"cat-1"}, src.deleted)
	})
}

func TestDeleteCascade(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades despite dependents", func(t *testing.T) {
		src := newFakeSource()
		src.add("cat-1", "Music", DependentCount{
			Collection: "contents",
			Count:      5,
		})

		err := DeleteCascade(ctx, src, "cat-1")

		require.NoError(t, err)
		assert.Equal(t, []string{"cat-1"}, src.cascaded)
		assert.NotContains(t, src.entities, "cat-1")
	})

	t.Run("missing entity", func(t *testing.T) {
		src := newFakeSource()

		err := DeleteCascade(ctx, src, "nope")

		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestDeleteAllSafe(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes whole batch when unblocked", func(t *testing.T) {
		src := newFakeSource()
		src.add("a", "Alpha")
		src.add("b", "Beta")

		err := DeleteAllSafe(ctx, src, []string{"a", "b"})

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, src.deleted)
	})

	t.Run("all-or-nothing when one is blocked", func(t *testing.T) {
		src := newFakeSource()
		src.add("a", "Alpha")
		src.add("b", "Beta", DependentCount{
			Collection: "contents",
			Count:      1,
		})

		err := DeleteAllSafe(ctx, src, []string{"a", "b"})

		var depErr *DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Equal(t, []string{"Beta"}, depErr.Blocked)
		assert.Empty(t, src.deleted, "no entity may be deleted on a blocked batch")
		assert.Contains(t, src.entities, "a")
	})

	t.Run("collects every blocked label", func(t *testing.T) {
		src := newFakeSource()
		src.add("a", "Alpha", DependentCount{Collection: "contents", Count: 2})
		src.add("b", "Beta", DependentCount{Collection: "contents", Count: 1})

		err := DeleteAllSafe(ctx, src, []string{"a", "b"})

		var depErr *DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.ElementsMatch(t, []string{"Alpha", "Beta"}, depErr.Blocked)
	})

	t.Run("skips missing ids", func(t *testing.T) {
		src := newFakeSource()
		src.add("a", "Alpha")

		err := DeleteAllSafe(ctx, src, []string{"ghost", "a"})

		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, src.deleted)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		src := newFakeSource()

		err := DeleteAllSafe(ctx, src, nil)

		require.NoError(t, err)
		assert.Empty(t, src.deleted)
	})
}

func TestDeleteAllCascade(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades each id and skips missing", func(t *testing.T) {
		src := newFakeSource()
		src.add("a", "Alpha", DependentCount{Collection: "contents", Count: 4})
		src.add("b", "Beta")

		err := DeleteAllCascade(ctx, src, []string{"a", "ghost", "b"})

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, src.cascaded)
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		src := &errorSource{err: errors.New("connection reset")}

		err := DeleteAllCascade(ctx, src, []string{"a"})

		assert.ErrorContains(t, err, "connection reset")
	})
}

type errorSource struct {
	err error
}

func (e *errorSource) Find(context.Context, string) (string, error) {
	return "", e.err
}

func (e *errorSource) CountDependents(
	context.Context,
	string,
) ([]DependentCount, error) {
	return nil, e.err
}

func (e *errorSource) Delete(context.Context, string) error {
	return e.err
}

func (e *errorSource) DeleteCascade(context.Context, string) error {
	return e.err
}
