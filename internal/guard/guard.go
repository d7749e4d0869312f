// AngelaMos | 2026
// guard.go

package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/mediahub/internal/core"
)

// DependentCount reports how many rows in one dependent collection still
// reference the entity under deletion.
type DependentCount struct {
	Collection string `json:"collection"`
	Count      int64  `json:"count"`
}

func (d DependentCount) String() string {
	return fmt.Sprintf("%s=%d", d.Collection, d.Count)
}

// Source is the per-resource storage surface the guard drives. Find returns
// a human-readable label for the entity (name, title, username) used when a
// bulk delete reports what blocked it. DeleteCascade must remove dependents
// before the entity itself, atomically.
type Source interface {
	Find(ctx context.Context, id string) (string, error)
	CountDependents(ctx context.Context, id string) ([]DependentCount, error)
	Delete(ctx context.Context, id string) error
	DeleteCascade(ctx context.Context, id string) error
}

// DependencyError reports entities that could not be safely deleted because
// other records still reference them.
type DependencyError struct {
	Blocked []string
	Counts  []DependentCount
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("entity has dependents: %v", e.Blocked)
}

// CheckDependents returns a DependencyError when any dependent collection
// still references the entity.
func CheckDependents(
	ctx context.Context,
	src Source,
	id string,
	label string,
) error {
	counts, err := src.CountDependents(ctx, id)
	if err != nil {
		return fmt.Errorf("count dependents: %w", err)
	}

	blocked := make([]DependentCount, 0, len(counts))
	for _, c := range counts {
		if c.Count > 0 {
			blocked = append(blocked, c)
		}
	}

	if len(blocked) > 0 {
		return &DependencyError{Blocked: []string{label}, Counts: blocked}
	}

	return nil
}

// DeleteSafe removes the entity only when nothing references it. The
// dependent check and the delete are two statements; a reference created
// between them survives as a dangling pointer, same as concurrent safe
// deletes have always behaved here.
func DeleteSafe(ctx context.Context, src Source, id string) error {
	label, err := src.Find(ctx, id)
	if err != nil {
		return err
	}

	if err := CheckDependents(ctx, src, id, label); err != nil {
		return err
	}

	return src.Delete(ctx, id)
}

// DeleteCascade removes the entity and everything referencing it.
func DeleteCascade(ctx context.Context, src Source, id string) error {
	if _, err := src.Find(ctx, id); err != nil {
		return err
	}

	return src.DeleteCascade(ctx, id)
}

// DeleteAllSafe is all-or-nothing: every entity in ids is checked before any
// is deleted, and a single blocked entity aborts the whole batch. IDs that
// no longer exist are skipped silently. Returns the labels of blocked
// entities so handlers can surface them.
func DeleteAllSafe(ctx context.Context, src Source, ids []string) error {
	type candidate struct {
		id    string
		label string
	}

	candidates := make([]candidate, 0, len(ids))
	var blocked []string

	for _, id := range ids {
		label, err := src.Find(ctx, id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				continue
			}
			return err
		}

		if err := CheckDependents(ctx, src, id, label); err != nil {
			var depErr *DependencyError
			if errors.As(err, &depErr) {
				blocked = append(blocked, label)
				continue
			}
			return err
		}

		candidates = append(candidates, candidate{id: id, label: label})
	}

	if len(blocked) > 0 {
		return &DependencyError{Blocked: blocked}
	}

	for _, c := range candidates {
		if err := src.Delete(ctx, c.id); err != nil {
			return fmt.Errorf("delete %s: %w", c.label, err)
		}
	}

	return nil
}

// DeleteAllCascade cascades each entity in ids, skipping IDs that no longer
// exist.
func DeleteAllCascade(ctx context.Context, src Source, ids []string) error {
	for _, id := range ids {
		err := DeleteCascade(ctx, src, id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				continue
			}
			return err
		}
	}

	return nil
}
