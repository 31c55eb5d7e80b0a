package optimize

import (
	"context"

	"lexdiff/internal/diff"
	"lexdiff/internal/statute"
)

// IncrementalDiffer tracks a rolling previous version of one statute and
// emits only the delta introduced by each successive snapshot. The first
// snapshot seeds the baseline and produces no diff.
//
// Single-owner by design: callers sharing one instance across goroutines
// must serialize access.
type IncrementalDiffer struct {
	differ   *diff.Differ
	previous *statute.Statute
}

func NewIncrementalDiffer(differ *diff.Differ) *IncrementalDiffer {
	return &IncrementalDiffer{differ: differ}
}

// Update advances the rolling version to next and returns the delta against
// the previous snapshot. ok is false on the seeding call, when there is
// nothing to diff against.
func (i *IncrementalDiffer) Update(ctx context.Context, next *statute.Statute) (d *diff.StatuteDiff, ok bool, err error) {
	if next == nil {
		return nil, false, diff.ErrNilStatute
	}
	if i.previous == nil {
		i.previous = next
		return nil, false, nil
	}

	d, err = i.differ.Diff(i.previous, next)
	if err != nil {
		return nil, false, err
	}
	i.previous = next
	return d, true, nil
}

// Reset drops the rolling baseline.
func (i *IncrementalDiffer) Reset() {
	i.previous = nil
}
