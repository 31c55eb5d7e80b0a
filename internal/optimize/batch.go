package optimize

import (
	"context"

	"golang.org/x/sync/errgroup"

	"lexdiff/internal/diff"
	"lexdiff/internal/statute"
)

const defaultBatchWorkers = 4

// Pair is one diff request within a batch.
type Pair struct {
	Old *statute.Statute
	New *statute.Statute
}

// BatchDiffer diffs many statute pairs with a bounded worker pool, sharing
// one context for early cancellation on the first failure. The differ itself
// is pure, so workers can share it without coordination.
type BatchDiffer struct {
	differ  *diff.Differ
	workers int
}

func NewBatchDiffer(differ *diff.Differ, workers int) *BatchDiffer {
	if workers <= 0 {
		workers = defaultBatchWorkers
	}
	return &BatchDiffer{differ: differ, workers: workers}
}

// DiffAll computes diffs for every pair, preserving input order. The first
// error cancels remaining work and is returned.
func (b *BatchDiffer) DiffAll(ctx context.Context, pairs []Pair) ([]*diff.StatuteDiff, error) {
	results := make([]*diff.StatuteDiff, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, pair := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := b.differ.Diff(pair.Old, pair.New)
			if err != nil {
				return err
			}
			results[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
