package optimize

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexdiff/internal/diff"
	"lexdiff/internal/statute"
)

func batchPair(id string, changed bool) Pair {
	old := &statute.Statute{
		ID: id, Version: "v1", Title: "title", Jurisdiction: "UK",
		Effect: statute.Effect{Type: "grant_benefit"},
	}
	new := &statute.Statute{
		ID: id, Version: "v2", Title: "title", Jurisdiction: "UK",
		Effect: statute.Effect{Type: "grant_benefit"},
	}
	if changed {
		new.Title = "amended title"
	}
	return Pair{Old: old, New: new}
}

func TestBatchDifferPreservesInputOrder(t *testing.T) {
	batch := NewBatchDiffer(diff.NewDiffer(), 3)

	pairs := make([]Pair, 20)
	for i := range pairs {
		pairs[i] = batchPair(fmt.Sprintf("statute-%d", i), i%2 == 0)
	}

	results, err := batch.DiffAll(context.Background(), pairs)
	require.NoError(t, err)
	require.Len(t, results, len(pairs))

	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("statute-%d", i), r.StatuteID)
		if i%2 == 0 {
			assert.NotEmpty(t, r.Changes)
		} else {
			assert.Empty(t, r.Changes)
		}
	}
}

func TestBatchDifferReturnsFirstError(t *testing.T) {
	batch := NewBatchDiffer(diff.NewDiffer(), 2)

	bad := batchPair("statute-bad", false)
	bad.New.ID = "mismatched"
	pairs := []Pair{batchPair("statute-0", true), bad, batchPair("statute-2", true)}

	results, err := batch.DiffAll(context.Background(), pairs)
	require.ErrorIs(t, err, diff.ErrStatuteIDMismatch)
	assert.Nil(t, results)
}

func TestBatchDifferEmptyInput(t *testing.T) {
	batch := NewBatchDiffer(diff.NewDiffer(), 0)

	results, err := batch.DiffAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBatchDifferHonorsCancelledContext(t *testing.T) {
	batch := NewBatchDiffer(diff.NewDiffer(), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := batch.DiffAll(ctx, []Pair{batchPair("statute-0", true)})
	require.ErrorIs(t, err, context.Canceled)
}
