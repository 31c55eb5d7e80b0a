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

func sampleDiff(id string) *diff.StatuteDiff {
	return &diff.StatuteDiff{
		StatuteID: id,
		Versions:  &diff.VersionInfo{Old: "v1", New: "v2"},
		Changes: []diff.Change{
			{Type: diff.ChangeModified, Target: diff.Target{Field: diff.TargetTitle}, Description: "title changed"},
		},
		Impact: diff.ImpactAssessment{Severity: diff.SeverityMinor},
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(8)

	_, ok, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	want := sampleDiff("uk-housing-act-27")
	require.NoError(t, cache.Set(ctx, "k1", want))

	got, ok, err := cache.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestMemoryCacheReturnsCopies(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(8)
	stored := sampleDiff("s1")
	require.NoError(t, cache.Set(ctx, "k1", stored))

	// Mutating what callers hold must not leak into the cache.
	stored.Changes[0].Description = "mutated after set"
	first, _, err := cache.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "title changed", first.Changes[0].Description)

	first.Changes[0].Description = "mutated after get"
	second, _, err := cache.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "title changed", second.Changes[0].Description)
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(2)

	require.NoError(t, cache.Set(ctx, "a", sampleDiff("a")))
	require.NoError(t, cache.Set(ctx, "b", sampleDiff("b")))

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, cache.Set(ctx, "c", sampleDiff("c")))
	assert.Equal(t, 2, cache.Len())

	_, ok, _ = cache.Get(ctx, "b")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok, _ = cache.Get(ctx, "a")
	assert.True(t, ok)
	_, ok, _ = cache.Get(ctx, "c")
	assert.True(t, ok)
}

func TestMemoryCacheOverwriteKeepsSingleEntry(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(4)

	require.NoError(t, cache.Set(ctx, "k", sampleDiff("first")))
	require.NoError(t, cache.Set(ctx, "k", sampleDiff("second")))

	assert.Equal(t, 1, cache.Len())
	got, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", got.StatuteID)
}

func TestCacheKeyStableAndVersionSensitive(t *testing.T) {
	old := &statute.Statute{ID: "s1", Version: "v1"}
	new := &statute.Statute{ID: "s1", Version: "v2"}

	assert.Equal(t, CacheKey(old, new), CacheKey(old, new))
	assert.NotEqual(t, CacheKey(old, new), CacheKey(new, old))

	bumped := &statute.Statute{ID: "s1", Version: "v3"}
	assert.NotEqual(t, CacheKey(old, new), CacheKey(old, bumped))
}

func TestMemoryCacheDefaultCapacity(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0)
	for i := 0; i < defaultCacheCapacity+10; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("k%d", i), sampleDiff("s")))
	}
	assert.Equal(t, defaultCacheCapacity, cache.Len())
}
