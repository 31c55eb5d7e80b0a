// Package optimize provides the performance layer around the semantic
// differ: memoization of repeated diffs, incremental diffing against a
// rolling previous version, and parallel batch diffing.
package optimize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"lexdiff/internal/diff"
	"lexdiff/internal/statute"
)

// Cache memoizes computed diffs keyed by the identity and version of both
// inputs. Implementations: in-memory (default) and Redis (shared across
// instances).
type Cache interface {
	Get(ctx context.Context, key string) (*diff.StatuteDiff, bool, error)
	Set(ctx context.Context, key string, d *diff.StatuteDiff) error
}

// CacheKey derives a stable key from the IDs and versions of both inputs.
// Statute snapshots are immutable per version, so (id, version) pairs fully
// identify a diff.
func CacheKey(old, new *statute.Statute) string {
	h := sha256.New()
	h.Write([]byte(old.ID))
	h.Write([]byte{0})
	h.Write([]byte(old.Version))
	h.Write([]byte{0})
	h.Write([]byte(new.ID))
	h.Write([]byte{0})
	h.Write([]byte(new.Version))
	return hex.EncodeToString(h.Sum(nil))
}
