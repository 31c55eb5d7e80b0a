// Package store persists computed statute diffs so historical comparisons can
// be queried (and rolled back) without re-fetching statute snapshots.
package store

import (
	"context"
	"errors"

	"lexdiff/internal/diff"
)

// ErrNotFound keeps store-level misses consistent across the memory and
// postgres implementations. GetLatest returns it for statutes with no
// archived diff.
var ErrNotFound = errors.New("statute diff not found")

// Store is interface-driven so services stay testable and the backend can be
// swapped without rewiring business code.
type Store interface {
	Save(ctx context.Context, d *diff.StatuteDiff) error
	ListByStatute(ctx context.Context, statuteID string) ([]*diff.StatuteDiff, error)
	GetLatest(ctx context.Context, statuteID string) (*diff.StatuteDiff, error)
}
