package diff

import "errors"

var (
	// ErrStatuteIDMismatch rejects diffs across unrelated statutes. Version
	// history only makes sense within one statute identity, so this is
	// fail-fast rather than a silent cross-statute comparison.
	ErrStatuteIDMismatch = errors.New("statute ids do not match")

	// ErrNilStatute rejects diff calls with a missing side.
	ErrNilStatute = errors.New("statute is nil")

	// ErrNilDiff rejects rollback calls without a forward diff.
	ErrNilDiff = errors.New("statute diff is nil")

	// ErrNoArchive is returned by archive-backed lookups when the service
	// runs without an archive configured.
	ErrNoArchive = errors.New("no diff archive configured")
)
