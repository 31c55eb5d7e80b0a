package forensic

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrRecordNotFound is returned by lookups for unknown record IDs.
	// Recoverable: the caller decides the fallback.
	ErrRecordNotFound = errors.New("audit record not found")

	// ErrCorruptLog marks a failed index rebuild. A malformed line aborts
	// replay rather than being skipped; silently dropping records would
	// undermine the forensic-completeness guarantee.
	ErrCorruptLog = errors.New("audit log corrupt")

	// ErrChainBroken is reported by chain verification when a record's hash
	// does not match its contents plus the preceding hash.
	ErrChainBroken = errors.New("audit hash chain broken")
)

func notFound(id uuid.UUID) error {
	return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
}
