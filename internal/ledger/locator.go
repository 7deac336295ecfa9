package ledger

import (
	"fmt"

	"github.com/securityinshadows/sish/internal/common"
)

// Resolve maps a user-facing 1-based ordinal to the entry at that position
// in a rendered list. It operates on the snapshot the list was rendered
// from, never a live collection, so a selection cannot drift if the
// underlying data changes between render and pick.
func Resolve[T any](ordinal int, snapshot []T) (T, error) {
	var zero T
	if ordinal < 1 || ordinal > len(snapshot) {
		return zero, fmt.Errorf("%w: #%d of %d", common.ErrOutOfRange, ordinal, len(snapshot))
	}
	return snapshot[ordinal-1], nil
}
