package registry

import "errors"

// Registry errors. All are recoverable: they surface to the menu layer
// as user feedback, never as a crash.
var (
	// ErrDuplicateWindow indicates the handle is already tracked.
	ErrDuplicateWindow = errors.New("window already tracked")

	// ErrIndexOutOfRange indicates an index outside the registry.
	ErrIndexOutOfRange = errors.New("registry index out of range")

	// ErrStaleWindow indicates the entry's window no longer exists; the
	// entry has been pruned.
	ErrStaleWindow = errors.New("window no longer exists")

	// ErrNotAdjacent indicates a swap of non-adjacent entries.
	ErrNotAdjacent = errors.New("swap requires adjacent entries")
)
