// Package hotkey carries recognized chords from the OS hook callback to
// the application processing loop.
package hotkey

import (
	"fmt"
	"time"

	"github.com/mkelly/grapnel/internal/key"
)

// Event is one recognized chord press.
type Event struct {
	// Chord is the matched chord.
	Chord key.Chord

	// Time is when the triggering key transition was reported.
	Time time.Time
}

// String returns a debug representation like "hotkey Ctrl+Alt+H".
func (e Event) String() string {
	return "hotkey " + e.Chord.String()
}

// Hook is the OS global key-listener collaborator. The handler passed to
// Install runs on an OS-owned execution context with a hard time budget;
// it must not block.
type Hook interface {
	// Install registers the global listener. Fatal at startup on failure.
	Install(handler func(key.RawEvent)) error

	// Uninstall removes the listener. Must be called on every exit path
	// so no dangling callback registration is left behind.
	Uninstall() error
}

// InstallError reports a failed hook installation. The process cannot
// provide its core function without the hook, so callers treat it as
// fatal.
type InstallError struct {
	Err error
}

// Error implements the error interface.
func (e *InstallError) Error() string {
	return fmt.Sprintf("installing global key hook: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *InstallError) Unwrap() error {
	return e.Err
}
