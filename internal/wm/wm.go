// Package wm defines the OS window-management collaborator interface.
//
// The OS owns every window's lifetime; a Handle is a weak reference that
// can go invalid between acquisition and use, so every use is fallible.
package wm

import "errors"

// Collaborator errors.
var (
	// ErrInvalidHandle indicates the window behind a handle no longer
	// exists.
	ErrInvalidHandle = errors.New("invalid window handle")

	// ErrNoForeground indicates no foreground window could be determined.
	ErrNoForeground = errors.New("no foreground window")

	// ErrUnsupported indicates the current platform has no window
	// management support.
	ErrUnsupported = errors.New("window management not supported on this platform")
)

// Handle is an opaque OS window identity.
type Handle uintptr

// IsZero returns true for the zero handle.
func (h Handle) IsZero() bool {
	return h == 0
}

// WindowAPI is the OS window-enumeration and focus collaborator.
type WindowAPI interface {
	// Foreground returns the current foreground window and its title.
	Foreground() (Handle, string, error)

	// SetForeground raises and focuses the window. Returns
	// ErrInvalidHandle if the window no longer exists.
	SetForeground(h Handle) error

	// TitleOf returns the current title of the window.
	TitleOf(h Handle) (string, error)

	// IsValid reports whether the handle still refers to a live window.
	IsValid(h Handle) bool
}
