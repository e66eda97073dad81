// Package ui renders the window menu.
//
// Presenters receive a snapshot of the pinned-window list each time the
// menu changes and render it however they like: the terminal presenter
// draws a tcell list, the log presenter writes one line per snapshot
// for headless runs and tests.
package ui

// Item is one row of the menu.
type Item struct {
	// Slot is the 1-based position shown to the user.
	Slot int

	// Title is the window title at pin time.
	Title string
}

// Snapshot is the full menu state handed to a presenter.
type Snapshot struct {
	// Items are the pinned windows in slot order.
	Items []Item

	// Selection is the highlighted index, -1 when the list is empty.
	Selection int

	// ClipboardOccupied reports a cut entry waiting to be pasted.
	ClipboardOccupied bool

	// Inhibited reports that global hotkeys are muted.
	Inhibited bool

	// Status is transient feedback from the last operation, such as
	// "clipboard is empty". Empty when the operation succeeded.
	Status string
}

// Presenter renders menu snapshots.
type Presenter interface {
	// Show renders the snapshot. Called again with each change while
	// the menu stays open.
	Show(s Snapshot) error

	// Hide removes the menu from view.
	Hide() error

	// Close releases the presenter's resources.
	Close() error
}

// Nop is a presenter that renders nothing.
type Nop struct{}

func (Nop) Show(Snapshot) error { return nil }
func (Nop) Hide() error         { return nil }
func (Nop) Close() error        { return nil }
