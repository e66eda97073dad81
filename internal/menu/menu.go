// Package menu implements the modal selection-menu state machine.
//
// The menu is either closed or open over the window registry. While
// open, dispatched commands move the selection, reorder entries, and cut
// or paste them through a single clipboard slot. All transitions run on
// the processing goroutine; no locking is needed.
package menu

import (
	"errors"

	"github.com/mkelly/grapnel/internal/registry"
)

// Menu errors. Both are recoverable no-ops surfaced as user feedback.
var (
	// ErrNothingSelected indicates an operation on an empty registry.
	ErrNothingSelected = errors.New("nothing selected")

	// ErrClipboardEmpty indicates a paste with nothing cut.
	ErrClipboardEmpty = errors.New("clipboard is empty")
)

// State is the menu's modal state.
type State int

const (
	// StateClosed is the initial state; global bindings apply.
	StateClosed State = iota

	// StateOpen means the menu is navigating; menu bindings apply.
	StateOpen
)

// String returns "closed" or "open".
func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// Menu drives the selection menu over a registry.
type Menu struct {
	reg       *registry.Registry
	state     State
	selection int
	clipboard *registry.Entry
}

// New creates a closed menu over the registry.
func New(reg *registry.Registry) *Menu {
	return &Menu{reg: reg}
}

// State returns the current modal state.
func (m *Menu) State() State {
	return m.state
}

// IsOpen reports whether the menu is open.
func (m *Menu) IsOpen() bool {
	return m.state == StateOpen
}

// Selection returns the selected index. Meaningful only while open.
func (m *Menu) Selection() int {
	m.clampSelection()
	return m.selection
}

// ClipboardOccupied reports whether a cut entry is waiting to be pasted.
func (m *Menu) ClipboardOccupied() bool {
	return m.clipboard != nil
}

// Toggle opens the menu at selection zero, or closes it. Closing
// discards the clipboard.
func (m *Menu) Toggle() {
	if m.state == StateClosed {
		m.state = StateOpen
		m.selection = 0
		m.clipboard = nil
		return
	}
	m.close()
}

// Quit closes the menu without focusing anything.
func (m *Menu) Quit() {
	m.close()
}

func (m *Menu) close() {
	m.state = StateClosed
	m.selection = 0
	m.clipboard = nil
}

// MoveDown advances the selection, wrapping past the last entry.
func (m *Menu) MoveDown() {
	if m.reg.Len() == 0 {
		m.selection = 0
		return
	}
	m.clampSelection()
	m.selection = (m.selection + 1) % m.reg.Len()
}

// MoveUp retreats the selection, wrapping past the first entry.
func (m *Menu) MoveUp() {
	if m.reg.Len() == 0 {
		m.selection = 0
		return
	}
	m.clampSelection()
	m.selection = (m.selection - 1 + m.reg.Len()) % m.reg.Len()
}

// SwapDown exchanges the selected entry with the one below it and moves
// the selection along with the entry. No-op at the bottom edge.
func (m *Menu) SwapDown() error {
	m.clampSelection()
	if m.selection+1 >= m.reg.Len() {
		return nil
	}
	if err := m.reg.Swap(m.selection, m.selection+1); err != nil {
		return err
	}
	m.selection++
	return nil
}

// SwapUp exchanges the selected entry with the one above it and moves
// the selection along with the entry. No-op at the top edge.
func (m *Menu) SwapUp() error {
	m.clampSelection()
	if m.selection == 0 || m.reg.Len() < 2 {
		return nil
	}
	if err := m.reg.Swap(m.selection-1, m.selection); err != nil {
		return err
	}
	m.selection--
	return nil
}

// Cut removes the selected entry into the clipboard slot. A previously
// cut entry still in the clipboard is discarded.
func (m *Menu) Cut() error {
	if m.reg.Len() == 0 {
		return ErrNothingSelected
	}
	m.clampSelection()

	entry, err := m.reg.RemoveAt(m.selection)
	if err != nil {
		return err
	}
	m.clipboard = &entry
	m.clampSelection()
	return nil
}

// PasteDown inserts the clipboard entry below the current selection.
// The selection stays on its entry.
func (m *Menu) PasteDown() error {
	if m.clipboard == nil {
		return ErrClipboardEmpty
	}

	index := 0
	if m.reg.Len() > 0 {
		m.clampSelection()
		index = m.selection + 1
	}
	return m.paste(index)
}

// PasteUp inserts the clipboard entry at the current selection, pushing
// the selected entry down. The selection index stays put, so it lands on
// the pasted entry.
func (m *Menu) PasteUp() error {
	if m.clipboard == nil {
		return ErrClipboardEmpty
	}

	m.clampSelection()
	return m.paste(m.selection)
}

func (m *Menu) paste(index int) error {
	if err := m.reg.PasteAt(*m.clipboard, index); err != nil {
		return err
	}
	m.clipboard = nil
	return nil
}

// Confirm focuses the selected entry and closes the menu. The menu
// closes even when the focus attempt fails; a stale-window error is
// feedback for the caller.
func (m *Menu) Confirm() error {
	if m.reg.Len() == 0 {
		m.close()
		return ErrNothingSelected
	}
	m.clampSelection()
	index := m.selection
	m.close()
	return m.reg.Focus(index)
}

// clampSelection keeps the selection inside the registry after it
// shrinks behind the menu's back (stale-window pruning).
func (m *Menu) clampSelection() {
	if m.reg.Len() == 0 {
		m.selection = 0
		return
	}
	if m.selection >= m.reg.Len() {
		m.selection = m.reg.Len() - 1
	}
	if m.selection < 0 {
		m.selection = 0
	}
}
