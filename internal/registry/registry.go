// Package registry tracks pinned application windows in slot order.
//
// The registry is owned by the single processing goroutine; all mutation
// is serialized through the command dispatcher, so no locking is needed.
// Entry order is the sole source of slot numbering: slot i is always
// entries[i-1].
package registry

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkelly/grapnel/internal/wm"
)

// MaxSlots is the number of entries directly addressable by a dedicated
// global chord. The registry itself is unbounded; entries past MaxSlots
// are reachable through the menu.
const MaxSlots = 8

// Entry is one tracked application window. The handle is a weak
// reference; the OS owns the window's lifetime and the entry is pruned
// lazily when a focus attempt finds the handle invalid.
type Entry struct {
	// ID identifies the entry across reorderings.
	ID string

	// Handle is the opaque OS window identity.
	Handle wm.Handle

	// Title is a snapshot taken at add time.
	Title string

	// Seq is the monotonically increasing registration order, used as a
	// tie-break.
	Seq uint64
}

// Registry is the ordered collection of tracked windows.
type Registry struct {
	windows wm.WindowAPI
	entries []Entry
	cursor  int
	nextSeq uint64
}

// New creates an empty registry using the given window collaborator for
// focus requests.
func New(windows wm.WindowAPI) *Registry {
	return &Registry{windows: windows}
}

// Len returns the number of tracked windows.
func (r *Registry) Len() int {
	return len(r.entries)
}

// At returns the entry at index.
func (r *Registry) At(index int) (Entry, error) {
	if index < 0 || index >= len(r.entries) {
		return Entry{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(r.entries))
	}
	return r.entries[index], nil
}

// Entries returns a copy of the tracked entries in slot order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// IndexOf returns the index of the entry with the given handle.
func (r *Registry) IndexOf(h wm.Handle) (int, bool) {
	for i, e := range r.entries {
		if e.Handle == h {
			return i, true
		}
	}
	return 0, false
}

// Add appends a window at the end (the lowest-priority slot).
// Returns ErrDuplicateWindow if the handle is already tracked.
func (r *Registry) Add(h wm.Handle, title string) (Entry, error) {
	if _, ok := r.IndexOf(h); ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrDuplicateWindow, title)
	}

	r.nextSeq++
	entry := Entry{
		ID:     uuid.New().String(),
		Handle: h,
		Title:  title,
		Seq:    r.nextSeq,
	}
	r.entries = append(r.entries, entry)
	return entry, nil
}

// RemoveAt removes and returns the entry at index.
func (r *Registry) RemoveAt(index int) (Entry, error) {
	if index < 0 || index >= len(r.entries) {
		return Entry{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(r.entries))
	}

	entry := r.entries[index]
	r.entries = append(r.entries[:index], r.entries[index+1:]...)
	r.clampCursor()
	return entry, nil
}

// PasteAt inserts an entry at index, shifting subsequent entries down.
// index may equal Len to append. Returns ErrDuplicateWindow if the
// entry's handle is already tracked.
func (r *Registry) PasteAt(entry Entry, index int) error {
	if index < 0 || index > len(r.entries) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(r.entries))
	}
	if _, ok := r.IndexOf(entry.Handle); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateWindow, entry.Title)
	}

	r.entries = append(r.entries, Entry{})
	copy(r.entries[index+1:], r.entries[index:])
	r.entries[index] = entry
	return nil
}

// Swap exchanges two adjacent entries. i == j is a permitted no-op.
func (r *Registry) Swap(i, j int) error {
	if i == j {
		if i < 0 || i >= len(r.entries) {
			return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(r.entries))
		}
		return nil
	}
	if i < 0 || i >= len(r.entries) || j < 0 || j >= len(r.entries) {
		return fmt.Errorf("%w: %d,%d of %d", ErrIndexOutOfRange, i, j, len(r.entries))
	}
	if i-j != 1 && j-i != 1 {
		return fmt.Errorf("%w: %d,%d", ErrNotAdjacent, i, j)
	}

	r.entries[i], r.entries[j] = r.entries[j], r.entries[i]
	return nil
}

// Focus asks the window collaborator to raise the window at index. When
// the collaborator reports the handle invalid, the entry is pruned and
// ErrStaleWindow returned; the caller treats this as feedback, not a
// fatal error.
func (r *Registry) Focus(index int) error {
	entry, err := r.At(index)
	if err != nil {
		return err
	}

	if err := r.windows.SetForeground(entry.Handle); err != nil {
		if errors.Is(err, wm.ErrInvalidHandle) {
			r.entries = append(r.entries[:index], r.entries[index+1:]...)
			r.clampCursor()
			return fmt.Errorf("%w: %q", ErrStaleWindow, entry.Title)
		}
		return fmt.Errorf("focusing %q: %w", entry.Title, err)
	}

	r.cursor = index
	return nil
}

// Next advances the cyclic cursor and returns the entry under it.
// No-op on an empty registry.
func (r *Registry) Next() (Entry, bool) {
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	r.cursor = (r.cursor + 1) % len(r.entries)
	return r.entries[r.cursor], true
}

// Prev moves the cyclic cursor backwards and returns the entry under it.
// No-op on an empty registry.
func (r *Registry) Prev() (Entry, bool) {
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	r.cursor = (r.cursor - 1 + len(r.entries)) % len(r.entries)
	return r.entries[r.cursor], true
}

// Cursor returns the cyclic cursor position.
func (r *Registry) Cursor() int {
	return r.cursor
}

func (r *Registry) clampCursor() {
	if len(r.entries) == 0 {
		r.cursor = 0
		return
	}
	if r.cursor >= len(r.entries) {
		r.cursor = len(r.entries) - 1
	}
}
