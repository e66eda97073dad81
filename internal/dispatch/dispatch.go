// Package dispatch routes recognized chords to action handlers.
//
// The dispatcher consults the menu table while the menu is open and
// the global table otherwise, with one carve-out: the chord bound to
// the menu toggle keeps working while the menu is open, so the toggle
// is a true open/close switch. Inhibit
// mode mutes the global table except for the inhibit and menu toggles;
// the menu table is never inhibited.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/mkelly/grapnel/internal/hotkey"
	"github.com/mkelly/grapnel/internal/key"
	"github.com/mkelly/grapnel/internal/keymap"
)

// Dispatch errors.
var (
	// ErrNoHandler indicates an action has no registered handler.
	ErrNoHandler = errors.New("dispatch: no handler for action")

	// ErrUnbound indicates the chord is not bound in the active table.
	ErrUnbound = errors.New("dispatch: chord not bound")

	// ErrInhibited indicates the chord was suppressed by inhibit mode.
	ErrInhibited = errors.New("dispatch: global hotkeys inhibited")
)

// Handler executes one action. A returned error is reported but does
// not stop the dispatcher.
type Handler func() error

// MenuState reports whether the menu table is active. The menu package
// satisfies this.
type MenuState interface {
	IsOpen() bool
}

// Dispatcher routes chord events to handlers.
//
// It is owned by the processing goroutine and is not safe for
// concurrent use.
type Dispatcher struct {
	maps     *keymap.Set
	menu     MenuState
	handlers map[string]Handler

	inhibited  bool
	dispatched uint64
	suppressed uint64
}

// New creates a dispatcher over the given keymap set and menu state.
func New(maps *keymap.Set, menu MenuState) *Dispatcher {
	return &Dispatcher{
		maps:     maps,
		menu:     menu,
		handlers: make(map[string]Handler),
	}
}

// Register binds a handler to an action name, replacing any previous
// handler for that name.
func (d *Dispatcher) Register(action string, h Handler) {
	d.handlers[action] = h
}

// SetMaps swaps in a new keymap set. Inhibit state and handlers
// survive a rebind. Must be called from the owning goroutine.
func (d *Dispatcher) SetMaps(maps *keymap.Set) {
	d.maps = maps
}

// Registered reports whether an action has a handler.
func (d *Dispatcher) Registered(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

// ToggleInhibit flips inhibit mode and returns the new state.
func (d *Dispatcher) ToggleInhibit() bool {
	d.inhibited = !d.inhibited
	return d.inhibited
}

// Inhibited reports whether global hotkeys are currently muted.
func (d *Dispatcher) Inhibited() bool {
	return d.inhibited
}

// Dispatch resolves the event's chord against the active table and runs
// its handler. Unbound chords return ErrUnbound; inhibited chords
// return ErrInhibited. Both are expected during normal operation.
func (d *Dispatcher) Dispatch(ev hotkey.Event) error {
	action, err := d.resolve(ev.Chord)
	if err != nil {
		return err
	}

	h, ok := d.handlers[action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, action)
	}

	d.dispatched++
	if err := h(); err != nil {
		return fmt.Errorf("dispatch %s: %w", action, err)
	}
	return nil
}

// resolve picks the active table and applies inhibit filtering.
func (d *Dispatcher) resolve(c key.Chord) (string, error) {
	if d.menu != nil && d.menu.IsOpen() {
		if action, ok := d.maps.Menu.Lookup(c); ok {
			return action, nil
		}
		// The toggle chord stays live while the menu is open: the
		// chord that opened the menu also closes it.
		if action, ok := d.maps.Global.Lookup(c); ok && action == ActionMenuToggle {
			return action, nil
		}
		return "", fmt.Errorf("%w: %s (menu)", ErrUnbound, c)
	}

	action, ok := d.maps.Global.Lookup(c)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnbound, c)
	}
	if d.inhibited && action != ActionInhibitToggle && action != ActionMenuToggle {
		d.suppressed++
		return "", fmt.Errorf("%w: %s", ErrInhibited, action)
	}
	return action, nil
}

// Dispatched returns the number of handlers run.
func (d *Dispatcher) Dispatched() uint64 { return d.dispatched }

// Suppressed returns the number of chords muted by inhibit mode.
func (d *Dispatcher) Suppressed() uint64 { return d.suppressed }
