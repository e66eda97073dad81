// Package keymap maps chord specifications to action names.
//
// Two tables exist: the global table applies while the menu is closed,
// the menu table while it is open. Only one table is consulted per
// event, so the same chord may appear in both without conflict; a
// duplicate inside one table is a configuration error that fails
// startup.
package keymap

import (
	"errors"
	"fmt"

	"github.com/mkelly/grapnel/internal/key"
)

// Keymap errors.
var (
	// ErrConflict indicates two bindings in one table share a chord.
	ErrConflict = errors.New("conflicting chord binding")

	// ErrEmptyBinding indicates a binding with no keys or no action.
	ErrEmptyBinding = errors.New("binding needs keys and an action")
)

// Binding is a single chord-to-action mapping.
type Binding struct {
	// Keys is the chord specification, e.g. "Ctrl+Alt+H".
	Keys string

	// Action is the action name to dispatch, e.g. "menu.toggle".
	Action string

	// Description documents the binding for display.
	Description string
}

// Keymap holds the bindings of one table.
type Keymap struct {
	// Name identifies the table ("global" or "menu").
	Name string

	// Leader is a modifier set prefixed onto every binding's chord.
	// The global table uses it so bindings read as single trailing keys.
	Leader key.Modifier

	// Bindings are the chord-to-action mappings.
	Bindings []Binding
}

// New creates an empty keymap with the given name.
func New(name string) *Keymap {
	return &Keymap{Name: name}
}

// WithLeader sets the leader modifiers for this keymap.
func (k *Keymap) WithLeader(leader key.Modifier) *Keymap {
	k.Leader = leader
	return k
}

// Add appends a binding.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{Keys: keys, Action: action})
	return k
}

// AddBinding appends a fully populated binding.
func (k *Keymap) AddBinding(b Binding) *Keymap {
	k.Bindings = append(k.Bindings, b)
	return k
}

// ParsedBinding is a binding with its resolved chord.
type ParsedBinding struct {
	Binding
	Chord key.Chord
}

// Parsed is a keymap with every binding resolved to a chord and indexed
// for lookup.
type Parsed struct {
	*Keymap
	Bindings []ParsedBinding
	byChord  map[key.Chord]ParsedBinding
}

// Parse resolves every binding's chord, applies the leader, and rejects
// conflicts. A failed parse names the offending binding.
func (k *Keymap) Parse() (*Parsed, error) {
	parsed := &Parsed{
		Keymap:   k,
		Bindings: make([]ParsedBinding, 0, len(k.Bindings)),
		byChord:  make(map[key.Chord]ParsedBinding, len(k.Bindings)),
	}

	for i, b := range k.Bindings {
		if b.Keys == "" || b.Action == "" {
			return nil, fmt.Errorf("%s binding %d: %w", k.Name, i, ErrEmptyBinding)
		}

		chord, err := key.ParseChord(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("%s binding %q: %w", k.Name, b.Keys, err)
		}
		chord = chord.WithMods(k.Leader)

		if prev, ok := parsed.byChord[chord]; ok {
			return nil, fmt.Errorf("%s table: %w: %s bound to both %q and %q",
				k.Name, ErrConflict, chord, prev.Action, b.Action)
		}

		pb := ParsedBinding{Binding: b, Chord: chord}
		parsed.Bindings = append(parsed.Bindings, pb)
		parsed.byChord[chord] = pb
	}

	return parsed, nil
}

// Lookup returns the action bound to the chord.
func (p *Parsed) Lookup(c key.Chord) (string, bool) {
	pb, ok := p.byChord[c]
	if !ok {
		return "", false
	}
	return pb.Action, true
}

// Chords returns every bound chord in binding order.
func (p *Parsed) Chords() []key.Chord {
	out := make([]key.Chord, len(p.Bindings))
	for i, pb := range p.Bindings {
		out[i] = pb.Chord
	}
	return out
}

// Set is the pair of active tables.
type Set struct {
	// Global applies while the menu is closed.
	Global *Parsed

	// Menu applies while the menu is open.
	Menu *Parsed
}

// NewSet parses both keymaps into a set.
func NewSet(global, menu *Keymap) (*Set, error) {
	g, err := global.Parse()
	if err != nil {
		return nil, err
	}
	m, err := menu.Parse()
	if err != nil {
		return nil, err
	}
	return &Set{Global: g, Menu: m}, nil
}

// Chords returns the union of chords across both tables, deduplicated,
// for the tracker's watch list.
func (s *Set) Chords() []key.Chord {
	seen := make(map[key.Chord]bool)
	var out []key.Chord
	for _, c := range append(s.Global.Chords(), s.Menu.Chords()...) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
