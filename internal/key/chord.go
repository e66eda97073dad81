package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty chord specification")
	ErrInvalidSpec = errors.New("invalid chord specification")
)

// Chord is an unordered set of modifier keys plus exactly one trigger key.
// Chords are immutable values; equality is set equality, which the
// comparable representation gives us directly.
type Chord struct {
	// Mods is the set of modifier keys that must be held.
	Mods Modifier

	// Key is the non-modifier trigger key.
	Key Key
}

// NewChord creates a chord from a modifier set and a trigger key.
func NewChord(mods Modifier, k Key) Chord {
	return Chord{Mods: mods, Key: k}
}

// ParseChord parses a chord specification like "Ctrl+Alt+H", "Shift+P",
// or "Escape". All parts but the last must be modifier names; the last
// part must be a non-modifier key. Letter case is not significant:
// "Shift+D" and "shift+d" describe the same physical chord.
func ParseChord(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	parts := strings.Split(spec, "+")

	var mods Modifier
	for _, part := range parts[:len(parts)-1] {
		k := FromName(part)
		if k == KeyNone {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, part, spec)
		}
		mod := ModifierForKey(k)
		if mod == ModNone {
			return Chord{}, fmt.Errorf("%w: %q is not a modifier in %q", ErrInvalidSpec, part, spec)
		}
		mods = mods.With(mod)
	}

	last := parts[len(parts)-1]
	k := FromName(last)
	if k == KeyNone {
		return Chord{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidSpec, last, spec)
	}
	if k.IsModifier() {
		return Chord{}, fmt.Errorf("%w: trigger key %q is a modifier in %q", ErrInvalidSpec, last, spec)
	}

	return Chord{Mods: mods, Key: k}, nil
}

// MustParseChord parses a chord specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParseChord(spec string) Chord {
	c, err := ParseChord(spec)
	if err != nil {
		panic("invalid chord specification: " + spec + ": " + err.Error())
	}
	return c
}

// IsZero returns true for the zero chord.
func (c Chord) IsZero() bool {
	return c.Key == KeyNone && c.Mods == ModNone
}

// Keys returns every physical key in the chord: modifiers first, then the
// trigger key.
func (c Chord) Keys() []Key {
	keys := c.Mods.Keys()
	return append(keys, c.Key)
}

// Size returns the number of physical keys in the chord.
func (c Chord) Size() int {
	return c.Mods.Count() + 1
}

// Contains returns true if the chord includes the given physical key,
// either as a modifier or as the trigger.
func (c Chord) Contains(k Key) bool {
	if c.Key == k {
		return true
	}
	mod := ModifierForKey(k)
	return mod != ModNone && c.Mods.Has(mod)
}

// WithMods returns a copy of the chord with the given modifiers added.
func (c Chord) WithMods(mods Modifier) Chord {
	c.Mods = c.Mods.With(mods)
	return c
}

// String returns the canonical specification, e.g. "Ctrl+Alt+H".
func (c Chord) String() string {
	if mods := c.Mods.String(); mods != "" {
		return mods + "+" + c.Key.String()
	}
	return c.Key.String()
}
