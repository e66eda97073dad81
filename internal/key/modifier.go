package key

import "strings"

// Modifier represents a set of held modifier keys.
// Each bit is one physical modifier key, so left and right variants are
// tracked independently.
type Modifier uint16

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModCtrlLeft indicates the left Control key.
	ModCtrlLeft Modifier = 1 << iota

	// ModCtrlRight indicates the right Control key.
	ModCtrlRight

	// ModAltLeft indicates the left Alt key.
	ModAltLeft

	// ModAltRight indicates the right Alt key.
	ModAltRight

	// ModShiftLeft indicates the left Shift key.
	ModShiftLeft

	// ModShiftRight indicates the right Shift key.
	ModShiftRight

	// ModMetaLeft indicates the left Meta (Win) key.
	ModMetaLeft

	// ModMetaRight indicates the right Meta (Win) key.
	ModMetaRight
)

// modifierKeys lists every modifier bit with its physical key, in
// canonical display order.
var modifierKeys = []struct {
	mod Modifier
	key Key
}{
	{ModCtrlLeft, KeyCtrlLeft},
	{ModCtrlRight, KeyCtrlRight},
	{ModAltLeft, KeyAltLeft},
	{ModAltRight, KeyAltRight},
	{ModShiftLeft, KeyShiftLeft},
	{ModShiftRight, KeyShiftRight},
	{ModMetaLeft, KeyMetaLeft},
	{ModMetaRight, KeyMetaRight},
}

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Count returns the number of modifier keys in the set.
func (m Modifier) Count() int {
	n := 0
	for _, mk := range modifierKeys {
		if m.Has(mk.mod) {
			n++
		}
	}
	return n
}

// Keys returns the physical keys in the set, in canonical order.
func (m Modifier) Keys() []Key {
	var keys []Key
	for _, mk := range modifierKeys {
		if m.Has(mk.mod) {
			keys = append(keys, mk.key)
		}
	}
	return keys
}

// String returns a human-readable representation like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	for _, mk := range modifierKeys {
		if m.Has(mk.mod) {
			parts = append(parts, mk.key.String())
		}
	}
	return strings.Join(parts, "+")
}

// ModifierForKey returns the modifier bit for a physical modifier key.
// Returns ModNone for non-modifier keys.
func ModifierForKey(k Key) Modifier {
	for _, mk := range modifierKeys {
		if mk.key == k {
			return mk.mod
		}
	}
	return ModNone
}
