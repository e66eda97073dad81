// Package key defines physical keyboard keys, modifier sets, and chords.
//
// A chord is an unordered set of modifier keys plus exactly one trigger
// key, written in specs like "Ctrl+Alt+H". Chords are matched against the
// set of physically held keys, so left and right modifiers are distinct
// keys and uppercase letters do not imply Shift.
package key
