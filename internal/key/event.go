package key

import (
	"fmt"
	"time"
)

// Direction is the transition direction of a raw key event.
type Direction uint8

const (
	// DirDown indicates a key press.
	DirDown Direction = iota

	// DirUp indicates a key release.
	DirUp
)

// String returns "down" or "up".
func (d Direction) String() string {
	if d == DirUp {
		return "up"
	}
	return "down"
}

// RawEvent is a single key transition as delivered by the OS hook.
// The OS may repeat down events while a key is held.
type RawEvent struct {
	// Key identifies the physical key.
	Key Key

	// Direction is the transition direction.
	Direction Direction

	// Time is when the OS reported the event.
	Time time.Time
}

// NewRawEvent creates a raw event with the current timestamp.
func NewRawEvent(k Key, d Direction) RawEvent {
	return RawEvent{Key: k, Direction: d, Time: time.Now()}
}

// IsDown returns true for press events.
func (e RawEvent) IsDown() bool {
	return e.Direction == DirDown
}

// String returns a debug representation like "H down".
func (e RawEvent) String() string {
	return fmt.Sprintf("%s %s", e.Key, e.Direction)
}
