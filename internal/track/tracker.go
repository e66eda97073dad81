// Package track maintains the set of held keys from raw hook events and
// recognizes configured chords.
package track

import (
	"sync/atomic"
	"time"

	"github.com/mkelly/grapnel/internal/hotkey"
	"github.com/mkelly/grapnel/internal/key"
)

// Tracker consumes raw key transitions on the OS hook-callback context
// and enqueues an event for every newly matched chord. The held-key set
// is owned exclusively by that context; the processing loop only reads
// the atomic counters and may request a reset, which the hook context
// applies on the next transition it sees.
//
// Known limitation: lock-screen and secure-desktop switches can swallow
// key-up events for keys held at the moment of transition, leaving the
// held set believing a modifier is down until the watchdog reset or the
// next genuine transition of that key.
type Tracker struct {
	held   map[key.Key]bool
	chords []key.Chord
	fired  []bool
	queue  *hotkey.Queue

	// Read by the processing loop for the staleness watchdog.
	heldCount    atomic.Int32
	lastEventNS  atomic.Int64
	resetPending atomic.Bool
	resets       atomic.Uint64
}

// New creates a tracker that recognizes the given chords and produces
// into q. The chord table is fixed for the tracker's lifetime;
// re-binding swaps in a new tracker.
func New(chords []key.Chord, q *hotkey.Queue) *Tracker {
	t := &Tracker{
		held:   make(map[key.Key]bool, 16),
		chords: make([]key.Chord, len(chords)),
		fired:  make([]bool, len(chords)),
		queue:  q,
	}
	copy(t.chords, chords)
	return t
}

// HandleRaw processes one raw key transition. It must only be called
// from the hook-callback context, in OS delivery order, and performs no
// blocking work.
func (t *Tracker) HandleRaw(ev key.RawEvent) {
	if ev.Key == key.KeyNone {
		return
	}

	if t.resetPending.Swap(false) {
		t.reset()
	}

	t.lastEventNS.Store(ev.Time.UnixNano())

	if ev.IsDown() {
		t.keyDown(ev)
	} else {
		t.keyUp(ev)
	}
}

// keyDown records a press and signals every chord the new set exactly
// matches. A chord fires once per continuous press; its mark clears only
// when one of its keys is released.
func (t *Tracker) keyDown(ev key.RawEvent) {
	if !t.held[ev.Key] {
		t.held[ev.Key] = true
		t.heldCount.Store(int32(len(t.held)))
	}

	for i, c := range t.chords {
		if t.fired[i] || !t.matchesExactly(c) {
			continue
		}
		t.fired[i] = true
		t.queue.Push(hotkey.Event{Chord: c, Time: ev.Time})
	}
}

// keyUp removes a key and re-arms every chord that included it.
func (t *Tracker) keyUp(ev key.RawEvent) {
	if t.held[ev.Key] {
		delete(t.held, ev.Key)
		t.heldCount.Store(int32(len(t.held)))
	}

	for i, c := range t.chords {
		if t.fired[i] && c.Contains(ev.Key) {
			t.fired[i] = false
		}
	}
}

// matchesExactly reports whether the held set is exactly the chord's key
// set: every chord key held and nothing else.
func (t *Tracker) matchesExactly(c key.Chord) bool {
	if len(t.held) != c.Size() {
		return false
	}
	if !t.held[c.Key] {
		return false
	}
	for _, k := range c.Mods.Keys() {
		if !t.held[k] {
			return false
		}
	}
	return true
}

// reset clears the held set and all fired marks. Hook context only.
func (t *Tracker) reset() {
	clear(t.held)
	t.heldCount.Store(0)
	for i := range t.fired {
		t.fired[i] = false
	}
	t.resets.Add(1)
}

// RequestReset asks the hook context to clear the held set before
// processing its next event, reporting whether this call newly armed
// the reset. Safe to call from any goroutine. Pending resets are
// harmless while no events arrive, since a stale set without input
// cannot mis-fire a chord.
func (t *Tracker) RequestReset() bool {
	return !t.resetPending.Swap(true)
}

// Stale reports whether keys appear held but no raw event has arrived
// within maxAge. Used by the processing loop as a watchdog against
// swallowed key-up events.
func (t *Tracker) Stale(now time.Time, maxAge time.Duration) bool {
	if t.heldCount.Load() == 0 {
		return false
	}
	last := t.lastEventNS.Load()
	if last == 0 {
		return false
	}
	return now.Sub(time.Unix(0, last)) > maxAge
}

// HeldCount returns the number of keys currently believed held.
func (t *Tracker) HeldCount() int {
	return int(t.heldCount.Load())
}

// Resets returns how many times the held set has been force-cleared.
func (t *Tracker) Resets() uint64 {
	return t.resets.Load()
}

// Chords returns a copy of the configured chord table.
func (t *Tracker) Chords() []key.Chord {
	out := make([]key.Chord, len(t.chords))
	copy(out, t.chords)
	return out
}
