package hotkey

import (
	"testing"
	"time"

	"github.com/mkelly/grapnel/internal/key"
)

func chordEvent(spec string) Event {
	return Event{Chord: key.MustParseChord(spec), Time: time.Now()}
}

func TestQueuePushPop(t *testing.T) {
	q := NewQueue(4)

	q.Push(chordEvent("Ctrl+Alt+H"))
	q.Push(chordEvent("Ctrl+Alt+A"))

	ev, ok := q.TryPop()
	if !ok || ev.Chord != key.MustParseChord("Ctrl+Alt+H") {
		t.Fatalf("TryPop = %v, %v; want first pushed event", ev, ok)
	}
	ev, ok = q.TryPop()
	if !ok || ev.Chord != key.MustParseChord("Ctrl+Alt+A") {
		t.Fatalf("TryPop = %v, %v; want second pushed event", ev, ok)
	}
	if _, ok := q.TryPop(); ok {
		t.Fatal("TryPop on empty queue should report false")
	}
}

func TestQueueDropsOldestWhenFull(t *testing.T) {
	q := NewQueue(2)

	q.Push(chordEvent("Ctrl+Alt+H"))
	q.Push(chordEvent("Ctrl+Alt+J"))
	q.Push(chordEvent("Ctrl+Alt+K")) // evicts Ctrl+Alt+H

	if q.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", q.Dropped())
	}

	events := q.Drain()
	if len(events) != 2 {
		t.Fatalf("Drain returned %d events, want 2", len(events))
	}
	if events[0].Chord != key.MustParseChord("Ctrl+Alt+J") {
		t.Errorf("oldest surviving event = %v, want Ctrl+Alt+J", events[0].Chord)
	}
	if events[1].Chord != key.MustParseChord("Ctrl+Alt+K") {
		t.Errorf("newest event = %v, want Ctrl+Alt+K", events[1].Chord)
	}
}

func TestQueueDrainPreservesOrder(t *testing.T) {
	q := NewQueue(8)
	specs := []string{"Ctrl+Alt+H", "Ctrl+Alt+J", "Ctrl+Alt+K", "Ctrl+Alt+L"}
	for _, s := range specs {
		q.Push(chordEvent(s))
	}

	events := q.Drain()
	if len(events) != len(specs) {
		t.Fatalf("Drain returned %d events, want %d", len(events), len(specs))
	}
	for i, s := range specs {
		if events[i].Chord != key.MustParseChord(s) {
			t.Errorf("events[%d] = %v, want %v", i, events[i].Chord, s)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Len() after Drain = %d, want 0", q.Len())
	}
}

func TestQueueDefaultCapacity(t *testing.T) {
	if got := NewQueue(0).Cap(); got != DefaultQueueSize {
		t.Errorf("NewQueue(0).Cap() = %d, want %d", got, DefaultQueueSize)
	}
	if got := NewQueue(-3).Cap(); got != DefaultQueueSize {
		t.Errorf("NewQueue(-3).Cap() = %d, want %d", got, DefaultQueueSize)
	}
}
