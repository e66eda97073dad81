package hotkey

import "sync/atomic"

// DefaultQueueSize is the default event buffer capacity.
const DefaultQueueSize = 32

// Queue is a bounded single-producer/single-consumer hand-off between the
// hook callback context and the processing loop. The producer never
// blocks: when the buffer is full the oldest event is dropped, since a
// lost chord only costs the user a re-press while a stalled hook callback
// risks the OS force-unhooking the listener.
type Queue struct {
	ch      chan Event
	dropped atomic.Uint64
}

// NewQueue creates a queue with the given capacity.
// Non-positive capacities fall back to DefaultQueueSize.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueSize
	}
	return &Queue{ch: make(chan Event, capacity)}
}

// Push enqueues an event without ever blocking. When the queue is full
// the oldest pending event is discarded to make room.
func (q *Queue) Push(ev Event) {
	for {
		select {
		case q.ch <- ev:
			return
		default:
		}
		// Full: evict the oldest and retry. The single consumer may have
		// raced us to it, in which case the retry simply succeeds.
		select {
		case <-q.ch:
			q.dropped.Add(1)
		default:
		}
	}
}

// TryPop removes the oldest event. Returns false when the queue is empty.
func (q *Queue) TryPop() (Event, bool) {
	select {
	case ev := <-q.ch:
		return ev, true
	default:
		return Event{}, false
	}
}

// Drain removes all pending events in arrival order.
func (q *Queue) Drain() []Event {
	var events []Event
	for {
		ev, ok := q.TryPop()
		if !ok {
			return events
		}
		events = append(events, ev)
	}
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int {
	return cap(q.ch)
}

// Dropped returns the number of events discarded because the queue was
// full.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
