package eventbus

import "sync"

// DeferredQueue is the re-entrancy escape hatch of the bus. A listener
// callback runs on the dispatcher goroutine while the dispatcher owns the
// current batch, so it must not call Bus.Publish; instead it publishes
// through this handle, which only stages the event. Staged events are folded
// into the pending queue once, after the batch that is currently running,
// and are therefore never delivered during the batch that staged them.
//
// The handle is handed out by Bus.Deferred and may be captured by any
// collaborator that needs to publish from inside a callback.
type DeferredQueue struct {
	mu     sync.Mutex
	events []Event
}

// Publish stages an event for the next dispatch batch. It appends to the
// deferred buffer only; the wake flag is recomputed by the dispatcher at the
// end of the running batch, not here.
func (q *DeferredQueue) Publish(ev Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// drain returns the staged events in insertion order and clears the buffer.
func (q *DeferredQueue) drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := make([]Event, len(q.events))
	copy(out, q.events)
	q.events = q.events[:0]
	return out
}
