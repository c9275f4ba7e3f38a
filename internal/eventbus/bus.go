// Package eventbus provides the asynchronous, typed event bus that decouples
// the request layer, the metadata extraction services, and the presentation
// layer. Events are buffered in a pending queue and dispatched in batches by
// a single background goroutine; listeners that need to publish from inside a
// callback stage their events on a deferred queue that is merged after the
// running batch.
//
// Listener callbacks are not isolated from one another: a panicking listener
// tears down the dispatcher goroutine and the remainder of its batch.
// Callbacks are trusted to be well behaved.
package eventbus

import (
	"log/slog"
	"sync"
)

// Bus owns the listener registry, the pending and deferred queues, the wake
// condition, and the dispatcher goroutine. The zero value is not usable;
// construct with New.
type Bus struct {
	pendingMu sync.Mutex
	pending   []Event

	registryMu sync.Mutex
	registry   map[Kind][]Listener

	deferred *DeferredQueue

	// wake guards wakeFlag, stopping, and started. The dispatcher parks on
	// it while idle; Publish, Register, and Stop signal it.
	wake     *sync.Cond
	wakeFlag bool
	stopping bool
	started  bool

	done   chan struct{}
	logger *slog.Logger
}

// New creates a stopped bus. Call Start to spawn the dispatcher.
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		registry: make(map[Kind][]Listener),
		deferred: &DeferredQueue{},
		wake:     sync.NewCond(&sync.Mutex{}),
		logger:   logger,
	}
}

// Publish appends an event to the pending queue and wakes the dispatcher.
// Safe to call from any goroutine except a listener callback; callbacks must
// publish through the deferred handle instead (see Deferred).
func (b *Bus) Publish(ev Event) {
	b.pendingMu.Lock()
	b.pending = append(b.pending, ev)
	b.pendingMu.Unlock()
	b.signalWake()
}

// Register appends a listener to the bucket for kind, creating the bucket if
// this is the first listener for that kind. Registration order determines
// invocation order within the bucket; listeners are never removed.
//
// Register also wakes the dispatcher so that a freshly attached listener
// picks up anything already pending without requiring a new Publish call. A
// listener registered while a batch is in flight participates from the next
// batch onward.
func (b *Bus) Register(kind Kind, fn Listener) {
	b.registryMu.Lock()
	b.registry[kind] = append(b.registry[kind], fn)
	b.registryMu.Unlock()
	b.signalWake()
}

// Deferred returns the deferred-publish handle bound to this bus. Pass it to
// any collaborator whose listener needs to emit events from inside a
// callback.
func (b *Bus) Deferred() *DeferredQueue {
	return b.deferred
}

// Start spawns the dispatcher goroutine. Start must be called at most once
// per bus.
func (b *Bus) Start() {
	b.done = make(chan struct{})
	b.wake.L.Lock()
	b.started = true
	b.wake.L.Unlock()
	go b.run()
}

// Stop asks the dispatcher to exit and blocks until it has. The stop flag is
// only observed at the top of the dispatch loop, so Stop also signals the
// wake condition; otherwise a parked dispatcher would never notice the
// request. A batch already in flight runs to completion first. Stopping a
// bus that was never started is a no-op.
func (b *Bus) Stop() {
	b.wake.L.Lock()
	b.stopping = true
	started := b.started
	b.wake.L.Unlock()
	b.wake.Signal()
	if started {
		<-b.done
	}
}

func (b *Bus) signalWake() {
	b.wake.L.Lock()
	b.wakeFlag = true
	b.wake.L.Unlock()
	b.wake.Signal()
}

// run is the dispatcher loop: park until woken, drain and dispatch one batch,
// merge deferred events, recompute the wake flag, repeat.
func (b *Bus) run() {
	defer close(b.done)
	for {
		b.wake.L.Lock()
		for !b.wakeFlag && !b.stopping {
			b.wake.Wait()
		}
		if b.stopping {
			b.wake.L.Unlock()
			b.logger.Debug("event bus dispatcher stopped")
			return
		}
		b.wake.L.Unlock()

		b.dispatchBatch()

		// Recompute the wake flag from the merged pending queue and signal
		// unconditionally; if the queue is empty the loop simply re-parks.
		// The emptiness check must happen while the wake lock is held: read
		// outside it, a Publish landing between the check and the flag write
		// would have its wakeFlag = true overwritten by the stale "empty"
		// value, parking the dispatcher with its event stranded in the queue.
		// Publish never holds both locks at once, so the nesting is safe.
		b.wake.L.Lock()
		b.pendingMu.Lock()
		b.wakeFlag = len(b.pending) > 0
		b.pendingMu.Unlock()
		b.wake.L.Unlock()
		b.wake.Signal()
	}
}

// dispatchBatch processes one batch: a snapshot of the registry followed by a
// drain of the pending queue. Snapshotting the registry first means listeners
// registered during the batch do not receive events from it. The pending
// queue is cleared at drain time, so an event published concurrently with the
// batch lands in the live queue and is delivered in the next batch, never
// lost.
func (b *Bus) dispatchBatch() {
	b.registryMu.Lock()
	registry := make(map[Kind][]Listener, len(b.registry))
	for kind, listeners := range b.registry {
		registry[kind] = append([]Listener(nil), listeners...)
	}
	b.registryMu.Unlock()

	b.pendingMu.Lock()
	batch := make([]Event, len(b.pending))
	copy(batch, b.pending)
	b.pending = b.pending[:0]
	b.pendingMu.Unlock()

	// All bus-internal locks are released while callbacks run, so producers
	// are never blocked by listener execution time.
	for _, ev := range batch {
		for _, fn := range registry[ev.Kind] {
			fn(ev)
		}
	}

	// Fold events staged during this batch into the pending queue for the
	// next cycle.
	if staged := b.deferred.drain(); len(staged) > 0 {
		b.pendingMu.Lock()
		b.pending = append(b.pending, staged...)
		b.pendingMu.Unlock()
	}

	if len(batch) > 0 {
		b.logger.Debug("dispatched event batch", "events", len(batch))
	}
}
