package dispatch

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kbukum/eventsource/logger"
	"github.com/kbukum/eventsource/parser"
)

// Handler consumes a dispatched event.
type Handler func(parser.Event)

// Subscription is an opaque token identifying one registered listener.
type Subscription struct {
	id        uuid.UUID
	eventType string
}

// EventType returns the event type the subscription was registered for.
func (s Subscription) EventType() string { return s.eventType }

type listenerEntry struct {
	id uuid.UUID
	fn Handler
}

// Dispatcher routes events to the primary callback and typed listeners.
type Dispatcher struct {
	closed atomic.Bool

	// The primary slot and the registry have independent locks; neither
	// is held while consumer code runs.
	cbMu     sync.Mutex
	callback Handler

	lisMu     sync.Mutex
	listeners map[string][]listenerEntry

	log *logger.Logger
}

// New creates an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[string][]listenerEntry),
		log:       logger.WithComponent("dispatch"),
	}
}

// SetCallback installs the primary callback. A nil handler clears the
// slot. Rejected after Close.
func (d *Dispatcher) SetCallback(fn Handler) {
	if d.closed.Load() {
		d.log.Warn("ignoring callback registration on closed dispatcher")
		return
	}

	d.cbMu.Lock()
	d.callback = fn
	d.cbMu.Unlock()
}

// AddListener appends a listener for the given event type and returns a
// token for exact removal. Rejected after Close; the zero Subscription
// is returned.
func (d *Dispatcher) AddListener(eventType string, fn Handler) Subscription {
	if d.closed.Load() {
		d.log.Warn("ignoring listener registration on closed dispatcher",
			logger.Fields(logger.FieldEventType, eventType))
		return Subscription{}
	}

	sub := Subscription{id: uuid.New(), eventType: eventType}

	d.lisMu.Lock()
	d.listeners[eventType] = append(d.listeners[eventType], listenerEntry{id: sub.id, fn: fn})
	d.lisMu.Unlock()

	return sub
}

// Remove removes the listener identified by sub. Returns false when the
// subscription is unknown (already removed, zero token, or cleared by
// Close).
func (d *Dispatcher) Remove(sub Subscription) bool {
	d.lisMu.Lock()
	defer d.lisMu.Unlock()

	entries, ok := d.listeners[sub.eventType]
	if !ok {
		return false
	}

	for i, entry := range entries {
		if entry.id == sub.id {
			d.listeners[sub.eventType] = append(entries[:i], entries[i+1:]...)
			if len(d.listeners[sub.eventType]) == 0 {
				delete(d.listeners, sub.eventType)
			}
			return true
		}
	}
	return false
}

// RemoveLast removes the most recently added listener for the given
// event type. No-op when the type has no listeners. This is the
// compatibility behavior for callers that cannot supply a Subscription:
// handler identity is not comparable, so removal is LIFO per type.
func (d *Dispatcher) RemoveLast(eventType string) {
	d.lisMu.Lock()
	defer d.lisMu.Unlock()

	entries, ok := d.listeners[eventType]
	if !ok || len(entries) == 0 {
		return
	}

	entries = entries[:len(entries)-1]
	if len(entries) == 0 {
		delete(d.listeners, eventType)
		return
	}
	d.listeners[eventType] = entries
}

// Len returns the number of listeners registered for the given type.
func (d *Dispatcher) Len(eventType string) int {
	d.lisMu.Lock()
	defer d.lisMu.Unlock()
	return len(d.listeners[eventType])
}

// Dispatch delivers one event: primary callback first, then the type's
// listeners in insertion order. No-op after Close. Remaining listeners
// are skipped if Close becomes observable mid-iteration.
func (d *Dispatcher) Dispatch(ev parser.Event) {
	if d.closed.Load() {
		return
	}

	d.cbMu.Lock()
	cb := d.callback
	d.cbMu.Unlock()
	if cb != nil {
		d.invoke(cb, ev, "callback")
	}

	d.lisMu.Lock()
	entries := d.listeners[ev.Type]
	snapshot := make([]Handler, len(entries))
	for i, entry := range entries {
		snapshot[i] = entry.fn
	}
	d.lisMu.Unlock()

	for _, fn := range snapshot {
		if d.closed.Load() {
			break
		}
		d.invoke(fn, ev, "listener")
	}
}

// Close marks the dispatcher closed and clears both registries.
// Idempotent.
func (d *Dispatcher) Close() {
	if d.closed.Swap(true) {
		return
	}

	d.cbMu.Lock()
	d.callback = nil
	d.cbMu.Unlock()

	d.lisMu.Lock()
	d.listeners = make(map[string][]listenerEntry)
	d.lisMu.Unlock()
}

// invoke runs one consumer callback behind a panic boundary.
func (d *Dispatcher) invoke(fn Handler, ev parser.Event, kind string) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("panic in event "+kind,
				logger.Fields(logger.FieldEventType, ev.Type, "panic", r))
		}
	}()
	fn(ev)
}
