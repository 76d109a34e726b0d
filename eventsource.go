package eventsource

import (
	"sync/atomic"
	"time"

	"github.com/kbukum/eventsource/dispatch"
	"github.com/kbukum/eventsource/logger"
	"github.com/kbukum/eventsource/parser"
	"github.com/kbukum/eventsource/transport"
)

// Synthetic and default event types surfaced to consumers.
const (
	// TypeOpen marks a connection that started delivering bytes.
	TypeOpen = "open"
	// TypeError carries a decimal HTTP status code as data.
	TypeError = "error"
	// TypeMessage is the default type for untyped SSE events.
	TypeMessage = parser.DefaultEventType
)

// Event is a single reconstructed server-sent event.
type Event = parser.Event

// Handler consumes a dispatched event.
type Handler = dispatch.Handler

// Subscription identifies one registered listener for exact removal.
type Subscription = dispatch.Subscription

// EventSource is the public-facing engine handle. Constructed with New
// or NewFromConfig; must be released with Close.
type EventSource struct {
	url  string
	opts Options

	// Lifecycle flags, shared between the caller and the connection
	// loop goroutine.
	running       atomic.Bool
	closed        atomic.Bool
	shouldRetry   atomic.Bool
	openEventSent atomic.Bool

	parser     *parser.Parser
	dispatcher *dispatch.Dispatcher
	streamer   transport.Streamer

	reconnectDelay time.Duration
	pollInterval   time.Duration

	// done is closed when the connection loop goroutine exits.
	done chan struct{}
	log  *logger.Logger
}

// New creates an engine for the given stream URL and starts its
// connection loop immediately. A malformed or unreachable URL is not a
// construction error; it surfaces as connection failures that are
// logged and retried.
func New(url string, opts *Options) (*EventSource, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	o.ApplyDefaults()
	if err := o.Validate(); err != nil {
		return nil, err
	}

	es := &EventSource{
		url:            url,
		opts:           o,
		dispatcher:     dispatch.New(),
		streamer:       o.Streamer,
		reconnectDelay: o.ReconnectDelay,
		pollInterval:   o.PollInterval,
		done:           make(chan struct{}),
		log:            o.Logger.WithComponent("eventsource"),
	}
	es.parser = parser.New(es.dispatchEvent)
	es.running.Store(true)
	es.shouldRetry.Store(true)

	go es.run()

	return es, nil
}

// SetEventCallback installs the primary callback, which receives every
// dispatched event regardless of type. A nil handler clears the slot.
func (es *EventSource) SetEventCallback(fn Handler) {
	es.dispatcher.SetCallback(fn)
}

// AddEventListener registers a listener for the given event type and
// returns a Subscription for exact removal. Registration on a closed
// engine is silently rejected (logged) and returns the zero
// Subscription.
func (es *EventSource) AddEventListener(eventType string, fn Handler) Subscription {
	return es.dispatcher.AddListener(eventType, fn)
}

// RemoveEventListener removes the most recently added listener for the
// given event type. Handler values cannot be compared for identity once
// they cross an API boundary, so removal is LIFO per type; callers that
// need exact removal should keep the Subscription from AddEventListener
// and use Unsubscribe.
func (es *EventSource) RemoveEventListener(eventType string) {
	es.dispatcher.RemoveLast(eventType)
}

// Unsubscribe removes the exact listener identified by sub. Returns
// false when the subscription is unknown.
func (es *EventSource) Unsubscribe(sub Subscription) bool {
	return es.dispatcher.Remove(sub)
}

// LastEventID returns the persisted last-event-id.
func (es *EventSource) LastEventID() string {
	return es.parser.LastEventID()
}

// Close stops the engine. The first call tears everything down: it
// clears both callback registries, waits for the connection loop
// goroutine to observe cancellation and exit (bounded by the poll
// interval), then clears the parse buffer. Subsequent calls return
// immediately. Once Close returns, no further callback can fire.
//
// Close must not be called from inside a consumer callback; it would
// wait on the goroutine running that callback.
func (es *EventSource) Close() {
	if es.closed.Swap(true) {
		es.log.Debug("already closed")
		return
	}

	es.log.Debug("closing")
	es.running.Store(false)
	es.shouldRetry.Store(false)

	es.dispatcher.Close()

	<-es.done

	es.parser.Reset()
	es.log.Debug("closed")
}

// dispatchEvent is the single funnel from the parser and the connection
// loop into the dispatcher.
func (es *EventSource) dispatchEvent(ev Event) {
	if es.closed.Load() {
		return
	}
	es.dispatcher.Dispatch(ev)
}
