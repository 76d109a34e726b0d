package eventsource

import (
	"context"
	"strconv"
	"time"

	"github.com/kbukum/eventsource/logger"
	"github.com/kbukum/eventsource/transport"
)

// run is the connection loop. It owns the engine's only background
// goroutine: attempt, and on failure back off before the next attempt,
// until the lifecycle flags stop it.
func (es *EventSource) run() {
	defer close(es.done)

	for es.alive() && es.shouldRetry.Load() {
		es.openEventSent.Store(false)

		err := es.attempt()
		if err == nil || transport.IsAborted(err) {
			// Clean end of stream, or the engine is stopping; the
			// loop condition decides which.
			continue
		}

		if status := transport.StatusCode(err); status > 0 {
			es.dispatchEvent(Event{
				ID:   es.parser.LastEventID(),
				Type: TypeError,
				Data: strconv.Itoa(status),
			})
		}

		es.log.Warn("connection failed, reconnecting",
			logger.Fields(logger.FieldURL, es.url, "delay", es.reconnectDelay.String(), logger.FieldError, err.Error()))
		es.waitBackoff()
	}

	es.log.Debug("connection loop terminated")
}

// attempt performs one streaming request, replaying the persisted
// last-event-id when present.
func (es *EventSource) attempt() error {
	headers := make(map[string]string, len(es.opts.Headers)+1)
	for k, v := range es.opts.Headers {
		headers[k] = v
	}
	if id := es.parser.LastEventID(); id != "" {
		headers["Last-Event-ID"] = id
	}

	return es.streamer.Stream(context.Background(), transport.Request{
		URL:     es.url,
		Headers: headers,
		Auth:    es.opts.Auth,
	}, es.onChunk, es.alive)
}

// onChunk receives body bytes from the transport. The first chunk of an
// attempt emits the synthetic open event before any parsing; the CAS
// guards against a double send if chunk deliveries race.
func (es *EventSource) onChunk(chunk []byte) {
	if !es.alive() {
		return
	}

	if es.openEventSent.CompareAndSwap(false, true) {
		if !es.closed.Load() {
			es.dispatchEvent(Event{ID: es.parser.LastEventID(), Type: TypeOpen})
		}
	}

	if !es.closed.Load() {
		es.parser.Feed(chunk)
	}
}

// alive is the abort hook handed to the transport.
func (es *EventSource) alive() bool {
	return es.running.Load() && !es.closed.Load()
}

// waitBackoff sleeps through the reconnect window in poll-interval
// steps so cancellation is observed promptly.
func (es *EventSource) waitBackoff() {
	deadline := time.Now().Add(es.reconnectDelay)
	for time.Now().Before(deadline) && es.alive() && es.shouldRetry.Load() {
		time.Sleep(es.pollInterval)
	}
}
