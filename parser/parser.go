package parser

import (
	"bytes"
	"strconv"
	"sync"
	"time"

	"github.com/kbukum/eventsource/logger"
)

// DefaultEventType is used when a stream omits the "event:" field.
const DefaultEventType = "message"

// Retry interval bounds applied to the "retry:" field.
const (
	MinRetryInterval = 100 * time.Millisecond
	MaxRetryInterval = 60 * time.Second
)

// Event is a single reconstructed server-sent event.
type Event struct {
	// ID is the persisted last-event-id at the time the event completed.
	ID string
	// Type is the event type; DefaultEventType when the stream omits it.
	Type string
	// Data is all "data:" values for the event joined with "\n".
	Data string
}

// EmitFunc receives each completed event.
type EmitFunc func(Event)

// Parser accumulates stream chunks and emits completed events.
// Safe for use from the transport callback and a closing caller
// concurrently; all mutable state is guarded by a single mutex.
type Parser struct {
	mu sync.Mutex

	buf         []byte
	pendingType string
	pendingData []byte
	lastEventID string
	retry       time.Duration

	emit EmitFunc
	log  *logger.Logger
}

// New creates a parser that calls emit for each completed event.
func New(emit EmitFunc) *Parser {
	return &Parser{
		emit: emit,
		log:  logger.WithComponent("parser"),
	}
}

// Feed appends a raw chunk and processes every complete line in the
// buffer. The unterminated tail is retained for the next call.
// Completed events are emitted after the parser lock is released, so a
// consumer callback may safely call back into the parser.
func (p *Parser) Feed(chunk []byte) {
	if len(chunk) == 0 {
		return
	}

	p.mu.Lock()

	p.buf = append(p.buf, chunk...)

	var completed []Event
	start := 0
	for {
		idx := bytes.IndexByte(p.buf[start:], '\n')
		if idx < 0 {
			break
		}
		line := p.buf[start : start+idx]
		start += idx + 1

		// Lines may be terminated \r\n.
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}

		if ev, ok := p.processLine(line); ok {
			completed = append(completed, ev)
		}
	}

	// Discard the consumed prefix, keep the unterminated tail.
	p.buf = append(p.buf[:0], p.buf[start:]...)

	p.mu.Unlock()

	if p.emit != nil {
		for _, ev := range completed {
			p.emit(ev)
		}
	}
}

// processLine interprets one complete line and reports a completed
// event when the line finalizes one. Caller holds p.mu.
func (p *Parser) processLine(line []byte) (Event, bool) {
	if len(line) == 0 {
		return p.finalize()
	}

	colon := bytes.IndexByte(line, ':')
	if colon < 0 {
		// Comments and unrecognized lines are ignored.
		return Event{}, false
	}

	field := string(line[:colon])
	value := line[colon+1:]
	if len(value) > 0 && value[0] == ' ' {
		value = value[1:]
	}

	switch field {
	case "data":
		if len(p.pendingData) > 0 {
			p.pendingData = append(p.pendingData, '\n')
		}
		p.pendingData = append(p.pendingData, value...)
	case "event":
		p.pendingType = string(value)
	case "id":
		// An empty value clears the persisted id.
		p.lastEventID = string(value)
	case "retry":
		p.setRetry(string(value))
	}
	return Event{}, false
}

// finalize builds the pending event on a blank line. Blank lines with no
// accumulated data finalize nothing. Caller holds p.mu.
func (p *Parser) finalize() (Event, bool) {
	if len(p.pendingData) == 0 {
		return Event{}, false
	}

	eventType := p.pendingType
	if eventType == "" {
		eventType = DefaultEventType
	}

	ev := Event{
		ID:   p.lastEventID,
		Type: eventType,
		Data: string(p.pendingData),
	}

	p.pendingType = ""
	p.pendingData = p.pendingData[:0]

	return ev, true
}

// setRetry parses and clamps a "retry:" value. Malformed values are
// logged and ignored. Caller holds p.mu.
func (p *Parser) setRetry(value string) {
	ms, err := strconv.Atoi(value)
	if err != nil {
		p.log.Warn("invalid retry value", logger.Fields("value", value))
		return
	}

	d := time.Duration(ms) * time.Millisecond
	if d < MinRetryInterval {
		d = MinRetryInterval
	}
	if d > MaxRetryInterval {
		d = MaxRetryInterval
	}
	p.retry = d
}

// LastEventID returns the persisted last-event-id.
func (p *Parser) LastEventID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastEventID
}

// RetryInterval returns the clamped server-suggested reconnect interval,
// or zero when the stream has not sent one. The connection loop does not
// currently consume this value; it keeps its fixed reconnect window.
func (p *Parser) RetryInterval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.retry
}

// Reset clears the buffer and both pending fields. Called on close so
// a half-received event cannot survive the engine.
func (p *Parser) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buf = nil
	p.pendingType = ""
	p.pendingData = nil
}
