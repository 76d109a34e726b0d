package parser

import (
	"reflect"
	"testing"
	"time"
)

// collector accumulates emitted events.
type collector struct {
	events []Event
}

func (c *collector) emit(ev Event) {
	c.events = append(c.events, ev)
}

func newParser() (*Parser, *collector) {
	c := &collector{}
	return New(c.emit), c
}

func TestFeed_SingleEvent(t *testing.T) {
	p, c := newParser()
	p.Feed([]byte("data: hello world\n\n"))

	if len(c.events) != 1 {
		t.Fatalf("got %d events, want 1", len(c.events))
	}
	ev := c.events[0]
	if ev.Type != DefaultEventType {
		t.Errorf("got type %q, want %q", ev.Type, DefaultEventType)
	}
	if ev.Data != "hello world" {
		t.Errorf("got data %q, want %q", ev.Data, "hello world")
	}
}

func TestFeed_MultiLineData(t *testing.T) {
	p, c := newParser()
	p.Feed([]byte("data: a\ndata: b\n\n"))

	if len(c.events) != 1 {
		t.Fatalf("got %d events, want 1", len(c.events))
	}
	if c.events[0].Data != "a\nb" {
		t.Errorf("got data %q, want %q", c.events[0].Data, "a\nb")
	}
	if c.events[0].Type != "message" {
		t.Errorf("got type %q, want %q", c.events[0].Type, "message")
	}
}

func TestFeed_TypedEvents(t *testing.T) {
	p, c := newParser()
	p.Feed([]byte("event: ping\ndata: 1\n\nevent: ping\ndata: 2\n\n"))

	if len(c.events) != 2 {
		t.Fatalf("got %d events, want 2", len(c.events))
	}
	for i, want := range []string{"1", "2"} {
		if c.events[i].Type != "ping" {
			t.Errorf("event %d: got type %q, want %q", i, c.events[i].Type, "ping")
		}
		if c.events[i].Data != want {
			t.Errorf("event %d: got data %q, want %q", i, c.events[i].Data, want)
		}
	}
}

func TestFeed_TypeResetsBetweenEvents(t *testing.T) {
	p, c := newParser()
	p.Feed([]byte("event: ping\ndata: 1\n\ndata: 2\n\n"))

	if len(c.events) != 2 {
		t.Fatalf("got %d events, want 2", len(c.events))
	}
	if c.events[1].Type != DefaultEventType {
		t.Errorf("got type %q, want %q after typed event", c.events[1].Type, DefaultEventType)
	}
}

func TestFeed_BlankLineWithoutDataEmitsNothing(t *testing.T) {
	p, c := newParser()
	p.Feed([]byte("\n\nevent: ping\n\n: comment\n\n"))

	if len(c.events) != 0 {
		t.Fatalf("got %d events, want 0", len(c.events))
	}
}

func TestFeed_ChunkSplitIndependence(t *testing.T) {
	stream := "id: 7\nevent: tick\ndata: one\ndata: two\n\ndata: three\r\n\r\nretry: 2500\n: keepalive\ndata: four\n\n"

	whole, wc := newParser()
	whole.Feed([]byte(stream))
	want := wc.events

	for split := 1; split < len(stream); split++ {
		p, c := newParser()
		p.Feed([]byte(stream[:split]))
		p.Feed([]byte(stream[split:]))

		if !reflect.DeepEqual(c.events, want) {
			t.Fatalf("split at %d: got %+v, want %+v", split, c.events, want)
		}
	}
}

func TestFeed_FieldSplitAcrossManyChunks(t *testing.T) {
	p, c := newParser()
	for _, b := range []byte("data: slow\n\n") {
		p.Feed([]byte{b})
	}

	if len(c.events) != 1 || c.events[0].Data != "slow" {
		t.Fatalf("got %+v, want one event with data %q", c.events, "slow")
	}
}

func TestFeed_CarriageReturnStripped(t *testing.T) {
	p, c := newParser()
	p.Feed([]byte("data: crlf\r\n\r\n"))

	if len(c.events) != 1 || c.events[0].Data != "crlf" {
		t.Fatalf("got %+v, want one event with data %q", c.events, "crlf")
	}
}

func TestFeed_NoLeadingSpaceRequired(t *testing.T) {
	p, c := newParser()
	p.Feed([]byte("data:tight\n\n"))

	if len(c.events) != 1 || c.events[0].Data != "tight" {
		t.Fatalf("got %+v, want one event with data %q", c.events, "tight")
	}
}

func TestFeed_LinesWithoutColonIgnored(t *testing.T) {
	p, c := newParser()
	p.Feed([]byte("garbage\ndata: kept\nmore garbage\n\n"))

	if len(c.events) != 1 || c.events[0].Data != "kept" {
		t.Fatalf("got %+v, want one event with data %q", c.events, "kept")
	}
}

func TestLastEventID_PersistsAcrossEvents(t *testing.T) {
	p, c := newParser()
	p.Feed([]byte("id: 42\ndata: a\n\ndata: b\n\n"))

	if len(c.events) != 2 {
		t.Fatalf("got %d events, want 2", len(c.events))
	}
	if c.events[0].ID != "42" || c.events[1].ID != "42" {
		t.Errorf("got ids %q, %q, want both %q", c.events[0].ID, c.events[1].ID, "42")
	}
	if got := p.LastEventID(); got != "42" {
		t.Errorf("LastEventID() = %q, want %q", got, "42")
	}
}

func TestLastEventID_EmptyValueClears(t *testing.T) {
	p, c := newParser()
	p.Feed([]byte("id: 42\ndata: a\n\nid:\ndata: b\n\n"))

	if len(c.events) != 2 {
		t.Fatalf("got %d events, want 2", len(c.events))
	}
	if c.events[1].ID != "" {
		t.Errorf("got id %q, want empty after clearing id field", c.events[1].ID)
	}
	if got := p.LastEventID(); got != "" {
		t.Errorf("LastEventID() = %q, want empty", got)
	}
}

func TestRetryInterval_Clamping(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"50", MinRetryInterval},
		{"999999", MaxRetryInterval},
		{"2500", 2500 * time.Millisecond},
	}

	for _, tt := range tests {
		p, _ := newParser()
		p.Feed([]byte("retry: " + tt.value + "\n"))
		if got := p.RetryInterval(); got != tt.want {
			t.Errorf("retry %s: got %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestRetryInterval_MalformedIgnored(t *testing.T) {
	p, c := newParser()
	p.Feed([]byte("retry: abc\ndata: still fine\n\n"))

	if got := p.RetryInterval(); got != 0 {
		t.Errorf("RetryInterval() = %v, want 0", got)
	}
	if len(c.events) != 1 {
		t.Fatalf("got %d events, want 1; malformed retry must not break the parse", len(c.events))
	}
}

func TestReset_DropsPartialState(t *testing.T) {
	p, c := newParser()
	p.Feed([]byte("event: ping\ndata: half"))
	p.Reset()
	p.Feed([]byte("\n\n"))

	if len(c.events) != 0 {
		t.Fatalf("got %d events after reset, want 0", len(c.events))
	}
}
