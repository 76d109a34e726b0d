package ssetest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// Script describes how the server answers one connection attempt.
type Script struct {
	// Status is the HTTP status to answer with. Defaults to 200.
	// Statuses >= 400 end the response with no stream body.
	Status int
	// Chunks are raw stream fragments, written and flushed one by one.
	Chunks []string
	// Delay is a pause inserted before each chunk, or before an error
	// status is written. Tests use it to register consumers before the
	// first delivery.
	Delay time.Duration
	// Hang keeps the stream open after the last chunk until the client
	// disconnects.
	Hang bool
}

// Server is a scripted SSE endpoint backed by httptest.
type Server struct {
	srv *httptest.Server

	mu      sync.Mutex
	scripts []Script
	next    int
	headers []http.Header
}

// New starts a server that plays the given scripts in order. After the
// last script is consumed, further connections replay it.
func New(scripts ...Script) *Server {
	s := &Server{scripts: scripts}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL returns the server's base URL.
func (s *Server) URL() string {
	return s.srv.URL
}

// Requests returns how many connections the server has received.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.headers)
}

// Header returns the request headers of connection i.
func (s *Server) Header(i int) http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headers[i]
}

// Close tears the server down, disconnecting any hung streams first.
func (s *Server) Close() {
	s.srv.CloseClientConnections()
	s.srv.Close()
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.headers = append(s.headers, r.Header.Clone())
	var sc Script
	switch {
	case len(s.scripts) == 0:
		sc = Script{Hang: true}
	case s.next < len(s.scripts):
		sc = s.scripts[s.next]
		s.next++
	default:
		sc = s.scripts[len(s.scripts)-1]
	}
	s.mu.Unlock()

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	status := sc.Status
	if status == 0 {
		status = http.StatusOK
	}
	if status >= 400 {
		if sc.Delay > 0 {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(sc.Delay):
			}
		}
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(status)
	flusher.Flush()

	for _, chunk := range sc.Chunks {
		if sc.Delay > 0 {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(sc.Delay):
			}
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return
		}
		flusher.Flush()
	}

	if sc.Hang {
		<-r.Context().Done()
	}
}

// Frame builds one SSE frame with the given type and data. Multi-line
// data becomes multiple "data:" fields. An empty type omits the
// "event:" field.
func Frame(eventType, data string) string {
	var b strings.Builder
	if eventType != "" {
		b.WriteString("event: " + eventType + "\n")
	}
	for _, line := range strings.Split(data, "\n") {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

// IDFrame builds an SSE frame carrying an id field.
func IDFrame(id, eventType, data string) string {
	return "id: " + id + "\n" + Frame(eventType, data)
}
