package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kbukum/eventsource/logger"
)

// Request describes one streaming connection attempt.
type Request struct {
	// URL is the stream endpoint.
	URL string
	// Headers are caller-supplied headers merged over the mandatory
	// SSE headers.
	Headers map[string]string
	// Auth configures request authentication.
	Auth *AuthConfig
}

// ChunkFunc receives body bytes as they arrive.
type ChunkFunc func([]byte)

// AliveFunc reports whether the transfer should continue. It is checked
// before every chunk delivery and on a short timer while reads block.
type AliveFunc func() bool

// Streamer is the transport interface the connection loop consumes.
type Streamer interface {
	// Stream issues one streaming GET and delivers body chunks until
	// the stream ends, the abort hook trips, or the transfer fails.
	// Returns nil on clean end-of-stream, ErrAborted on an abort-hook
	// stop, and a classified *Error otherwise.
	Stream(ctx context.Context, req Request, onChunk ChunkFunc, alive AliveFunc) error
}

var errTooManyRedirects = errors.New("too many redirects")

// Client is the net/http-backed Streamer.
type Client struct {
	httpClient *http.Client
	config     Config
	log        *logger.Logger
}

// New creates a streaming client with the given configuration.
func New(cfg Config) *Client {
	cfg.ApplyDefaults()

	transport := http.DefaultTransport.(*http.Transport).Clone()

	return &Client{
		// No global timeout: the stream is long-lived by design and
		// cancellation comes through the context.
		httpClient: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= cfg.MaxRedirects {
					return errTooManyRedirects
				}
				return nil
			},
		},
		config: cfg,
		log:    logger.WithComponent("transport"),
	}
}

// Stream implements Streamer.
func (c *Client) Stream(ctx context.Context, req Request, onChunk ChunkFunc, alive AliveFunc) error {
	if alive == nil {
		alive = func() bool { return true }
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return NewConnectionError(err)
	}

	// Poll the abort hook while network calls block; cancelling the
	// context unblocks a blocked connect or read.
	go func() {
		ticker := time.NewTicker(c.config.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !alive() {
					cancel()
					return
				}
			}
		}
	}()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if !alive() {
			return ErrAborted
		}
		if errors.Is(err, errTooManyRedirects) {
			return &Error{Code: ErrCodeRedirect, Message: fmt.Sprintf("stopped after %d redirects", c.config.MaxRedirects), Err: err}
		}
		return NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return NewStatusError(resp.StatusCode)
	}

	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if !alive() {
				return ErrAborted
			}
			onChunk(buf[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if !alive() {
				return ErrAborted
			}
			return NewConnectionError(err)
		}
	}
}

// buildRequest constructs the streaming GET with merged headers.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, err
	}

	// Mandatory SSE headers first; caller headers may override.
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Cache-Control", "no-cache")
	httpReq.Header.Set("Connection", "keep-alive")
	httpReq.Header.Set("User-Agent", c.config.UserAgent)

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	applyAuth(httpReq, req.Auth)

	return httpReq, nil
}
