package eventsource

import (
	"fmt"
	"time"

	"github.com/kbukum/eventsource/logger"
	"github.com/kbukum/eventsource/transport"
)

const (
	defaultReconnectDelay = 3 * time.Second
	defaultPollInterval   = 100 * time.Millisecond
	defaultMaxRedirects   = 5
)

// Options configures an EventSource.
type Options struct {
	// Headers are merged over the mandatory SSE headers on every
	// connection attempt.
	Headers map[string]string

	// Auth configures request authentication.
	Auth *transport.AuthConfig

	// ReconnectDelay is the fixed backoff after a failed attempt.
	// Defaults to 3s.
	ReconnectDelay time.Duration

	// PollInterval bounds how quickly the engine observes cancellation
	// during backoff and mid-transfer. Defaults to 100ms.
	PollInterval time.Duration

	// MaxRedirects bounds redirect following. Defaults to 5.
	MaxRedirects int

	// Logger overrides the global logger.
	Logger *logger.Logger

	// Streamer overrides the HTTP transport. Tests use this seam.
	Streamer transport.Streamer
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (o *Options) ApplyDefaults() {
	if o.ReconnectDelay <= 0 {
		o.ReconnectDelay = defaultReconnectDelay
	}
	if o.PollInterval <= 0 {
		o.PollInterval = defaultPollInterval
	}
	if o.MaxRedirects <= 0 {
		o.MaxRedirects = defaultMaxRedirects
	}
	if o.Logger == nil {
		o.Logger = logger.GetGlobalLogger()
	}
	if o.Streamer == nil {
		o.Streamer = transport.New(transport.Config{
			MaxRedirects: o.MaxRedirects,
			PollInterval: o.PollInterval,
		})
	}
}

// Validate checks that the options are valid.
func (o *Options) Validate() error {
	if o.PollInterval > o.ReconnectDelay {
		return fmt.Errorf("eventsource: poll_interval %v exceeds reconnect_delay %v", o.PollInterval, o.ReconnectDelay)
	}
	return nil
}
