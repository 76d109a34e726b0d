package transport

import (
	"fmt"
	"time"

	"github.com/kbukum/eventsource/version"
)

const (
	defaultMaxRedirects = 5
	defaultPollInterval = 100 * time.Millisecond
)

// Config configures the streaming client.
type Config struct {
	// MaxRedirects bounds redirect following. Defaults to 5.
	MaxRedirects int `yaml:"max_redirects" mapstructure:"max_redirects"`

	// UserAgent overrides the default User-Agent header.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// PollInterval is how often the abort hook is checked while a
	// network call blocks. Defaults to 100ms.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = defaultMaxRedirects
	}
	if c.UserAgent == "" {
		c.UserAgent = "eventsource/" + version.Version
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxRedirects <= 0 {
		return fmt.Errorf("transport: max_redirects must be positive")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("transport: poll_interval must be positive")
	}
	return nil
}
