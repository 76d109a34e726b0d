package eventsource

import (
	"time"

	"github.com/kbukum/eventsource/config"
	"github.com/kbukum/eventsource/logger"
	"github.com/kbukum/eventsource/validation"
)

// Config is the file/env-loadable engine configuration.
type Config struct {
	// URL is the stream endpoint.
	URL string `yaml:"url" mapstructure:"url" validate:"required,url"`

	// Headers are merged over the mandatory SSE headers.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// ReconnectDelay is the fixed backoff after a failed attempt.
	ReconnectDelay time.Duration `yaml:"reconnect_delay" mapstructure:"reconnect_delay"`

	// PollInterval bounds cancellation responsiveness.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// MaxRedirects bounds redirect following.
	MaxRedirects int `yaml:"max_redirects" mapstructure:"max_redirects"`

	// Logging configures the engine's structured log output.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = defaultReconnectDelay
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = defaultMaxRedirects
	}
	c.Logging.ApplyDefaults()
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// LoadConfig loads engine configuration under the "eventsource" name:
// config.yml, then EVENTSOURCE_-prefixed environment variables, then a
// .env file.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	if err := config.Load("eventsource", &cfg, opts...); err != nil {
		return Config{}, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewFromConfig builds and starts an engine from loaded configuration.
// Unlike New, the URL is validated here: a config-driven engine should
// fail construction on a bad config rather than retry forever.
func NewFromConfig(cfg Config) (*EventSource, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return New(cfg.URL, &Options{
		Headers:        cfg.Headers,
		ReconnectDelay: cfg.ReconnectDelay,
		PollInterval:   cfg.PollInterval,
		MaxRedirects:   cfg.MaxRedirects,
		Logger:         logger.New(&cfg.Logging),
	})
}
