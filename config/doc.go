// Package config loads engine configuration from YAML files and the
// environment.
//
// Resolution order: an explicit config file (or ./config.yml when one
// exists), then environment variables, then an explicit .env file (or
// ./.env when one exists). Environment variables bind to nested keys by
// underscore-to-dot conversion, so EVENTSOURCE_RECONNECT_DELAY reaches
// eventsource.reconnect_delay.
package config
