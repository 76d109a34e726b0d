// Package logger provides structured logging for the eventsource engine
// using zerolog.
//
// Every engine subsystem (parser, dispatch, transport, connection loop)
// logs through a component-scoped logger so a single stream of lines can
// be filtered per concern. Output format (JSON or console), level, and
// destination are configurable; defaults come from the environment.
//
// # Usage
//
//	log := logger.WithComponent("transport")
//	log.Warn("connection failed", logger.Fields("url", url))
package logger
