// Package transport performs the streaming HTTP side of the engine.
//
// A Client issues one long-lived GET per connection attempt, merges the
// mandatory SSE headers with caller-supplied headers and auth, follows a
// bounded number of redirects, and delivers body bytes to a chunk
// callback as they arrive. An abort-check hook is polled before every
// chunk delivery and on a short timer while a read blocks, so an
// in-flight transfer stops promptly when the engine is closing; that
// stop is reported as ErrAborted, distinct from genuine failures.
//
// Failures are classified into typed errors carrying the HTTP status
// code when one was obtained, which the connection loop surfaces to
// consumers as a synthetic "error" event.
package transport
