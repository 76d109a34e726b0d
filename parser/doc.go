// Package parser implements an incremental parser for the
// text/event-stream wire format (Server-Sent Events).
//
// The parser is fed raw byte chunks exactly as they arrive from the
// transport; chunk boundaries carry no meaning. Bytes not yet terminated
// by a newline are buffered across Feed calls, so a single field — or
// even a single colon — may arrive split over any number of chunks and
// still parse identically to a one-shot feed.
//
// Completed events are handed to the emit function supplied at
// construction. The parser performs no I/O and knows nothing about
// connections; it only tracks the SSE field grammar, the persisted
// last-event-id, and the server-suggested retry interval.
package parser
