// Package ssetest provides a scriptable Server-Sent Events server for
// tests.
//
// A Server answers each incoming connection with the next Script in
// order (the last script repeats), writing raw stream chunks with a
// flush after each so chunk boundaries reach the client as scripted.
// Request headers are recorded for assertions such as Last-Event-ID
// replay on reconnect.
package ssetest
