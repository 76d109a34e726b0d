// Package version provides build version information for the
// eventsource engine.
//
// Version and git commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/eventsource/version.Version=1.0.0"
package version
