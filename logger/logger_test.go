package logger

import (
	"testing"
)

func TestNew_InvalidLevelFallsBack(t *testing.T) {
	cfg := &Config{Level: "bogus", Format: "json", Output: "stderr"}
	l := New(cfg)
	if l == nil {
		t.Fatal("expected logger despite invalid level")
	}
	// Must not panic.
	l.Debug("suppressed or not, still safe")
}

func TestWithComponent(t *testing.T) {
	l := Nop().WithComponent("parser")
	l.Info("tagged")
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two")
	if len(m) != 2 || m["a"] != 1 || m["b"] != "two" {
		t.Errorf("got %v, want {a:1 b:two}", m)
	}

	// Odd trailing values and non-string keys are dropped.
	m = Fields("a", 1, 2, "ignored", "dangling")
	if len(m) != 1 || m["a"] != 1 {
		t.Errorf("got %v, want {a:1}", m)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	cfg.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid level")
	}

	cfg.Level = "info"
	cfg.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid format")
	}
}
