package validation

import (
	"strings"
	"testing"
)

type sample struct {
	StreamURL string `mapstructure:"stream_url" validate:"required,url"`
	MaxRetry  int    `mapstructure:"max_retry" validate:"min=1"`
}

func TestValidate_Valid(t *testing.T) {
	s := sample{StreamURL: "https://example.com/stream", MaxRetry: 3}
	if err := Validate(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	err := Validate(sample{})
	if err == nil {
		t.Fatal("expected error for empty struct")
	}

	msg := err.Error()
	if !strings.Contains(msg, "stream_url is required") {
		t.Errorf("error %q missing stream_url failure", msg)
	}
	if !strings.Contains(msg, "max_retry must be at least 1") {
		t.Errorf("error %q missing max_retry failure", msg)
	}
}

func TestFields_PerFieldErrors(t *testing.T) {
	fields := Fields(sample{StreamURL: "not a url", MaxRetry: 1})
	if len(fields) != 1 {
		t.Fatalf("got %d field errors, want 1", len(fields))
	}
	if fields[0].Field != "stream_url" {
		t.Errorf("field = %q, want stream_url", fields[0].Field)
	}
	if fields[0].Message != "must be a valid URL" {
		t.Errorf("message = %q, want URL message", fields[0].Message)
	}
}

func TestFields_NilWhenValid(t *testing.T) {
	if fields := Fields(sample{StreamURL: "https://ok.example.com", MaxRetry: 2}); fields != nil {
		t.Errorf("got %v, want nil", fields)
	}
}
