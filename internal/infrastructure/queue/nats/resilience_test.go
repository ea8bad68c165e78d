package nats

import (
	"context"
	"errors"
	"testing"

	"github.com/nats-io/nats.go"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
)

func TestClassifyNATSError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
		record    bool
	}{
		{"nil", nil, false, false},
		{"context canceled", context.Canceled, false, false},
		{"no servers", nats.ErrNoServers, true, true},
		{"timeout", nats.ErrTimeout, true, true},
		{"connection closed", nats.ErrConnectionClosed, true, true},
		{"other", errors.New("bad subject"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class := classifyNATSError(tt.err)
			if class.Retryable != tt.retryable || class.RecordFailure != tt.record {
				t.Fatalf("classifyNATSError(%v) = %+v", tt.err, class)
			}
		})
	}
}

func TestWrapTemporaryIfNeeded(t *testing.T) {
	wrapped := wrapTemporaryIfNeeded(nats.ErrTimeout)
	if !domain.IsKind(wrapped, domain.ErrTemporary) {
		t.Fatalf("expected temporary kind, got %v", wrapped)
	}

	permanent := errors.New("bad subject")
	if got := wrapTemporaryIfNeeded(permanent); got != permanent {
		t.Fatalf("expected permanent error unchanged, got %v", got)
	}

	if wrapTemporaryIfNeeded(nil) != nil {
		t.Fatal("expected nil passthrough")
	}
}
