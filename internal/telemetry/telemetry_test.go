package telemetry

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestSessionIDIsUUID(t *testing.T) {
	if _, err := uuid.Parse(SessionID()); err != nil {
		t.Errorf("SessionID() = %q is not a UUID: %v", SessionID(), err)
	}
	if SessionID() != SessionID() {
		t.Error("SessionID() should be stable for the process")
	}
}

func TestTracersProduceSpans(t *testing.T) {
	ctx := context.Background()

	_, span := NoopTracer().Start(ctx, "noop")
	if span.SpanContext().IsValid() {
		t.Error("no-op tracer should not produce a valid span context")
	}
	span.End()

	_, span = Tracer("test").Start(ctx, "global")
	span.End()
}
