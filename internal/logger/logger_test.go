package logger

import (
	"context"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestNew(t *testing.T) {
	for _, env := range []string{"production", "development", ""} {
		if l := New(env); l == nil {
			t.Fatalf("New(%q): expected logger to be non-nil", env)
		}
	}
}

type mockSpan struct {
	trace.Span
	sc trace.SpanContext
}

func (s mockSpan) SpanContext() trace.SpanContext {
	return s.sc
}

func TestWithTraceContext(t *testing.T) {
	t.Run("valid span", func(t *testing.T) {
		traceID, _ := trace.TraceIDFromHex("a0b1c2d3e4f506172839a0b1c2d3e4f5")
		spanID, _ := trace.SpanIDFromHex("a0b1c2d3e4f50617")
		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  spanID,
		})
		ctx := trace.ContextWithSpan(context.Background(), mockSpan{sc: sc})

		attr := WithTraceContext(ctx)
		if attr.Key != "trace" {
			t.Errorf("expected key 'trace', got %s", attr.Key)
		}

		group := attr.Value.Group()
		if len(group) != 2 {
			t.Fatalf("expected 2 attributes in group, got %d", len(group))
		}

		got := map[string]string{}
		for _, a := range group {
			got[string(a.Key)] = a.Value.String()
		}
		if got["trace_id"] != "a0b1c2d3e4f506172839a0b1c2d3e4f5" {
			t.Errorf("trace_id: got %q", got["trace_id"])
		}
		if got["span_id"] != "a0b1c2d3e4f50617" {
			t.Errorf("span_id: got %q", got["span_id"])
		}
	})

	t.Run("no span in context", func(t *testing.T) {
		attr := WithTraceContext(context.Background())
		if !attr.Equal(slog.Attr{}) {
			t.Errorf("expected empty attribute without a span, got %+v", attr)
		}
	})
}
