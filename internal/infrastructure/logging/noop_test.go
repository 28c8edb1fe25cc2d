package logging

import (
	"context"
	"testing"
)

func TestNoOpLoggerDiscardsEntries(t *testing.T) {
	logger := NewNoOpLogger()
	ctx := context.Background()
	logger.Debug(ctx, "debug")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")

	child := logger.With("component", "test")
	child.Info(ctx, "still discarded")
}

func TestNoOpMetricsAcceptsAnySignal(t *testing.T) {
	metrics := NewNoOpMetrics()
	ctx := context.Background()
	metrics.IncCounter(ctx, "caseflow_transitions_total", map[string]string{"chart": "sale"})
	metrics.SetGauge(ctx, "caseflow_active_executions", 1, nil)
	metrics.ObserveHistogram(ctx, "caseflow_action_duration_seconds", 0.01, nil)
}

func TestNoOpTracerStartsAndEndsSpans(t *testing.T) {
	tracer := NewNoOpTracer()
	ctx, span := tracer.StartSpan(context.Background(), "execution.transition")
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	span.SetAttribute("chart", "sale")
	span.SetStatus("ok", "")
	span.End()

	if err := tracer.Inject(ctx, map[string]string{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tracer.Extract(ctx, map[string]string{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
