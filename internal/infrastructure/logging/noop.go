package logging

import (
	"context"

	"github.com/caseflow/caseflow/internal/ports"
)

// NoOpLogger discards all log entries.
type NoOpLogger struct{}

// Debug implements ports.Logger.
func (n *NoOpLogger) Debug(context.Context, string, ...interface{}) {}

// Info implements ports.Logger.
func (n *NoOpLogger) Info(context.Context, string, ...interface{}) {}

// Warn implements ports.Logger.
func (n *NoOpLogger) Warn(context.Context, string, ...interface{}) {}

// Error implements ports.Logger.
func (n *NoOpLogger) Error(context.Context, string, ...interface{}) {}

// With implements ports.Logger.
func (n *NoOpLogger) With(...interface{}) ports.Logger { return n }

// NewNoOpLogger returns a ports.Logger that discards all log entries.
func NewNoOpLogger() ports.Logger {
	return &NoOpLogger{}
}

// NoOpMetrics discards every recorded signal; it satisfies
// ports.MetricsCollector for hosts and tests that have no collector wired.
type NoOpMetrics struct{}

// IncCounter implements ports.MetricsCollector.
func (NoOpMetrics) IncCounter(context.Context, string, map[string]string) {}

// SetGauge implements ports.MetricsCollector.
func (NoOpMetrics) SetGauge(context.Context, string, float64, map[string]string) {}

// ObserveHistogram implements ports.MetricsCollector.
func (NoOpMetrics) ObserveHistogram(context.Context, string, float64, map[string]string) {}

// NewNoOpMetrics returns a ports.MetricsCollector that discards every signal.
func NewNoOpMetrics() ports.MetricsCollector { return NoOpMetrics{} }

// noOpSpan is the inert ports.Span returned by NoOpTracer.
type noOpSpan struct{}

func (noOpSpan) SetAttribute(string, interface{})   {}
func (noOpSpan) SetStatus(ports.SpanStatus, string) {}
func (noOpSpan) End()                               {}

// NoOpTracer starts spans that record nothing and propagate no context,
// satisfying ports.Tracer for hosts with no tracing backend wired.
type NoOpTracer struct{}

// StartSpan implements ports.Tracer.
func (NoOpTracer) StartSpan(ctx context.Context, _ string, _ ...interface{}) (context.Context, ports.Span) {
	return ctx, noOpSpan{}
}

// Inject implements ports.Tracer.
func (NoOpTracer) Inject(context.Context, interface{}) error { return nil }

// Extract implements ports.Tracer.
func (NoOpTracer) Extract(ctx context.Context, _ interface{}) (context.Context, error) {
	return ctx, nil
}

// NewNoOpTracer returns a ports.Tracer that performs no tracing.
func NewNoOpTracer() ports.Tracer { return NoOpTracer{} }
