package ports

import "context"

// MetricsCollector records quantitative observability signals. The interface
// is intentionally generic so adapters can back onto Prometheus, StatsD, or a
// vendor SDK. Standard signal names:
//   - Counters:
//     caseflow_transitions_total{chart="...", event_kind="..."}
//     caseflow_actions_total{result="ok|error"}
//     caseflow_executions_started_total{chart="..."}
//     caseflow_executions_completed_total{chart="..."}
//   - Gauges:
//     caseflow_active_executions{chart="..."}
//   - Histograms:
//     caseflow_transition_duration_seconds{chart="..."}
//     caseflow_action_duration_seconds{action="..."}
type MetricsCollector interface {
	IncCounter(ctx context.Context, name string, labels map[string]string)
	SetGauge(ctx context.Context, name string, value float64, labels map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, labels map[string]string)
}

// Tracer manages distributed tracing spans. Span names follow
// `<component>.<operation>` (e.g. `execution.transition`, `execution.complete`,
// `execution.execute_actions`).
type Tracer interface {
	StartSpan(ctx context.Context, name string, attributes ...interface{}) (context.Context, Span)
	Inject(ctx context.Context, carrier interface{}) error
	Extract(ctx context.Context, carrier interface{}) (context.Context, error)
}

// Span represents an active tracing span.
type Span interface {
	SetAttribute(key string, value interface{})
	SetStatus(status SpanStatus, message string)
	End()
}

// SpanStatus provides strongly typed span result semantics.
type SpanStatus string

const (
	SpanStatusOK    SpanStatus = "ok"
	SpanStatusError SpanStatus = "error"
)
