package logging

import (
	"context"

	"github.com/caseflow/caseflow/internal/ports"
)

// WithCorrelationID stamps ctx with the identifier that ties every log line
// and published ports.DomainEvent for one CLI invocation (or one execution
// run) together, so "caseflow run --script scenario.yaml" can be traced end
// to end across chart load, transitions, and persistence calls.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return ports.WithCorrelationID(ctx, id)
}

// GetCorrelationID retrieves the correlation identifier from the context, returning
// an empty string when none is present.
func GetCorrelationID(ctx context.Context) string {
	return ports.GetCorrelationID(ctx)
}

// GenerateCorrelationID creates a new correlation identifier; cmd/caseflow's
// main calls it once per invocation and stamps the result on the root
// context before dispatch.
func GenerateCorrelationID() string {
	return ports.GenerateCorrelationID()
}
