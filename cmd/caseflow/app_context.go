package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/caseflow/caseflow/internal/chartregistry"
	"github.com/caseflow/caseflow/internal/ports"
)

// AppContext bundles the long-lived services wired at startup: the chart
// registry, the persistence store backing the demo's subjects, and the
// structured logger every command derives a component-scoped child from.
// Store is set by newRootCmd's PersistentPreRunE once the --store flag has
// been parsed, so it holds either a memory.Store or a postgres.Store behind
// the ports.Persistence interface.
type AppContext struct {
	Logger ports.Logger
	Events ports.EventPublisher
	Charts *chartregistry.Registry
	Store  ports.Persistence
}

// CommandContext returns the command's context (falling back to
// Background) together with a component-scoped logger.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, ports.Logger) {
	ctx := context.Background()
	if cmd != nil && cmd.Context() != nil {
		ctx = cmd.Context()
	}
	return ctx, a.LoggerFor(component)
}

// LoggerFor derives a child logger with the supplied component name.
func (a *AppContext) LoggerFor(component string) ports.Logger {
	if a == nil || a.Logger == nil {
		return nil
	}
	return a.Logger.With("component", component)
}
