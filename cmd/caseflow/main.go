package main

import (
	"context"
	"fmt"
	"os"

	"github.com/caseflow/caseflow/internal/chartregistry"
	eventsinfra "github.com/caseflow/caseflow/internal/infrastructure/events"
	logginginfra "github.com/caseflow/caseflow/internal/infrastructure/logging"
)

func main() {
	appLogger, err := logginginfra.New(logginginfra.Options{
		Level:     "info",
		Component: "cli",
		Layer:     "infrastructure",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create application logger: %v\n", err)
		os.Exit(1)
	}

	correlationID := logginginfra.GenerateCorrelationID()
	ctx := logginginfra.WithCorrelationID(context.Background(), correlationID)

	charts := chartregistry.New()
	if err := charts.Register(saleChart()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register sale chart: %v\n", err)
		os.Exit(1)
	}
	if err := charts.Register(vendingMachineChart()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register vending_machine chart: %v\n", err)
		os.Exit(1)
	}

	// Store is left unset here: newRootCmd's PersistentPreRunE constructs
	// it from the --store/--postgres-dsn flags once cobra has parsed them.
	app := &AppContext{
		Logger: appLogger,
		Events: eventsinfra.NewLoggingPublisher(appLogger.With("component", "event_publisher")),
		Charts: charts,
	}

	flags := &rootFlags{}
	rootCmd := newRootCmd(app, flags)
	appLogger.Info(ctx, "starting caseflow command", "pid", os.Getpid())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
