package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/caseflow/caseflow/internal/adapters/memory"
	"github.com/caseflow/caseflow/internal/adapters/postgres"
	"github.com/caseflow/caseflow/internal/ports"
)

type rootFlags struct {
	verbose     bool
	store       string
	postgresDSN string
}

func newRootCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "caseflow",
		Short:         "caseflow drives hierarchical-statechart workflows attached to domain subjects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			store, err := buildStore(cmd.Context(), flags)
			if err != nil {
				return err
			}
			app.Store = store
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.store, "store", "memory", "Persistence adapter to run against: memory|postgres")
	cmd.PersistentFlags().StringVar(&flags.postgresDSN, "postgres-dsn", "", "Postgres connection string, required when --store=postgres")

	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newDumpCmd(app))
	cmd.AddCommand(newWatchCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// buildStore selects and constructs the ports.Persistence adapter named by
// flags.store. The memory adapter needs nothing further; the postgres
// adapter opens a pool against flags.postgresDSN and runs its schema
// migration before the store is handed to any command.
func buildStore(ctx context.Context, flags *rootFlags) (ports.Persistence, error) {
	switch flags.store {
	case "", "memory":
		return memory.New(), nil
	case "postgres":
		if flags.postgresDSN == "" {
			return nil, fmt.Errorf("--postgres-dsn is required when --store=postgres")
		}
		pool, err := pgxpool.New(ctx, flags.postgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		store := postgres.New(pool)
		if err := store.Init(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("initialize postgres schema: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown --store %q: want memory or postgres", flags.store)
	}
}
