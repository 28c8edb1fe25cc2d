package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caseflow/caseflow/internal/ports"
)

type dumpOptions struct {
	Chart   string
	Subject string
}

func newDumpCmd(app *AppContext) *cobra.Command {
	opts := dumpOptions{}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the persisted WorkflowRecord for a subject as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _ := app.CommandContext(cmd, "dump")

			rec, err := app.Store.Load(ctx, ports.SubjectRef{Type: opts.Chart, ID: opts.Subject})
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("no persisted workflow for subject %s/%s", opts.Chart, opts.Subject)
			}

			encoded, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Chart, "chart", "", "Chart name the subject was run against")
	cmd.Flags().StringVar(&opts.Subject, "subject", "", "Subject identifier")
	_ = cmd.MarkFlagRequired("chart")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
