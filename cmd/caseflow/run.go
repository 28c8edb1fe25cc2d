package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caseflow/caseflow/internal/chart"
	"github.com/caseflow/caseflow/internal/execution"
	"github.com/caseflow/caseflow/internal/ports"
	"github.com/caseflow/caseflow/internal/scenario"
)

type runOptions struct {
	ScriptPath string
}

func newRunCmd(app *AppContext) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive a scenario script against its chart and print the resulting state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, log := app.CommandContext(cmd, "run")
			s, err := scenario.NewLoader().Load(ctx, opts.ScriptPath)
			if err != nil {
				return err
			}

			c, err := app.Charts.Get(s.Chart)
			if err != nil {
				return err
			}

			cb := &loggingCallback{logger: log}
			e, err := execution.New(c, cb)
			if err != nil {
				return err
			}
			e.WithPublisher(app.Events)

			if err := applyScenarioSteps(e, s.Steps); err != nil {
				return err
			}

			subject := ports.SubjectRef{Type: c.Name, ID: s.Subject}
			if _, err := app.Store.Create(ctx, subject, e.Dump()); err != nil {
				log.Warn(ctx, "failed to persist run result", "error", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "final state: %s\n", e.State.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.ScriptPath, "script", "s", "", "Path to a scenario YAML script")
	_ = cmd.MarkFlagRequired("script")

	return cmd
}

func applyScenarioSteps(e *execution.Execution, steps []ports.ScenarioStep) error {
	for _, step := range steps {
		for k, v := range step.Context {
			e.Context[k] = v
		}
		switch {
		case step.Event != "":
			if err := e.Transition(chart.Named(step.Event)); err != nil {
				return err
			}
		case step.Complete != "":
			if err := e.Complete(step.Complete); err != nil {
				return err
			}
		case step.Decide != "":
			if err := e.Decision(step.Decide, step.Choice); err != nil {
				return err
			}
		}
	}
	return nil
}
