package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/caseflow/caseflow/internal/chart"
	"github.com/caseflow/caseflow/internal/execution"
	"github.com/caseflow/caseflow/internal/ports"
	"github.com/caseflow/caseflow/internal/scenario"
)

var (
	watchStateStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	watchBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type watchOptions struct {
	ScriptPath string
}

func newWatchCmd(app *AppContext) *cobra.Command {
	opts := watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Step through a scenario script interactively, one directive at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, log := app.CommandContext(cmd, "watch")
			s, err := scenario.NewLoader().Load(ctx, opts.ScriptPath)
			if err != nil {
				return err
			}

			c, err := app.Charts.Get(s.Chart)
			if err != nil {
				return err
			}

			e, err := execution.New(c, &loggingCallback{logger: log})
			if err != nil {
				return err
			}
			e.WithPublisher(app.Events)

			m := watchModel{execution: e, steps: s.Steps}
			p := tea.NewProgram(m)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.ScriptPath, "script", "s", "", "Path to a scenario YAML script")
	_ = cmd.MarkFlagRequired("script")

	return cmd
}

type watchModel struct {
	execution *execution.Execution
	steps     []ports.ScenarioStep
	cursor    int
	lastErr   error
}

func (m watchModel) Init() tea.Cmd { return nil }

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "enter":
		if m.cursor < len(m.steps) {
			step := m.steps[m.cursor]
			for k, v := range step.Context {
				m.execution.Context[k] = v
			}
			switch {
			case step.Event != "":
				m.lastErr = m.execution.Transition(chart.Named(step.Event))
			case step.Complete != "":
				m.lastErr = m.execution.Complete(step.Complete)
			case step.Decide != "":
				m.lastErr = m.execution.Decision(step.Decide, step.Choice)
			}
			m.cursor++
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	body := fmt.Sprintf("state: %s\nstep %d/%d\n", watchStateStyle.Render(m.execution.State.Name), m.cursor, len(m.steps))
	if m.lastErr != nil {
		body += fmt.Sprintf("error: %v\n", m.lastErr)
	}
	body += "\n[space] advance  [q] quit"
	return watchBoxStyle.Render(body)
}
