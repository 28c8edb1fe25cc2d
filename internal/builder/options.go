package builder

import "github.com/caseflow/caseflow/internal/chart"

// TransitionOption customizes a transition beyond its event and targets.
type TransitionOption func(*chart.Transition)

// Reset overrides the default reset policy (true) for a self-targeted
// transition: false only queues actions without re-entering the state.
func Reset(v bool) TransitionOption {
	return func(t *chart.Transition) { t.Reset = v }
}

// Actions attaches ordered transition action tags, queued after exit
// actions and before entry actions of the target.
func Actions(tags ...string) TransitionOption {
	return func(t *chart.Transition) { t.Actions = tags }
}

// stepConfig accumulates the options applied to one Step declaration.
type stepConfig struct {
	participant string
	repeatable  bool
}

// StepOption customizes a declared step beyond its name and order.
type StepOption func(*stepConfig)

// Participant tags the step with a role from the chart's participant list.
func Participant(tag string) StepOption {
	return func(c *stepConfig) { c.participant = tag }
}

// Repeatable marks the step as idempotently re-completable; equivalent to a
// separate Repeatable(id) declaration on the owning state.
func Repeatable() StepOption {
	return func(c *stepConfig) { c.repeatable = true }
}
