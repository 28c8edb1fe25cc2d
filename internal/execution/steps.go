package execution

import (
	"github.com/caseflow/caseflow/internal/chart"
	"github.com/caseflow/caseflow/internal/ports"
)

// nextStepSet returns the incomplete steps sharing the lowest order value
// among the current state's steps, or nil when none remain incomplete.
func (e *Execution) nextStepSet() []chart.Step {
	lowest := 0
	found := false
	for _, s := range e.State.Steps {
		if s.Complete {
			continue
		}
		if !found || s.Order < lowest {
			lowest = s.Order
			found = true
		}
	}
	if !found {
		return nil
	}
	var set []chart.Step
	for _, s := range e.State.Steps {
		if !s.Complete && s.Order == lowest {
			set = append(set, s)
		}
	}
	return set
}

func stepNames(steps []chart.Step) []string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Name
	}
	return names
}

func containsStepName(steps []chart.Step, name string) bool {
	for _, s := range steps {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Complete marks stepID complete and dispatches Completed(stepID). A
// NoTransition failure from that dispatch does not surface: the step still
// completes and the execution stays in its current state. Any other error
// (e.g. a rejected guard on a single-target on_completed handler) aborts the
// call and reverts the step mutation, leaving the Execution unchanged.
func (e *Execution) Complete(stepID string) error {
	accepted, repeatAlreadyDone, err := e.acceptStep(stepID)
	if err != nil {
		return err
	}
	if repeatAlreadyDone {
		return nil
	}
	_ = accepted

	prevComplete, prevDecision := e.stepState(stepID)
	e.markStepComplete(stepID, "")
	if err := e.resolve(e.State.Name, e.State.Name, chart.Completed(stepID)); err != nil && !isNoTransition(err) {
		e.restoreStep(stepID, prevComplete, prevDecision)
		return err
	}
	e.publish(ports.EventStepCompleted, map[string]interface{}{"step": stepID, "state": e.State.Name})
	if e.State.Kind == chart.KindFinal {
		e.publish(ports.EventExecutionCompleted, map[string]interface{}{"state": e.State.Name})
	}
	return nil
}

// Decision marks stepID complete with the given choice and dispatches
// Decision(stepID, choice). Unlike Complete, any error from that dispatch —
// including NoTransition — is surfaced to the caller, and the step mutation
// is reverted so the Execution is returned unchanged alongside the error.
func (e *Execution) Decision(stepID, choice string) error {
	accepted, repeatAlreadyDone, err := e.acceptStep(stepID)
	if err != nil {
		return err
	}
	if repeatAlreadyDone {
		return nil
	}
	_ = accepted

	prevComplete, prevDecision := e.stepState(stepID)
	e.markStepComplete(stepID, choice)
	if err := e.resolve(e.State.Name, e.State.Name, chart.Decision(stepID, choice)); err != nil {
		e.restoreStep(stepID, prevComplete, prevDecision)
		return err
	}
	e.publish(ports.EventStepDecided, map[string]interface{}{"step": stepID, "choice": choice, "state": e.State.Name})
	if e.State.Kind == chart.KindFinal {
		e.publish(ports.EventExecutionCompleted, map[string]interface{}{"state": e.State.Name})
	}
	return nil
}

// acceptStep validates that stepID may be completed now. It returns
// repeatAlreadyDone=true when the step is repeatable and already complete
// (or the state has no further incomplete steps), meaning the caller should
// accept with no state change and no synthetic dispatch.
func (e *Execution) acceptStep(stepID string) (accepted, repeatAlreadyDone bool, err error) {
	step, found := e.State.FindStep(stepID)
	if !found {
		return false, false, chart.NewUnknownStepError(stepID)
	}

	repeatable := e.State.IsRepeatable(stepID)
	next := e.nextStepSet()

	if containsStepName(next, stepID) {
		return true, false, nil
	}
	if repeatable && (len(next) == 0 || step.Complete) {
		return true, true, nil
	}
	return false, false, chart.NewStepOutOfOrderError(stepNames(next))
}

func (e *Execution) markStepComplete(stepID, decision string) {
	for i := range e.State.Steps {
		if e.State.Steps[i].Name == stepID {
			e.State.Steps[i].Complete = true
			if decision != "" {
				e.State.Steps[i].Decision = decision
			}
			return
		}
	}
}

// stepState captures stepID's completion/decision fields so a subsequent
// failed dispatch can restore them via restoreStep.
func (e *Execution) stepState(stepID string) (complete bool, decision string) {
	for _, s := range e.State.Steps {
		if s.Name == stepID {
			return s.Complete, s.Decision
		}
	}
	return false, ""
}

// restoreStep undoes markStepComplete, returning stepID to the values
// captured by stepState before the mutating call. resolve only ever returns
// a non-nil error before e.State has been reassigned to a new state (the
// guard check in useTarget runs before any mutation, and fallthrough targets
// that fail their guard mutate nothing), so e.State.Steps here is always the
// same slice markStepComplete modified.
func (e *Execution) restoreStep(stepID string, complete bool, decision string) {
	for i := range e.State.Steps {
		if e.State.Steps[i].Name == stepID {
			e.State.Steps[i].Complete = complete
			e.State.Steps[i].Decision = decision
			return
		}
	}
}
