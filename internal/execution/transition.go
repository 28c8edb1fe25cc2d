package execution

import (
	"errors"

	"github.com/caseflow/caseflow/internal/chart"
	"github.com/caseflow/caseflow/internal/ports"
)

// Transition dispatches event against the current state, bubbling up the
// parent chain when the current state has no handler for it.
func (e *Execution) Transition(ev chart.Event) error {
	from := e.State.Name
	err := e.resolve(from, from, ev)
	if err != nil {
		e.publish(ports.EventExecutionFailed, map[string]interface{}{"from": from, "event": ev.String(), "error": err.Error()})
		return err
	}
	if e.State.Name != from {
		e.publish(ports.EventTransitioned, map[string]interface{}{"from": from, "to": e.State.Name, "event": ev.String()})
	}
	if e.State.Kind == chart.KindFinal {
		e.publish(ports.EventExecutionCompleted, map[string]interface{}{"state": e.State.Name})
	}
	return nil
}

// resolve implements the lookup/bubble/fallthrough algorithm. originName is
// fixed across the recursive bubbling so a failure is always reported
// relative to where dispatch began, not where the search ran out of
// ancestors.
func (e *Execution) resolve(originName, searchName string, event chart.Event) error {
	s, err := e.Chart.StateByName(searchName)
	if err != nil {
		return err
	}

	t, ok := s.Transitions[event]
	if !ok {
		if parentName, hasParent := chart.ParentName(searchName); hasParent {
			return e.resolve(originName, parentName, event)
		}
		return chart.NewNoTransitionError(originName, event)
	}

	if len(t.Targets) == 1 && t.Targets[0] == e.State.Name && !t.Reset {
		e.queueActions(t.Actions)
		e.TransitionsLog = append([]chart.Transition{t}, e.TransitionsLog...)
		return nil
	}

	if t.IsFallthrough() {
		for _, candidate := range t.Targets {
			if err := e.useTarget(candidate, t); err == nil {
				return nil
			}
		}
		return chart.NewNoTransitionError(originName, event)
	}

	return e.useTarget(t.Target(), t)
}

// useTarget resolves one concrete target: looks it up, consults the
// optional guard, and on success records the transition and enters it.
func (e *Execution) useTarget(targetName string, t chart.Transition) error {
	target, err := e.Chart.StateByName(targetName)
	if err != nil {
		return err
	}
	if guard, ok := e.Callback.(ports.Guard); ok {
		if gerr := guard.Guard(e.State.Name, target.Name, e.Context); gerr != nil {
			return chart.NewGuardRejectedError(gerr.Error())
		}
	}
	e.TransitionsLog = append([]chart.Transition{t}, e.TransitionsLog...)
	e.enter(target, t.Actions, false)
	return nil
}

func isNoTransition(err error) bool {
	var de *chart.DomainError
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == chart.ErrCodeNoTransition
}
