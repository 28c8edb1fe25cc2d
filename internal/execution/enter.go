package execution

import (
	"github.com/caseflow/caseflow/internal/chart"
	"github.com/caseflow/caseflow/internal/ports"
)

// enter performs state entry: history push, a fresh current copy, step
// filtering, exit/transition/entry action queueing, compound descent, and
// the terminal synthetic events on the resulting leaf.
//
// skipExit is true only for the recursive descent call a compound state
// makes into its initial_child: the outer call already queued the
// exit/transition actions for the real move, so descent contributes only
// its own entry actions.
func (e *Execution) enter(target *chart.State, transitionActions []string, skipExit bool) {
	prev := e.State
	if prev != nil {
		e.History = append([]*chart.State{prev}, e.History...)
	}

	fresh := target.Clone()
	kept, ignored := filterSteps(fresh.Steps, e.Callback, e.Context)
	fresh.Steps = kept
	fresh.IgnoredSteps = append(fresh.IgnoredSteps, ignored...)
	e.State = fresh

	if !skipExit {
		var prevName string
		if prev != nil {
			prevName = prev.Name
		}
		for _, s := range exitChainStates(e.Chart, prevName, fresh.Name) {
			e.queueActions(s.ExitActions)
		}
		e.queueActions(transitionActions)
	}
	e.queueActions(fresh.EntryActions)

	if fresh.Kind == chart.KindCompound {
		child, err := e.Chart.StateByName(fresh.InitialChild)
		if err == nil {
			e.enter(child, nil, true)
		}
		return
	}

	if fresh.Kind == chart.KindFinal {
		e.dispatchSynthetic(chart.Final)
	}
	e.dispatchSynthetic(chart.Null)
	if fresh.Kind == chart.KindAtomic && len(fresh.Steps) == 0 {
		e.dispatchSynthetic(chart.NoSteps)
	}
}

// dispatchSynthetic resolves a synthetic event, silently doing nothing when
// no handler along the parent chain accepts it.
func (e *Execution) dispatchSynthetic(event chart.Event) {
	_ = e.resolve(e.State.Name, e.State.Name, event)
}

// exitChainStates returns the states whose exit actions fire for a move
// from prevName to targetName: prevName and its ancestors, leaf first, up
// to (not including) their lowest common ancestor with targetName.
func exitChainStates(c *chart.Chart, prevName, targetName string) []*chart.State {
	if prevName == "" {
		return nil
	}
	lca, ok := chart.LCA(prevName, targetName)

	var chain []*chart.State
	cur := prevName
	for {
		if ok && cur == lca {
			break
		}
		if s, err := c.StateByName(cur); err == nil {
			chain = append(chain, s)
		}
		parent, hasParent := chart.ParentName(cur)
		if !hasParent {
			break
		}
		cur = parent
	}
	return chain
}

// filterSteps partitions steps into kept and ignored using the callback's
// optional UseStepEvaluator; every step is kept when the capability is
// absent.
func filterSteps(steps []chart.Step, cb ports.Callback, ctx map[string]interface{}) (kept, ignored []chart.Step) {
	evaluator, ok := cb.(ports.UseStepEvaluator)
	if !ok {
		return steps, nil
	}
	for _, s := range steps {
		if evaluator.UseStep(s.Name, ctx) {
			kept = append(kept, s)
		} else {
			ignored = append(ignored, s)
		}
	}
	return kept, ignored
}
