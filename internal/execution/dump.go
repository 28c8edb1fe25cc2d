package execution

import (
	"fmt"
	"sort"

	"github.com/caseflow/caseflow/internal/chart"
	"github.com/caseflow/caseflow/internal/ports"
)

// Dump produces a serializable snapshot of e suitable for persistence. For
// every state in the chart it uses the live current state when they match,
// else the most recent history snapshot for that name, else the chart's
// pristine definition.
func (e *Execution) Dump() ports.WorkflowDump {
	dump := ports.WorkflowDump{
		Name:     e.Chart.Name,
		State:    e.State.Name,
		Complete: e.State.Kind == chart.KindFinal,
	}
	dump.Participants = append([]string(nil), e.Chart.Participants...)
	if e.Chart.SubjectBinding != nil {
		dump.SubjectKey = e.Chart.SubjectBinding.Key
	}

	names := make([]string, 0, len(e.Chart.States))
	for name := range e.Chart.States {
		names = append(names, name)
	}
	sort.Strings(names)

	resolver, _ := e.Callback.(ports.ParticipantResolver)

	for _, name := range names {
		src := e.sourceFor(name)
		for _, st := range src.AllSteps() {
			dump.Steps = append(dump.Steps, ports.DumpStep{
				State:       name,
				Order:       st.Order,
				Name:        st.Name,
				Complete:    st.Complete,
				Decision:    st.Decision,
				Participant: resolveParticipant(resolver, e.Context, st.Participant),
			})
		}
	}
	return dump
}

// resolveParticipant consults the callback's optional ParticipantResolver to
// turn a step's role tag into a host-meaningful identifier; the raw tag
// passes through unchanged when the capability is absent, the tag is empty,
// or the resolver yields nil.
func resolveParticipant(resolver ports.ParticipantResolver, ctx map[string]interface{}, tag string) string {
	if resolver == nil || tag == "" {
		return tag
	}
	if resolved := resolver.ParticipantID(ctx, tag); resolved != nil {
		return fmt.Sprintf("%v", resolved)
	}
	return tag
}

func (e *Execution) sourceFor(name string) *chart.State {
	if e.State.Name == name {
		return e.State
	}
	for _, h := range e.History {
		if h.Name == name {
			return h
		}
	}
	return e.Chart.States[name]
}

// Resume reconstructs an Execution from a previously persisted dump without
// replaying entry/exit actions. Step filtering is re-run against the
// callback so resumed executions see the same ignored_steps split a fresh
// entry would have produced.
func Resume(c *chart.Chart, callback ports.Callback, dump ports.WorkflowDump) (*Execution, error) {
	current, err := c.StateByName(dump.State)
	if err != nil {
		return nil, err
	}

	e := &Execution{
		Chart:    c,
		Callback: callback,
		Context:  make(map[string]interface{}),
		Meta:     make(map[string]interface{}),
	}

	byState := make(map[string][]ports.DumpStep)
	for _, st := range dump.Steps {
		byState[st.State] = append(byState[st.State], st)
	}

	e.State = restoreState(current, callback, e.Context, byState[dump.State])

	for name, entries := range byState {
		if name == dump.State {
			continue
		}
		if s, err := c.StateByName(name); err == nil {
			e.History = append(e.History, restoreState(s, callback, e.Context, entries))
		}
	}

	return e, nil
}

func restoreState(s *chart.State, callback ports.Callback, ctx map[string]interface{}, entries []ports.DumpStep) *chart.State {
	fresh := s.Clone()
	kept, ignored := filterSteps(fresh.Steps, callback, ctx)
	fresh.Steps = kept
	fresh.IgnoredSteps = append(fresh.IgnoredSteps, ignored...)

	byName := make(map[string]ports.DumpStep, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}
	overlay := func(steps []chart.Step) {
		for i := range steps {
			if entry, ok := byName[steps[i].Name]; ok {
				steps[i].Complete = entry.Complete
				steps[i].Decision = entry.Decision
			}
		}
	}
	overlay(fresh.Steps)
	overlay(fresh.IgnoredSteps)
	return fresh
}
