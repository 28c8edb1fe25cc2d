package builder

import "github.com/caseflow/caseflow/internal/chart"

// StateBuilder accumulates the declarations for one state. It is handed to
// the body function passed to Builder.State or a parent StateBuilder.State.
type StateBuilder struct {
	root  *Builder
	name  string
	state *chart.State

	nextOrder     int
	hasSteps      bool
	hasChildren   bool
	declaredNames map[string]struct{}
}

func newStateBuilder(root *Builder, name string) *StateBuilder {
	s := root.chart.States[name]
	if s == nil {
		s = chart.NewState(name)
		root.chart.States[name] = s
	}
	return &StateBuilder{root: root, name: name, state: s, nextOrder: 1, declaredNames: make(map[string]struct{})}
}

// InitialState sets the descendant entered by default when this (compound)
// state is reached; childID is relative the way State's own id is: a bare
// segment appended to this state's dotted path.
func (s *StateBuilder) InitialState(childID string) *StateBuilder {
	s.state.InitialChild = s.name + "." + childID
	return s
}

// Final marks this state as a terminal leaf. Final states raise the
// synthetic Final event on entry and accept no transitions besides it.
func (s *StateBuilder) Final() *StateBuilder {
	s.state.Kind = chart.KindFinal
	return s
}

// Step declares a sequential checklist item on this atomic state. Repeated
// calls receive monotonically increasing order numbers.
func (s *StateBuilder) Step(id string, opts ...StepOption) *StateBuilder {
	s.addStep(id, s.nextOrder, opts)
	s.nextOrder++
	return s
}

// Parallel declares a block of steps that all share one order number: any
// one of them may be completed next, independent of the others.
func (s *StateBuilder) Parallel(body func(*ParallelGroup)) *StateBuilder {
	order := s.nextOrder
	group := &ParallelGroup{owner: s, order: order}
	body(group)
	if group.count > 0 {
		s.nextOrder++
	}
	return s
}

func (s *StateBuilder) addStep(id string, order int, opts []StepOption) {
	cfg := &stepConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if _, dup := s.declaredNames[id]; dup {
		s.root.fail(chart.NewInvalidChartError("duplicate step name in state", map[string]interface{}{
			"state": s.name, "step": id,
		}))
		return
	}
	s.declaredNames[id] = struct{}{}
	s.hasSteps = true
	s.state.Steps = append(s.state.Steps, chart.Step{
		Name:        id,
		Participant: cfg.participant,
		Order:       order,
	})
	if cfg.repeatable {
		s.state.RepeatableSteps[id] = struct{}{}
	}
}

// Repeatable adds an already-declared step to this state's repeatable set.
func (s *StateBuilder) Repeatable(stepID string) *StateBuilder {
	s.state.RepeatableSteps[stepID] = struct{}{}
	return s
}

// OnEntry appends an action tag run whenever this state is entered.
func (s *StateBuilder) OnEntry(action string) *StateBuilder {
	s.state.EntryActions = append(s.state.EntryActions, action)
	return s
}

// OnExit appends an action tag run whenever this state is exited.
func (s *StateBuilder) OnExit(action string) *StateBuilder {
	s.state.ExitActions = append(s.state.ExitActions, action)
	return s
}

// On registers a handler for event with a single relative target atom
// ("_" denotes the self-loop).
func (s *StateBuilder) On(event chart.Event, target string, opts ...TransitionOption) *StateBuilder {
	return s.OnTargets(event, single(target), opts...)
}

// OnUp registers a handler for event whose target is a sibling of this
// state's parent: the "(UP, atom)" form.
func (s *StateBuilder) OnUp(event chart.Event, atom string, opts ...TransitionOption) *StateBuilder {
	return s.OnTargets(event, []Target{Up(atom)}, opts...)
}

// OnTargets registers a handler for event with an ordered fallthrough list
// of relative targets; the first whose guard accepts wins.
func (s *StateBuilder) OnTargets(event chart.Event, targets []Target, opts ...TransitionOption) *StateBuilder {
	t := chart.Transition{
		Event:   event,
		Targets: resolveTargets(s.name, targets),
		Reset:   true,
	}
	for _, opt := range opts {
		opt(&t)
	}
	s.state.Transitions[event] = t
	return s
}

// OnCompleted is sugar for On(chart.Completed(step), target, opts...).
func (s *StateBuilder) OnCompleted(step, target string, opts ...TransitionOption) *StateBuilder {
	return s.On(chart.Completed(step), target, opts...)
}

// OnDecision is sugar for On(chart.Decision(step, choice), target, opts...).
func (s *StateBuilder) OnDecision(step, choice, target string, opts ...TransitionOption) *StateBuilder {
	return s.On(chart.Decision(step, choice), target, opts...)
}

// OnNoSteps is sugar for On(chart.NoSteps, target, opts...).
func (s *StateBuilder) OnNoSteps(target string, opts ...TransitionOption) *StateBuilder {
	return s.On(chart.NoSteps, target, opts...)
}

// OnFinal is sugar for On(chart.Final, target, opts...).
func (s *StateBuilder) OnFinal(target string, opts ...TransitionOption) *StateBuilder {
	return s.On(chart.Final, target, opts...)
}

// OnNull is sugar for On(chart.Null, target, opts...).
func (s *StateBuilder) OnNull(target string, opts ...TransitionOption) *StateBuilder {
	return s.On(chart.Null, target, opts...)
}

// OnNullFallthrough registers a Null handler with a guarded fallthrough
// list, the mechanism behind dynamic initial routing.
func (s *StateBuilder) OnNullFallthrough(targets []Target, opts ...TransitionOption) *StateBuilder {
	return s.OnTargets(chart.Null, targets, opts...)
}

// State declares a nested child state, making this state compound. The
// child's absolute name is this state's name with childID appended.
func (s *StateBuilder) State(childID string, body func(*StateBuilder)) *StateBuilder {
	s.hasChildren = true
	s.state.Kind = chart.KindCompound
	child := newStateBuilder(s.root, s.name+"."+childID)
	body(child)
	return s
}

// Using applies a previously declared Virtual template's body to this
// state, injecting its steps, transitions, and actions.
func (s *StateBuilder) Using(name string) *StateBuilder {
	body, ok := s.root.templates[name]
	if !ok {
		s.root.fail(chart.NewInvalidChartError("unknown virtual template", map[string]interface{}{"name": name}))
		return s
	}
	body(s)
	return s
}

// ParallelGroup collects steps declared inside a Parallel block; all share
// one order number.
type ParallelGroup struct {
	owner *StateBuilder
	order int
	count int
}

// Step declares one member of the parallel group.
func (p *ParallelGroup) Step(id string, opts ...StepOption) *ParallelGroup {
	p.owner.addStep(id, p.order, opts)
	p.count++
	return p
}
