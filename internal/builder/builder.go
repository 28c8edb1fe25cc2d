// Package builder provides the programmatic chart-construction API: a
// sequence of declarations describing subjects, participants, states,
// steps, and transitions that compiles into an immutable chart.Chart.
// Relative transition targets are resolved against the declaring state's
// absolute path at Build time.
package builder

import (
	"fmt"

	"github.com/caseflow/caseflow/internal/chart"
)

// Builder accumulates top-level chart declarations.
type Builder struct {
	chart     *chart.Chart
	templates map[string]func(*StateBuilder)
	errs      []error
}

// New starts a new chart declaration named name.
func New(name string) *Builder {
	return &Builder{
		chart: &chart.Chart{
			Name:   name,
			States: make(map[string]*chart.State),
		},
		templates: make(map[string]func(*StateBuilder)),
	}
}

// Subject binds the chart to a host entity identified by key of type typ.
func (b *Builder) Subject(key, typ string) *Builder {
	b.chart.SubjectBinding = &chart.SubjectBinding{Key: key, Type: typ}
	return b
}

// Participant registers a role tag usable on steps and resolved by dump.
func (b *Builder) Participant(tag string) *Builder {
	b.chart.Participants = append(b.chart.Participants, tag)
	return b
}

// InitialState sets the chart's entry state by its top-level id.
func (b *Builder) InitialState(id string) *Builder {
	b.chart.InitialState = id
	return b
}

// State declares a top-level state and its body.
func (b *Builder) State(id string, body func(*StateBuilder)) *Builder {
	sb := newStateBuilder(b, id)
	body(sb)
	return b
}

// Virtual registers a named template body that states can inject via
// StateBuilder.Using.
func (b *Builder) Virtual(name string, body func(*StateBuilder)) *Builder {
	b.templates[name] = body
	return b
}

func (b *Builder) fail(err error) {
	b.errs = append(b.errs, err)
}

// Build validates all declarations and returns the compiled chart, or the
// first InvalidChart error encountered.
func (b *Builder) Build() (*chart.Chart, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	if b.chart.InitialState == "" {
		return nil, chart.NewInvalidChartError("initial_state is required", map[string]interface{}{"chart": b.chart.Name})
	}
	if _, ok := b.chart.States[b.chart.InitialState]; !ok {
		return nil, chart.NewInvalidChartError("initial_state does not exist", map[string]interface{}{
			"chart": b.chart.Name, "initial_state": b.chart.InitialState,
		})
	}

	for name, state := range b.chart.States {
		if state.Kind == chart.KindCompound {
			if len(state.Steps) > 0 {
				return nil, chart.NewInvalidChartError("compound state may not declare steps", map[string]interface{}{
					"state": name,
				})
			}
			if state.InitialChild == "" {
				return nil, chart.NewInvalidChartError("compound state requires initial_state", map[string]interface{}{
					"state": name,
				})
			}
			if state.InitialChild == name || !chart.IsDescendantOf(name, state.InitialChild) {
				return nil, chart.NewInvalidChartError("initial_state must be a descendant", map[string]interface{}{
					"state": name, "initial_state": state.InitialChild,
				})
			}
			if _, ok := b.chart.States[state.InitialChild]; !ok {
				return nil, chart.NewInvalidChartError("initial_state does not exist", map[string]interface{}{
					"state": name, "initial_state": state.InitialChild,
				})
			}
		}

		if state.Kind == chart.KindFinal {
			for ev := range state.Transitions {
				if ev != chart.Final {
					return nil, chart.NewInvalidChartError("final state may only handle the final event", map[string]interface{}{
						"state": name, "event": ev.String(),
					})
				}
			}
		}

		for _, t := range state.Transitions {
			for _, target := range t.Targets {
				if _, ok := b.chart.States[target]; !ok {
					return nil, chart.NewInvalidChartError("transition target does not exist", map[string]interface{}{
						"state": name, "event": t.Event.String(), "target": target,
					})
				}
			}
		}
	}

	return b.chart, nil
}

// MustBuild is Build's panicking variant, convenient for package-level
// chart registration at process startup.
func (b *Builder) MustBuild() *chart.Chart {
	c, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("builder: %v", err))
	}
	return c
}
