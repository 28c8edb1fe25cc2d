// Package execution implements the mutable interpreter that drives one
// subject's workflow against a compiled chart: state entry, event
// resolution, step completion, and action dispatch.
package execution

import (
	"github.com/caseflow/caseflow/internal/chart"
	"github.com/caseflow/caseflow/internal/ports"
)

// Execution is the mutable interpreter state for one subject. It is not
// safe for concurrent use; callers serialize access to a single Execution
// the same way they serialize writes to the subject it is bound to.
type Execution struct {
	Chart *chart.Chart

	// State is the current leaf State, a clone owned exclusively by this
	// Execution.
	State *chart.State

	// History holds prior State snapshots, most-recent first.
	History []*chart.State

	// TransitionsLog holds taken Transitions, most-recent first.
	TransitionsLog []chart.Transition

	// Context is free-form, host-managed data threaded through guards and
	// actions.
	Context map[string]interface{}

	// Meta is adapter scratch space, e.g. a loaded persistence record.
	Meta map[string]interface{}

	Callback ports.Callback

	// Publisher is an optional side channel: if set, the interpreter emits
	// ports.DomainEvents (execution.started/transitioned/completed/failed,
	// step.completed/decided, action.started/completed/failed) alongside
	// its ordinary return values. Hosts that leave it nil see identical
	// behavior; nothing about transition resolution depends on it.
	Publisher ports.EventPublisher

	actions []string
}

// New creates a fresh Execution over c, entering its initial state.
func New(c *chart.Chart, callback ports.Callback) (*Execution, error) {
	initial, err := c.StateByName(c.InitialState)
	if err != nil {
		return nil, err
	}
	e := &Execution{
		Chart:    c,
		Callback: callback,
		Context:  make(map[string]interface{}),
		Meta:     make(map[string]interface{}),
	}
	e.enter(initial, nil, false)
	e.publish(ports.EventExecutionStarted, map[string]interface{}{"chart": c.Name, "state": e.State.Name})
	return e, nil
}

// WithPublisher sets e's event side channel and returns e for chaining.
func (e *Execution) WithPublisher(p ports.EventPublisher) *Execution {
	e.Publisher = p
	return e
}

// queueActions appends action tags to the FIFO queue in assembly order.
func (e *Execution) queueActions(tags []string) {
	e.actions = append(e.actions, tags...)
}

// PendingActions returns the tags still queued for ExecuteActions, without
// draining them.
func (e *Execution) PendingActions() []string {
	return append([]string(nil), e.actions...)
}
