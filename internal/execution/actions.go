package execution

import "github.com/caseflow/caseflow/internal/ports"

// ExecuteActions drains the action queue in FIFO order against the
// callback. A result is recorded per-tag in the returned map only for
// actions that return WithValue. On the first action error, the drain
// aborts: the failing action and everything after it remain queued so a
// caller may amend context and retry.
func (e *Execution) ExecuteActions() (map[string]interface{}, error) {
	results := make(map[string]interface{})
	for len(e.actions) > 0 {
		tag := e.actions[0]
		e.publish(ports.EventActionStarted, map[string]interface{}{"action": tag})
		res, err := e.Callback.Action(tag, e.Context)
		if err != nil {
			e.publish(ports.EventActionFailed, map[string]interface{}{"action": tag, "error": err.Error()})
			return results, err
		}
		e.publish(ports.EventActionCompleted, map[string]interface{}{"action": tag})
		e.actions = e.actions[1:]

		switch res.Kind {
		case ports.ActionOK:
		case ports.ActionValue:
			results[tag] = res.Value
		case ports.ActionUpdatedContext:
			e.Context = res.Context
		case ports.ActionUpdatedKey:
			if e.Context == nil {
				e.Context = make(map[string]interface{})
			}
			e.Context[res.Key] = res.Value
		}
	}
	return results, nil
}
