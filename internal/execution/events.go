package execution

import (
	"context"
)

// domainEvent is the execution package's ports.DomainEvent implementation:
// a type tag plus a flat key/value payload, rendered by whatever
// ports.EventPublisher the host wired in (typically a logging publisher).
type domainEvent struct {
	eventType string
	payload   map[string]interface{}
}

func (e domainEvent) EventType() string    { return e.eventType }
func (e domainEvent) Payload() interface{} { return e.payload }

// publish is a best-effort side channel: it never affects the outcome of
// the call that triggered it. Publisher is nil-safe (most Executions never
// set one), and any publish error is swallowed — domain behavior is fully
// determined by the return values of Transition/Complete/Decision/
// ExecuteActions, never by whether an observer was listening.
func (e *Execution) publish(eventType string, payload map[string]interface{}) {
	if e.Publisher == nil {
		return
	}
	_ = e.Publisher.Publish(context.Background(), domainEvent{eventType: eventType, payload: payload})
}
