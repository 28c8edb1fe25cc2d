package main

import (
	"context"

	"github.com/caseflow/caseflow/internal/ports"
)

// loggingCallback is the demo CLI's Callback implementation: every action
// is accepted and logged rather than dispatched to a real side effect, and
// every guard call defers to the optional guardFn (nil means "always
// accept"). It does not implement use_step?, so every step is kept.
type loggingCallback struct {
	logger  ports.Logger
	guardFn func(from, to string, ctx map[string]interface{}) error
}

func (c *loggingCallback) Action(tag string, ctx map[string]interface{}) (ports.ActionResult, error) {
	if c.logger != nil {
		c.logger.Info(context.Background(), "dispatching action", "action", tag)
	}
	return ports.OK(), nil
}

func (c *loggingCallback) Guard(fromID, toID string, ctx map[string]interface{}) error {
	if c.guardFn == nil {
		return nil
	}
	return c.guardFn(fromID, toID, ctx)
}

var (
	_ ports.Callback = (*loggingCallback)(nil)
	_ ports.Guard    = (*loggingCallback)(nil)
)
