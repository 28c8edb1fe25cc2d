package chart

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a well-known interpreter or builder failure.
type ErrorCode string

const (
	ErrCodeNoTransition        ErrorCode = "NO_TRANSITION"
	ErrCodeNoState             ErrorCode = "NO_STATE"
	ErrCodeGuardRejected       ErrorCode = "GUARD_REJECTED"
	ErrCodeStepOutOfOrder      ErrorCode = "STEP_OUT_OF_ORDER"
	ErrCodeUnknownStep         ErrorCode = "UNKNOWN_STEP"
	ErrCodeUnknownAction       ErrorCode = "UNKNOWN_ACTION"
	ErrCodeInvalidChart        ErrorCode = "INVALID_CHART"
	ErrCodePersistenceConflict ErrorCode = "PERSISTENCE_CONFLICT"
)

// DomainError is a typed error enriched with contextual metadata, carried
// free of any storage or transport dependency so the interpreter never
// leaks infrastructure concerns into its return values.
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As.
func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is allows errors.Is comparisons against other DomainError values by code.
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if !errors.As(target, &de) {
		return false
	}
	return e.Code == de.Code
}

// WithContext returns a clone of e with additional context merged in.
func (e *DomainError) WithContext(ctx map[string]interface{}) *DomainError {
	if e == nil {
		return nil
	}
	merged := make(map[string]interface{}, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	return &DomainError{Code: e.Code, Message: e.Message, Cause: e.Cause, Context: merged}
}

func newError(code ErrorCode, message string, cause error, ctx map[string]interface{}) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause, Context: ctx}
}

// NewNoTransitionError reports that no transition handles event from a state
// and none of its ancestors handle it either.
func NewNoTransitionError(from string, event Event) *DomainError {
	return newError(ErrCodeNoTransition, "no transition for event", nil, map[string]interface{}{
		"from":  from,
		"event": event.String(),
	})
}

// NewNoStateError reports a transition pointing at an unresolved state name.
// After builder validation this should be impossible to reach.
func NewNoStateError(target string) *DomainError {
	return newError(ErrCodeNoState, "transition target does not exist", nil, map[string]interface{}{
		"target": target,
	})
}

// NewGuardRejectedError wraps a host guard's rejection reason.
func NewGuardRejectedError(reason string) *DomainError {
	return newError(ErrCodeGuardRejected, "guard rejected transition", nil, map[string]interface{}{
		"reason": reason,
	})
}

// NewStepOutOfOrderError reports that a step outside the current next-step
// set was completed.
func NewStepOutOfOrderError(nextSteps []string) *DomainError {
	return newError(ErrCodeStepOutOfOrder, formatNextSteps(nextSteps), nil, map[string]interface{}{
		"next_steps": nextSteps,
	})
}

func formatNextSteps(steps []string) string {
	if len(steps) == 1 {
		return fmt.Sprintf("next step is: %s", steps[0])
	}
	msg := "next step is:"
	if len(steps) > 1 {
		msg = "next steps are:"
	}
	for i, s := range steps {
		if i > 0 {
			msg += ","
		}
		msg += " " + s
	}
	return msg
}

// NewUnknownStepError reports completion of a step not present on the
// current state.
func NewUnknownStepError(name string) *DomainError {
	return newError(ErrCodeUnknownStep, "unknown step", nil, map[string]interface{}{"step": name})
}

// NewUnknownActionError reports an action tag the callback cannot resolve.
func NewUnknownActionError(tag string) *DomainError {
	return newError(ErrCodeUnknownAction, "callback does not implement action", nil, map[string]interface{}{"action": tag})
}

// NewInvalidChartError reports a builder-time chart compilation failure.
func NewInvalidChartError(reason string, ctx map[string]interface{}) *DomainError {
	return newError(ErrCodeInvalidChart, reason, nil, ctx)
}

// NewPersistenceConflictError reports an optimistic-lock failure surfaced by
// a persistence adapter.
func NewPersistenceConflictError(cause error, ctx map[string]interface{}) *DomainError {
	return newError(ErrCodePersistenceConflict, "optimistic lock conflict", cause, ctx)
}
