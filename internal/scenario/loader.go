// Package scenario loads YAML scenario scripts for the caseflow demo CLI: a
// named chart, a subject identifier, and an ordered list of event/complete/
// decide directives to dispatch against a fresh execution.
package scenario

import (
	"context"
	"fmt"
	"os"

	validatorpkg "github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/caseflow/caseflow/internal/ports"
)

// Loader reads and validates scenario scripts from the filesystem.
type Loader struct {
	validate *validatorpkg.Validate
}

// NewLoader returns a Loader with a fresh validator instance.
func NewLoader() *Loader {
	return &Loader{validate: validatorpkg.New()}
}

// Load implements ports.ScriptLoader.
func (l *Loader) Load(ctx context.Context, path string) (*ports.Scenario, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}

	var s ports.Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
	}

	if err := l.validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("scenario: validate %s: %w", path, err)
	}

	for i, step := range s.Steps {
		if err := validateStep(step); err != nil {
			return nil, fmt.Errorf("scenario: %s: step %d: %w", path, i, err)
		}
	}

	return &s, nil
}

func validateStep(step ports.ScenarioStep) error {
	set := 0
	if step.Event != "" {
		set++
	}
	if step.Complete != "" {
		set++
	}
	if step.Decide != "" {
		set++
	}
	if set != 1 {
		return fmt.Errorf("exactly one of event, complete, decide must be set")
	}
	if step.Decide != "" && step.Choice == "" {
		return fmt.Errorf("decide %q requires a choice", step.Decide)
	}
	return nil
}

var _ ports.ScriptLoader = (*Loader)(nil)
