package ports

import "context"

// ScriptLoader loads a scenario script from an external source such as the
// filesystem or an embedded asset. A scenario script drives the demo CLI: it
// names a chart and a sequence of events to dispatch against a fresh
// execution. Implementations must be deterministic and respect context
// cancellation.
type ScriptLoader interface {
	// Load materializes a fully validated scenario from the provided path.
	Load(ctx context.Context, path string) (*Scenario, error)
}

// Scenario is the parsed shape of a scenario script.
type Scenario struct {
	Chart   string         `yaml:"chart" validate:"required"`
	Subject string         `yaml:"subject" validate:"required"`
	Steps   []ScenarioStep `yaml:"steps" validate:"required,dive"`
}

// ScenarioStep is one directive in a scenario script: exactly one of Event,
// Complete, or Decide must be set.
type ScenarioStep struct {
	Event    string            `yaml:"event,omitempty"`
	Complete string            `yaml:"complete,omitempty"`
	Decide   string            `yaml:"decide,omitempty"`
	Choice   string            `yaml:"choice,omitempty"`
	Context  map[string]string `yaml:"context,omitempty"`
}
