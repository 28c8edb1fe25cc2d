// Package chartregistry provides an in-memory name-to-chart registry so a
// host process can compile its charts once at startup and look them up by
// name thereafter (e.g. the name stored alongside a persisted workflow
// record).
package chartregistry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/caseflow/caseflow/internal/chart"
	"github.com/caseflow/caseflow/internal/ports"
)

// Registry implements ports.ChartRegistry with a mutex-guarded map.
type Registry struct {
	mu     sync.RWMutex
	charts map[string]*chart.Chart
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{charts: make(map[string]*chart.Chart)}
}

// Register adds c under c.Name, rejecting a duplicate name.
func (r *Registry) Register(c *chart.Chart) error {
	if c == nil {
		return fmt.Errorf("chartregistry: nil chart")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.charts[c.Name]; exists {
		return fmt.Errorf("chartregistry: chart %q already registered", c.Name)
	}
	r.charts[c.Name] = c
	return nil
}

// Get returns the chart registered under name.
func (r *Registry) Get(name string) (*chart.Chart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.charts[name]
	if !ok {
		return nil, fmt.Errorf("chartregistry: chart %q not registered", name)
	}
	return c, nil
}

// List returns all registered chart names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.charts))
	for name := range r.charts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var _ ports.ChartRegistry = (*Registry)(nil)
