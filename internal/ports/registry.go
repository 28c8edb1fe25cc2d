package ports

import "github.com/caseflow/caseflow/internal/chart"

// ChartRegistry resolves a chart by name. Hosts register compiled charts at
// startup; the CLI looks them up by the chart name a scenario script gives.
type ChartRegistry interface {
	Register(c *chart.Chart) error
	Get(name string) (*chart.Chart, error)
	List() []string
}
