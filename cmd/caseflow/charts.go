package main

import (
	"github.com/caseflow/caseflow/internal/builder"
	"github.com/caseflow/caseflow/internal/chart"
)

// saleChart is the bundled chart behind scenario S1 — a sale moving from
// pending through a closing step to a final closed state.
func saleChart() *chart.Chart {
	b := builder.New("sale")
	b.Subject("sale_id", "Sale").Participant("clerk").InitialState("pending")
	b.State("pending", func(s *builder.StateBuilder) {
		s.On(chart.Named("send"), "sent")
	})
	b.State("sent", func(s *builder.StateBuilder) {
		s.Step("close", builder.Participant("clerk"))
		s.OnCompleted("close", "closed")
	})
	b.State("closed", func(s *builder.StateBuilder) {
		s.Final()
	})
	return b.MustBuild()
}

// vendingMachineChart is the bundled chart behind scenario S6 — coin
// tallying with a guarded fallthrough into payment states.
func vendingMachineChart() *chart.Chart {
	b := builder.New("vending_machine")
	b.Subject("machine_id", "VendingMachine").InitialState("working")
	b.State("working", func(s *builder.StateBuilder) {
		s.InitialState("waiting")
		s.State("waiting", func(w *builder.StateBuilder) {
			w.On(chart.Named("coin"), "calculating")
		})
		s.State("calculating", func(c *builder.StateBuilder) {
			c.OnNullFallthrough([]builder.Target{builder.T("paid"), builder.T("paying")})
		})
		s.State("paying", func(p *builder.StateBuilder) {
			p.On(chart.Named("coin"), "calculating")
		})
		s.State("paid", func(p *builder.StateBuilder) {
			p.On(chart.Named("select"), "vending")
		})
		s.State("vending", func(v *builder.StateBuilder) {
			v.OnEntry("vend")
			v.On(chart.Named("vended"), "waiting")
		})
	})
	return b.MustBuild()
}
