package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow/internal/chart"
)

func saleChart(t *testing.T) *chart.Chart {
	t.Helper()
	b := New("sale")
	b.Subject("sale_id", "Sale").InitialState("pending")
	b.State("pending", func(s *StateBuilder) {
		s.On(chart.Named("send"), "sent")
	})
	b.State("sent", func(s *StateBuilder) {
		s.Step("close")
		s.OnCompleted("close", "closed")
	})
	b.State("closed", func(s *StateBuilder) {
		s.Final()
	})
	c, err := b.Build()
	require.NoError(t, err)
	return c
}

func TestBuilderSaleHappyPath(t *testing.T) {
	c := saleChart(t)
	assert.Equal(t, "pending", c.InitialState)
	require.Contains(t, c.States, "sent")
	sent := c.States["sent"]
	require.Len(t, sent.Steps, 1)
	assert.Equal(t, "close", sent.Steps[0].Name)
	assert.Equal(t, 1, sent.Steps[0].Order)

	tr, ok := sent.Transitions[chart.Completed("close")]
	require.True(t, ok)
	assert.Equal(t, "closed", tr.Target())

	pending := c.States["pending"]
	tr, ok = pending.Transitions[chart.Named("send")]
	require.True(t, ok)
	assert.Equal(t, "sent", tr.Target())

	assert.Equal(t, chart.KindFinal, c.States["closed"].Kind)
}

func TestBuilderParallelStepsShareOrder(t *testing.T) {
	b := New("order")
	b.InitialState("not_done")
	b.State("not_done", func(s *StateBuilder) {
		s.Parallel(func(p *ParallelGroup) {
			p.Step("do_one_thing")
			p.Step("do_another_thing")
		})
		s.Step("do_last_thing")
		s.OnCompleted("do_last_thing", "done")
	})
	b.State("done", func(s *StateBuilder) {})
	c, err := b.Build()
	require.NoError(t, err)

	state := c.States["not_done"]
	require.Len(t, state.Steps, 3)
	byName := map[string]int{}
	for _, st := range state.Steps {
		byName[st.Name] = st.Order
	}
	assert.Equal(t, 1, byName["do_one_thing"])
	assert.Equal(t, 1, byName["do_another_thing"])
	assert.Equal(t, 2, byName["do_last_thing"])
}

func TestBuilderNestedStateDottedName(t *testing.T) {
	b := New("shipment")
	b.InitialState("pending")
	b.State("pending", func(s *StateBuilder) {
		s.InitialState("sending")
		s.On(chart.Named("cancel"), "cancelled")
		s.State("sending", func(c *StateBuilder) {
			c.Step("dispatch")
		})
	})
	b.State("cancelled", func(s *StateBuilder) { s.Final() })
	c, err := b.Build()
	require.NoError(t, err)

	require.Contains(t, c.States, "pending.sending")
	pending := c.States["pending"]
	assert.Equal(t, chart.KindCompound, pending.Kind)
	assert.Equal(t, "pending.sending", pending.InitialChild)

	tr := pending.Transitions[chart.Named("cancel")]
	assert.Equal(t, "cancelled", tr.Target())
}

func TestBuilderUpTarget(t *testing.T) {
	b := New("shipment")
	b.InitialState("pending")
	b.State("pending", func(s *StateBuilder) {
		s.InitialState("sending")
		s.State("sending", func(c *StateBuilder) {
			c.OnUp(chart.Named("cancel"), "cancelled")
		})
	})
	b.State("cancelled", func(s *StateBuilder) { s.Final() })
	c, err := b.Build()
	require.NoError(t, err)

	sending := c.States["pending.sending"]
	tr := sending.Transitions[chart.Named("cancel")]
	assert.Equal(t, "cancelled", tr.Target())
}

func TestBuilderSelfLoopTarget(t *testing.T) {
	b := New("doc")
	b.InitialState("editing")
	b.State("editing", func(s *StateBuilder) {
		s.On(chart.Named("save"), "_", Reset(false), Actions("persist"))
	})
	c, err := b.Build()
	require.NoError(t, err)

	editing := c.States["editing"]
	tr := editing.Transitions[chart.Named("save")]
	assert.Equal(t, "editing", tr.Target())
	assert.False(t, tr.Reset)
	assert.Equal(t, []string{"persist"}, tr.Actions)
}

func TestBuilderGuardedFallthrough(t *testing.T) {
	b := New("doc")
	b.InitialState("preparing")
	b.State("preparing", func(s *StateBuilder) {
		s.OnTargets(chart.Named("prepared"), []Target{T("reviewing"), T("sending")})
	})
	b.State("reviewing", func(s *StateBuilder) {})
	b.State("sending", func(s *StateBuilder) {})
	c, err := b.Build()
	require.NoError(t, err)

	preparing := c.States["preparing"]
	tr := preparing.Transitions[chart.Named("prepared")]
	assert.True(t, tr.IsFallthrough())
	assert.Equal(t, []string{"reviewing", "sending"}, tr.Targets)
}

func TestBuilderDuplicateStepNameRejected(t *testing.T) {
	b := New("doc")
	b.InitialState("editing")
	b.State("editing", func(s *StateBuilder) {
		s.Step("review")
		s.Step("review")
	})
	_, err := b.Build()
	assert.Error(t, err)
}

func TestBuilderMissingInitialStateRejected(t *testing.T) {
	b := New("doc")
	b.State("editing", func(s *StateBuilder) {})
	_, err := b.Build()
	assert.Error(t, err)
}

func TestBuilderUnresolvableTargetRejected(t *testing.T) {
	b := New("doc")
	b.InitialState("editing")
	b.State("editing", func(s *StateBuilder) {
		s.On(chart.Named("save"), "nonexistent")
	})
	_, err := b.Build()
	assert.Error(t, err)
}

func TestBuilderCompoundWithStepsRejected(t *testing.T) {
	b := New("doc")
	b.InitialState("working")
	b.State("working", func(s *StateBuilder) {
		s.Step("oops")
		s.InitialState("child")
		s.State("child", func(c *StateBuilder) {})
	})
	_, err := b.Build()
	assert.Error(t, err)
}

func TestBuilderVirtualTemplate(t *testing.T) {
	b := New("doc")
	b.Virtual("loggable", func(s *StateBuilder) {
		s.OnEntry("log_entry")
	})
	b.InitialState("editing")
	b.State("editing", func(s *StateBuilder) {
		s.Using("loggable")
		s.Step("review")
	})
	c, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"log_entry"}, c.States["editing"].EntryActions)
}

func TestBuilderRepeatableStepOption(t *testing.T) {
	b := New("doc")
	b.InitialState("editing")
	b.State("editing", func(s *StateBuilder) {
		s.Step("review", Repeatable())
	})
	c, err := b.Build()
	require.NoError(t, err)
	assert.True(t, c.States["editing"].IsRepeatable("review"))
}
