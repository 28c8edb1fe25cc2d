package chartregistry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow/internal/chart"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := New()
	c := &chart.Chart{Name: "sale"}
	require.NoError(t, r.Register(c))

	got, err := r.Get("sale")
	require.NoError(t, err)
	assert.Same(t, c, got)
}

func TestRegistryDuplicateNameRejected(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(&chart.Chart{Name: "sale"}))
	err := r.Register(&chart.Chart{Name: "sale"})
	assert.Error(t, err)
}

func TestRegistryGetMissing(t *testing.T) {
	r := New()
	_, err := r.Get("missing")
	assert.Error(t, err)
}

func TestRegistryListSorted(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(&chart.Chart{Name: "vending_machine"}))
	require.NoError(t, r.Register(&chart.Chart{Name: "sale"}))
	assert.Equal(t, []string{"sale", "vending_machine"}, r.List())
}
