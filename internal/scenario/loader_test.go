package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoaderLoadsValidScenario(t *testing.T) {
	path := writeScript(t, `
chart: sale
subject: sale-1
steps:
  - event: send
  - complete: close
`)
	s, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "sale", s.Chart)
	assert.Equal(t, "sale-1", s.Subject)
	require.Len(t, s.Steps, 2)
	assert.Equal(t, "send", s.Steps[0].Event)
	assert.Equal(t, "close", s.Steps[1].Complete)
}

func TestLoaderRejectsAmbiguousStep(t *testing.T) {
	path := writeScript(t, `
chart: sale
subject: sale-1
steps:
  - event: send
    complete: close
`)
	_, err := NewLoader().Load(context.Background(), path)
	assert.Error(t, err)
}

func TestLoaderRejectsMissingChoice(t *testing.T) {
	path := writeScript(t, `
chart: vending_machine
subject: vm-1
steps:
  - decide: select
`)
	_, err := NewLoader().Load(context.Background(), path)
	assert.Error(t, err)
}

func TestLoaderRejectsMissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), "/nonexistent/path.yaml")
	assert.Error(t, err)
}
