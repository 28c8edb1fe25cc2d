package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("scenario.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "scenario.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "scenario.yaml")
}

func TestValidationErrorAggregatesFields(t *testing.T) {
	t.Parallel()

	err := NewValidationError("steps[1].decide", "missing choice", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "steps[1].decide", validationErr.Field)
	require.Contains(t, validationErr.Message, "missing choice")
}

func TestStorageErrorIncludesOperationContext(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("connection reset")
	err := NewStorageError("load", underlying)

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	require.Equal(t, "load", storageErr.Operation)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestRegistryErrorIncludesChartName(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("not found")
	err := NewRegistryError("sale", underlying)

	var registryErr *RegistryError
	require.ErrorAs(t, err, &registryErr)
	require.Equal(t, "sale", registryErr.Chart)
	require.True(t, stdErrors.Is(err, underlying))
}
