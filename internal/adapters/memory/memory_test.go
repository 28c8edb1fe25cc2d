package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow/internal/chart"
	"github.com/caseflow/caseflow/internal/ports"
)

func TestCreateThenLoadRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()
	subject := ports.SubjectRef{Type: "Sale", ID: "s1"}
	dump := ports.WorkflowDump{
		Name:  "sale",
		State: "pending",
		Steps: []ports.DumpStep{{State: "sent", Name: "close", Order: 1}},
	}

	rec, err := s.Create(ctx, subject, dump)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.LockVersion)

	loaded, err := s.Load(ctx, subject)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, loaded.ID)
	assert.Equal(t, "pending", loaded.State)
}

func TestLoadMissingReturnsNilNil(t *testing.T) {
	s := New()
	rec, err := s.Load(context.Background(), ports.SubjectRef{Type: "Sale", ID: "missing"})
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestUpdateIncrementsLockVersion(t *testing.T) {
	s := New()
	ctx := context.Background()
	subject := ports.SubjectRef{Type: "Sale", ID: "s1"}
	rec, err := s.Create(ctx, subject, ports.WorkflowDump{Name: "sale", State: "pending"})
	require.NoError(t, err)

	updated, err := s.Update(ctx, rec, ports.WorkflowDump{Name: "sale", State: "sent"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.LockVersion)
	assert.Equal(t, "sent", updated.State)
}

func TestUpdateConflictOnStaleLockVersion(t *testing.T) {
	s := New()
	ctx := context.Background()
	subject := ports.SubjectRef{Type: "Sale", ID: "s1"}
	rec, err := s.Create(ctx, subject, ports.WorkflowDump{Name: "sale", State: "pending"})
	require.NoError(t, err)

	_, err = s.Update(ctx, rec, ports.WorkflowDump{Name: "sale", State: "sent"}, nil)
	require.NoError(t, err)

	_, err = s.Update(ctx, rec, ports.WorkflowDump{Name: "sale", State: "closed"}, nil)
	require.Error(t, err)
	var de *chart.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, chart.ErrCodePersistenceConflict, de.Code)
}

func TestUpdateStampsStepCompletion(t *testing.T) {
	s := New()
	ctx := context.Background()
	subject := ports.SubjectRef{Type: "Sale", ID: "s1"}
	rec, err := s.Create(ctx, subject, ports.WorkflowDump{
		Name: "sale", State: "sent",
		Steps: []ports.DumpStep{{State: "sent", Name: "close", Order: 1}},
	})
	require.NoError(t, err)

	updated, err := s.Update(ctx, rec, ports.WorkflowDump{
		Name: "sale", State: "sent",
		Steps: []ports.DumpStep{{State: "sent", Name: "close", Order: 1, Complete: true}},
	}, map[string]interface{}{"by": "alice"})
	require.NoError(t, err)
	require.Len(t, updated.Steps, 1)
	assert.True(t, updated.Steps[0].Complete)
	require.NotNil(t, updated.Steps[0].CompletedAt)
	assert.Equal(t, "alice", updated.Steps[0].CompletedMetadata["by"])
}
