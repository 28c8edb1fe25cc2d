// Package memory provides an in-process ports.Persistence implementation
// backed by a mutex-guarded map, useful for tests and single-process
// demos where a relational store is unnecessary.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/caseflow/caseflow/internal/chart"
	"github.com/caseflow/caseflow/internal/ports"
)

// Store implements ports.Persistence over an in-memory map keyed by
// subject reference. It is safe for concurrent use across subjects, but
// callers are still responsible for serializing writes to the same
// subject the way the interpreter's single-threaded model expects.
type Store struct {
	mu      sync.Mutex
	records map[string]*ports.WorkflowRecord
	nextID  int
}

// New returns an empty Store.
func New() *Store {
	return &Store{records: make(map[string]*ports.WorkflowRecord)}
}

func key(subject ports.SubjectRef) string {
	return subject.Type + ":" + subject.ID
}

// Load returns the persisted record for subject, or (nil, nil) when none
// exists yet.
func (s *Store) Load(_ context.Context, subject ports.SubjectRef) (*ports.WorkflowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key(subject)]
	if !ok {
		return nil, nil
	}
	return cloneRecord(rec), nil
}

// Create persists a fresh record built from an initial dump.
func (s *Store) Create(_ context.Context, subject ports.SubjectRef, dump ports.WorkflowDump) (*ports.WorkflowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(subject)
	if _, exists := s.records[k]; exists {
		return nil, fmt.Errorf("memory: record already exists for subject %s", k)
	}

	s.nextID++
	now := timeNow()
	rec := &ports.WorkflowRecord{
		ID:          fmt.Sprintf("%d", s.nextID),
		Name:        dump.Name,
		State:       dump.State,
		Complete:    dump.Complete,
		LockVersion: 1,
		Steps:       stepsFromDump(dump.Steps),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.records[k] = rec
	return cloneRecord(rec), nil
}

// Update persists dump over record, incrementing lock_version. A
// lock_version mismatch against the stored record is reported as
// chart.NewPersistenceConflictError, mirroring the `WHERE lock_version =
// $n` conditional update a relational adapter performs.
func (s *Store) Update(_ context.Context, record *ports.WorkflowRecord, dump ports.WorkflowDump, opts map[string]interface{}) (*ports.WorkflowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *ports.WorkflowRecord
	var k string
	for rk, rec := range s.records {
		if rec.ID == record.ID {
			found, k = rec, rk
			break
		}
	}
	if found == nil {
		return nil, fmt.Errorf("memory: no record with id %s", record.ID)
	}
	if found.LockVersion != record.LockVersion {
		return nil, chart.NewPersistenceConflictError(nil, map[string]interface{}{
			"id": record.ID, "expected": record.LockVersion, "actual": found.LockVersion,
		})
	}

	now := timeNow()
	next := &ports.WorkflowRecord{
		ID:          found.ID,
		Name:        dump.Name,
		State:       dump.State,
		Complete:    dump.Complete,
		LockVersion: found.LockVersion + 1,
		Steps:       stepsFromDump(dump.Steps),
		CreatedAt:   found.CreatedAt,
		UpdatedAt:   now,
	}
	for i := range next.Steps {
		if next.Steps[i].Complete && !stepWasComplete(found, next.Steps[i]) {
			t := now
			next.Steps[i].CompletedAt = &t
			next.Steps[i].CompletedMetadata = opts
		}
	}
	s.records[k] = next
	return cloneRecord(next), nil
}

func stepWasComplete(prev *ports.WorkflowRecord, step ports.StepRecord) bool {
	for _, s := range prev.Steps {
		if s.State == step.State && s.Name == step.Name {
			return s.Complete
		}
	}
	return false
}

func stepsFromDump(steps []ports.DumpStep) []ports.StepRecord {
	out := make([]ports.StepRecord, len(steps))
	for i, s := range steps {
		out[i] = ports.StepRecord{
			State:       s.State,
			Name:        s.Name,
			Order:       s.Order,
			Participant: s.Participant,
			Decision:    s.Decision,
			Complete:    s.Complete,
		}
	}
	return out
}

func cloneRecord(rec *ports.WorkflowRecord) *ports.WorkflowRecord {
	clone := *rec
	clone.Steps = append([]ports.StepRecord(nil), rec.Steps...)
	return &clone
}

var timeNow = func() time.Time { return time.Now().UTC() }

var _ ports.Persistence = (*Store)(nil)
