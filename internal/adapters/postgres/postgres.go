// Package postgres implements ports.Persistence over PostgreSQL, backed by
// the `workflows` / `workflow_steps` relational layout: one row per
// execution plus one row per step, with an optimistic-lock `lock_version`
// column guarding concurrent writers.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caseflow/caseflow/internal/chart"
	"github.com/caseflow/caseflow/internal/ports"
	pkgerrors "github.com/caseflow/caseflow/pkg/errors"
)

// Store implements ports.Persistence using an externally-owned
// *pgxpool.Pool. The caller creates and closes the pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store over an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Init creates the workflows/workflow_steps tables and indexes if they do
// not already exist. Safe to call multiple times.
func (s *Store) Init(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS workflows (
			id SERIAL PRIMARY KEY,
			subject_type TEXT NOT NULL,
			subject_id TEXT NOT NULL,
			name TEXT NOT NULL,
			state TEXT NOT NULL,
			is_complete BOOLEAN NOT NULL DEFAULT FALSE,
			lock_version INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (subject_type, subject_id)
		)`,
		`CREATE TABLE IF NOT EXISTS workflow_steps (
			id SERIAL PRIMARY KEY,
			workflow_id INTEGER NOT NULL REFERENCES workflows(id) ON DELETE CASCADE,
			state TEXT NOT NULL,
			name TEXT NOT NULL,
			"order" INTEGER NOT NULL,
			participant TEXT NOT NULL DEFAULT '',
			decision TEXT NOT NULL DEFAULT '',
			is_complete BOOLEAN NOT NULL DEFAULT FALSE,
			completed_at TIMESTAMPTZ,
			completed_metadata JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (workflow_id, state, name)
		)`,
		`CREATE INDEX IF NOT EXISTS workflow_steps_participant_idx ON workflow_steps(participant)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return pkgerrors.NewStorageError("init", err)
		}
	}
	return nil
}

// Load returns the persisted record for subject, or (nil, nil) when none
// exists yet.
func (s *Store) Load(ctx context.Context, subject ports.SubjectRef) (*ports.WorkflowRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, state, is_complete, lock_version, created_at, updated_at
		 FROM workflows WHERE subject_type = $1 AND subject_id = $2`,
		subject.Type, subject.ID)

	var rec ports.WorkflowRecord
	var id int
	if err := row.Scan(&id, &rec.Name, &rec.State, &rec.Complete, &rec.LockVersion, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, pkgerrors.NewStorageError("load", err)
	}
	rec.ID = fmt.Sprintf("%d", id)

	steps, err := s.loadSteps(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.Steps = steps
	return &rec, nil
}

func (s *Store) loadSteps(ctx context.Context, workflowID int) ([]ports.StepRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT state, name, "order", participant, decision, is_complete, completed_at, completed_metadata
		 FROM workflow_steps WHERE workflow_id = $1 ORDER BY "order", name`,
		workflowID)
	if err != nil {
		return nil, pkgerrors.NewStorageError("load_steps", err)
	}
	defer rows.Close()

	var steps []ports.StepRecord
	for rows.Next() {
		var st ports.StepRecord
		var metaJSON []byte
		if err := rows.Scan(&st.State, &st.Name, &st.Order, &st.Participant, &st.Decision, &st.Complete, &st.CompletedAt, &metaJSON); err != nil {
			return nil, pkgerrors.NewStorageError("scan_step", err)
		}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &st.CompletedMetadata); err != nil {
				return nil, pkgerrors.NewStorageError("unmarshal_metadata", err)
			}
		}
		steps = append(steps, st)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.NewStorageError("iterate_steps", err)
	}
	return steps, nil
}

// Create persists a fresh record built from an initial dump, inside a
// transaction so the workflow row and its step rows commit atomically.
func (s *Store) Create(ctx context.Context, subject ports.SubjectRef, dump ports.WorkflowDump) (*ports.WorkflowRecord, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, pkgerrors.NewStorageError("begin_tx", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int
	var createdAt, updatedAt time.Time
	err = tx.QueryRow(ctx,
		`INSERT INTO workflows (subject_type, subject_id, name, state, is_complete, lock_version)
		 VALUES ($1, $2, $3, $4, $5, 1)
		 RETURNING id, created_at, updated_at`,
		subject.Type, subject.ID, dump.Name, dump.State, dump.Complete,
	).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		return nil, pkgerrors.NewStorageError("create", err)
	}

	if err := insertSteps(ctx, tx, id, dump.Steps); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, pkgerrors.NewStorageError("commit", err)
	}

	return &ports.WorkflowRecord{
		ID:          fmt.Sprintf("%d", id),
		Name:        dump.Name,
		State:       dump.State,
		Complete:    dump.Complete,
		LockVersion: 1,
		Steps:       stepsFromDump(dump.Steps),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// Update persists dump over record within a transaction, incrementing
// lock_version via a conditional `WHERE lock_version = $n` update. Zero
// rows affected means a concurrent writer already advanced the row, which
// is reported as chart.NewPersistenceConflictError.
func (s *Store) Update(ctx context.Context, record *ports.WorkflowRecord, dump ports.WorkflowDump, opts map[string]interface{}) (*ports.WorkflowRecord, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, pkgerrors.NewStorageError("begin_tx", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE workflows SET state = $1, is_complete = $2, lock_version = lock_version + 1, updated_at = now()
		 WHERE id = $3 AND lock_version = $4`,
		dump.State, dump.Complete, record.ID, record.LockVersion)
	if err != nil {
		return nil, pkgerrors.NewStorageError("update", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, chart.NewPersistenceConflictError(nil, map[string]interface{}{
			"id": record.ID, "expected_lock_version": record.LockVersion,
		})
	}

	var metaJSON []byte
	if len(opts) > 0 {
		var err error
		metaJSON, err = json.Marshal(opts)
		if err != nil {
			return nil, pkgerrors.NewStorageError("marshal_metadata", err)
		}
	}

	for _, step := range dump.Steps {
		var completedAt *time.Time
		if step.Complete {
			now := timeNow()
			completedAt = &now
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO workflow_steps (workflow_id, state, name, "order", participant, decision, is_complete, completed_at, completed_metadata)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (workflow_id, state, name) DO UPDATE SET
			   "order" = EXCLUDED."order",
			   participant = EXCLUDED.participant,
			   decision = EXCLUDED.decision,
			   is_complete = EXCLUDED.is_complete,
			   completed_at = CASE WHEN EXCLUDED.is_complete AND NOT workflow_steps.is_complete
			                       THEN EXCLUDED.completed_at ELSE workflow_steps.completed_at END,
			   completed_metadata = CASE WHEN EXCLUDED.is_complete AND NOT workflow_steps.is_complete
			                             THEN EXCLUDED.completed_metadata ELSE workflow_steps.completed_metadata END,
			   updated_at = now()`,
			record.ID, step.State, step.Name, step.Order, step.Participant, step.Decision, step.Complete, completedAt, metaJSON)
		if err != nil {
			return nil, pkgerrors.NewStorageError("upsert_step", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, pkgerrors.NewStorageError("commit", err)
	}

	var idInt int
	if _, err := fmt.Sscanf(record.ID, "%d", &idInt); err != nil {
		return nil, pkgerrors.NewStorageError("parse_id", err)
	}
	steps, err := s.loadSteps(ctx, idInt)
	if err != nil {
		return nil, err
	}

	return &ports.WorkflowRecord{
		ID:          record.ID,
		Name:        dump.Name,
		State:       dump.State,
		Complete:    dump.Complete,
		LockVersion: record.LockVersion + 1,
		Steps:       steps,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   timeNow(),
	}, nil
}

func insertSteps(ctx context.Context, tx pgx.Tx, workflowID int, steps []ports.DumpStep) error {
	for _, step := range steps {
		_, err := tx.Exec(ctx,
			`INSERT INTO workflow_steps (workflow_id, state, name, "order", participant, decision, is_complete)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			workflowID, step.State, step.Name, step.Order, step.Participant, step.Decision, step.Complete)
		if err != nil {
			return pkgerrors.NewStorageError("insert_step", err)
		}
	}
	return nil
}

func stepsFromDump(steps []ports.DumpStep) []ports.StepRecord {
	out := make([]ports.StepRecord, len(steps))
	for i, st := range steps {
		out[i] = ports.StepRecord{
			State: st.State, Name: st.Name, Order: st.Order,
			Participant: st.Participant, Decision: st.Decision, Complete: st.Complete,
		}
	}
	return out
}

var timeNow = func() time.Time { return time.Now().UTC() }

var _ ports.Persistence = (*Store)(nil)
