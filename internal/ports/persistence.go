package ports

import (
	"context"
	"time"
)

// Persistence is the abstract collaborator through which an adapter loads,
// creates, and updates the durable record backing one subject's execution.
// The interpreter itself never depends on this interface; only adapters do.
type Persistence interface {
	// Load returns the persisted record for subject, or (nil, nil) when none
	// exists yet.
	Load(ctx context.Context, subject SubjectRef) (*WorkflowRecord, error)

	// Create persists a fresh record built from an initial dump.
	Create(ctx context.Context, subject SubjectRef, dump WorkflowDump) (*WorkflowRecord, error)

	// Update persists dump over record within a transaction, incrementing
	// lock_version. Step completions are timestamped and carry opts as
	// completed_metadata. A concurrent writer having already advanced
	// lock_version past record.LockVersion must be reported as
	// chart.NewPersistenceConflictError.
	Update(ctx context.Context, record *WorkflowRecord, dump WorkflowDump, opts map[string]interface{}) (*WorkflowRecord, error)
}

// SubjectRef identifies the host entity a workflow is bound to.
type SubjectRef struct {
	Type string
	ID   string
}

// WorkflowRecord is the durable shape of one execution.
type WorkflowRecord struct {
	ID          string
	Name        string
	State       string
	Complete    bool
	LockVersion int
	Steps       []StepRecord
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StepRecord is the durable shape of one step within a WorkflowRecord.
type StepRecord struct {
	State             string
	Name              string
	Order             int
	Participant       string
	Decision          string
	Complete          bool
	CompletedAt       *time.Time
	CompletedMetadata map[string]interface{}
}

// WorkflowDump is the serializable execution snapshot an adapter persists;
// it mirrors the shape produced by the execution package's Dump function
// without this package needing to import it.
type WorkflowDump struct {
	Name         string
	State        string
	Complete     bool
	Participants []string
	SubjectKey   string
	Steps        []DumpStep
}

// DumpStep is one flattened step entry within a WorkflowDump.
type DumpStep struct {
	State       string
	Order       int
	Name        string
	Complete    bool
	Decision    string
	Participant string
}
