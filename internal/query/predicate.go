// Package query implements the four query predicates spec.md §6 names for
// hosts to filter persisted workflows by: state_equals, state_in,
// state_has_prefix, and step_complete. Each predicate is both a pure
// in-memory evaluator over a ports.WorkflowRecord and a SQL WHERE-fragment
// builder for the Postgres adapter.
package query

import (
	"fmt"
	"strings"

	"github.com/caseflow/caseflow/internal/ports"
)

// Predicate is satisfied by every query predicate kind.
type Predicate interface {
	// Match evaluates the predicate against an in-memory record.
	Match(rec *ports.WorkflowRecord) bool
	// SQL renders a WHERE-fragment and its positional arguments, with
	// placeholders starting at $argStart.
	SQL(argStart int) (fragment string, args []interface{})
}

// StateEquals matches records whose current state is exactly id.
type StateEquals struct{ ID string }

func (p StateEquals) Match(rec *ports.WorkflowRecord) bool { return rec.State == p.ID }

func (p StateEquals) SQL(argStart int) (string, []interface{}) {
	return fmt.Sprintf("state = $%d", argStart), []interface{}{p.ID}
}

// StateIn matches records whose current state is one of ids.
type StateIn struct{ IDs []string }

func (p StateIn) Match(rec *ports.WorkflowRecord) bool {
	for _, id := range p.IDs {
		if rec.State == id {
			return true
		}
	}
	return false
}

func (p StateIn) SQL(argStart int) (string, []interface{}) {
	if len(p.IDs) == 0 {
		return "FALSE", nil
	}
	placeholders := make([]string, len(p.IDs))
	args := make([]interface{}, len(p.IDs))
	for i, id := range p.IDs {
		placeholders[i] = fmt.Sprintf("$%d", argStart+i)
		args[i] = id
	}
	return "state IN (" + strings.Join(placeholders, ", ") + ")", args
}

// StateHasPrefix matches a state equal to prefix, or nested under it
// (prefix.<suffix>), mirroring chart.IsDescendantOf's dotted-path
// convention.
type StateHasPrefix struct{ Prefix string }

func (p StateHasPrefix) Match(rec *ports.WorkflowRecord) bool {
	return rec.State == p.Prefix || strings.HasPrefix(rec.State, p.Prefix+".")
}

func (p StateHasPrefix) SQL(argStart int) (string, []interface{}) {
	return fmt.Sprintf("(state = $%d OR state LIKE $%d)", argStart, argStart+1),
		[]interface{}{p.Prefix, p.Prefix + ".%"}
}

// StepComplete matches records where a step named name is complete in any
// of its states (across the record's flattened step list).
type StepComplete struct{ Name string }

func (p StepComplete) Match(rec *ports.WorkflowRecord) bool {
	for _, s := range rec.Steps {
		if s.Name == p.Name && s.Complete {
			return true
		}
	}
	return false
}

func (p StepComplete) SQL(argStart int) (string, []interface{}) {
	return fmt.Sprintf(
		"EXISTS (SELECT 1 FROM workflow_steps ws WHERE ws.workflow_id = workflows.id AND ws.name = $%d AND ws.is_complete)",
		argStart,
	), []interface{}{p.Name}
}

// BuildWhere combines predicates with AND, returning the full WHERE clause
// (without the leading "WHERE") and its arguments in placeholder order.
// An empty predicate list returns ("TRUE", nil).
func BuildWhere(predicates ...Predicate) (string, []interface{}) {
	if len(predicates) == 0 {
		return "TRUE", nil
	}
	var clauses []string
	var args []interface{}
	next := 1
	for _, p := range predicates {
		frag, pargs := p.SQL(next)
		clauses = append(clauses, frag)
		args = append(args, pargs...)
		next += len(pargs)
	}
	return strings.Join(clauses, " AND "), args
}

// MatchAll reports whether rec satisfies every predicate.
func MatchAll(rec *ports.WorkflowRecord, predicates ...Predicate) bool {
	for _, p := range predicates {
		if !p.Match(rec) {
			return false
		}
	}
	return true
}
