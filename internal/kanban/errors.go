package kanban

import (
	"fmt"
	"strings"
)

// ValidationError reports a field value the board refuses to store.
type ValidationError struct {
	Field string // field name or JSON path to the rejected value
	Err   error  // underlying reason
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// TaskNotFoundError reports a lookup for an id the document does not hold.
type TaskNotFoundError struct {
	ID string
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task %q not found", e.ID)
}

// WIPLimitError reports a create or move refused because the target column
// already holds as many tasks as its limit allows.
type WIPLimitError struct {
	Status Status
	Limit  int
	Count  int // tasks already in the column
}

func (e *WIPLimitError) Error() string {
	return fmt.Sprintf("wip limit reached for %s: %d of %d slots used", e.Status, e.Count, e.Limit)
}

// InvalidRelationshipError reports a parent or block reference that cannot
// hold: the referenced id is unknown, points at the task itself, or would
// close a parent cycle.
type InvalidRelationshipError struct {
	TaskID string // task being created or updated
	Field  string // parent_task_id, blocks, or blocked_by
	Ref    string // offending referenced id
	Reason string
}

func (e *InvalidRelationshipError) Error() string {
	return fmt.Sprintf("invalid %s reference %q on task %q: %s", e.Field, e.Ref, e.TaskID, e.Reason)
}

// TaskBlockedError reports a move to Done refused while tasks in the
// blocked_by list are still unfinished.
type TaskBlockedError struct {
	TaskID   string
	Blockers []string // ids still in a non-terminal status
}

func (e *TaskBlockedError) Error() string {
	return fmt.Sprintf("task %q cannot be Done: blocked by %s", e.TaskID, strings.Join(e.Blockers, ", "))
}

// StoreCorruptError reports a tasks file that exists but cannot be trusted.
// The store never rewrites a corrupt file; the caller must repair or move it
// aside by hand.
type StoreCorruptError struct {
	Path     string
	Findings []string // schema violations, one per offending location
	Err      error    // decode error when the file is not valid JSON at all
}

func (e *StoreCorruptError) Error() string {
	if len(e.Findings) > 0 {
		return fmt.Sprintf("tasks file %s is corrupt: %s", e.Path, strings.Join(e.Findings, "; "))
	}
	return fmt.Sprintf("tasks file %s is corrupt: %s", e.Path, e.Err)
}

// Unwrap returns the decode error, if any.
func (e *StoreCorruptError) Unwrap() error {
	return e.Err
}
