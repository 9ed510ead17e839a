package kanban

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecoveryPendingMarker labels salvage blocks appended to the recovery file
// when a save fails. The recover command points users at these blocks.
const RecoveryPendingMarker = "[RECOVERY_PENDING]"

// eventCreated is the history line written when a task is born.
const eventCreated = "Created"

// statusChangeEvent is the history line fragment written when a task changes
// column. Cycle-time measurement matches on the same strings.
func statusChangeEvent(s Status) string {
	return fmt.Sprintf("Status to '%s'", s)
}

// Store owns the tasks document on disk. Every operation is a full
// load-mutate-save cycle; nothing is cached between calls, so concurrent
// invocations race at whole-document granularity and the last writer wins.
type Store struct {
	path         string
	recoveryPath string
}

// NewStore returns a store over the document at path. recoveryPath names the
// file that receives salvage appends when a save fails; empty disables them.
func NewStore(path, recoveryPath string) *Store {
	return &Store{path: path, recoveryPath: recoveryPath}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. A missing file yields a fresh empty document; a
// present but unreadable or malformed one yields StoreCorruptError. Corrupt
// files are never rewritten, so nothing a failed load touched can be lost.
func (s *Store) Load() (*Document, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return NewDocument(time.Now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks file: %w", err)
	}

	findings, err := ValidateShape(raw)
	if err != nil {
		return nil, &StoreCorruptError{Path: s.path, Err: err}
	}
	if len(findings) > 0 {
		return nil, &StoreCorruptError{Path: s.path, Findings: findings}
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &StoreCorruptError{Path: s.path, Err: err}
	}
	if doc.Metadata.WIPLimits == nil {
		doc.Metadata.WIPLimits = map[Status]int{}
	}
	if doc.Tasks == nil {
		doc.Tasks = []Task{}
	}
	return &doc, nil
}

// Save stamps and persists the document atomically: the bytes land in a temp
// file in the same directory, then replace the document in one rename. On
// failure the task list is salvaged to the recovery file before returning.
func (s *Store) Save(d *Document) error {
	d.Schema = SchemaURL
	d.Metadata.LastSync = time.Now().UTC()

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		s.salvage(d)
		return fmt.Errorf("failed to encode tasks file: %w", err)
	}
	data = append(data, '\n')

	if err := s.writeAtomic(data); err != nil {
		s.salvage(d)
		return err
	}
	return nil
}

func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".tasks-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace tasks file: %w", err)
	}
	return nil
}

// salvage appends the in-memory task list to the recovery file so a failed
// save never silently discards work. Salvage errors are swallowed since this
// already runs on the failure path.
func (s *Store) salvage(d *Document) {
	if s.recoveryPath == "" {
		return
	}
	blob, err := json.MarshalIndent(d.Tasks, "", "  ")
	if err != nil {
		return
	}
	f, err := os.OpenFile(s.recoveryPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "\n\n## %s %s\n\n```json\n%s\n```\n",
		RecoveryPendingMarker, time.Now().UTC().Format(time.RFC3339), blob)
}

// Draft carries the fields accepted at task creation. New tasks always start
// Open; TaskCreator is fixed for the task's lifetime.
type Draft struct {
	Title           string
	LongDescription string
	URL             string
	Criticality     Criticality
	Priority        Priority
	Enthusiasm      Enthusiasm
	IsMilestone     bool
	DueDate         *time.Time
	Tags            []string
	IsSubtask       bool
	ParentTaskID    string
	Order           *int
	TaskCreator     string
	Assignee        string
	CustomFields    map[string]string
	Blocks          []string
	BlockedBy       []string

	// Actor is recorded in the creation history event.
	Actor string
}

// Patch carries a partial update. Nil pointer fields are left untouched.
type Patch struct {
	Title           *string
	LongDescription *string
	URL             *string
	Criticality     *Criticality
	Priority        *Priority
	Enthusiasm      *Enthusiasm
	Status          *Status
	IsMilestone     *bool

	// DueDate sets a new due date; ClearDueDate drops the current one.
	DueDate      *time.Time
	ClearDueDate bool

	// Tags replaces the whole tag set.
	Tags *[]string

	// ParentTaskID reparents the task; the empty string clears the parent
	// and resets is_subtask.
	ParentTaskID *string

	Order    *int
	Assignee *string

	// CustomFields upserts per key; existing keys not named stay.
	CustomFields map[string]string

	// Blocks and BlockedBy replace the whole edge set; inverse edges on the
	// referenced tasks are rewritten to match.
	Blocks    *[]string
	BlockedBy *[]string

	// Actor is recorded in the update history event and becomes the
	// assignee when a task moves to InProgress unassigned.
	Actor string
}

// Create validates the draft, assigns a fresh id, and appends the task. The
// new task starts Open, which may itself be capped by a WIP limit.
func (s *Store) Create(draft Draft) (*Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, &ValidationError{Field: "title", Err: errors.New("required")}
	}
	if draft.Criticality == "" {
		return nil, &ValidationError{Field: "criticality", Err: errors.New("required")}
	}
	if !draft.Criticality.Valid() {
		return nil, &ValidationError{Field: "criticality", Err: fmt.Errorf("invalid value %q", draft.Criticality)}
	}
	if draft.Priority == "" {
		return nil, &ValidationError{Field: "priority", Err: errors.New("required")}
	}
	if !draft.Priority.Valid() {
		return nil, &ValidationError{Field: "priority", Err: fmt.Errorf("invalid value %q", draft.Priority)}
	}
	if draft.IsMilestone {
		draft.Enthusiasm = EnthusiasmNone
	} else if draft.Enthusiasm == EnthusiasmNone {
		return nil, &ValidationError{Field: "enthusiasm", Err: errors.New("required")}
	}
	if draft.ParentTaskID != "" {
		draft.IsSubtask = true
	}
	if draft.IsSubtask && draft.ParentTaskID == "" {
		return nil, &ValidationError{Field: "parent_task_id", Err: errors.New("required for subtasks")}
	}
	for key := range draft.CustomFields {
		if strings.TrimSpace(key) == "" {
			return nil, &ValidationError{Field: "custom_fields", Err: errors.New("keys must be non-empty")}
		}
	}

	doc, err := s.Load()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if draft.ParentTaskID != "" {
		if err := validateParent(doc, id, draft.ParentTaskID); err != nil {
			return nil, err
		}
	}
	blocks := normalizeRefs(draft.Blocks)
	blockedBy := normalizeRefs(draft.BlockedBy)
	if err := validateRefs(doc, id, "blocks", blocks); err != nil {
		return nil, err
	}
	if err := validateRefs(doc, id, "blocked_by", blockedBy); err != nil {
		return nil, err
	}
	if err := checkWIP(doc, StatusOpen); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := Task{
		ID:              id,
		Title:           strings.TrimSpace(draft.Title),
		LongDescription: draft.LongDescription,
		URL:             draft.URL,
		Criticality:     draft.Criticality,
		Priority:        draft.Priority,
		Enthusiasm:      draft.Enthusiasm,
		Status:          StatusOpen,
		IsMilestone:     draft.IsMilestone,
		DueDate:         draft.DueDate,
		Tags:            normalizeTags(draft.Tags),
		IsSubtask:       draft.IsSubtask,
		ParentTaskID:    draft.ParentTaskID,
		Order:           draft.Order,
		TaskCreator:     draft.TaskCreator,
		Assignee:        draft.Assignee,
		Blocks:          blocks,
		BlockedBy:       blockedBy,
		History:         []Event{{Timestamp: now, Event: eventCreated, Actor: draft.Actor}},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if len(draft.CustomFields) > 0 {
		task.CustomFields = make(map[string]string, len(draft.CustomFields))
		for k, v := range draft.CustomFields {
			task.CustomFields[k] = v
		}
	}

	doc.Tasks = append(doc.Tasks, task)
	reconcileBlocks(doc, id, nil, blocks, now)
	reconcileBlockedBy(doc, id, nil, blockedBy, now)

	if err := s.Save(doc); err != nil {
		return nil, err
	}
	out := task.Clone()
	return &out, nil
}

// Update applies a partial change to one task. Everything is validated
// against the post-patch values before the first field is touched, so a
// rejected update leaves the document exactly as loaded. An update that
// changes nothing is not persisted.
func (s *Store) Update(id string, patch Patch) (*Task, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	t := doc.Task(id)
	if t == nil {
		return nil, &TaskNotFoundError{ID: id}
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, &ValidationError{Field: "title", Err: errors.New("cannot be empty")}
	}
	if patch.Criticality != nil && !patch.Criticality.Valid() {
		return nil, &ValidationError{Field: "criticality", Err: fmt.Errorf("invalid value %q", *patch.Criticality)}
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, &ValidationError{Field: "priority", Err: fmt.Errorf("invalid value %q", *patch.Priority)}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, &ValidationError{Field: "status", Err: fmt.Errorf("invalid value %q", *patch.Status)}
	}
	for key := range patch.CustomFields {
		if strings.TrimSpace(key) == "" {
			return nil, &ValidationError{Field: "custom_fields", Err: errors.New("keys must be non-empty")}
		}
	}

	if patch.ParentTaskID != nil && *patch.ParentTaskID != "" {
		if err := validateParent(doc, id, *patch.ParentTaskID); err != nil {
			return nil, err
		}
	}

	var newBlocks, newBlockedBy []string
	if patch.Blocks != nil {
		newBlocks = normalizeRefs(*patch.Blocks)
		if err := validateRefs(doc, id, "blocks", newBlocks); err != nil {
			return nil, err
		}
	}
	if patch.BlockedBy != nil {
		newBlockedBy = normalizeRefs(*patch.BlockedBy)
		if err := validateRefs(doc, id, "blocked_by", newBlockedBy); err != nil {
			return nil, err
		}
	}

	if patch.Status != nil && *patch.Status != t.Status {
		if err := checkWIP(doc, *patch.Status); err != nil {
			return nil, err
		}
		if *patch.Status == StatusDone {
			blockedBy := t.BlockedBy
			if patch.BlockedBy != nil {
				blockedBy = newBlockedBy
			}
			if open := openBlockerIDs(doc, blockedBy); len(open) > 0 {
				return nil, &TaskBlockedError{TaskID: id, Blockers: open}
			}
		}
	}

	now := time.Now().UTC()
	var changes []string
	record := func(format string, args ...interface{}) {
		changes = append(changes, fmt.Sprintf(format, args...))
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) != t.Title {
		t.Title = strings.TrimSpace(*patch.Title)
		record("Title to '%s'", t.Title)
	}
	if patch.LongDescription != nil && *patch.LongDescription != t.LongDescription {
		t.LongDescription = *patch.LongDescription
		record("Long description to '%s'", t.LongDescription)
	}
	if patch.URL != nil && *patch.URL != t.URL {
		t.URL = *patch.URL
		record("URL to '%s'", t.URL)
	}
	if patch.Criticality != nil && *patch.Criticality != t.Criticality {
		t.Criticality = *patch.Criticality
		record("Criticality to '%s'", t.Criticality)
	}
	if patch.Priority != nil && *patch.Priority != t.Priority {
		t.Priority = *patch.Priority
		record("Priority to '%s'", t.Priority)
	}

	milestone := t.IsMilestone
	if patch.IsMilestone != nil {
		milestone = *patch.IsMilestone
	}
	if patch.IsMilestone != nil && *patch.IsMilestone != t.IsMilestone {
		t.IsMilestone = *patch.IsMilestone
		record("Milestone to '%t'", t.IsMilestone)
	}
	if milestone {
		if t.Enthusiasm != EnthusiasmNone {
			t.Enthusiasm = EnthusiasmNone
			record("Enthusiasm to '%s'", t.Enthusiasm.Display())
		}
	} else if patch.Enthusiasm != nil && *patch.Enthusiasm != t.Enthusiasm {
		t.Enthusiasm = *patch.Enthusiasm
		record("Enthusiasm to '%s'", t.Enthusiasm.Display())
	}

	if patch.Status != nil && *patch.Status != t.Status {
		t.Status = *patch.Status
		changes = append(changes, statusChangeEvent(t.Status))
		if t.Status == StatusInProgress && t.Assignee == "" && patch.Actor != "" {
			t.Assignee = patch.Actor
			record("Assignee to '%s'", t.Assignee)
		}
	}

	if patch.ClearDueDate {
		if t.DueDate != nil {
			t.DueDate = nil
			record("Due date cleared")
		}
	} else if patch.DueDate != nil && (t.DueDate == nil || !t.DueDate.Equal(*patch.DueDate)) {
		due := patch.DueDate.UTC()
		t.DueDate = &due
		record("Due date to '%s'", due.Format(time.RFC3339))
	}

	if patch.Tags != nil {
		tags := normalizeTags(*patch.Tags)
		if !equalStrings(tags, t.Tags) {
			t.Tags = tags
			record("Tags to '%s'", strings.Join(tags, ", "))
		}
	}

	if patch.ParentTaskID != nil && *patch.ParentTaskID != t.ParentTaskID {
		t.ParentTaskID = *patch.ParentTaskID
		if t.ParentTaskID == "" {
			t.IsSubtask = false
			record("Parent cleared")
		} else {
			t.IsSubtask = true
			record("Parent to '%s'", t.ParentTaskID)
		}
	}

	if patch.Order != nil && (t.Order == nil || *t.Order != *patch.Order) {
		order := *patch.Order
		t.Order = &order
		record("Order to '%d'", order)
	}
	if patch.Assignee != nil && *patch.Assignee != t.Assignee {
		t.Assignee = *patch.Assignee
		record("Assignee to '%s'", t.Assignee)
	}

	if len(patch.CustomFields) > 0 {
		keys := make([]string, 0, len(patch.CustomFields))
		for k := range patch.CustomFields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := patch.CustomFields[k]
			if t.CustomFields[k] == v {
				continue
			}
			if t.CustomFields == nil {
				t.CustomFields = map[string]string{}
			}
			t.CustomFields[k] = v
			record("Custom field '%s' to '%s'", k, v)
		}
	}

	if patch.Blocks != nil && !equalStrings(newBlocks, t.Blocks) {
		before := t.Blocks
		t.Blocks = newBlocks
		reconcileBlocks(doc, id, before, newBlocks, now)
		record("Blocks to '%s'", strings.Join(newBlocks, ", "))
	}
	if patch.BlockedBy != nil && !equalStrings(newBlockedBy, t.BlockedBy) {
		before := t.BlockedBy
		t.BlockedBy = newBlockedBy
		reconcileBlockedBy(doc, id, before, newBlockedBy, now)
		record("Blocked by to '%s'", strings.Join(newBlockedBy, ", "))
	}

	if len(changes) == 0 {
		out := t.Clone()
		return &out, nil
	}

	t.UpdatedAt = now
	t.History = append(t.History, Event{Timestamp: now, Event: strings.Join(changes, ", "), Actor: patch.Actor})

	if err := s.Save(doc); err != nil {
		return nil, err
	}
	out := t.Clone()
	return &out, nil
}

// Delete removes a task and scrubs every reference to it. Former children
// become top-level tasks; the deletion never cascades to them.
func (s *Store) Delete(id string) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	idx := -1
	for i := range doc.Tasks {
		if doc.Tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return &TaskNotFoundError{ID: id}
	}

	cascadeRemove(doc, id, time.Now().UTC())
	doc.Tasks = append(doc.Tasks[:idx], doc.Tasks[idx+1:]...)
	return s.Save(doc)
}

// Get returns a copy of one task.
func (s *Store) Get(id string) (*Task, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	t := doc.Task(id)
	if t == nil {
		return nil, &TaskNotFoundError{ID: id}
	}
	out := t.Clone()
	return &out, nil
}

// List returns the tasks matching the query in query order.
func (s *Store) List(q Query) ([]Task, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return q.Apply(doc), nil
}

// Report aggregates the whole board.
func (s *Store) Report() (*Report, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return BuildReport(doc), nil
}

// SetWIPLimit caps a column. Zero clears the cap; negative limits are
// rejected. Lowering a limit below the current count is allowed and leaves
// the column over limit until it drains.
func (s *Store) SetWIPLimit(status Status, limit int) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Err: fmt.Errorf("invalid value %q", status)}
	}
	if limit < 0 {
		return &ValidationError{Field: "limit", Err: fmt.Errorf("must not be negative, got %d", limit)}
	}
	doc, err := s.Load()
	if err != nil {
		return err
	}
	if limit == 0 {
		delete(doc.Metadata.WIPLimits, status)
	} else {
		doc.Metadata.WIPLimits[status] = limit
	}
	return s.Save(doc)
}

// WIPLimits returns the configured caps per column.
func (s *Store) WIPLimits() (map[Status]int, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	limits := make(map[Status]int, len(doc.Metadata.WIPLimits))
	for status, limit := range doc.Metadata.WIPLimits {
		limits[status] = limit
	}
	return limits, nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
