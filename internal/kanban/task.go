package kanban

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Status represents a board column.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
	StatusArchived   Status = "Archived"
	StatusGutter     Status = "Gutter"
)

// AllStatuses lists the board columns in display order.
func AllStatuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusDone, StatusArchived, StatusGutter}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone, StatusArchived, StatusGutter:
		return true
	}
	return false
}

// ParseStatus normalizes a status spelling. It accepts the canonical names
// case-insensitively plus the common "in-progress"/"in_progress" variants.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return StatusOpen, nil
	case "inprogress", "in-progress", "in_progress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	case "archived":
		return StatusArchived, nil
	case "gutter":
		return StatusGutter, nil
	}
	return "", &ValidationError{Field: "status", Err: fmt.Errorf("unknown status %q, must be one of: Open, InProgress, Done, Archived, Gutter", s)}
}

// Criticality is the importance axis of the matrix.
type Criticality string

const (
	CriticalityImportant    Criticality = "Important"
	CriticalityNotImportant Criticality = "Not Important"
)

// Valid reports whether c is a known criticality.
func (c Criticality) Valid() bool {
	return c == CriticalityImportant || c == CriticalityNotImportant
}

// ParseCriticality normalizes a criticality spelling, accepting the spaced
// and unspaced forms case-insensitively.
func ParseCriticality(s string) (Criticality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "important":
		return CriticalityImportant, nil
	case "not important", "notimportant", "not-important", "not_important":
		return CriticalityNotImportant, nil
	}
	return "", &ValidationError{Field: "criticality", Err: fmt.Errorf("unknown criticality %q, must be Important or Not Important", s)}
}

// Priority is the urgency axis of the matrix.
type Priority string

const (
	PriorityUrgent    Priority = "Urgent"
	PriorityNotUrgent Priority = "Not Urgent"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return p == PriorityUrgent || p == PriorityNotUrgent
}

// ParsePriority normalizes a priority spelling, accepting the spaced and
// unspaced forms case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "urgent":
		return PriorityUrgent, nil
	case "not urgent", "noturgent", "not-urgent", "not_urgent":
		return PriorityNotUrgent, nil
	}
	return "", &ValidationError{Field: "priority", Err: fmt.Errorf("unknown priority %q, must be Urgent or Not Urgent", s)}
}

// Enthusiasm is the normalized ordinal for how much anyone wants to do the
// task. Milestones carry EnthusiasmNone and display as "N/A".
type Enthusiasm int

const (
	EnthusiasmNone   Enthusiasm = 0
	EnthusiasmLow    Enthusiasm = 1
	EnthusiasmMedium Enthusiasm = 2
	EnthusiasmHigh   Enthusiasm = 3
)

// ParseEnthusiasm maps the accepted spellings to an ordinal.
func ParseEnthusiasm(s string) (Enthusiasm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "!!!!!", "3":
		return EnthusiasmHigh, nil
	case "yay", "2":
		return EnthusiasmMedium, nil
	case "meh", "1":
		return EnthusiasmLow, nil
	}
	return EnthusiasmNone, &ValidationError{Field: "enthusiasm", Err: fmt.Errorf("unknown enthusiasm %q, must be one of: !!!!!, Yay, Meh, 3, 2, 1", s)}
}

// Display returns the human spelling for the ordinal.
func (e Enthusiasm) Display() string {
	switch e {
	case EnthusiasmHigh:
		return "!!!!!"
	case EnthusiasmMedium:
		return "Yay"
	case EnthusiasmLow:
		return "Meh"
	}
	return "N/A"
}

// Quadrant identifies one cell of the criticality × priority matrix.
// Higher values rank first.
type Quadrant int

const (
	QuadrantEliminate Quadrant = iota + 1 // Not Important / Not Urgent
	QuadrantDelegate                      // Not Important / Urgent
	QuadrantSchedule                      // Important / Not Urgent
	QuadrantDoFirst                       // Important / Urgent
)

func (q Quadrant) String() string {
	switch q {
	case QuadrantDoFirst:
		return "Important / Urgent"
	case QuadrantSchedule:
		return "Important / Not Urgent"
	case QuadrantDelegate:
		return "Not Important / Urgent"
	case QuadrantEliminate:
		return "Not Important / Not Urgent"
	}
	return "Unknown"
}

// Event is one history entry appended on task creation or update.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Event     string    `json:"event"`
	Actor     string    `json:"actor,omitempty"`
}

// Task is a single unit of work on the board.
type Task struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	LongDescription string            `json:"long_description,omitempty"`
	URL             string            `json:"url,omitempty"`
	Criticality     Criticality       `json:"criticality"`
	Priority        Priority          `json:"priority"`
	Enthusiasm      Enthusiasm        `json:"enthusiasm,omitempty"`
	Status          Status            `json:"status"`
	IsMilestone     bool              `json:"is_milestone"`
	DueDate         *time.Time        `json:"due_date,omitempty"`
	Tags            []string          `json:"tags,omitempty"`
	IsSubtask       bool              `json:"is_subtask"`
	ParentTaskID    string            `json:"parent_task_id,omitempty"`
	Order           *int              `json:"order,omitempty"`
	TaskCreator     string            `json:"task_creator,omitempty"`
	Assignee        string            `json:"assignee,omitempty"`
	CustomFields    map[string]string `json:"custom_fields,omitempty"`
	Blocks          []string          `json:"blocks,omitempty"`
	BlockedBy       []string          `json:"blocked_by,omitempty"`
	History         []Event           `json:"history,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Quadrant returns the matrix cell the task falls into.
func (t *Task) Quadrant() Quadrant {
	important := t.Criticality == CriticalityImportant
	urgent := t.Priority == PriorityUrgent
	switch {
	case important && urgent:
		return QuadrantDoFirst
	case important:
		return QuadrantSchedule
	case urgent:
		return QuadrantDelegate
	}
	return QuadrantEliminate
}

// HasTag reports whether the task carries the given tag.
func (t *Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hold results without aliasing the
// document's backing slices and maps.
func (t Task) Clone() Task {
	out := t
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	if t.Order != nil {
		order := *t.Order
		out.Order = &order
	}
	out.Tags = append([]string(nil), t.Tags...)
	out.Blocks = append([]string(nil), t.Blocks...)
	out.BlockedBy = append([]string(nil), t.BlockedBy...)
	out.History = append([]Event(nil), t.History...)
	if t.CustomFields != nil {
		out.CustomFields = make(map[string]string, len(t.CustomFields))
		for k, v := range t.CustomFields {
			out.CustomFields[k] = v
		}
	}
	return out
}

// dueDateLayouts are the accepted due-date input forms, tried in order.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDueDate normalizes a due-date string to UTC. Bare dates resolve to
// midnight UTC; naive timestamps are assumed UTC.
func ParseDueDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dueDateLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, &ValidationError{Field: "due_date", Err: fmt.Errorf("unrecognized timestamp %q, expected RFC 3339 or YYYY-MM-DD", s)}
}

// normalizeTags trims, deduplicates, and sorts a tag list so the persisted
// form is order-independent.
func normalizeTags(tags []string) []string {
	return normalizeSet(tags)
}

// normalizeRefs normalizes a task-id reference list the same way as tags.
func normalizeRefs(ids []string) []string {
	return normalizeSet(ids)
}

func normalizeSet(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func removeString(values []string, drop string) []string {
	out := values[:0]
	for _, v := range values {
		if v != drop {
			out = append(out, v)
		}
	}
	return out
}
