package kanban

import "time"

// SchemaURL identifies the document format. It is written into the $schema
// field of every tasks file and doubles as the compiled schema's resource id.
const SchemaURL = "https://openclaw.io/v1/kanban.schema.json"

// DocumentVersion is the current format version written to new documents.
const DocumentVersion = 1

// Metadata is the document header kept alongside the task list.
type Metadata struct {
	LastSync  time.Time      `json:"last_sync"`
	Version   int            `json:"version"`
	WIPLimits map[Status]int `json:"wip_limits,omitempty"`
}

// Document is the whole board: one JSON file, one struct.
type Document struct {
	Schema   string   `json:"$schema"`
	Metadata Metadata `json:"metadata"`
	Tasks    []Task   `json:"tasks"`
}

// NewDocument returns an empty board stamped at now.
func NewDocument(now time.Time) *Document {
	return &Document{
		Schema: SchemaURL,
		Metadata: Metadata{
			LastSync:  now.UTC(),
			Version:   DocumentVersion,
			WIPLimits: map[Status]int{},
		},
		Tasks: []Task{},
	}
}

// Task returns a pointer into the document's task list, or nil when the id
// is unknown. Mutations through the pointer edit the document in place.
func (d *Document) Task(id string) *Task {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return &d.Tasks[i]
		}
	}
	return nil
}

// CountByStatus tallies tasks per column.
func (d *Document) CountByStatus() map[Status]int {
	counts := make(map[Status]int, len(AllStatuses()))
	for i := range d.Tasks {
		counts[d.Tasks[i].Status]++
	}
	return counts
}

// OpenBlockers returns the ids in t's blocked_by list whose tasks are still
// unfinished. An empty result means the task is free to complete.
func (d *Document) OpenBlockers(t *Task) []string {
	return openBlockerIDs(d, t.BlockedBy)
}
