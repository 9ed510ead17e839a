package kanban

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey selects a single-key sort for listings. The zero value selects the
// ranked view.
type SortKey string

const (
	SortRanked      SortKey = ""
	SortPriority    SortKey = "priority"
	SortCriticality SortKey = "criticality"
	SortEnthusiasm  SortKey = "enthusiasm"
	SortDueDate     SortKey = "due_date"
	SortOrder       SortKey = "order"
)

// ParseSortKey normalizes a sort-key spelling. "urgency" is an alias for
// priority; the empty string selects the ranked view.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rank", "ranked":
		return SortRanked, nil
	case "priority", "urgency":
		return SortPriority, nil
	case "criticality":
		return SortCriticality, nil
	case "enthusiasm":
		return SortEnthusiasm, nil
	case "due_date", "due-date", "due":
		return SortDueDate, nil
	case "order":
		return SortOrder, nil
	}
	return "", &ValidationError{Field: "sort", Err: fmt.Errorf("unknown sort key %q, must be one of: priority, criticality, urgency, enthusiasm, due_date, order, rank", s)}
}

// TagMode picks how the tag filter combines multiple tags.
type TagMode string

const (
	TagModeAny TagMode = "any" // keep tasks carrying at least one requested tag
	TagModeAll TagMode = "all" // keep tasks carrying every requested tag
)

// ParseTagMode normalizes a tag-mode spelling, defaulting empty to any.
func ParseTagMode(s string) (TagMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return TagModeAny, nil
	case "all":
		return TagModeAll, nil
	}
	return "", &ValidationError{Field: "tag-mode", Err: fmt.Errorf("unknown tag mode %q, must be any or all", s)}
}

// Query describes filters and ordering for listing tasks. Filters apply
// in a fixed order: status inclusion, tags, creator, parent, subtask flag,
// keyword search, then sort and limit.
type Query struct {
	// Statuses is an explicit allow-list. When set it replaces the default
	// inclusion rule entirely, IncludeDone and IncludeArchived included.
	Statuses []Status

	// IncludeDone and IncludeArchived widen the default rule, which hides
	// Done and Archived tasks.
	IncludeDone     bool
	IncludeArchived bool

	Tags    []string
	TagMode TagMode

	// Creator matches task_creator, ignoring case.
	Creator string

	// ParentID keeps only subtasks of the given task.
	ParentID string

	// Subtask, when set, keeps only tasks whose is_subtask equals it.
	Subtask *bool

	// Search is a case-insensitive substring match against title and
	// long_description; a task matches when either field contains it.
	Search string

	Sort  SortKey
	Limit int // 0 = unbounded
}

// Apply filters, sorts, and bounds the document's tasks. Results are deep
// copies, safe to hold after further document mutation. The ordering is total
// for every sort key: ties fall through to created_at ascending and finally
// task id.
func (q Query) Apply(d *Document) []Task {
	matched := make([]Task, 0, len(d.Tasks))
	for i := range d.Tasks {
		if q.matches(&d.Tasks[i]) {
			matched = append(matched, d.Tasks[i].Clone())
		}
	}

	less := singleKeyLess(q.Sort)
	sort.SliceStable(matched, func(i, j int) bool {
		return less(&matched[i], &matched[j])
	})

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched
}

func (q Query) matches(t *Task) bool {
	if len(q.Statuses) > 0 {
		if !statusIn(t.Status, q.Statuses) {
			return false
		}
	} else {
		if t.Status == StatusDone && !q.IncludeDone {
			return false
		}
		if t.Status == StatusArchived && !q.IncludeArchived {
			return false
		}
	}

	if len(q.Tags) > 0 && !q.matchesTags(t) {
		return false
	}
	if q.Creator != "" && !strings.EqualFold(t.TaskCreator, q.Creator) {
		return false
	}
	if q.ParentID != "" && t.ParentTaskID != q.ParentID {
		return false
	}
	if q.Subtask != nil && t.IsSubtask != *q.Subtask {
		return false
	}

	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.LongDescription), needle) {
			return false
		}
	}
	return true
}

func (q Query) matchesTags(t *Task) bool {
	if q.TagMode == TagModeAll {
		for _, tag := range q.Tags {
			if !t.HasTag(tag) {
				return false
			}
		}
		return true
	}
	for _, tag := range q.Tags {
		if t.HasTag(tag) {
			return true
		}
	}
	return false
}

func statusIn(status Status, allowed []Status) bool {
	for _, s := range allowed {
		if status == s {
			return true
		}
	}
	return false
}

// singleKeyLess returns the comparison for one sort key. Every branch ends in
// createdThenID so distinct tasks never compare as unordered.
func singleKeyLess(key SortKey) func(a, b *Task) bool {
	switch key {
	case SortPriority:
		return func(a, b *Task) bool {
			if a.Priority != b.Priority {
				return a.Priority == PriorityUrgent
			}
			return createdThenID(a, b)
		}
	case SortCriticality:
		return func(a, b *Task) bool {
			if a.Criticality != b.Criticality {
				return a.Criticality == CriticalityImportant
			}
			return createdThenID(a, b)
		}
	case SortEnthusiasm:
		return func(a, b *Task) bool {
			if a.Enthusiasm != b.Enthusiasm {
				return a.Enthusiasm > b.Enthusiasm
			}
			return createdThenID(a, b)
		}
	case SortDueDate:
		return dueDateLess
	case SortOrder:
		return orderLess
	}
	return rankedLess
}

// rankedLess is the composite ranked view: quadrant first (Important+Urgent
// down to Not Important+Not Urgent), then enthusiasm, then age.
func rankedLess(a, b *Task) bool {
	qa, qb := a.Quadrant(), b.Quadrant()
	if qa != qb {
		return qa > qb
	}
	if a.Enthusiasm != b.Enthusiasm {
		return a.Enthusiasm > b.Enthusiasm
	}
	return createdThenID(a, b)
}

// dueDateLess puts earlier due dates first and tasks without one last.
func dueDateLess(a, b *Task) bool {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return createdThenID(a, b)
	case a.DueDate == nil:
		return false
	case b.DueDate == nil:
		return true
	case !a.DueDate.Equal(*b.DueDate):
		return a.DueDate.Before(*b.DueDate)
	}
	return createdThenID(a, b)
}

// orderLess puts lower order values first. A missing order sorts as -1,
// ahead of every explicit value, matching documents written before the field
// existed.
func orderLess(a, b *Task) bool {
	oa, ob := -1, -1
	if a.Order != nil {
		oa = *a.Order
	}
	if b.Order != nil {
		ob = *b.Order
	}
	if oa != ob {
		return oa < ob
	}
	return createdThenID(a, b)
}

func createdThenID(a, b *Task) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}
