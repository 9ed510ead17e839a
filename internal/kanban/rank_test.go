package kanban

import (
	"testing"
	"time"
)

var rankEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func rankTask(id string, criticality Criticality, priority Priority, enthusiasm Enthusiasm, createdOffset time.Duration) Task {
	created := rankEpoch.Add(createdOffset)
	return Task{
		ID:          id,
		Title:       "Task " + id,
		Criticality: criticality,
		Priority:    priority,
		Enthusiasm:  enthusiasm,
		Status:      StatusOpen,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func resultIDs(tasks []Task) []string {
	ids := make([]string, len(tasks))
	for i := range tasks {
		ids[i] = tasks[i].ID
	}
	return ids
}

func assertOrder(t *testing.T, got []Task, want ...string) {
	t.Helper()
	ids := resultIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("result: got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("result: got %v, want %v", ids, want)
		}
	}
}

func TestDefaultStatusInclusion(t *testing.T) {
	doc := &Document{Tasks: []Task{
		func() Task { x := rankTask("open", CriticalityImportant, PriorityUrgent, EnthusiasmLow, 0); return x }(),
		func() Task {
			x := rankTask("doing", CriticalityImportant, PriorityUrgent, EnthusiasmLow, time.Minute)
			x.Status = StatusInProgress
			return x
		}(),
		func() Task {
			x := rankTask("done", CriticalityImportant, PriorityUrgent, EnthusiasmLow, 2*time.Minute)
			x.Status = StatusDone
			return x
		}(),
		func() Task {
			x := rankTask("archived", CriticalityImportant, PriorityUrgent, EnthusiasmLow, 3*time.Minute)
			x.Status = StatusArchived
			return x
		}(),
		func() Task {
			x := rankTask("gutter", CriticalityImportant, PriorityUrgent, EnthusiasmLow, 4*time.Minute)
			x.Status = StatusGutter
			return x
		}(),
	}}

	assertOrder(t, Query{}.Apply(doc), "open", "doing", "gutter")
	assertOrder(t, Query{IncludeDone: true}.Apply(doc), "open", "doing", "done", "gutter")
	assertOrder(t, Query{IncludeDone: true, IncludeArchived: true}.Apply(doc), "open", "doing", "done", "archived", "gutter")

	// An explicit allow-list replaces the defaults entirely
	assertOrder(t, Query{Statuses: []Status{StatusDone}}.Apply(doc), "done")
	assertOrder(t, Query{Statuses: []Status{StatusArchived, StatusDone}}.Apply(doc), "done", "archived")
}

func TestTagFilterModes(t *testing.T) {
	tagged := rankTask("abc", CriticalityImportant, PriorityUrgent, EnthusiasmLow, 0)
	tagged.Tags = []string{"a", "b", "c"}
	doc := &Document{Tasks: []Task{tagged}}

	tests := []struct {
		name      string
		tags      []string
		mode      TagMode
		wantMatch bool
	}{
		{"all subset matches", []string{"a", "b"}, TagModeAll, true},
		{"all with stranger misses", []string{"a", "d"}, TagModeAll, false},
		{"any with stranger matches", []string{"a", "d"}, TagModeAny, true},
		{"any disjoint misses", []string{"x", "y"}, TagModeAny, false},
		{"default mode is any", []string{"d", "c"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Query{Tags: tt.tags, TagMode: tt.mode}.Apply(doc)
			if (len(got) == 1) != tt.wantMatch {
				t.Errorf("match: got %v, want %v", len(got) == 1, tt.wantMatch)
			}
		})
	}
}

func TestCreatorParentSubtaskFilters(t *testing.T) {
	parent := rankTask("parent", CriticalityImportant, PriorityUrgent, EnthusiasmLow, 0)
	parent.TaskCreator = "Nova"
	sub := rankTask("sub", CriticalityImportant, PriorityUrgent, EnthusiasmLow, time.Minute)
	sub.TaskCreator = "rex"
	sub.IsSubtask = true
	sub.ParentTaskID = "parent"
	doc := &Document{Tasks: []Task{parent, sub}}

	assertOrder(t, Query{Creator: "nova"}.Apply(doc), "parent")
	assertOrder(t, Query{Creator: "REX"}.Apply(doc), "sub")
	assertOrder(t, Query{ParentID: "parent"}.Apply(doc), "sub")

	subtask := true
	assertOrder(t, Query{Subtask: &subtask}.Apply(doc), "sub")
	subtask = false
	assertOrder(t, Query{Subtask: &subtask}.Apply(doc), "parent")
}

func TestKeywordSearch(t *testing.T) {
	titled := rankTask("in-title", CriticalityImportant, PriorityUrgent, EnthusiasmLow, 0)
	titled.Title = "Fix the Parser"
	described := rankTask("in-desc", CriticalityImportant, PriorityUrgent, EnthusiasmLow, time.Minute)
	described.Title = "Other work"
	described.LongDescription = "The parser chokes on empty input"
	neither := rankTask("neither", CriticalityImportant, PriorityUrgent, EnthusiasmLow, 2*time.Minute)
	doc := &Document{Tasks: []Task{titled, described, neither}}

	assertOrder(t, Query{Search: "PARSER"}.Apply(doc), "in-title", "in-desc")
	assertOrder(t, Query{Search: "chokes"}.Apply(doc), "in-desc")
	if got := (Query{Search: "zebra"}).Apply(doc); len(got) != 0 {
		t.Errorf("search zebra: got %v, want none", resultIDs(got))
	}
}

func TestRankedViewOrdering(t *testing.T) {
	t1 := rankTask("t1", CriticalityImportant, PriorityUrgent, EnthusiasmMedium, 0)
	t2 := rankTask("t2", CriticalityImportant, PriorityUrgent, EnthusiasmHigh, time.Minute)
	t3 := rankTask("t3", CriticalityNotImportant, PriorityNotUrgent, EnthusiasmLow, 2*time.Minute)
	doc := &Document{Tasks: []Task{t1, t2, t3}}

	assertOrder(t, Query{}.Apply(doc), "t2", "t1", "t3")
}

func TestRankedQuadrantDominance(t *testing.T) {
	// Quadrant beats enthusiasm and age: an eager old task in a lower
	// quadrant never outranks a reluctant new one in a higher quadrant.
	eager := rankTask("eager", CriticalityNotImportant, PriorityUrgent, EnthusiasmHigh, 0)
	reluctant := rankTask("reluctant", CriticalityImportant, PriorityNotUrgent, EnthusiasmLow, time.Hour)
	top := rankTask("top", CriticalityImportant, PriorityUrgent, EnthusiasmLow, 2*time.Hour)
	bottom := rankTask("bottom", CriticalityNotImportant, PriorityNotUrgent, EnthusiasmHigh, 3*time.Hour)
	doc := &Document{Tasks: []Task{eager, reluctant, top, bottom}}

	assertOrder(t, Query{}.Apply(doc), "top", "reluctant", "eager", "bottom")
}

func TestRankedViewIsTotal(t *testing.T) {
	// Same quadrant, same enthusiasm, same creation instant: ids break the tie.
	a := rankTask("a", CriticalityImportant, PriorityUrgent, EnthusiasmMedium, 0)
	b := rankTask("b", CriticalityImportant, PriorityUrgent, EnthusiasmMedium, 0)
	doc := &Document{Tasks: []Task{b, a}}

	assertOrder(t, Query{}.Apply(doc), "a", "b")

	if rankedLess(&a, &b) == rankedLess(&b, &a) {
		t.Error("distinct tasks compare as unordered")
	}
}

func TestSingleKeySorts(t *testing.T) {
	early := rankEpoch.Add(time.Hour)
	late := rankEpoch.Add(2 * time.Hour)
	o1, o5 := 1, 5

	dueSoon := rankTask("due-soon", CriticalityNotImportant, PriorityNotUrgent, EnthusiasmLow, 0)
	dueSoon.DueDate = &early
	dueLater := rankTask("due-later", CriticalityNotImportant, PriorityNotUrgent, EnthusiasmHigh, time.Minute)
	dueLater.DueDate = &late
	dueNever := rankTask("due-never", CriticalityImportant, PriorityUrgent, EnthusiasmHigh, 2*time.Minute)

	ordered1 := rankTask("order-1", CriticalityNotImportant, PriorityNotUrgent, EnthusiasmLow, 3*time.Minute)
	ordered1.Order = &o1
	ordered5 := rankTask("order-5", CriticalityNotImportant, PriorityNotUrgent, EnthusiasmLow, 4*time.Minute)
	ordered5.Order = &o5
	unordered := rankTask("order-none", CriticalityNotImportant, PriorityNotUrgent, EnthusiasmLow, 5*time.Minute)

	t.Run("due_date puts absent last", func(t *testing.T) {
		doc := &Document{Tasks: []Task{dueNever, dueLater, dueSoon}}
		assertOrder(t, Query{Sort: SortDueDate}.Apply(doc), "due-soon", "due-later", "due-never")
	})

	t.Run("order puts absent first", func(t *testing.T) {
		doc := &Document{Tasks: []Task{ordered5, unordered, ordered1}}
		assertOrder(t, Query{Sort: SortOrder}.Apply(doc), "order-none", "order-1", "order-5")
	})

	t.Run("enthusiasm high first", func(t *testing.T) {
		doc := &Document{Tasks: []Task{dueSoon, dueLater}}
		assertOrder(t, Query{Sort: SortEnthusiasm}.Apply(doc), "due-later", "due-soon")
	})

	t.Run("priority urgent first with created tie-break", func(t *testing.T) {
		urgentOld := rankTask("urgent-old", CriticalityNotImportant, PriorityUrgent, EnthusiasmLow, 0)
		urgentNew := rankTask("urgent-new", CriticalityNotImportant, PriorityUrgent, EnthusiasmLow, time.Minute)
		calm := rankTask("calm", CriticalityImportant, PriorityNotUrgent, EnthusiasmHigh, 2*time.Minute)
		doc := &Document{Tasks: []Task{calm, urgentNew, urgentOld}}
		assertOrder(t, Query{Sort: SortPriority}.Apply(doc), "urgent-old", "urgent-new", "calm")
	})

	t.Run("criticality important first", func(t *testing.T) {
		big := rankTask("big", CriticalityImportant, PriorityNotUrgent, EnthusiasmLow, time.Minute)
		small := rankTask("small", CriticalityNotImportant, PriorityUrgent, EnthusiasmHigh, 0)
		doc := &Document{Tasks: []Task{small, big}}
		assertOrder(t, Query{Sort: SortCriticality}.Apply(doc), "big", "small")
	})
}

func TestQueryLimit(t *testing.T) {
	doc := &Document{Tasks: []Task{
		rankTask("a", CriticalityImportant, PriorityUrgent, EnthusiasmHigh, 0),
		rankTask("b", CriticalityImportant, PriorityUrgent, EnthusiasmMedium, time.Minute),
		rankTask("c", CriticalityImportant, PriorityUrgent, EnthusiasmLow, 2*time.Minute),
	}}

	assertOrder(t, Query{Limit: 2}.Apply(doc), "a", "b")
	assertOrder(t, Query{}.Apply(doc), "a", "b", "c")
	assertOrder(t, Query{Limit: 10}.Apply(doc), "a", "b", "c")
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in      string
		want    SortKey
		wantErr bool
	}{
		{"", SortRanked, false},
		{"rank", SortRanked, false},
		{"priority", SortPriority, false},
		{"urgency", SortPriority, false},
		{"criticality", SortCriticality, false},
		{"enthusiasm", SortEnthusiasm, false},
		{"due_date", SortDueDate, false},
		{"due", SortDueDate, false},
		{"order", SortOrder, false},
		{"alphabetical", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSortKey(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseSortKey(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseSortKey(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQueryResultsAreCopies(t *testing.T) {
	task := rankTask("a", CriticalityImportant, PriorityUrgent, EnthusiasmLow, 0)
	task.Tags = []string{"keep"}
	doc := &Document{Tasks: []Task{task}}

	got := Query{}.Apply(doc)
	got[0].Tags[0] = "mutated"
	got[0].Title = "mutated"

	if doc.Tasks[0].Tags[0] != "keep" || doc.Tasks[0].Title != "Task a" {
		t.Error("query results alias the document")
	}
}
