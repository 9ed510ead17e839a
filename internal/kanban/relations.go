package kanban

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// validateParent checks that parentID can become taskID's parent: it must
// name another existing task, and walking parent links upward from it must
// never arrive back at taskID.
func validateParent(d *Document, taskID, parentID string) error {
	if parentID == taskID {
		return &InvalidRelationshipError{TaskID: taskID, Field: "parent_task_id", Ref: parentID, Reason: "task cannot be its own parent"}
	}
	parent := d.Task(parentID)
	if parent == nil {
		return &InvalidRelationshipError{TaskID: taskID, Field: "parent_task_id", Ref: parentID, Reason: "no such task"}
	}

	// Walk toward the root. The seen set stops the walk if a hand-edited
	// document already carries a parent loop that does not involve taskID.
	seen := map[string]bool{parentID: true}
	for cur := parent; cur != nil && cur.ParentTaskID != ""; {
		next := cur.ParentTaskID
		if next == taskID {
			return &InvalidRelationshipError{TaskID: taskID, Field: "parent_task_id", Ref: parentID, Reason: "would create a parent cycle"}
		}
		if seen[next] {
			break
		}
		seen[next] = true
		cur = d.Task(next)
	}
	return nil
}

// validateRefs checks that every id in a blocks or blocked_by list names
// another existing task.
func validateRefs(d *Document, taskID, field string, ids []string) error {
	for _, id := range ids {
		if id == taskID {
			return &InvalidRelationshipError{TaskID: taskID, Field: field, Ref: id, Reason: "task cannot block itself"}
		}
		if d.Task(id) == nil {
			return &InvalidRelationshipError{TaskID: taskID, Field: field, Ref: id, Reason: "no such task"}
		}
	}
	return nil
}

// reconcileBlocks rewrites the inverse blocked_by edge on every task added to
// or dropped from taskID's blocks list, stamping the touched tasks.
func reconcileBlocks(d *Document, taskID string, before, after []string, now time.Time) {
	for _, added := range diffSet(after, before) {
		if target := d.Task(added); target != nil && !containsString(target.BlockedBy, taskID) {
			target.BlockedBy = normalizeRefs(append(target.BlockedBy, taskID))
			target.UpdatedAt = now
		}
	}
	for _, removed := range diffSet(before, after) {
		if target := d.Task(removed); target != nil && containsString(target.BlockedBy, taskID) {
			target.BlockedBy = removeString(target.BlockedBy, taskID)
			target.UpdatedAt = now
		}
	}
}

// reconcileBlockedBy is the mirror of reconcileBlocks for the blocked_by side.
func reconcileBlockedBy(d *Document, taskID string, before, after []string, now time.Time) {
	for _, added := range diffSet(after, before) {
		if target := d.Task(added); target != nil && !containsString(target.Blocks, taskID) {
			target.Blocks = normalizeRefs(append(target.Blocks, taskID))
			target.UpdatedAt = now
		}
	}
	for _, removed := range diffSet(before, after) {
		if target := d.Task(removed); target != nil && containsString(target.Blocks, taskID) {
			target.Blocks = removeString(target.Blocks, taskID)
			target.UpdatedAt = now
		}
	}
}

// diffSet returns the values present in a but not in b.
func diffSet(a, b []string) []string {
	var out []string
	for _, v := range a {
		if !containsString(b, v) {
			out = append(out, v)
		}
	}
	return out
}

// cascadeRemove scrubs every reference to a deleted task: former children
// become top-level tasks and block edges pointing at the id are dropped.
func cascadeRemove(d *Document, id string, now time.Time) {
	for i := range d.Tasks {
		t := &d.Tasks[i]
		if t.ID == id {
			continue
		}
		touched := false
		if t.ParentTaskID == id {
			t.ParentTaskID = ""
			t.IsSubtask = false
			touched = true
		}
		if containsString(t.Blocks, id) {
			t.Blocks = removeString(t.Blocks, id)
			touched = true
		}
		if containsString(t.BlockedBy, id) {
			t.BlockedBy = removeString(t.BlockedBy, id)
			touched = true
		}
		if touched {
			t.UpdatedAt = now
		}
	}
}

// openBlockerIDs filters a blocked_by list down to tasks that are not yet
// Done or Archived. Dangling ids are skipped since nothing real blocks on
// them.
func openBlockerIDs(d *Document, ids []string) []string {
	var open []string
	for _, id := range ids {
		blocker := d.Task(id)
		if blocker == nil {
			continue
		}
		if blocker.Status != StatusDone && blocker.Status != StatusArchived {
			open = append(open, id)
		}
	}
	return open
}

// BlockCycles finds cycles in the blocks graph. Cycles are legal on the board
// but usually mean two tasks are waiting on each other, so reports surface
// them. Each cycle is rotated so its smallest id comes first, and the result
// is sorted for stable output.
func BlockCycles(d *Document) [][]string {
	adjacent := make(map[string][]string, len(d.Tasks))
	for i := range d.Tasks {
		t := &d.Tasks[i]
		for _, blocked := range t.Blocks {
			if d.Task(blocked) != nil {
				adjacent[t.ID] = append(adjacent[t.ID], blocked)
			}
		}
	}

	const (
		unvisited = iota
		onStack
		finished
	)
	state := make(map[string]int, len(d.Tasks))
	var stack []string
	var cycles [][]string
	seen := make(map[string]bool)

	var visit func(id string)
	visit = func(id string) {
		state[id] = onStack
		stack = append(stack, id)
		for _, next := range adjacent[id] {
			switch state[next] {
			case unvisited:
				visit(next)
			case onStack:
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] != next {
						continue
					}
					cycle := canonicalCycle(stack[i:])
					key := joinIDs(cycle)
					if !seen[key] {
						seen[key] = true
						cycles = append(cycles, cycle)
					}
					break
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = finished
	}

	for i := range d.Tasks {
		if state[d.Tasks[i].ID] == unvisited {
			visit(d.Tasks[i].ID)
		}
	}

	sort.Slice(cycles, func(i, j int) bool {
		return joinIDs(cycles[i]) < joinIDs(cycles[j])
	})
	return cycles
}

// AuditRelationships scans a document for referential problems the store
// itself never creates but a hand-edited file can carry: dangling parent or
// block references, asymmetric block edges, parent cycles, and subtask flags
// out of step with the parent field. Findings are human-readable, one per
// problem, in task order.
func AuditRelationships(d *Document) []string {
	var findings []string
	report := func(format string, args ...interface{}) {
		findings = append(findings, fmt.Sprintf(format, args...))
	}

	for i := range d.Tasks {
		t := &d.Tasks[i]

		if t.IsSubtask && t.ParentTaskID == "" {
			report("task %s: is_subtask set without parent_task_id", t.ID)
		}
		if t.ParentTaskID != "" {
			switch {
			case t.ParentTaskID == t.ID:
				report("task %s: parent_task_id references itself", t.ID)
			case d.Task(t.ParentTaskID) == nil:
				report("task %s: parent_task_id references missing task %s", t.ID, t.ParentTaskID)
			case !t.IsSubtask:
				report("task %s: parent_task_id set without is_subtask", t.ID)
			}
		}

		for _, ref := range t.Blocks {
			if ref == t.ID {
				report("task %s: blocks references itself", t.ID)
				continue
			}
			target := d.Task(ref)
			if target == nil {
				report("task %s: blocks references missing task %s", t.ID, ref)
				continue
			}
			if !containsString(target.BlockedBy, t.ID) {
				report("task %s: blocks %s, which does not list it in blocked_by", t.ID, ref)
			}
		}
		for _, ref := range t.BlockedBy {
			if ref == t.ID {
				report("task %s: blocked_by references itself", t.ID)
				continue
			}
			target := d.Task(ref)
			if target == nil {
				report("task %s: blocked_by references missing task %s", t.ID, ref)
				continue
			}
			if !containsString(target.Blocks, t.ID) {
				report("task %s: blocked_by %s, which does not list it in blocks", t.ID, ref)
			}
		}
	}

	for _, cycle := range parentCycles(d) {
		report("parent cycle: %s", strings.Join(cycle, " -> "))
	}
	return findings
}

// parentCycles finds loops in the parent graph. Each task has at most one
// parent, so walking upward from every task visits each node once and any
// repeat on the current path closes a cycle.
func parentCycles(d *Document) [][]string {
	visited := make(map[string]bool, len(d.Tasks))
	var cycles [][]string
	for i := range d.Tasks {
		if visited[d.Tasks[i].ID] {
			continue
		}
		var path []string
		index := make(map[string]int)
		for cur := &d.Tasks[i]; cur != nil; cur = d.Task(cur.ParentTaskID) {
			if pos, ok := index[cur.ID]; ok {
				cycles = append(cycles, canonicalCycle(path[pos:]))
				break
			}
			if visited[cur.ID] {
				break
			}
			index[cur.ID] = len(path)
			path = append(path, cur.ID)
		}
		for _, id := range path {
			visited[id] = true
		}
	}
	sort.Slice(cycles, func(i, j int) bool {
		return joinIDs(cycles[i]) < joinIDs(cycles[j])
	})
	return cycles
}

// canonicalCycle rotates a cycle so the smallest id leads, making equal
// cycles discovered from different entry points compare equal.
func canonicalCycle(cycle []string) []string {
	min := 0
	for i := 1; i < len(cycle); i++ {
		if cycle[i] < cycle[min] {
			min = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, cycle[min:]...)
	out = append(out, cycle[:min]...)
	return out
}

func joinIDs(ids []string) string {
	key := ""
	for i, id := range ids {
		if i > 0 {
			key += ","
		}
		key += id
	}
	return key
}
