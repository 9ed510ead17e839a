package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/openclaw/clawkanban/internal/kanban"
)

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printTaskList prints tasks one per line in query order.
func printTaskList(tasks []kanban.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}
	fmt.Println("ClawKanban Board:")
	for _, t := range tasks {
		printTask(t)
	}
}

// printTask prints a single task line.
func printTask(t kanban.Task) {
	line := fmt.Sprintf("  %s [%s] %s (%s", taskGlyph(&t), t.ID, t.Title, t.Quadrant())
	if !t.IsMilestone {
		line += ", " + t.Enthusiasm.Display()
	}
	line += ")"
	if t.DueDate != nil {
		line += " due " + t.DueDate.UTC().Format("2006-01-02")
	}
	if len(t.Tags) > 0 {
		line += " tags: " + strings.Join(t.Tags, ", ")
	}
	fmt.Println(line)
}

// taskGlyph returns the board glyph for a task, the same set the live board
// uses.
func taskGlyph(t *kanban.Task) string {
	if t.IsMilestone {
		return "◆"
	}
	switch t.Status {
	case kanban.StatusOpen:
		return "○"
	case kanban.StatusInProgress:
		return "●"
	case kanban.StatusDone:
		return "✓"
	case kanban.StatusArchived:
		return "·"
	case kanban.StatusGutter:
		return "✗"
	}
	return "?"
}

// renderTask produces the full field dump for the show command. hasSubtasks
// and openBlockers come from the surrounding document.
func renderTask(t *kanban.Task, hasSubtasks bool, openBlockers []string) string {
	out := []string{
		"ID: " + t.ID,
		"Title: " + t.Title,
		"Status: " + string(t.Status),
	}
	if t.TaskCreator != "" {
		out = append(out, "Creator: "+t.TaskCreator)
	}
	if t.Assignee != "" {
		out = append(out, "Assignee: "+t.Assignee)
	}
	out = append(out,
		"Criticality: "+string(t.Criticality),
		"Priority: "+string(t.Priority),
	)
	if !t.IsMilestone {
		out = append(out, "Enthusiasm: "+t.Enthusiasm.Display())
	}
	out = append(out, fmt.Sprintf("Milestone: %t", t.IsMilestone))
	if t.DueDate != nil {
		out = append(out, "Due date: "+t.DueDate.UTC().Format(time.RFC3339))
	}
	if len(t.Tags) > 0 {
		out = append(out, "Tags: "+strings.Join(t.Tags, ", "))
	}
	if t.URL != "" {
		out = append(out, "URL: "+t.URL)
	}
	if t.IsSubtask {
		out = append(out, "Subtask: true")
		if t.ParentTaskID != "" {
			out = append(out, "Parent task ID: "+t.ParentTaskID)
		}
		if t.Order != nil {
			out = append(out, fmt.Sprintf("Order: %d", *t.Order))
		}
	}
	if hasSubtasks {
		out = append(out, "Has Subtasks: true")
	}
	if len(t.CustomFields) > 0 {
		out = append(out, "Custom Fields:")
		for _, key := range sortedKeys(t.CustomFields) {
			out = append(out, fmt.Sprintf("  - %s: %s", key, t.CustomFields[key]))
		}
	}
	if len(t.Blocks) > 0 {
		out = append(out, "Blocks: "+strings.Join(t.Blocks, ", "))
	}
	if len(t.BlockedBy) > 0 {
		out = append(out, "Blocked By: "+strings.Join(t.BlockedBy, ", "))
	}
	if len(openBlockers) > 0 {
		out = append(out, "Waiting On: "+strings.Join(openBlockers, ", "))
	}
	if t.LongDescription != "" {
		out = append(out, "\nLong Description:\n"+t.LongDescription)
	}
	if len(t.History) > 0 {
		out = append(out, "\nHistory:")
		for _, ev := range t.History {
			out = append(out, fmt.Sprintf("- %s | %s | %s", ev.Timestamp.UTC().Format(time.RFC3339), ev.Actor, ev.Event))
		}
	}
	return strings.Join(out, "\n") + "\n"
}

// renderReport produces the text form of the board report.
func renderReport(r *kanban.Report) string {
	if r.Total == 0 {
		return "No tasks on the board to generate a report.\n"
	}

	var b strings.Builder
	b.WriteString("ClawKanban Report:\n")
	b.WriteString("--------------------\n")
	b.WriteString("Tasks per Status:\n")
	for _, status := range kanban.AllStatuses() {
		fmt.Fprintf(&b, "- %s: %d\n", status, r.ByStatus[status])
	}
	b.WriteString("Tasks per Quadrant:\n")
	for q := kanban.QuadrantDoFirst; q >= kanban.QuadrantEliminate; q-- {
		fmt.Fprintf(&b, "- %s: %d\n", q, r.ByQuadrant[q.String()])
	}
	if len(r.OverLimit) > 0 {
		b.WriteString("Columns Over WIP Limit:\n")
		for _, over := range r.OverLimit {
			fmt.Fprintf(&b, "- %s: %d of %d\n", over.Status, over.Count, over.Limit)
		}
	}
	if r.OldestOpen != nil {
		fmt.Fprintf(&b, "Oldest Open Task: [%s] %s (created %s)\n",
			r.OldestOpen.ID, r.OldestOpen.Title, r.OldestOpen.CreatedAt.UTC().Format("2006-01-02"))
	}
	if len(r.BlockCycles) > 0 {
		b.WriteString("Blocking Cycles:\n")
		for _, cycle := range r.BlockCycles {
			fmt.Fprintf(&b, "- %s\n", strings.Join(cycle, " -> "))
		}
	}
	b.WriteString("--------------------\n")
	cycleTime := "N/A (no completed tasks with a full cycle)"
	if r.CycleSamples > 0 {
		cycleTime = formatCycleTime(r.AvgCycleTime)
	}
	fmt.Fprintf(&b, "Average Cycle Time (First InProgress to First Done): %s\n", cycleTime)
	return b.String()
}

// formatCycleTime renders a duration as whole days, hours, and minutes.
func formatCycleTime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%d days, %d hours, %d minutes", days, hours, minutes)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
