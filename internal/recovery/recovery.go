// Package recovery renders the human-readable recovery snapshot of the board.
//
// The recovery file serves two roles: the `recover` command writes a markdown
// snapshot of the full board, and the store appends raw task JSON below a
// [RECOVERY_PENDING] marker when a save fails. Rewriting the snapshot keeps
// the pending blocks, since they may hold the only copy of unsaved state.
package recovery

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/openclaw/clawkanban/internal/kanban"
	"github.com/openclaw/clawkanban/internal/workspace"
)

const snapshotTemplate = `# Kanban Recovery Snapshot

Generated: {{.Now}}
Tasks: {{.Total}}

{{range .Columns}}## {{.Status}} ({{.Count}}{{if .Limit}}/{{.Limit}}{{end}})

{{if .Tasks}}{{range .Tasks}}- [{{.ID}}] {{.Title}} ({{.Quadrant}}){{if .Due}} due {{.Due}}{{end}}{{if .Tags}} tags: {{.Tags}}{{end}}{{if .Blockers}} blocked by: {{.Blockers}}{{end}}
{{end}}{{else}}(empty)
{{end}}
{{end}}`

type snapshotData struct {
	Now     string
	Total   int
	Columns []columnData
}

type columnData struct {
	Status string
	Count  int
	Limit  int
	Tasks  []taskLine
}

type taskLine struct {
	ID       string
	Title    string
	Quadrant string
	Due      string
	Tags     string
	Blockers string
}

// Render produces the markdown snapshot for doc.
func Render(doc *kanban.Document, now time.Time) (string, error) {
	data := snapshotData{
		Now:   now.UTC().Format(time.RFC3339),
		Total: len(doc.Tasks),
	}
	for _, status := range kanban.AllStatuses() {
		q := kanban.Query{Statuses: []kanban.Status{status}}
		tasks := q.Apply(doc)
		col := columnData{
			Status: string(status),
			Count:  len(tasks),
			Limit:  doc.Metadata.WIPLimits[status],
		}
		for _, t := range tasks {
			line := taskLine{
				ID:       t.ID,
				Title:    t.Title,
				Quadrant: t.Quadrant().String(),
				Tags:     strings.Join(t.Tags, ", "),
				Blockers: strings.Join(t.BlockedBy, ", "),
			}
			if t.DueDate != nil {
				line.Due = t.DueDate.UTC().Format("2006-01-02")
			}
			col.Tasks = append(col.Tasks, line)
		}
		data.Columns = append(data.Columns, col)
	}

	tmpl, err := template.New("recovery").Option("missingkey=error").Parse(snapshotTemplate)
	if err != nil {
		return "", fmt.Errorf("parse recovery template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render recovery snapshot: %w", err)
	}
	return buf.String(), nil
}

// Write renders the snapshot for doc and writes it to path, carrying over any
// pending salvage blocks already in the file.
func Write(path string, doc *kanban.Document, now time.Time) error {
	rendered, err := Render(doc, now)
	if err != nil {
		return err
	}
	pending, err := pendingTail(path)
	if err != nil {
		return err
	}
	content := rendered + pending
	if err := workspace.EnsureParent(path); err != nil {
		return fmt.Errorf("creating recovery directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing recovery snapshot: %w", err)
	}
	return nil
}

// HasPending reports whether path contains unmerged salvage blocks.
func HasPending(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bytes.Contains(data, []byte(kanban.RecoveryPendingMarker)), nil
}

// pendingTail returns the portion of the existing file from the first salvage
// block onward, or "" when the file is missing or holds none.
func pendingTail(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	idx := bytes.Index(data, []byte("## "+kanban.RecoveryPendingMarker))
	if idx < 0 {
		return "", nil
	}
	// Keep the blank line ahead of the block heading.
	return "\n" + string(data[idx:]), nil
}
