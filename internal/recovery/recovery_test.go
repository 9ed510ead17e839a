package recovery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/openclaw/clawkanban/internal/kanban"
)

func snapshotDoc(t *testing.T) *kanban.Document {
	t.Helper()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := kanban.NewDocument(now)
	due := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	doc.Tasks = []kanban.Task{
		{
			ID:          "aaa",
			Title:       "Fix the heat pump",
			Criticality: kanban.CriticalityImportant,
			Priority:    kanban.PriorityUrgent,
			Enthusiasm:  kanban.EnthusiasmHigh,
			Status:      kanban.StatusOpen,
			DueDate:     &due,
			Tags:        []string{"home", "urgent"},
			CreatedAt:   now,
		},
		{
			ID:          "bbb",
			Title:       "Sort photo archive",
			Criticality: kanban.CriticalityNotImportant,
			Priority:    kanban.PriorityNotUrgent,
			Enthusiasm:  kanban.EnthusiasmLow,
			Status:      kanban.StatusOpen,
			BlockedBy:   []string{"aaa"},
			CreatedAt:   now.Add(time.Minute),
		},
		{
			ID:          "ccc",
			Title:       "File taxes",
			Criticality: kanban.CriticalityImportant,
			Priority:    kanban.PriorityUrgent,
			Enthusiasm:  kanban.EnthusiasmMedium,
			Status:      kanban.StatusDone,
			CreatedAt:   now.Add(2 * time.Minute),
		},
	}
	doc.Metadata.WIPLimits[kanban.StatusOpen] = 5
	return doc
}

func TestRenderSnapshot(t *testing.T) {
	doc := snapshotDoc(t)
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	out, err := Render(doc, now)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	wantFragments := []string{
		"# Kanban Recovery Snapshot",
		"Generated: 2026-03-02T09:30:00Z",
		"Tasks: 3",
		"## Open (2/5)",
		"## Done (1)",
		"- [aaa] Fix the heat pump (Important / Urgent) due 2026-03-14 tags: home, urgent",
		"- [bbb] Sort photo archive (Not Important / Not Urgent) blocked by: aaa",
		"- [ccc] File taxes (Important / Urgent)",
	}
	for _, want := range wantFragments {
		if !strings.Contains(out, want) {
			t.Errorf("snapshot missing %q\n%s", want, out)
		}
	}
	if !strings.Contains(out, "## Gutter (0)") {
		t.Errorf("empty column heading missing\n%s", out)
	}
	if !strings.Contains(out, "(empty)") {
		t.Errorf("empty column placeholder missing\n%s", out)
	}
}

func TestRenderOrdersColumnsByRank(t *testing.T) {
	doc := snapshotDoc(t)
	out, err := Render(doc, time.Now())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	first := strings.Index(out, "[aaa]")
	second := strings.Index(out, "[bbb]")
	if first < 0 || second < 0 {
		t.Fatalf("tasks missing from snapshot\n%s", out)
	}
	if first > second {
		t.Errorf("ranked order violated: DoFirst task after Eliminate task\n%s", out)
	}
}

func TestWriteCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory", "kanban_recovery.md")
	doc := snapshotDoc(t)

	if err := Write(path, doc, time.Now()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "# Kanban Recovery Snapshot") {
		t.Errorf("snapshot header missing\n%s", data)
	}
}

func TestWritePreservesPendingBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanban_recovery.md")
	stale := "# Kanban Recovery Snapshot\n\nGenerated: 2026-01-01T00:00:00Z\nTasks: 0\n\n" +
		"\n## " + kanban.RecoveryPendingMarker + " 2026-01-02T00:00:00Z\n\n```json\n[{\"id\": \"lost\"}]\n```\n"
	if err := os.WriteFile(path, []byte(stale), 0644); err != nil {
		t.Fatal(err)
	}

	doc := snapshotDoc(t)
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	if err := Write(path, doc, now); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Generated: 2026-03-02T09:30:00Z") {
		t.Errorf("fresh snapshot missing\n%s", content)
	}
	if strings.Contains(content, "Generated: 2026-01-01T00:00:00Z") {
		t.Errorf("stale snapshot body survived rewrite\n%s", content)
	}
	if !strings.Contains(content, kanban.RecoveryPendingMarker) {
		t.Errorf("pending marker dropped\n%s", content)
	}
	if !strings.Contains(content, `[{"id": "lost"}]`) {
		t.Errorf("pending payload dropped\n%s", content)
	}
}

func TestHasPending(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "absent.md")
	if got, err := HasPending(missing); err != nil || got {
		t.Errorf("HasPending(missing): got %v, %v; want false, nil", got, err)
	}

	clean := filepath.Join(dir, "clean.md")
	if err := os.WriteFile(clean, []byte("# Kanban Recovery Snapshot\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got, err := HasPending(clean); err != nil || got {
		t.Errorf("HasPending(clean): got %v, %v; want false, nil", got, err)
	}

	dirty := filepath.Join(dir, "dirty.md")
	body := "# Kanban Recovery Snapshot\n\n## " + kanban.RecoveryPendingMarker + " 2026-01-02T00:00:00Z\n"
	if err := os.WriteFile(dirty, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	if got, err := HasPending(dirty); err != nil || !got {
		t.Errorf("HasPending(dirty): got %v, %v; want true, nil", got, err)
	}
}
