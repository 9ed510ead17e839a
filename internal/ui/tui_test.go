package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openclaw/clawkanban/internal/kanban"
)

func newBoardStore(t *testing.T) *kanban.Store {
	t.Helper()
	store := kanban.NewStore(filepath.Join(t.TempDir(), "tasks.json"), "")

	blocker, err := store.Create(kanban.Draft{
		Title:       "Order shelf parts",
		Criticality: kanban.CriticalityImportant,
		Priority:    kanban.PriorityUrgent,
		Enthusiasm:  kanban.EnthusiasmHigh,
		Actor:       "Nova",
	})
	if err != nil {
		t.Fatalf("Create blocker: %v", err)
	}
	if _, err := store.Create(kanban.Draft{
		Title:       "Assemble shelf",
		Criticality: kanban.CriticalityImportant,
		Priority:    kanban.PriorityNotUrgent,
		Enthusiasm:  kanban.EnthusiasmMedium,
		BlockedBy:   []string{blocker.ID},
		Actor:       "Nova",
	}); err != nil {
		t.Fatalf("Create blocked task: %v", err)
	}
	if err := store.SetWIPLimit(kanban.StatusOpen, 1); err != nil {
		t.Fatalf("SetWIPLimit: %v", err)
	}
	return store
}

func TestRefreshBuildsColumns(t *testing.T) {
	m := newBoardModel(newBoardStore(t))
	m.refresh()

	if m.loadErr != nil {
		t.Fatalf("refresh: %v", m.loadErr)
	}
	if m.total != 2 {
		t.Errorf("total: got %d, want 2", m.total)
	}
	if len(m.columns) != len(kanban.AllStatuses()) {
		t.Fatalf("columns: got %d, want %d", len(m.columns), len(kanban.AllStatuses()))
	}

	var open boardColumn
	for _, col := range m.columns {
		if col.status == kanban.StatusOpen {
			open = col
		}
	}
	if len(open.tasks) != 2 {
		t.Fatalf("open tasks: got %d, want 2", len(open.tasks))
	}
	if open.limit != 1 {
		t.Errorf("open limit: got %d, want 1", open.limit)
	}
	if open.tasks[0].blocked {
		t.Errorf("blocker task marked blocked")
	}
	if !open.tasks[1].blocked {
		t.Errorf("task with open blocker not marked blocked")
	}
}

func TestKeysDriveFilterAndQuit(t *testing.T) {
	m := newBoardModel(newBoardStore(t))
	m.refresh()

	key := func(s string) tea.KeyMsg {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}

	updated, _ := m.Update(key("2"))
	m = updated.(*boardModel)
	if m.filter != kanban.StatusInProgress {
		t.Errorf("filter after '2': got %q, want %q", m.filter, kanban.StatusInProgress)
	}

	updated, _ = m.Update(key("0"))
	m = updated.(*boardModel)
	if m.filter != "" {
		t.Errorf("filter after '0': got %q, want empty", m.filter)
	}

	updated, _ = m.Update(key("?"))
	m = updated.(*boardModel)
	if !m.showHelp {
		t.Errorf("help not shown after '?'")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatalf("no command after 'q'")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("command after 'q': got %T, want tea.QuitMsg", cmd())
	}
}

func TestViewRendersBoard(t *testing.T) {
	m := newBoardModel(newBoardStore(t))
	m.refresh()
	m.width = 200
	m.height = 30

	view := m.View()
	for _, want := range []string{"clawkanban", "Open", "2/1", "Order shelf parts", "Assemble shelf", "(empty)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q\n%s", want, view)
		}
	}

	m.showHelp = true
	if view := m.View(); !strings.Contains(view, "Keyboard Shortcuts") {
		t.Errorf("help view missing shortcuts\n%s", view)
	}
}

func TestViewShowsLoadError(t *testing.T) {
	m := newBoardModel(newBoardStore(t))
	m.loadErr = errFake("boom")

	if view := m.View(); !strings.Contains(view, "boom") {
		t.Errorf("view missing load error\n%s", view)
	}
}

type errFake string

func (e errFake) Error() string { return string(e) }

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"longer phrase", 6, "longe…"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d): got %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
