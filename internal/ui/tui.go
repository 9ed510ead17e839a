// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/openclaw/clawkanban/internal/kanban"
)

// RunBoard starts the read-only board view over the given store. The board
// reloads the document from disk every second, so edits made through the CLI
// or by another agent show up without restarting it.
func RunBoard(ctx context.Context, store *kanban.Store) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("board requires a TTY")
	}
	program := tea.NewProgram(newBoardModel(store), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type boardModel struct {
	store        *kanban.Store
	tickInterval time.Duration
	width        int
	height       int
	loadErr      error
	columns      []boardColumn
	total        int
	filter       kanban.Status // empty shows every column
	showHelp     bool
}

type boardColumn struct {
	status kanban.Status
	limit  int
	tasks  []boardTask
}

type boardTask struct {
	task    kanban.Task
	blocked bool
}

type tickMsg time.Time

func newBoardModel(store *kanban.Store) *boardModel {
	return &boardModel{
		store:        store,
		tickInterval: time.Second,
	}
}

func (m *boardModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "1":
			m.filter = kanban.StatusOpen
			return m, nil
		case "2":
			m.filter = kanban.StatusInProgress
			return m, nil
		case "3":
			m.filter = kanban.StatusDone
			return m, nil
		case "4":
			m.filter = kanban.StatusArchived
			return m, nil
		case "5":
			m.filter = kanban.StatusGutter
			return m, nil
		case "0":
			m.filter = ""
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh reloads the document and rebuilds the per-column view data. Load
// errors are kept for display instead of quitting: a half-written or corrupt
// file may become readable on the next tick.
func (m *boardModel) refresh() {
	doc, err := m.store.Load()
	if err != nil {
		m.loadErr = err
		m.columns = nil
		return
	}
	m.loadErr = nil
	m.total = len(doc.Tasks)

	columns := make([]boardColumn, 0, len(kanban.AllStatuses()))
	for _, status := range kanban.AllStatuses() {
		col := boardColumn{
			status: status,
			limit:  doc.Metadata.WIPLimits[status],
		}
		tasks := kanban.Query{Statuses: []kanban.Status{status}}.Apply(doc)
		for i := range tasks {
			col.tasks = append(col.tasks, boardTask{
				task:    tasks[i],
				blocked: len(doc.OpenBlockers(&tasks[i])) > 0,
			})
		}
		columns = append(columns, col)
	}
	m.columns = columns
}

func (m *boardModel) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()

	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.renderHelp(), footer)
	}
	if m.loadErr != nil {
		body := errorStyle.Render("cannot load tasks file: " + m.loadErr.Error())
		return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	}
	if m.columns == nil {
		return lipgloss.JoinVertical(lipgloss.Left, header, "Loading...", footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderColumns(), footer)
}

func (m *boardModel) renderHeader() string {
	line := headerStyle.Render("clawkanban") +
		headerPathStyle.Render(fmt.Sprintf("  %s · %d tasks", m.store.Path(), m.total))
	if m.filter != "" {
		line += headerPathStyle.Render(" · showing ") +
			columnTitleStyle.Foreground(statusAccent(string(m.filter))).Render(string(m.filter))
	}
	return line + "\n"
}

func (m *boardModel) renderColumns() string {
	visible := make([]boardColumn, 0, len(m.columns))
	for _, col := range m.columns {
		if m.filter != "" && col.status != m.filter {
			continue
		}
		visible = append(visible, col)
	}

	width := m.columnWidth(len(visible))
	height := m.columnHeight()
	rendered := make([]string, 0, len(visible))
	for _, col := range visible {
		rendered = append(rendered, m.renderColumn(col, width, height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *boardModel) renderColumn(col boardColumn, width, height int) string {
	accent := statusAccent(string(col.status))

	badge := fmt.Sprintf("%d", len(col.tasks))
	if col.limit > 0 {
		badge = fmt.Sprintf("%d/%d", len(col.tasks), col.limit)
	}
	styledBadge := badgeStyle.Render(badge)
	if col.limit > 0 && len(col.tasks) > col.limit {
		styledBadge = badgeOverStyle.Render(badge)
	}

	var b strings.Builder
	b.WriteString(columnTitleStyle.Foreground(accent).Render(string(col.status)))
	b.WriteString(" " + styledBadge + "\n\n")

	if len(col.tasks) == 0 {
		b.WriteString(emptyStyle.Render("(empty)"))
	} else {
		maxRows := height - 3
		if maxRows < 1 {
			maxRows = 1
		}
		shown := col.tasks
		more := 0
		if len(shown) > maxRows {
			more = len(shown) - maxRows
			shown = shown[:maxRows]
		}
		for _, bt := range shown {
			b.WriteString(m.renderTask(col.status, bt, width-4))
			b.WriteString("\n")
		}
		if more > 0 {
			b.WriteString(taskMutedStyle.Render(fmt.Sprintf("+ %d more", more)))
		}
	}

	return columnStyle.Width(width).Height(height).Render(b.String())
}

func (m *boardModel) renderTask(status kanban.Status, bt boardTask, width int) string {
	glyph := statusGlyph(status)
	if bt.task.IsMilestone {
		glyph = "◆"
	}

	style := taskStyle
	switch {
	case bt.blocked:
		style = taskBlockedStyle
	case status == kanban.StatusDone || status == kanban.StatusArchived:
		style = taskMutedStyle
	}

	line := glyph + " " + truncate(bt.task.Title, width-2)
	return style.Render(line)
}

func (m *boardModel) renderFooter() string {
	sep := footerStyle.Render(" │ ")
	hints := footerKeyStyle.Render("q") + footerStyle.Render(" quit") + sep +
		footerKeyStyle.Render("r") + footerStyle.Render(" reload") + sep +
		footerKeyStyle.Render("1-5") + footerStyle.Render(" column") + sep +
		footerKeyStyle.Render("0") + footerStyle.Render(" all") + sep +
		footerKeyStyle.Render("?") + footerStyle.Render(" help")
	return "\n" + hints
}

func (m *boardModel) renderHelp() string {
	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"q, ctrl+c", "quit"},
		{"r, f5", "reload from disk"},
		{"1", "show only Open"},
		{"2", "show only InProgress"},
		{"3", "show only Done"},
		{"4", "show only Archived"},
		{"5", "show only Gutter"},
		{"0", "show all columns"},
		{"?, h", "toggle this screen"},
	}
	for _, s := range shortcuts {
		b.WriteString(fmt.Sprintf("%s  %s\n", helpKeyStyle.Render(fmt.Sprintf("%-10s", s.key)), s.desc))
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("Blocked tasks render red. The board reloads every %s.", m.tickInterval)))
	return helpBoxStyle.Render(b.String())
}

// columnWidth divides the terminal between n columns, leaving room for each
// column's border.
func (m *boardModel) columnWidth(n int) int {
	if n < 1 {
		n = 1
	}
	if m.width <= 0 {
		return 24
	}
	w := m.width/n - 2
	if w < 16 {
		w = 16
	}
	return w
}

func (m *boardModel) columnHeight() int {
	if m.height <= 0 {
		return 16
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	return h
}

func statusGlyph(status kanban.Status) string {
	switch status {
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
	return " "
}

func truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// IsTTY returns true if stdout is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
