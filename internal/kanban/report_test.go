package kanban

import (
	"testing"
	"time"
)

func TestReportAggregates(t *testing.T) {
	s := newTestStore(t)
	oldest := mustCreate(t, s, Draft{Title: "Oldest open"})
	mustCreate(t, s, Draft{Title: "Newer open", Criticality: CriticalityNotImportant, Priority: PriorityNotUrgent, Enthusiasm: EnthusiasmLow})
	moved := mustCreate(t, s, Draft{Title: "Moved along"})

	status := StatusInProgress
	if _, err := s.Update(moved.ID, Patch{Status: &status}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	report, err := s.Report()
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	if report.Total != 3 {
		t.Errorf("Total: got %d, want 3", report.Total)
	}
	if report.ByStatus[StatusOpen] != 2 {
		t.Errorf("Open count: got %d, want 2", report.ByStatus[StatusOpen])
	}
	if report.ByStatus[StatusInProgress] != 1 {
		t.Errorf("InProgress count: got %d, want 1", report.ByStatus[StatusInProgress])
	}
	if report.ByStatus[StatusDone] != 0 {
		t.Errorf("Done count: got %d, want 0", report.ByStatus[StatusDone])
	}

	if report.ByQuadrant[QuadrantDoFirst.String()] != 2 {
		t.Errorf("DoFirst count: got %d, want 2", report.ByQuadrant[QuadrantDoFirst.String()])
	}
	if report.ByQuadrant[QuadrantEliminate.String()] != 1 {
		t.Errorf("Eliminate count: got %d, want 1", report.ByQuadrant[QuadrantEliminate.String()])
	}

	if report.OldestOpen == nil || report.OldestOpen.ID != oldest.ID {
		t.Errorf("OldestOpen: got %v, want %s", report.OldestOpen, oldest.ID)
	}
	if len(report.OverLimit) != 0 {
		t.Errorf("OverLimit: got %v, want none", report.OverLimit)
	}
	if len(report.BlockCycles) != 0 {
		t.Errorf("BlockCycles: got %v, want none", report.BlockCycles)
	}
}

func TestReportOldestOpenSkipsOtherColumns(t *testing.T) {
	s := newTestStore(t)
	first := mustCreate(t, s, Draft{Title: "First but moved"})
	second := mustCreate(t, s, Draft{Title: "Second stays open"})

	status := StatusInProgress
	if _, err := s.Update(first.ID, Patch{Status: &status}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	report, err := s.Report()
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if report.OldestOpen == nil || report.OldestOpen.ID != second.ID {
		t.Errorf("OldestOpen: got %v, want %s", report.OldestOpen, second.ID)
	}
}

func TestReportEmptyBoard(t *testing.T) {
	s := newTestStore(t)
	report, err := s.Report()
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if report.Total != 0 {
		t.Errorf("Total: got %d, want 0", report.Total)
	}
	if report.OldestOpen != nil {
		t.Errorf("OldestOpen: got %v, want nil", report.OldestOpen)
	}
	// Every column and quadrant appears, even when empty
	if len(report.ByStatus) != len(AllStatuses()) {
		t.Errorf("ByStatus size: got %d, want %d", len(report.ByStatus), len(AllStatuses()))
	}
	if len(report.ByQuadrant) != 4 {
		t.Errorf("ByQuadrant size: got %d, want 4", len(report.ByQuadrant))
	}
}

func TestReportAverageCycleTime(t *testing.T) {
	s := newTestStore(t)
	task := mustCreate(t, s, Draft{Title: "Cycled"})

	inProgress := StatusInProgress
	if _, err := s.Update(task.ID, Patch{Status: &inProgress, Actor: "Nova"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	done := StatusDone
	if _, err := s.Update(task.ID, Patch{Status: &done, Actor: "Nova"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	// A task that never started contributes no sample
	mustCreate(t, s, Draft{Title: "Untouched"})

	report, err := s.Report()
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if report.CycleSamples != 1 {
		t.Fatalf("CycleSamples: got %d, want 1", report.CycleSamples)
	}
	if report.AvgCycleTime < 0 {
		t.Errorf("AvgCycleTime: got %v, want >= 0", report.AvgCycleTime)
	}
}

func TestReportFlagsBlockCycles(t *testing.T) {
	s := newTestStore(t)
	a := mustCreate(t, s, Draft{Title: "A"})
	b := mustCreate(t, s, Draft{Title: "B"})
	if _, err := s.Update(a.ID, Patch{Blocks: &[]string{b.ID}}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err := s.Update(b.ID, Patch{Blocks: &[]string{a.ID}}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	report, err := s.Report()
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if len(report.BlockCycles) != 1 {
		t.Fatalf("BlockCycles: got %v, want one cycle", report.BlockCycles)
	}
}

func TestCycleSpanIgnoresBackwardsClocks(t *testing.T) {
	start := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	task := &Task{
		History: []Event{
			{Timestamp: start, Event: statusChangeEvent(StatusInProgress)},
			{Timestamp: start.Add(-time.Hour), Event: statusChangeEvent(StatusDone)},
		},
	}
	if _, ok := cycleSpan(task); ok {
		t.Error("negative span accepted as a sample")
	}

	task = &Task{
		History: []Event{
			{Timestamp: start, Event: statusChangeEvent(StatusInProgress)},
			{Timestamp: start.Add(time.Hour), Event: statusChangeEvent(StatusArchived)},
		},
	}
	span, ok := cycleSpan(task)
	if !ok || span != time.Hour {
		t.Errorf("span: got %v/%v, want 1h/true", span, ok)
	}
}
