package kanban

import (
	"strings"
	"time"
)

// Report is the aggregate view of the whole board. Nothing in it is
// filtered; Done and Archived tasks count like any other.
type Report struct {
	Total        int             `json:"total"`
	ByStatus     map[Status]int  `json:"by_status"`
	ByQuadrant   map[string]int  `json:"by_quadrant"`
	OverLimit    []ColumnOverage `json:"over_limit,omitempty"`
	OldestOpen   *Task           `json:"oldest_open,omitempty"`
	BlockCycles  [][]string      `json:"block_cycles,omitempty"`
	AvgCycleTime time.Duration   `json:"avg_cycle_time_ns,omitempty"`
	CycleSamples int             `json:"cycle_samples,omitempty"`
}

// BuildReport aggregates the document: totals per status and quadrant,
// columns over their WIP limit, the oldest task still Open, blocking cycles,
// and the average time tasks spent between entering InProgress and reaching
// Done or Archived, measured from task history.
func BuildReport(d *Document) *Report {
	report := &Report{
		Total:      len(d.Tasks),
		ByStatus:   make(map[Status]int, len(AllStatuses())),
		ByQuadrant: make(map[string]int, 4),
		OverLimit:  overLimitColumns(d),
	}
	for _, status := range AllStatuses() {
		report.ByStatus[status] = 0
	}
	for q := QuadrantEliminate; q <= QuadrantDoFirst; q++ {
		report.ByQuadrant[q.String()] = 0
	}

	var oldest *Task
	var cycleTotal time.Duration
	for i := range d.Tasks {
		t := &d.Tasks[i]
		report.ByStatus[t.Status]++
		report.ByQuadrant[t.Quadrant().String()]++

		if t.Status == StatusOpen {
			if oldest == nil || t.CreatedAt.Before(oldest.CreatedAt) ||
				(t.CreatedAt.Equal(oldest.CreatedAt) && t.ID < oldest.ID) {
				oldest = t
			}
		}

		if span, ok := cycleSpan(t); ok {
			cycleTotal += span
			report.CycleSamples++
		}
	}

	if oldest != nil {
		clone := oldest.Clone()
		report.OldestOpen = &clone
	}
	if report.CycleSamples > 0 {
		report.AvgCycleTime = cycleTotal / time.Duration(report.CycleSamples)
	}
	report.BlockCycles = BlockCycles(d)
	return report
}

// cycleSpan reads a task's history for the first move into InProgress and
// the first move to Done or Archived after it.
func cycleSpan(t *Task) (time.Duration, bool) {
	var started time.Time
	inProgress := statusChangeEvent(StatusInProgress)
	done := statusChangeEvent(StatusDone)
	archived := statusChangeEvent(StatusArchived)

	for _, event := range t.History {
		if started.IsZero() {
			if strings.Contains(event.Event, inProgress) {
				started = event.Timestamp
			}
			continue
		}
		if strings.Contains(event.Event, done) || strings.Contains(event.Event, archived) {
			span := event.Timestamp.Sub(started)
			if span >= 0 {
				return span, true
			}
			return 0, false
		}
	}
	return 0, false
}
