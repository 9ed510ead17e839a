package kanban

// checkWIP verifies that admitting one more task into status stays within the
// column's configured limit. Absent or zero limits mean unlimited. The count
// is taken by scanning the live task list at check time.
func checkWIP(d *Document, status Status) error {
	limit := d.Metadata.WIPLimits[status]
	if limit <= 0 {
		return nil
	}
	count := 0
	for i := range d.Tasks {
		if d.Tasks[i].Status == status {
			count++
		}
	}
	if count+1 > limit {
		return &WIPLimitError{Status: status, Limit: limit, Count: count}
	}
	return nil
}

// ColumnOverage describes one column holding more tasks than its limit
// allows. Lowering a limit never evicts tasks, so overages can exist until
// the column drains.
type ColumnOverage struct {
	Status Status `json:"status"`
	Limit  int    `json:"limit"`
	Count  int    `json:"count"`
}

// overLimitColumns lists columns whose current count exceeds their limit, in
// board display order.
func overLimitColumns(d *Document) []ColumnOverage {
	counts := d.CountByStatus()
	var over []ColumnOverage
	for _, status := range AllStatuses() {
		limit := d.Metadata.WIPLimits[status]
		if limit > 0 && counts[status] > limit {
			over = append(over, ColumnOverage{Status: status, Limit: limit, Count: counts[status]})
		}
	}
	return over
}
