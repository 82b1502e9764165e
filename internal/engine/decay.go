package engine

import "github.com/lazypower/duedays/internal/store"

// Deadline decay:
//   - One global decay point per run: every task loses the same number of
//     days, however long it has existed.
//   - Floor: 0 (due today or overdue).
//   - elapsed <= 0 (same day, or the clock moved back) is a no-op, not an error.
//   - Runs once at startup via Engine.Startup; never while the shell is open.

// TaskChange records one task's remaining days before and after decay.
type TaskChange struct {
	Name   string
	Before int
	After  int
}

// DecayReport describes the outcome of ApplyDecay.
type DecayReport struct {
	Days    int
	Updated bool
	Changes []TaskChange
}

// ApplyDecay subtracts elapsed days from every task in place, flooring at 0.
func ApplyDecay(tasks []store.Task, elapsed int) DecayReport {
	report := DecayReport{Days: elapsed}
	if elapsed <= 0 {
		return report
	}

	report.Updated = true
	report.Changes = make([]TaskChange, 0, len(tasks))
	for i := range tasks {
		before := tasks[i].Days
		tasks[i].Days = max(0, before-elapsed)
		report.Changes = append(report.Changes, TaskChange{
			Name:   tasks[i].Name,
			Before: before,
			After:  tasks[i].Days,
		})
	}
	return report
}
