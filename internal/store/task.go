package store

// Task is one tracked item: a name and the number of whole days left until
// it is due. Days is never negative; 0 means due today or overdue.
type Task struct {
	Name string `json:"name" yaml:"name"`
	Days int    `json:"days" yaml:"days"`
}

// TaskStore persists the ordered task list. SaveTasks always rewrites the
// whole list.
type TaskStore interface {
	LoadTasks() ([]Task, error)
	SaveTasks(tasks []Task) error
}

// DateStore persists the last date (YYYY-MM-DD) decay was evaluated on.
// LoadLastDate returns "" when nothing has been recorded yet.
type DateStore interface {
	LoadLastDate() (string, error)
	SaveDate(date string) error
}

// CloneTasks returns a copy of tasks that shares no backing array.
func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
