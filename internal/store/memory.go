package store

import "sync"

// Memory is an in-process TaskStore and DateStore. It backs tests and the
// --dry-run mode, where nothing should touch disk.
type Memory struct {
	mu       sync.Mutex
	tasks    []Task
	date     string
	SaveErr  error // returned by SaveTasks when set
	Saves    int   // number of successful SaveTasks calls
	DateSave int   // number of SaveDate calls
}

// NewMemory returns a Memory store seeded with tasks and a last-seen date.
func NewMemory(tasks []Task, lastDate string) *Memory {
	return &Memory{tasks: CloneTasks(tasks), date: lastDate}
}

func (m *Memory) LoadTasks() ([]Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return CloneTasks(m.tasks), nil
}

func (m *Memory) SaveTasks(tasks []Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.tasks = CloneTasks(tasks)
	m.Saves++
	return nil
}

func (m *Memory) LoadLastDate() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.date, nil
}

func (m *Memory) SaveDate(date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.date = date
	m.DateSave++
	return nil
}
