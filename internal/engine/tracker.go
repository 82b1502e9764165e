package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/lazypower/duedays/internal/store"
	"go.uber.org/zap"
)

var (
	// ErrTaskNotFound is returned by Done when no task has the given name.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidTask is returned by Add for an unusable name or day count.
	ErrInvalidTask = errors.New("invalid task")
)

// Tracker owns the in-memory task list and writes every change through to
// its store before returning.
type Tracker struct {
	mu    sync.Mutex
	tasks []store.Task
	store store.TaskStore
	log   *zap.SugaredLogger
}

// NewTracker wraps an already-loaded task list.
func NewTracker(tasks []store.Task, s store.TaskStore, log *zap.SugaredLogger) *Tracker {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Tracker{tasks: tasks, store: s, log: log}
}

// List returns a copy of the tasks in display order.
func (t *Tracker) List() []store.Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	return store.CloneTasks(t.tasks)
}

// Len returns the number of open tasks.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.tasks)
}

// ValidateTask checks a name and day count before they enter the list.
func ValidateTask(name string, days int) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidTask)
	}
	if strings.ContainsFunc(name, unicode.IsSpace) {
		return fmt.Errorf("%w: name %q contains whitespace", ErrInvalidTask, name)
	}
	if days < 0 {
		return fmt.Errorf("%w: days must be >= 0, got %d", ErrInvalidTask, days)
	}
	return nil
}

// Add appends a task and persists the list.
func (t *Tracker) Add(name string, days int) error {
	if err := ValidateTask(name, days); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	next := append(store.CloneTasks(t.tasks), store.Task{Name: name, Days: days})
	if err := t.store.SaveTasks(next); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	t.tasks = next
	t.log.Debugw("task added", "name", name, "days", days)
	return nil
}

// Done removes every task named name and persists the list. It returns the
// number removed, or ErrTaskNotFound.
func (t *Tracker) Done(name string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := make([]store.Task, 0, len(t.tasks))
	for _, task := range t.tasks {
		if task.Name != name {
			next = append(next, task)
		}
	}
	removed := len(t.tasks) - len(next)
	if removed == 0 {
		return 0, fmt.Errorf("%w: %s", ErrTaskNotFound, name)
	}

	if err := t.store.SaveTasks(next); err != nil {
		return 0, fmt.Errorf("save tasks: %w", err)
	}
	t.tasks = next
	t.log.Debugw("task done", "name", name, "removed", removed)
	return removed, nil
}

// Score evaluates the current list.
func (t *Tracker) Score() Score {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Evaluate(t.tasks)
}
