package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/lazypower/duedays/internal/store"
	"go.uber.org/zap"
)

// Engine runs the once-per-process startup pass: load tasks, apply decay for
// the days elapsed since the last run, and stamp today's date.
type Engine struct {
	Tasks store.TaskStore
	Dates store.DateStore
	Now   func() time.Time
	Log   *zap.SugaredLogger
}

// New creates an Engine over the given stores using the wall clock.
func New(tasks store.TaskStore, dates store.DateStore, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{
		Tasks: tasks,
		Dates: dates,
		Now:   time.Now,
		Log:   log,
	}
}

// CurrentDate returns today's local date at midnight.
func (e *Engine) CurrentDate() time.Time {
	return Today(e.Now())
}

// StartupReport describes what Startup did.
type StartupReport struct {
	LastSeen time.Time
	Today    time.Time
	Decay    DecayReport

	// PersistErr is set when decay or the date stamp could not be written.
	// The in-memory list is still valid, so callers report it and carry on.
	PersistErr error
}

// Startup loads the task list, decays it by the days elapsed since the last
// recorded date, rewrites the list if anything changed, and records today as
// the last-seen date. If the decayed list cannot be saved the date is left
// alone, so the next run applies the same days to the same stored list. Only
// a failure to load tasks is returned as an error.
func (e *Engine) Startup() (*Tracker, StartupReport, error) {
	tasks, err := e.Tasks.LoadTasks()
	if err != nil {
		return nil, StartupReport{}, fmt.Errorf("load tasks: %w", err)
	}

	today := e.CurrentDate()
	last := e.lastSeen(today)
	report := StartupReport{
		LastSeen: last,
		Today:    today,
		Decay:    ApplyDecay(tasks, DaysBetween(last, today)),
	}

	var persistErrs []error
	if report.Decay.Updated {
		e.Log.Infow("decay applied", "days", report.Decay.Days, "tasks", len(tasks))
		if err := e.Tasks.SaveTasks(tasks); err != nil {
			persistErrs = append(persistErrs, fmt.Errorf("save decayed tasks: %w", err))
		}
	} else {
		e.Log.Debugw("no decay", "last_seen", FormatDate(last), "today", FormatDate(today))
	}

	// The date only advances together with the decayed tasks.
	if len(persistErrs) == 0 {
		if err := e.Dates.SaveDate(FormatDate(today)); err != nil {
			persistErrs = append(persistErrs, fmt.Errorf("save last-seen date: %w", err))
		}
	} else {
		e.Log.Warnw("last-seen date kept so the next run retries decay", "last_seen", FormatDate(last))
	}
	report.PersistErr = errors.Join(persistErrs...)
	if report.PersistErr != nil {
		e.Log.Errorw("startup persistence failed", "error", report.PersistErr)
	}

	return NewTracker(tasks, e.Tasks, e.Log), report, nil
}

// lastSeen returns the recorded last-seen date. Anything missing, unreadable
// or unparseable counts as today, so no decay is applied.
func (e *Engine) lastSeen(today time.Time) time.Time {
	raw, err := e.Dates.LoadLastDate()
	if err != nil {
		e.Log.Warnw("cannot read last-seen date, assuming today", "error", err)
		return today
	}
	if raw == "" {
		return today
	}
	last, err := ParseDate(raw)
	if err != nil {
		e.Log.Warnw("invalid last-seen date, assuming today", "value", raw, "error", err)
		return today
	}
	return last
}
