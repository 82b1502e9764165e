package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/lazypower/duedays/internal/config"
	"github.com/lazypower/duedays/internal/engine"
	"github.com/lazypower/duedays/internal/logging"
	"github.com/lazypower/duedays/internal/shell"
	"github.com/lazypower/duedays/internal/store"
	"go.uber.org/zap"
)

// app is everything a command needs after startup decay has run.
type app struct {
	cfg     config.Config
	log     *zap.SugaredLogger
	tracker *engine.Tracker
	report  engine.StartupReport
	closers []func() error
}

func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.log.Sync()
	return errors.Join(errs...)
}

// openApp loads configuration, opens the configured stores and runs the
// startup decay pass. prompter is nil for non-interactive commands, in which
// case a missing task path falls back to the default without asking.
func openApp(prompter *shell.Prompter) (*app, error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(flagConfig, dir)
	if err != nil {
		return nil, err
	}
	if flagTasksFile != "" {
		cfg.Paths.TasksFile = flagTasksFile
	}

	log, err := logging.New(cfg.Log.Level, os.Stderr)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log}

	tasks, dates, err := a.openStores(prompter)
	if err != nil {
		a.Close()
		return nil, err
	}

	if flagDryRun {
		mem, err := snapshot(tasks, dates)
		if err != nil {
			a.Close()
			return nil, err
		}
		tasks, dates = mem, mem
		log.Infow("dry run: changes stay in memory")
	}

	tracker, report, err := engine.New(tasks, dates, log).Startup()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.tracker = tracker
	a.report = report
	return a, nil
}

func (a *app) openStores(prompter *shell.Prompter) (store.TaskStore, store.DateStore, error) {
	if a.cfg.Storage.Backend == config.BackendSQLite {
		open := store.Open
		if flagDryRun {
			open = store.OpenReadOnly
		}
		db, err := open(a.cfg.Storage.DBPath)
		if flagDryRun && errors.Is(err, fs.ErrNotExist) {
			a.log.Infow("no database yet, dry run starts empty", "path", a.cfg.Storage.DBPath)
			mem := store.NewMemory(nil, "")
			return mem, mem, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		a.log.Debugw("storage", "backend", "sqlite", "path", db.Path)
		return db, db, nil
	}

	path, err := a.resolveTasksFile(prompter)
	if err != nil {
		return nil, nil, err
	}
	a.log.Debugw("storage", "backend", "file", "tasks", path, "date", a.cfg.Paths.DateFile)
	return store.NewFileTaskStore(path, a.log), store.NewFileDateStore(a.cfg.Paths.DateFile), nil
}

// resolveTasksFile picks the task file: flag or config first, then the path
// remembered from the first run, then a prompt (or the default).
func (a *app) resolveTasksFile(prompter *shell.Prompter) (string, error) {
	if a.cfg.Paths.TasksFile != "" {
		return a.cfg.Paths.TasksFile, nil
	}

	saved, err := config.LoadTasksPath(a.cfg.Paths.PathConfigFile)
	if err != nil {
		a.log.Warnw("ignoring unreadable path config", "path", a.cfg.Paths.PathConfigFile, "error", err)
	}
	if saved != "" {
		return saved, nil
	}

	path := a.cfg.DefaultTasksFile()
	if prompter != nil {
		if path, err = shell.PromptTasksPath(prompter, path); err != nil {
			return "", fmt.Errorf("prompt task path: %w", err)
		}
		if path, err = config.AbsPath(path); err != nil {
			return "", fmt.Errorf("resolve task path: %w", err)
		}
	}
	if !flagDryRun {
		if err := config.SaveTasksPath(a.cfg.Paths.PathConfigFile, path); err != nil {
			a.log.Warnw("task path not remembered", "error", err)
		}
	}
	return path, nil
}

// snapshot copies the persisted state into a Memory store.
func snapshot(tasks store.TaskStore, dates store.DateStore) (*store.Memory, error) {
	list, err := tasks.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	last, err := dates.LoadLastDate()
	if err != nil {
		return nil, fmt.Errorf("load last-seen date: %w", err)
	}
	return store.NewMemory(list, last), nil
}
