// Package shell implements the interactive line-based command loop.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lazypower/duedays/internal/engine"
)

// Shell dispatches one command per input line against a Tracker. Every
// mutating command is persisted before the next prompt.
type Shell struct {
	tracker *engine.Tracker
	in      *Prompter
	out     io.Writer
}

// New creates a Shell reading from in and writing to out.
func New(tr *engine.Tracker, in *Prompter, out io.Writer) *Shell {
	return &Shell{tracker: tr, in: in, out: out}
}

// Run loops until "exit" or end of input. It only returns an error if the
// input stream itself fails.
func (s *Shell) Run() error {
	for {
		line, err := s.in.Ask("\n> ")
		if err == io.EOF {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}
		if quit, err := s.Exec(line); err != nil {
			return err
		} else if quit {
			return nil
		}
	}
}

// Exec runs a single command line. It reports whether the shell should stop.
func (s *Shell) Exec(line string) (bool, error) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return false, nil
	case "exit", "quit":
		return true, nil
	case "list":
		PrintTasks(s.out, s.tracker.List())
	case "score":
		PrintScore(s.out, s.tracker.Score())
	case "help":
		PrintMenu(s.out)
	case "add":
		if err := s.add(); err == io.EOF {
			return true, nil
		} else if err != nil {
			return false, err
		}
	default:
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == "done" {
			s.done(fields[0])
			return false, nil
		}
		fmt.Fprintf(s.out, "Unknown command %q. Type help for the list of commands.\n", line)
	}
	return false, nil
}

func (s *Shell) add() error {
	name, err := s.in.Ask("Task name: ")
	if err != nil {
		return err
	}
	if err := engine.ValidateTask(name, 0); err != nil {
		fmt.Fprintf(s.out, "Cannot add task: %v\n", err)
		return nil
	}

	raw, err := s.in.Ask("Days until due: ")
	if err != nil {
		return err
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintf(s.out, "Cannot add task: %q is not a whole number of days\n", raw)
		return nil
	}

	if err := s.tracker.Add(name, days); err != nil {
		fmt.Fprintf(s.out, "Cannot add task: %v\n", err)
		return nil
	}
	fmt.Fprintf(s.out, "Task %s added and saved.\n", name)
	return nil
}

func (s *Shell) done(name string) {
	n, err := s.tracker.Done(name)
	switch {
	case errors.Is(err, engine.ErrTaskNotFound):
		fmt.Fprintf(s.out, "Task %s not found.\n", name)
	case err != nil:
		fmt.Fprintf(s.out, "Cannot remove task: %v\n", err)
	case n == 1:
		fmt.Fprintf(s.out, "Task %s removed.\n", name)
	default:
		fmt.Fprintf(s.out, "Task %s removed (%d entries).\n", name, n)
	}
}
