package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lazypower/duedays/internal/shell"
	"github.com/spf13/cobra"
)

// One-shot equivalents of the shell commands. Each still runs the startup
// decay pass first, so the numbers match what the shell would show.

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE: withApp(func(a *app, out io.Writer, args []string) error {
		shell.PrintTasks(out, a.tracker.List())
		return nil
	}),
}

var addCmd = &cobra.Command{
	Use:   "add <name> <days>",
	Short: "Add a task due in <days> days",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(a *app, out io.Writer, args []string) error {
		days, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("days %q is not a whole number", args[1])
		}
		if err := a.tracker.Add(args[0], days); err != nil {
			return err
		}
		fmt.Fprintf(out, "Task %s added and saved.\n", args[0])
		return nil
	}),
}

var doneCmd = &cobra.Command{
	Use:   "done <name>",
	Short: "Remove every task named <name>",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, out io.Writer, args []string) error {
		n, err := a.tracker.Done(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Task %s removed (%d entries).\n", args[0], n)
		return nil
	}),
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the completion score",
	Args:  cobra.NoArgs,
	RunE: withApp(func(a *app, out io.Writer, args []string) error {
		shell.PrintScore(out, a.tracker.Score())
		return nil
	}),
}

// withApp opens the app non-interactively, prints the decay report and runs fn.
func withApp(fn func(a *app, out io.Writer, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(nil)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		shell.PrintDecay(out, a.report)
		if err := fn(a, out, args); err != nil {
			return err
		}
		if flagDryRun {
			fmt.Fprintln(out, "(dry run: nothing written)")
		}
		return nil
	}
}
