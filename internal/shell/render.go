package shell

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/lazypower/duedays/internal/engine"
	"github.com/lazypower/duedays/internal/store"
)

var tierStyles = map[engine.Tier]lipgloss.Style{
	engine.TierGood:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	engine.TierPassable: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	engine.TierPoor:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// FormatScore renders a score with two decimals.
func FormatScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// PrintScore writes the overall score and its tier advice.
func PrintScore(w io.Writer, s engine.Score) {
	tier := s.Tier()
	fmt.Fprintf(w, "\nCompletion score: %s\n", tierStyles[tier].Render(FormatScore(s.Overall)))
	fmt.Fprintf(w, "Status: %s\n", tierStyles[tier].Render(tier.Advice()))
}

// PrintTasks writes the task list in display order.
func PrintTasks(w io.Writer, tasks []store.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	fmt.Fprintln(w, "\nTasks:")
	for _, t := range tasks {
		fmt.Fprintf(w, "  %s: %s\n", t.Name, daysLeft(t.Days))
	}
}

func daysLeft(days int) string {
	switch days {
	case 0:
		return "due"
	case 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", days)
	}
}

// PrintDecay writes what the startup decay pass did.
func PrintDecay(w io.Writer, r engine.StartupReport) {
	switch {
	case r.Decay.Updated:
		fmt.Fprintf(w, "%d day(s) passed since %s, updating deadlines...\n", r.Decay.Days, engine.FormatDate(r.LastSeen))
		for _, c := range r.Decay.Changes {
			fmt.Fprintf(w, "  %s: %d -> %s\n", c.Name, c.Before, daysLeft(c.After))
		}
	case r.Decay.Days < 0:
		fmt.Fprintln(w, "Clock moved back since the last run; deadlines not updated.")
	}
	if r.PersistErr != nil {
		fmt.Fprintf(w, "warning: %v\n", r.PersistErr)
	}
}

// PrintMenu lists the shell commands.
func PrintMenu(w io.Writer) {
	fmt.Fprint(w, `
Commands:
  list          show all tasks
  add           add a task
  <name> done   remove every task with that name
  score         show the completion score
  help          show this menu
  exit          quit
`)
}
