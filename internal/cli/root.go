package cli

import (
	"github.com/lazypower/duedays/internal/shell"
	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagTasksFile string
	flagDryRun    bool
)

var rootCmd = &cobra.Command{
	Use:   "duedays",
	Short: "Day-countdown task tracker with a completion health score",
	Long: "duedays keeps a short list of tasks, counts their deadlines down by the days " +
		"that pass between runs, and scores how healthy the list is. Run without " +
		"arguments for the interactive shell.",
	SilenceUsage: true,
	RunE:         runShell,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.duedays/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagTasksFile, "tasks-file", "", "task file path (file backend)")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "apply decay and commands in memory only; write nothing")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(exportCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	prompter := shell.NewPrompter(cmd.InOrStdin(), out)

	a, err := openApp(prompter)
	if err != nil {
		return err
	}
	defer a.Close()

	shell.PrintDecay(out, a.report)
	shell.PrintScore(out, a.tracker.Score())
	shell.PrintMenu(out)

	return shell.New(a.tracker, prompter, out).Run()
}
