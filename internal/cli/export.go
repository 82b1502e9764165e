package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lazypower/duedays/internal/engine"
	"github.com/lazypower/duedays/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print tasks and score as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(nil)
		if err != nil {
			return err
		}
		defer a.Close()
		return writeExport(cmd.OutOrStdout(), exportFormat, newExport(a))
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "output format: yaml or json")
}

type exportDoc struct {
	Date  string       `yaml:"date" json:"date"`
	Tasks []store.Task `yaml:"tasks" json:"tasks"`
	Score exportScore  `yaml:"score" json:"score"`
}

type exportScore struct {
	engine.Score `yaml:",inline"`
	Tier         string `yaml:"tier" json:"tier"`
}

func newExport(a *app) exportDoc {
	tasks := a.tracker.List()
	if tasks == nil {
		tasks = []store.Task{}
	}
	score := a.tracker.Score()
	return exportDoc{
		Date:  engine.FormatDate(a.report.Today),
		Tasks: tasks,
		Score: exportScore{Score: score, Tier: score.Tier().String()},
	}
}

func writeExport(w io.Writer, format string, doc exportDoc) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q: want yaml or json", format)
	}
}
