package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter reads one line of input per question. A single Prompter must own
// the input stream; a second buffered reader on the same stream would lose
// lines.
type Prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

// NewPrompter wraps in and out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{sc: bufio.NewScanner(in), out: out}
}

// Ask prints prompt and returns the next input line with surrounding
// whitespace removed. It returns io.EOF when input is exhausted.
func (p *Prompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.sc.Text()), nil
}

// PromptTasksPath asks where the task file should live on first run. An empty
// answer accepts def.
func PromptTasksPath(p *Prompter, def string) (string, error) {
	fmt.Fprintln(p.out, "First run: choose where to keep your task list.")
	answer, err := p.Ask(fmt.Sprintf("Task file path [%s]: ", def))
	if err != nil && err != io.EOF {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}
