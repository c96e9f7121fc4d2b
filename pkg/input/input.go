// Package input provides interactive terminal prompts.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter. Nil arguments mean stdin and stderr.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question.
// Returns true if the user answers yes (y/Y/yes/YES), false otherwise.
// An empty answer, or no input at all, returns defaultYes.
//
// Example:
//
//	if p.Confirm("Overwrite maven-mapper.yaml?", false) {
//	    // user said yes
//	}
//	// Displays: Overwrite maven-mapper.yaml? [y/N]: _
func (p *Prompter) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	answer, err := p.in.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		if err != nil {
			fmt.Fprintln(p.out)
		}
		return defaultYes
	}

	return answer == "y" || answer == "yes"
}
