// Package output prints styled status messages for the maven-mapper CLI.
//
// Status goes to stderr so that reports on stdout stay machine-readable.
// Functions use lipgloss for styling but abstract away the details from callers.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	out         io.Writer = os.Stderr
	verboseMode bool
)

// SetOutput redirects status messages. Tests use it to capture output.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// Success prints a completed operation.
//
// Example:
//
//	output.Success("Wrote 120 dependency rows to maven_dependencies.csv")
func Success(msg string) {
	fmt.Fprintln(out, successStyle.Render("✔ "+msg))
}

// Error prints a failure that needs user attention.
func Error(msg string) {
	fmt.Fprintln(out, errorStyle.Render("✖ "+msg))
}

// Warn prints a problem that did not stop the run.
func Warn(msg string) {
	fmt.Fprintln(out, warnStyle.Render("! "+msg))
}

// Info prints a status update.
func Info(msg string) {
	fmt.Fprintln(out, infoStyle.Render("ℹ "+msg))
}

// Step prints an indented sub-item in gray.
func Step(msg string) {
	fmt.Fprintln(out, stepStyle.Render("   "+msg))
}

// Verbose prints msg only if verbose mode is enabled.
func Verbose(msg string) {
	if verboseMode {
		fmt.Fprintln(out, stepStyle.Render("… "+msg))
	}
}

// Rule prints a horizontal separator as wide as the terminal, capped at 60
// columns, or 40 columns when stderr is not a terminal.
func Rule() {
	width := 40
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = min(w, 60)
		}
	}
	fmt.Fprintln(out, stepStyle.Render(strings.Repeat("━", width)))
}
