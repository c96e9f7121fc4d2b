package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Progress shows a spinner and a status line while a long walk runs.
// It is only active when status output is an interactive terminal and
// verbose mode is off; otherwise every method is a no-op and Write passes
// straight through.
type Progress struct {
	program *tea.Program
	done    chan struct{}
}

// StartProgress starts a spinner labelled with message.
//
// Example:
//
//	p := output.StartProgress("Scanning ~/src")
//	defer p.Stop()
//	p.Update("120 descriptors")
func StartProgress(message string) *Progress {
	f, ok := out.(*os.File)
	if !ok || verboseMode || !term.IsTerminal(int(f.Fd())) {
		return &Progress{}
	}

	p := &Progress{
		program: tea.NewProgram(newProgressModel(message), tea.WithOutput(f), tea.WithInput(nil)),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(p.done)
		// Spinner failures only cost the animation.
		_, _ = p.program.Run()
	}()
	return p
}

// Active reports whether a spinner is on screen.
func (p *Progress) Active() bool {
	return p.program != nil
}

// Update replaces the status shown next to the message.
func (p *Progress) Update(status string) {
	if p.program != nil {
		p.program.Send(progressStatusMsg(status))
	}
}

// Write prints complete lines above the spinner so log output does not
// tear the status line.
func (p *Progress) Write(b []byte) (int, error) {
	if p.program == nil {
		return out.Write(b)
	}
	for _, line := range strings.Split(strings.TrimRight(string(b), "\n"), "\n") {
		p.program.Println(line)
	}
	return len(b), nil
}

// Stop clears the spinner and waits for the terminal to be released.
func (p *Progress) Stop() {
	if p.program == nil {
		return
	}
	p.program.Send(progressDoneMsg{})
	<-p.done
	p.program = nil
}

type (
	progressStatusMsg string
	progressDoneMsg   struct{}
)

// progressModel is the bubbletea model behind Progress
type progressModel struct {
	spinner spinner.Model
	message string
	status  string
	done    bool
}

func newProgressModel(message string) *progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &progressModel{spinner: s, message: message}
}

func (m *progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressStatusMsg:
		m.status = string(msg)
	case progressDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *progressModel) View() string {
	if m.done {
		return ""
	}
	if m.status == "" {
		return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
	}
	return fmt.Sprintf("%s %s... %s", m.spinner.View(), m.message, stepStyle.Render(m.status))
}
