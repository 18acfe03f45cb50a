package cli

import (
	"fmt"
	"io"

	"sales-briefing/internal/display"
	"sales-briefing/internal/models"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// runViewer opens the tabbed briefing viewer on the terminal.
func runViewer(b *models.BriefingResult, in io.Reader, out io.Writer) error {
	m := display.NewModel(b, display.NewStyles(nil))
	_, err := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen()).Run()
	return err
}

type resultMsg struct {
	briefing *models.BriefingResult
	err      error
}

// waitModel shows a spinner until the generation result arrives.
type waitModel struct {
	spinner spinner.Model
	label   string
	run     func() (*models.BriefingResult, error)
	result  resultMsg
	done    bool
}

func newWaitModel(label string, run func() (*models.BriefingResult, error)) waitModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = display.NewStyles(nil).Selected
	return waitModel{spinner: s, label: label, run: run}
}

func (m waitModel) Init() tea.Cmd {
	run := m.run
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		b, err := run()
		return resultMsg{briefing: b, err: err}
	})
}

func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.result = msg
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.result = resultMsg{err: fmt.Errorf("cancelled")}
			m.done = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m waitModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), m.label)
}

// generateWithSpinner runs fn behind a spinner and returns its result.
func generateWithSpinner(label string, fn func() (*models.BriefingResult, error), in io.Reader, out io.Writer) (*models.BriefingResult, error) {
	final, err := tea.NewProgram(newWaitModel(label, fn), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return nil, err
	}
	res := final.(waitModel).result
	return res.briefing, res.err
}
