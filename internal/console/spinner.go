package console

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type doneMsg struct {
	value string
	err   error
}

type spinModel struct {
	spinner spinner.Model
	label   string
	work    func() (string, error)
	result  doneMsg
	done    bool
}

func (m spinModel) Init() tea.Cmd {
	work := m.work
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		value, err := work()
		return doneMsg{value: value, err: err}
	})
}

func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.result = msg
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.result = doneMsg{err: fmt.Errorf("interrupted")}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.label + "\n"
}

// Spin shows a spinner on stderr while work runs. Without a terminal it just
// calls work. work must be safe to repeat: if the terminal cannot be driven it
// runs again without the spinner.
func (c *Console) Spin(label string, work func() (string, error)) (string, error) {
	if !c.spin {
		return work()
	}

	m := spinModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#bd93f9"))),
		),
		label: label,
		work:  work,
	}

	final, err := tea.NewProgram(m, tea.WithOutput(c.err), tea.WithInputTTY()).Run()
	if err != nil {
		return work()
	}
	res := final.(spinModel).result
	return res.value, res.err
}
