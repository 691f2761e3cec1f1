// Package tui is an interactive roll number lookup.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ukaji3/attendance-go/pkg/attendance"
	"github.com/ukaji3/attendance-go/pkg/attendance/loader"
	"github.com/ukaji3/attendance-go/pkg/attendance/output"
)

const (
	blue = lipgloss.Color("#0043a8")
	grey = lipgloss.Color("#626262")
	red  = lipgloss.Color("#FF5555")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(blue).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(grey)
	errorStyle  = lipgloss.NewStyle().Foreground(red)
)

// LoadedMsg reports the end of a load cycle.
type LoadedMsg struct {
	Stats loader.Stats
}

type model struct {
	svc      *attendance.Service
	input    textinput.Model
	spinner  spinner.Model
	loading  bool
	stats    *loader.Stats
	result   string
	errorMsg string
}

// NewModel creates the lookup model. When the service has no index yet the
// model loads one on start.
func NewModel(svc *attendance.Service) model {
	ti := textinput.New()
	ti.Placeholder = "Roll number"
	ti.CharLimit = 32
	ti.Focus()

	s := spinner.New()
	s.Style = lipgloss.NewStyle().Foreground(blue)
	s.Spinner = spinner.Points

	return model{
		svc:     svc,
		input:   ti,
		spinner: s,
		loading: svc.Index().Empty(),
	}
}

func (m model) reload() tea.Cmd {
	return func() tea.Msg {
		return LoadedMsg{Stats: m.svc.Reload(context.Background())}
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.loading {
		cmds = append(cmds, m.reload())
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+r":
			if !m.loading {
				m.loading = true
				m.result = ""
				m.errorMsg = ""
				return m, tea.Batch(m.spinner.Tick, m.reload())
			}
			return m, nil
		case "enter":
			if !m.loading {
				m.lookup()
			}
			return m, nil
		}

	case LoadedMsg:
		m.loading = false
		m.stats = &msg.Stats
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) lookup() {
	m.result = ""
	m.errorMsg = ""

	report, err := m.svc.Check(m.input.Value())
	switch {
	case errors.Is(err, attendance.ErrNoData):
		m.errorMsg = "No attendance data available"
	case errors.Is(err, attendance.ErrNotFound):
		m.errorMsg = "Roll number not found"
	case err != nil:
		m.errorMsg = err.Error()
	default:
		m.result = output.RenderReport(report)
	}
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Attendance Lookup") + "\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " Loading attendance data...\n")
		return b.String()
	}

	if m.stats != nil {
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d courses from %d/%d files", m.stats.Courses, m.stats.Parsed, m.stats.Total)) + "\n\n")
	}
	b.WriteString(m.input.View() + "\n\n")

	if m.errorMsg != "" {
		b.WriteString(errorStyle.Render(m.errorMsg) + "\n\n")
	}
	if m.result != "" {
		b.WriteString(m.result + "\n\n")
	}

	b.WriteString(helpStyle.Render("• Enter: look up • Ctrl+R: reload • Esc: quit"))
	return b.String()
}

// Run starts the interactive lookup.
func Run(svc *attendance.Service) error {
	p := tea.NewProgram(NewModel(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
