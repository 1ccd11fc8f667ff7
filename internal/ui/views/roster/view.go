package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	scheduledto "shiftware/internal/modules/schedule/dto"
	"shiftware/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SchedulePort interface {
	Calendar(ctx context.Context) (scheduledto.CalendarOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type CalendarLoadedMsg struct {
	Calendar scheduledto.CalendarOutput
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     SchedulePort
	calendar scheduledto.CalendarOutput
	content  viewport.Model
	spinner  spinner.Model
	loading  bool
	errLine  string
	width    int
	height   int
}

func New(port SchedulePort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, content: vp, spinner: sp}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Reload fetches the calendar again. The app model calls this on tab
// focus and on session changes.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	m.errLine = ""
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Clear drops the rendered calendar, used when the session ends.
func (m *Model) Clear() {
	m.calendar = scheduledto.CalendarOutput{}
	m.errLine = ""
	m.content.SetContent("")
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.content.SetContent(m.renderCalendar())

	case CalendarLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
			return m, nil
		}
		m.calendar = msg.Calendar
		m.errLine = ""
		m.content.SetContent(m.renderCalendar())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if msg.String() == "r" {
			cmds = append(cmds, m.Reload())
			return m, tea.Batch(cmds...)
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading roster…")
	}

	header := theme.Title.Render("Roster")
	if m.calendar.FromCache {
		header += "  " + theme.Hot.Render("(offline — showing cached data)")
	}
	if m.errLine != "" {
		header += "  " + theme.Bad.Render(m.errLine)
	}

	pane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - 2).
		Height(m.height - 3).
		Render(m.content.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, pane)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.content.Width = m.width - 4
	m.content.Height = m.height - 5
	if m.content.Height < 1 {
		m.content.Height = 1
	}
}

func (m Model) renderCalendar() string {
	if len(m.calendar.Days) == 0 {
		return theme.Muted.Render("No shifts scheduled. Press r to reload.")
	}
	var sb strings.Builder
	for _, day := range m.calendar.Days {
		shifts := m.calendar.ByDay[day]
		sb.WriteString(theme.Hot.Render(day) + theme.Muted.Render(fmt.Sprintf("  %d shift(s)", len(shifts))) + "\n")
		for _, shift := range shifts {
			sb.WriteString(fmt.Sprintf("  %s – %s  %s\n",
				shift.FormattedStart, shift.FormattedEnd,
				theme.Title.Render(shift.ClientName)))
			if shift.Description != "" {
				sb.WriteString(theme.Muted.Render("    "+shift.Description) + "\n")
			}
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("    %.1f h", shift.Hours)) + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		calendar, err := m.port.Calendar(context.Background())
		return CalendarLoadedMsg{Calendar: calendar, Err: err}
	}
}
