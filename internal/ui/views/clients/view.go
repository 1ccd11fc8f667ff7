package clients

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	rosterdto "shiftware/internal/modules/roster/dto"
	"shiftware/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type RosterPort interface {
	List(ctx context.Context) (rosterdto.ListOutput, error)
	Create(ctx context.Context, input rosterdto.CreateClientInput) (rosterdto.ClientOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ClientsLoadedMsg struct {
	Clients   []rosterdto.ClientOutput
	FromCache bool
	Err       error
}

type ClientCreatedMsg struct {
	Client rosterdto.ClientOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type clientItem struct{ c rosterdto.ClientOutput }

func (i clientItem) Title() string       { return i.c.Name }
func (i clientItem) Description() string { return i.c.Email }
func (i clientItem) FilterValue() string { return i.c.Name + " " + i.c.Email }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       RosterPort
	list       list.Model
	spinner    spinner.Model
	loading    bool
	fromCache  bool
	statusLine string
	width      int
	height     int
}

func New(port RosterPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Clients"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, spinner: sp}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Reload fetches the client list again.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	m.statusLine = ""
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Clear drops the list, used when the session ends.
func (m *Model) Clear() tea.Cmd {
	m.fromCache = false
	m.statusLine = ""
	return m.list.SetItems(nil)
}

// Create submits a new client; the result lands back as ClientCreatedMsg.
func (m *Model) Create(name, email string) tea.Cmd {
	return m.createCmd(name, email)
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-1)

	case ClientsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.statusLine = "load failed: " + msg.Err.Error()
			return m, nil
		}
		m.fromCache = msg.FromCache
		items := make([]list.Item, len(msg.Clients))
		for i, c := range msg.Clients {
			items[i] = clientItem{c: c}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case ClientCreatedMsg:
		if msg.Err != nil {
			m.statusLine = "create failed: " + msg.Err.Error()
			return m, nil
		}
		m.statusLine = fmt.Sprintf("created client %d: %s", msg.Client.ID, msg.Client.Name)
		cmds = append(cmds, m.Reload())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if msg.String() == "r" && !m.Filtering() {
			cmds = append(cmds, m.Reload())
			return m, tea.Batch(cmds...)
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading clients…")
	}

	var footer []string
	if m.fromCache {
		footer = append(footer, theme.Hot.Render("offline — showing cached data"))
	}
	if m.statusLine != "" {
		footer = append(footer, theme.Muted.Render(m.statusLine))
	}

	body := m.list.View()
	if len(footer) > 0 {
		return lipgloss.JoinVertical(lipgloss.Left, body, strings.Join(footer, "  "))
	}
	return body
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.List(context.Background())
		return ClientsLoadedMsg{Clients: out.Clients, FromCache: out.FromCache, Err: err}
	}
}

func (m Model) createCmd(name, email string) tea.Cmd {
	return func() tea.Msg {
		client, err := m.port.Create(context.Background(), rosterdto.CreateClientInput{Name: name, Email: email})
		return ClientCreatedMsg{Client: client, Err: err}
	}
}
