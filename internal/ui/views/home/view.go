package home

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "shiftware/internal/modules/session/dto"
	"shiftware/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SessionPort interface {
	Login(ctx context.Context, input sessiondto.LoginInput) (sessiondto.SessionOutput, error)
	Logout(ctx context.Context, notifyServer bool) error
	Restore(ctx context.Context) (sessiondto.SessionOutput, error)
	LoadProfile(ctx context.Context) (sessiondto.ProfileOutput, error)
	Current(ctx context.Context) sessiondto.SessionOutput
	HasPersisted(ctx context.Context) bool
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoginResultMsg struct {
	Session sessiondto.SessionOutput
	Err     error
}

type RestoreResultMsg struct {
	Session sessiondto.SessionOutput
	Err     error
}

type ProfileLoadedMsg struct {
	Profile sessiondto.ProfileOutput
	Err     error
}

type LogoutDoneMsg struct{ Err error }

// SessionChangedMsg tells the app model the authenticated state flipped,
// so sibling tabs can drop or reload their data.
type SessionChangedMsg struct{ Authenticated bool }

// ─── model ───────────────────────────────────────────────────────────────────

type field int

const (
	fieldEmail field = iota
	fieldPassword
)

type Model struct {
	port SessionPort

	email    textinput.Model
	password textinput.Model
	focus    field

	session  sessiondto.SessionOutput
	profile  sessiondto.ProfileOutput
	firstRun bool

	spinner spinner.Model
	busy    bool
	errLine string
	width   int
	height  int
}

func New(port SessionPort) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:     port,
		email:    email,
		password: password,
		spinner:  sp,
		firstRun: !port.HasPersisted(context.Background()),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.email.Focus(), m.restoreCmd())
}

// Editing reports whether a login field has focus, so the app model can
// keep global keys out of the way while the user types.
func (m Model) Editing() bool {
	return !m.session.Authenticated && (m.email.Focused() || m.password.Focused())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case RestoreResultMsg:
		m.firstRun = !m.port.HasPersisted(context.Background())
		if msg.Err == nil && msg.Session.Authenticated {
			m.session = msg.Session
			m.errLine = ""
			cmds = append(cmds, m.loadProfileCmd(), announceCmd(true))
		}

	case LoginResultMsg:
		m.busy = false
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
			return m, nil
		}
		m.session = msg.Session
		m.errLine = ""
		m.password.SetValue("")
		m.firstRun = false
		cmds = append(cmds, m.loadProfileCmd(), announceCmd(true))

	case ProfileLoadedMsg:
		m.busy = false
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
			return m, nil
		}
		m.profile = msg.Profile
		m.errLine = ""

	case LogoutDoneMsg:
		m.busy = false
		m.session = sessiondto.SessionOutput{}
		m.profile = sessiondto.ProfileOutput{}
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
		}
		cmds = append(cmds, m.email.Focus(), announceCmd(false))

	case SessionChangedMsg:
		// Another surface forced a logout (revoked token); resync.
		if !msg.Authenticated {
			m.session = sessiondto.SessionOutput{}
			m.profile = sessiondto.ProfileOutput{}
			cmds = append(cmds, m.email.Focus())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.session.Authenticated {
			break
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.toggleFocus()
			return m, nil
		case "enter":
			if m.focus == fieldEmail {
				m.toggleFocus()
				return m, nil
			}
			email := strings.TrimSpace(m.email.Value())
			password := m.password.Value()
			if email == "" || password == "" {
				m.errLine = "email and password are required"
				return m, nil
			}
			m.busy = true
			m.errLine = ""
			return m, tea.Batch(m.loginCmd(email, password), m.spinner.Tick)
		}
	}

	if !m.session.Authenticated && !m.busy {
		var cmd tea.Cmd
		m.email, cmd = m.email.Update(msg)
		cmds = append(cmds, cmd)
		m.password, cmd = m.password.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var body string
	if m.session.Authenticated {
		body = m.renderProfile()
	} else {
		body = m.renderLogin()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// Authenticated reports the view's last known session state.
func (m Model) Authenticated() bool { return m.session.Authenticated }

// Logout issues the logout command on behalf of the app model.
func (m *Model) Logout() tea.Cmd {
	m.busy = true
	return tea.Batch(m.logoutCmd(), m.spinner.Tick)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) toggleFocus() {
	if m.focus == fieldEmail {
		m.focus = fieldPassword
		m.email.Blur()
		m.password.Focus()
	} else {
		m.focus = fieldEmail
		m.password.Blur()
		m.email.Focus()
	}
}

func (m Model) renderLogin() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Shiftware") + "\n\n")
	if m.firstRun {
		sb.WriteString(theme.Muted.Render("Welcome! Sign in with your Shiftware account to get started.") + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("email    ") + m.email.View() + "\n")
	sb.WriteString(theme.Muted.Render("password ") + m.password.View() + "\n\n")
	if m.busy {
		sb.WriteString(m.spinner.View() + " Signing in…\n")
	} else {
		sb.WriteString(theme.Muted.Render("enter: sign in  tab: switch field") + "\n")
	}
	if m.errLine != "" {
		sb.WriteString("\n" + theme.Bad.Render(m.errLine) + "\n")
	}
	return theme.Pane.Width(52).Render(sb.String())
}

func (m Model) renderProfile() string {
	p := m.profile
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Signed in") + "\n\n")
	sb.WriteString(theme.Muted.Render("email:    ") + m.session.Email + "\n")
	if p.Name != "" {
		sb.WriteString(theme.Muted.Render("name:     ") + p.Name + "\n")
	}
	if p.Business != "" {
		sb.WriteString(theme.Muted.Render("business: ") + p.Business + "\n")
	}
	if p.ABN != "" {
		sb.WriteString(theme.Muted.Render("abn:      ") + p.ABN + "\n")
	}
	if p.Phone != "" {
		sb.WriteString(theme.Muted.Render("phone:    ") + p.Phone + "\n")
	}
	if m.busy {
		sb.WriteString("\n" + m.spinner.View() + " Working…\n")
	}
	if m.errLine != "" {
		sb.WriteString("\n" + theme.Bad.Render(m.errLine) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("L: sign out"))
	return theme.Pane.Width(52).Render(sb.String())
}

func announceCmd(authenticated bool) tea.Cmd {
	return func() tea.Msg { return SessionChangedMsg{Authenticated: authenticated} }
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.port.Login(context.Background(), sessiondto.LoginInput{Email: email, Password: password})
		return LoginResultMsg{Session: session, Err: err}
	}
}

func (m Model) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.port.Restore(context.Background())
		return RestoreResultMsg{Session: session, Err: err}
	}
}

func (m Model) loadProfileCmd() tea.Cmd {
	return func() tea.Msg {
		profile, err := m.port.LoadProfile(context.Background())
		return ProfileLoadedMsg{Profile: profile, Err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.port.Logout(context.Background(), true)
		return LogoutDoneMsg{Err: err}
	}
}
