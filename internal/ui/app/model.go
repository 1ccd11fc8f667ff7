package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	billingdto "shiftware/internal/modules/billing/dto"
	rosterdto "shiftware/internal/modules/roster/dto"
	scheduledto "shiftware/internal/modules/schedule/dto"
	sessiondto "shiftware/internal/modules/session/dto"
	"shiftware/internal/ui/components"
	"shiftware/internal/ui/theme"
	clientsview "shiftware/internal/ui/views/clients"
	homeview "shiftware/internal/ui/views/home"
	invoicesview "shiftware/internal/ui/views/invoices"
	rosterview "shiftware/internal/ui/views/roster"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type sessionPort interface {
	Login(ctx context.Context, input sessiondto.LoginInput) (sessiondto.SessionOutput, error)
	Logout(ctx context.Context, notifyServer bool) error
	Restore(ctx context.Context) (sessiondto.SessionOutput, error)
	Validate(ctx context.Context) (bool, error)
	LoadProfile(ctx context.Context) (sessiondto.ProfileOutput, error)
	Current(ctx context.Context) sessiondto.SessionOutput
	HasPersisted(ctx context.Context) bool
}

type schedulePort interface {
	Calendar(ctx context.Context) (scheduledto.CalendarOutput, error)
}

type rosterPort interface {
	List(ctx context.Context) (rosterdto.ListOutput, error)
	Create(ctx context.Context, input rosterdto.CreateClientInput) (rosterdto.ClientOutput, error)
}

type billingPort interface {
	List(ctx context.Context) (billingdto.ListOutput, error)
	Create(ctx context.Context, input billingdto.CreateInvoiceInput) (billingdto.InvoiceOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabHome tabID = iota
	tabRoster
	tabClients
	tabInvoices
	tabCount
)

var tabLabels = [tabCount]string{
	"Home", "Roster", "Clients", "Invoices",
}

// ─── async messages ───────────────────────────────────────────────────────────

type validatedMsg struct {
	valid bool
	err   error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Reload  key.Binding
	Logout  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Logout:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "sign out")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Reload, k.Logout},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the session
// state banner, the global help overlay, and the command palette. All
// business logic is delegated to port interfaces; all rendering is
// delegated to sub-views.
type Model struct {
	// ports used at this orchestration level only
	session sessionPort

	// sub-views (one per tab)
	homeView     homeview.Model
	rosterView   rosterview.Model
	clientsView  clientsview.Model
	invoicesView invoicesview.Model

	// global UI state
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	loaded    [tabCount]bool
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	session sessionPort,
	schedule schedulePort,
	roster rosterPort,
	billing billingPort,
) Model {
	return Model{
		session:      session,
		homeView:     homeview.New(sessionPortBridge{p: session}),
		rosterView:   rosterview.New(schedulePortBridge{p: schedule}),
		clientsView:  clientsview.New(rosterPortBridge{p: roster}),
		invoicesView: invoicesview.New(billingPortBridge{p: billing}),
		activeTab:    tabHome,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return m.homeView.Init()
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	// SessionChangedMsg bubbles up from the home view whenever the
	// authenticated state flips. Loaded data never outlives the session.
	case homeview.SessionChangedMsg:
		if msg.Authenticated {
			m.status = "signed in as " + m.session.Current(context.Background()).Email
		} else {
			m.status = "signed out"
			m.activeTab = tabHome
			for i := range m.loaded {
				m.loaded[i] = false
			}
			m.rosterView.Clear()
			cmds = append(cmds, m.clientsView.Clear(), m.invoicesView.Clear())
		}
		var cmd tea.Cmd
		m.homeView, cmd = m.homeView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case validatedMsg:
		switch {
		case msg.err != nil:
			m.status = "validate: " + msg.err.Error()
		case msg.valid:
			m.status = "session is valid"
		default:
			m.status = "session expired — sign in again"
			cmds = append(cmds, announceSignedOut())
		}

	case rosterview.CalendarLoadedMsg, clientsview.ClientsLoadedMsg, invoicesview.InvoicesLoadedMsg:
		// Data loads can surface a revoked token; resync the session banner.
		if !m.session.Current(context.Background()).Authenticated && m.homeView.Authenticated() {
			cmds = append(cmds, announceSignedOut())
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the home view's login inputs and to open list filters.
		if m.editingOrFiltering() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			cmds = append(cmds, m.ensureLoaded())
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			cmds = append(cmds, m.ensureLoaded())
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "L":
			if m.homeView.Authenticated() {
				cmds = append(cmds, m.homeView.Logout())
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabHome:
		m.homeView, tabCmd = m.homeView.Update(msg)
	case tabRoster:
		m.rosterView, tabCmd = m.rosterView.Update(msg)
	case tabClients:
		m.clientsView, tabCmd = m.clientsView.Update(msg)
	case tabInvoices:
		m.invoicesView, tabCmd = m.invoicesView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabHome:
		return m.homeView.View()
	case tabRoster:
		return m.rosterView.View()
	case tabClients:
		return m.clientsView.View()
	case tabInvoices:
		return m.invoicesView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "shiftware  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.homeView.Authenticated() {
		left = theme.Good.Render("● "+m.session.Current(context.Background()).Email) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "login":
		if len(parts) < 3 {
			m.status = "usage: login <email> <password>"
			return m, nil
		}
		m.activeTab = tabHome
		var cmd tea.Cmd
		m.homeView, cmd = m.homeView.Update(homeview.SessionChangedMsg{Authenticated: false})
		return m, tea.Batch(cmd, m.loginCmd(parts[1], parts[2]))

	case "logout":
		if !m.homeView.Authenticated() {
			m.status = "not signed in"
			return m, nil
		}
		m.activeTab = tabHome
		return m, m.homeView.Logout()

	case "session:status":
		current := m.session.Current(context.Background())
		if current.Authenticated {
			m.status = "signed in as " + current.Email
		} else {
			m.status = "not signed in"
		}
		return m, nil

	case "session:validate":
		if !m.homeView.Authenticated() {
			m.status = "not signed in"
			return m, nil
		}
		m.status = "validating…"
		return m, m.validateCmd()

	case "profile":
		m.activeTab = tabHome
		m.status = "switched to Home tab"
		return m, nil

	case "reload":
		m.loaded = [tabCount]bool{}
		return m, m.ensureLoaded()

	case "client:add":
		if len(parts) < 3 {
			m.status = "usage: client:add <name> <email>"
			return m, nil
		}
		email := parts[len(parts)-1]
		name := strings.Join(parts[1:len(parts)-1], " ")
		m.activeTab = tabClients
		return m, m.clientsView.Create(name, email)

	case "invoice:create":
		if len(parts) < 4 {
			m.status = "usage: invoice:create <client-id> <shift-id,...> <due yyyy-mm-dd>"
			return m, nil
		}
		clientID, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			m.status = "invalid client id"
			return m, nil
		}
		var shiftIDs []int64
		for _, raw := range strings.Split(parts[2], ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				m.status = "invalid shift id: " + raw
				return m, nil
			}
			shiftIDs = append(shiftIDs, id)
		}
		due, err := time.Parse("2006-01-02", parts[3])
		if err != nil {
			m.status = "invalid due date, want yyyy-mm-dd"
			return m, nil
		}
		m.activeTab = tabInvoices
		return m, m.invoicesView.Create(clientID, shiftIDs, due)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// ensureLoaded triggers the active tab's first data load. Data tabs stay
// empty until the session is authenticated.
func (m *Model) ensureLoaded() tea.Cmd {
	if m.activeTab == tabHome || m.loaded[m.activeTab] || !m.homeView.Authenticated() {
		return nil
	}
	m.loaded[m.activeTab] = true
	switch m.activeTab {
	case tabRoster:
		return m.rosterView.Reload()
	case tabClients:
		return m.clientsView.Reload()
	case tabInvoices:
		return m.invoicesView.Reload()
	}
	return nil
}

// editingOrFiltering reports whether typing should flow to the active
// sub-view untouched by global key bindings.
func (m Model) editingOrFiltering() bool {
	switch m.activeTab {
	case tabHome:
		return m.homeView.Editing()
	case tabClients:
		return m.clientsView.Filtering()
	case tabInvoices:
		return m.invoicesView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.homeView, _ = m.homeView.Update(sz)
	m.rosterView, _ = m.rosterView.Update(sz)
	m.clientsView, _ = m.clientsView.Update(sz)
	m.invoicesView, _ = m.invoicesView.Update(sz)
}

func announceSignedOut() tea.Cmd {
	return func() tea.Msg { return homeview.SessionChangedMsg{Authenticated: false} }
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.session.Login(context.Background(), sessiondto.LoginInput{Email: email, Password: password})
		return homeview.LoginResultMsg{Session: session, Err: err}
	}
}

func (m Model) validateCmd() tea.Cmd {
	return func() tea.Msg {
		valid, err := m.session.Validate(context.Background())
		return validatedMsg{valid: valid, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type sessionPortBridge struct{ p sessionPort }

func (b sessionPortBridge) Login(ctx context.Context, input sessiondto.LoginInput) (sessiondto.SessionOutput, error) {
	return b.p.Login(ctx, input)
}
func (b sessionPortBridge) Logout(ctx context.Context, notifyServer bool) error {
	return b.p.Logout(ctx, notifyServer)
}
func (b sessionPortBridge) Restore(ctx context.Context) (sessiondto.SessionOutput, error) {
	return b.p.Restore(ctx)
}
func (b sessionPortBridge) LoadProfile(ctx context.Context) (sessiondto.ProfileOutput, error) {
	return b.p.LoadProfile(ctx)
}
func (b sessionPortBridge) Current(ctx context.Context) sessiondto.SessionOutput {
	return b.p.Current(ctx)
}
func (b sessionPortBridge) HasPersisted(ctx context.Context) bool {
	return b.p.HasPersisted(ctx)
}

type schedulePortBridge struct{ p schedulePort }

func (b schedulePortBridge) Calendar(ctx context.Context) (scheduledto.CalendarOutput, error) {
	return b.p.Calendar(ctx)
}

type rosterPortBridge struct{ p rosterPort }

func (b rosterPortBridge) List(ctx context.Context) (rosterdto.ListOutput, error) {
	return b.p.List(ctx)
}
func (b rosterPortBridge) Create(ctx context.Context, input rosterdto.CreateClientInput) (rosterdto.ClientOutput, error) {
	return b.p.Create(ctx, input)
}

type billingPortBridge struct{ p billingPort }

func (b billingPortBridge) List(ctx context.Context) (billingdto.ListOutput, error) {
	return b.p.List(ctx)
}
func (b billingPortBridge) Create(ctx context.Context, input billingdto.CreateInvoiceInput) (billingdto.InvoiceOutput, error) {
	return b.p.Create(ctx, input)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
