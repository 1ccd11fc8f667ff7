package invoices

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	billingdto "shiftware/internal/modules/billing/dto"
	"shiftware/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type BillingPort interface {
	List(ctx context.Context) (billingdto.ListOutput, error)
	Create(ctx context.Context, input billingdto.CreateInvoiceInput) (billingdto.InvoiceOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type InvoicesLoadedMsg struct {
	Invoices  []billingdto.InvoiceOutput
	FromCache bool
	Err       error
}

type InvoiceCreatedMsg struct {
	Invoice billingdto.InvoiceOutput
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type invoiceItem struct{ inv billingdto.InvoiceOutput }

func (i invoiceItem) Title() string {
	return fmt.Sprintf("#%d  %s  $%s", i.inv.ID, i.inv.ClientName, i.inv.Total)
}

func (i invoiceItem) Description() string {
	if i.inv.Paid {
		return "paid " + i.inv.PaidAt.Format("02 Jan 2006")
	}
	return "unpaid"
}

func (i invoiceItem) FilterValue() string {
	return fmt.Sprintf("%d %s", i.inv.ID, i.inv.ClientName)
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       BillingPort
	list       list.Model
	detail     viewport.Model
	spinner    spinner.Model
	invoices   []billingdto.InvoiceOutput
	loading    bool
	fromCache  bool
	statusLine string
	width      int
	height     int
}

func New(port BillingPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Invoices"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, detail: vp, spinner: sp}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Reload fetches the invoice list again.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	m.statusLine = ""
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Clear drops the list, used when the session ends.
func (m *Model) Clear() tea.Cmd {
	m.invoices = nil
	m.fromCache = false
	m.statusLine = ""
	m.detail.SetContent("")
	return m.list.SetItems(nil)
}

// Create raises a new invoice; the result lands back as InvoiceCreatedMsg.
func (m *Model) Create(clientID int64, shiftIDs []int64, due time.Time) tea.Cmd {
	return m.createCmd(clientID, shiftIDs, due)
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
		m.resize()

	case InvoicesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.statusLine = "load failed: " + msg.Err.Error()
			return m, nil
		}
		m.invoices = msg.Invoices
		m.fromCache = msg.FromCache
		items := make([]list.Item, len(msg.Invoices))
		for i, inv := range msg.Invoices {
			items[i] = invoiceItem{inv: inv}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderDetail())

	case InvoiceCreatedMsg:
		if msg.Err != nil {
			m.statusLine = "create failed: " + msg.Err.Error()
			return m, nil
		}
		m.statusLine = fmt.Sprintf("raised invoice %d for %s", msg.Invoice.ID, msg.Invoice.ClientName)
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
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.detail.SetContent(m.renderDetail())
		}

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading invoices…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	bodyH := m.height
	var footer []string
	if m.fromCache {
		footer = append(footer, theme.Hot.Render("offline — showing cached data"))
	}
	if m.statusLine != "" {
		footer = append(footer, theme.Muted.Render(m.statusLine))
	}
	if len(footer) > 0 {
		bodyH--
	}

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(bodyH).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(bodyH - 2).
		Render(m.detail.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
	if len(footer) > 0 {
		return lipgloss.JoinVertical(lipgloss.Left, body, strings.Join(footer, "  "))
	}
	return body
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height-1)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 5
	if m.detail.Height < 1 {
		m.detail.Height = 1
	}
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(invoiceItem)
	if !ok {
		return theme.Muted.Render("Select an invoice to see details")
	}
	inv := item.inv
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("Invoice #%d", inv.ID)) + "\n\n")
	sb.WriteString(theme.Muted.Render("client:   ") + inv.ClientName + "\n")
	if inv.ClientEmail != "" {
		sb.WriteString(theme.Muted.Render("email:    ") + inv.ClientEmail + "\n")
	}
	sb.WriteString(theme.Muted.Render("shifts:   ") + fmt.Sprintf("%d", inv.ShiftCount) + "\n")
	sb.WriteString(theme.Muted.Render("subtotal: ") + "$" + inv.Subtotal + "\n")
	sb.WriteString(theme.Muted.Render("gst:      ") + "$" + inv.GST + "\n")
	sb.WriteString(theme.Muted.Render("total:    ") + theme.Hot.Render("$"+inv.Total) + "\n\n")
	if inv.Paid {
		sb.WriteString(theme.Good.Render("PAID "+inv.PaidAt.Format("02 Jan 2006")) + "\n")
	} else {
		sb.WriteString(theme.Bad.Render("UNPAID") + "\n")
	}
	return sb.String()
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.List(context.Background())
		return InvoicesLoadedMsg{Invoices: out.Invoices, FromCache: out.FromCache, Err: err}
	}
}

func (m Model) createCmd(clientID int64, shiftIDs []int64, due time.Time) tea.Cmd {
	return func() tea.Msg {
		invoice, err := m.port.Create(context.Background(), billingdto.CreateInvoiceInput{
			ClientID: clientID,
			ShiftIDs: shiftIDs,
			Due:      due,
		})
		return InvoiceCreatedMsg{Invoice: invoice, Err: err}
	}
}
