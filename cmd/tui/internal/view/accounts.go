package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/poflow/internal/accounts"
)

// AccountsModel walks the accounts team through every active PO that is
// not yet marked complete, one at a time.
type AccountsModel struct {
	CommonModel
	accService *accounts.Service

	queue   []accounts.Entry
	current *accounts.Entry

	refInput textinput.Model

	loading    bool
	status     string
	totalCount int
}

func NewAccountsModel(svc *accounts.Service) AccountsModel {
	ti := textinput.New()
	ti.Placeholder = "INV-0001"
	ti.CharLimit = 100
	ti.Width = 40

	return AccountsModel{
		accService: svc,
		refInput:   ti,
		loading:    true,
	}
}

func (m AccountsModel) Title() string { return "Accounts Queue" }

func (m AccountsModel) ShortHelp() string {
	return "Enter: mark complete | s: skip | Esc: back"
}

func (m AccountsModel) Init() tea.Cmd {
	return m.loadQueueCmd()
}

func (m AccountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "enter":
			if m.current != nil {
				return m, m.completeCmd(*m.current, m.refInput.Value())
			}
		case "s":
			// Only skips while the reference is empty.
			if m.current != nil && m.refInput.Value() == "" {
				m.next()
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.SetSize(msg)
		m.refInput.Width = min(60, max(20, msg.Width-10))

		return m, nil

	case loadQueueMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.queue = msg.entries
		m.totalCount = len(m.queue)
		m.next()

		return m, textinput.Blink

	case accountsActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.status = ""
		m.next()

		return m, nil
	}

	var cmd tea.Cmd
	m.refInput, cmd = m.refInput.Update(msg)

	return m, cmd
}

func (m AccountsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading accounts queue...")
	}

	if m.current == nil {
		if m.totalCount == 0 && m.status == "" {
			return lipgloss.NewStyle().Padding(2).Render("Nothing waiting for accounts.\n\n(Esc to back)")
		}

		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n(Esc to back)")
	}

	e := m.current

	var sb strings.Builder

	fmt.Fprintf(&sb, "PO:       %06d rev %s\n", e.PONumber, e.Revision)
	fmt.Fprintf(&sb, "Project:  %s\n", e.ProjectNumber)
	fmt.Fprintf(&sb, "Supplier: %s\n", e.SupplierName)
	fmt.Fprintf(&sb, "Status:   %s\n", e.Status)
	fmt.Fprintf(&sb, "Net:      %s\n", FormatMoney(e.Net))

	body := fmt.Sprintf("Awaiting accounts (%d remaining)\n\n%s\nInvoice reference:\n%s\n\n(Enter to mark complete, 's' to skip, Esc to back)",
		len(m.queue)+1, sb.String(), m.refInput.View())

	if m.status != "" {
		body = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) + "\n\n" + body
	}

	return lipgloss.NewStyle().Padding(2).Render(body)
}

func (m *AccountsModel) next() {
	m.refInput.SetValue("")

	if len(m.queue) == 0 {
		m.current = nil
		m.status = "All done!"

		return
	}

	m.current = &m.queue[0]
	m.queue = m.queue[1:]

	if m.current.InvoiceReference != nil {
		m.refInput.SetValue(*m.current.InvoiceReference)
	}

	m.refInput.Focus()
}

type loadQueueMsg struct {
	entries []accounts.Entry
	err     error
}

func (m AccountsModel) loadQueueCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.accService.Overview(ctx, accounts.Filter{AccComplete: new(false)})

		return loadQueueMsg{entries: entries, err: err}
	}
}

type accountsActionMsg struct {
	err error
}

func (m AccountsModel) completeCmd(e accounts.Entry, ref string) tea.Cmd {
	u := accounts.Update{AccComplete: new(true)}
	if ref = strings.TrimSpace(ref); ref != "" {
		u.InvoiceReference = &ref
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return accountsActionMsg{err: m.accService.Update(ctx, e.POID, u)}
	}
}
