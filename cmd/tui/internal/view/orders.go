package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

type ordersState int

const (
	ordersStateBrowse ordersState = iota
	ordersStateEdit
	ordersStateHistory
)

var statusFilters = []*purchaseorder.Status{
	nil,
	new(purchaseorder.StatusDraft),
	new(purchaseorder.StatusApproved),
	new(purchaseorder.StatusIssued),
	new(purchaseorder.StatusComplete),
	new(purchaseorder.StatusCancelled),
}

// orderEdit holds the huh form bindings. It lives behind a pointer so the
// form keeps writing to the same fields as the model is copied around.
type orderEdit struct {
	status string
	bump   bool
}

type OrdersModel struct {
	CommonModel
	poService *purchaseorder.Service

	state ordersState
	table table.Model
	pos   []*purchaseorder.PurchaseOrder
	form  *huh.Form
	edit  *orderEdit

	statusFilterIdx int
	filter          purchaseorder.ListFilter

	history []*purchaseorder.PurchaseOrder

	loading bool
	err     error
	status  string
}

func NewOrdersModel(svc *purchaseorder.Service) OrdersModel {
	columns := []table.Column{
		{Title: "PO No", Width: 8},
		{Title: "Rev", Width: 4},
		{Title: "Status", Width: 10},
		{Title: "Project", Width: 10},
		{Title: "Supplier", Width: 30},
		{Title: "Updated", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return OrdersModel{
		poService: svc,
		table:     t,
		loading:   true,
	}
}

func (m OrdersModel) Title() string { return "Purchase Orders" }

func (m OrdersModel) ShortHelp() string {
	switch m.state {
	case ordersStateEdit:
		return "Navigate form | Esc: cancel"
	case ordersStateHistory:
		return "Esc: close history"
	}

	return "Esc: back | e: edit | h: history | s: status filter | r: refresh"
}

func (m OrdersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m OrdersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadOrdersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.pos = msg.pos
		m.refreshTable()

		return m, nil

	case orderHistoryMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading history: %v", msg.err)
			return m, nil
		}

		m.history = msg.revisions
		m.state = ordersStateHistory

		return m, nil

	case orderSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Saved."
		}

		m.state = ordersStateBrowse
		m.form = nil
		m.edit = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.SetSize(msg)
		m.table.SetHeight(msg.Height - 10)

		return m, nil
	}

	switch m.state {
	case ordersStateBrowse:
		return m.updateBrowse(msg)
	case ordersStateEdit:
		return m.updateEdit(msg)
	case ordersStateHistory:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = ordersStateBrowse
			m.history = nil
		}
	}

	return m, nil
}

func (m OrdersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "e":
			return m.enterEditMode()
		case "h":
			if po := m.selected(); po != nil {
				return m, m.historyCmd(po.PONumber)
			}

			return m, nil
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			m.filter.Status = statusFilters[m.statusFilterIdx]

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m OrdersModel) selected() *purchaseorder.PurchaseOrder {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.pos) {
		return nil
	}

	return m.pos[idx]
}

func (m OrdersModel) enterEditMode() (tea.Model, tea.Cmd) {
	po := m.selected()
	if po == nil {
		return m, nil
	}

	next := purchaseorder.AllowedNextStatuses(po.Status)
	options := make([]huh.Option[string], 0, len(next))

	for _, s := range next {
		options = append(options, huh.NewOption(string(s), string(s)))
	}

	m.edit = &orderEdit{status: string(po.Status)}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("status").
				Title("Status").
				Options(options...).
				Value(&m.edit.status),

			huh.NewConfirm().
				Key("bump").
				Title("New revision?").
				Description("Only applies to issued orders").
				Value(&m.edit.bump),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = ordersStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m OrdersModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = ordersStateBrowse
		m.form = nil
		m.edit = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m OrdersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading purchase orders...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	label := "All"
	if f := statusFilters[m.statusFilterIdx]; f != nil {
		label = string(*f)
	}

	header := fmt.Sprintf("Filter: [s] Status: %s | %d orders", activeStyle(label), len(m.pos))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	switch {
	case m.state == ordersStateEdit && m.form != nil:
		title := "Edit Purchase Order"
		if po := m.selected(); po != nil {
			title = fmt.Sprintf("PO %s rev %s", po.DisplayNumber(), po.Revision)
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(title+"\n\n"+m.form.View()))

	case m.state == ordersStateHistory:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(m.historyView()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m OrdersModel) historyView() string {
	if len(m.history) == 0 {
		return "No history."
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "History of PO %s\n\n", m.history[0].DisplayNumber())

	for _, rev := range m.history {
		marker := " "
		if rev.Active {
			marker = "*"
		}

		fmt.Fprintf(&sb, "%s %-3s %-10s %s\n", marker, rev.Revision, rev.Status, FormatDate(rev.CreatedAt))
	}

	return sb.String()
}

func panel(body string) string {
	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(48).
		Render(body)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *OrdersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.pos))
	for _, po := range m.pos {
		rows = append(rows, table.Row{
			po.DisplayNumber(),
			po.Revision,
			string(po.Status),
			po.ProjectNumber,
			po.SupplierName,
			FormatDate(po.UpdatedAt),
		})
	}

	m.table.SetRows(rows)
}

type loadOrdersMsg struct {
	pos []*purchaseorder.PurchaseOrder
	err error
}

func (m OrdersModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		pos, err := m.poService.List(ctx, filter)

		return loadOrdersMsg{pos: pos, err: err}
	}
}

type orderHistoryMsg struct {
	revisions []*purchaseorder.PurchaseOrder
	err       error
}

func (m OrdersModel) historyCmd(number int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		revisions, err := m.poService.History(ctx, number)

		return orderHistoryMsg{revisions: revisions, err: err}
	}
}

type orderSaveMsg struct {
	err error
}

func (m OrdersModel) saveCmd() tea.Cmd {
	po := m.selected()
	if po == nil || m.edit == nil {
		return nil
	}

	id := po.ID
	edit := *m.edit

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		// Line items are replaced on save, so resubmit the current ones.
		detail, err := m.poService.Get(ctx, id)
		if err != nil {
			return orderSaveMsg{err: err}
		}

		_, err = m.poService.Save(ctx, purchaseorder.SaveRequest{
			ID:        id,
			Status:    edit.status,
			Bump:      edit.bump,
			LineItems: detail.LineItems,
		})

		return orderSaveMsg{err: err}
	}
}
