package view

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
)

type txState int

const (
	txStateList txState = iota
	txStateConfirmDelete
	txStateConfirmReset
)

// txItem wraps a transaction to implement list.Item.
type txItem struct {
	tx *ledger.Transaction
}

func (i txItem) Title() string {
	kind := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", kindLabel(i.tx.Kind)))

	return fmt.Sprintf("%s  %s  %s  %s", FormatDate(i.tx.Date), FormatMoney(i.tx.SellPrice), kind, i.tx.CustomerName)
}

func (i txItem) Description() string {
	parts := ""
	if i.tx.Network != "" {
		parts = networkLabel(i.tx.Network)
	}
	if i.tx.Profit != 0 {
		parts += fmt.Sprintf("  profit %s", FormatMoney(i.tx.Profit))
	}
	if i.tx.IsDebt && !i.tx.DebtPaid {
		parts += "  UNPAID"
	}

	return parts
}

func (i txItem) FilterValue() string {
	return i.tx.CustomerName
}

type TransactionsModel struct {
	CommonModel
	ledgerService *ledger.Service

	state     txState
	list      list.Model
	txs       []*ledger.Transaction
	openDebts bool
	loading   bool
	status    string
}

func NewTransactionsModel(svc *ledger.Service) TransactionsModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 0, 0)
	l.Title = "Transactions"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return TransactionsModel{
		ledgerService: svc,
		list:          l,
		loading:       true,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateList:
		return "Esc: back | p: mark debt paid | d: delete | o: unpaid only | R: wipe records | /: filter"
	case txStateConfirmDelete:
		return "y: delete | n: cancel"
	case txStateConfirmReset:
		return "y: wipe everything | n: cancel"
	}

	return ""
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.txs = msg.txs
		m.refreshListItems()

		if len(msg.txs) == 0 {
			m.status = "No transactions recorded."
		}

		return m, nil

	case txActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.state = txStateList

			return m, nil
		}

		m.status = msg.done
		m.state = txStateList

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case txStateList:
		return m.updateList(msg)
	case txStateConfirmDelete, txStateConfirmReset:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.list.FilterState() != list.Filtering {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "p":
				if selected, ok := m.list.SelectedItem().(txItem); ok {
					return m, m.markPaidCmd(selected.tx.ID)
				}
			case "d":
				if _, ok := m.list.SelectedItem().(txItem); ok {
					m.state = txStateConfirmDelete
					return m, nil
				}
			case "o":
				m.openDebts = !m.openDebts
				m.loading = true

				return m, m.loadTxsCmd()
			case "R":
				m.state = txStateConfirmReset
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		if m.state == txStateConfirmReset {
			return m, m.resetCmd()
		}

		if selected, ok := m.list.SelectedItem().(txItem); ok {
			return m, m.deleteCmd(selected.tx.ID)
		}

		m.state = txStateList

		return m, nil
	case "n", "esc":
		m.state = txStateList
		return m, nil
	}

	return m, nil
}

func (m TransactionsModel) View() string {
	switch m.state {
	case txStateConfirmDelete:
		selected, _ := m.list.SelectedItem().(txItem)
		prompt := "Delete this transaction?"
		if selected.tx != nil {
			prompt = fmt.Sprintf("Delete %s for %s from %s?",
				FormatMoney(selected.tx.SellPrice), selected.tx.CustomerName, FormatDate(selected.tx.Date))
		}

		return m.confirmView(prompt, "Supplier and debt balances are kept as they are.")

	case txStateConfirmReset:
		return m.confirmView("Wipe ALL records?", "Transactions, expenses, settlements and supplier accounts are erased.")
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}
	if m.openDebts {
		statusLine += lipgloss.NewStyle().Faint(true).Render("Showing unpaid customer debts only.") + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())
}

func (m TransactionsModel) confirmView(prompt, detail string) string {
	body := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Render(prompt) +
		"\n" + lipgloss.NewStyle().Faint(true).Render(detail) +
		"\n\ny: confirm    n: cancel"

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1).
			Render(body),
	)
}

func (m *TransactionsModel) refreshListItems() {
	items := make([]list.Item, len(m.txs))
	for i, tx := range m.txs {
		items[i] = txItem{tx: tx}
	}

	m.list.SetItems(items)
}

// Messages

type loadTxsMsg struct {
	txs []*ledger.Transaction
	err error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	svc := m.ledgerService
	filter := ledger.ListFilter{OpenDebts: m.openDebts}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		txs, err := svc.Transactions(ctx, filter)

		return loadTxsMsg{txs: txs, err: err}
	}
}

type txActionMsg struct {
	done string
	err  error
}

func (m TransactionsModel) markPaidCmd(id uuid.UUID) tea.Cmd {
	svc := m.ledgerService

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := svc.MarkDebtPaid(ctx, id); err != nil {
			return txActionMsg{err: err}
		}

		return txActionMsg{done: "Debt marked paid."}
	}
}

func (m TransactionsModel) deleteCmd(id uuid.UUID) tea.Cmd {
	svc := m.ledgerService

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := svc.DeleteTransaction(ctx, id); err != nil {
			return txActionMsg{err: err}
		}

		return txActionMsg{done: "Deleted."}
	}
}

func (m TransactionsModel) resetCmd() tea.Cmd {
	svc := m.ledgerService

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := svc.Reset(ctx); err != nil {
			return txActionMsg{err: err}
		}

		return txActionMsg{done: "All records wiped."}
	}
}

// txItemDelegate renders items in the list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	desc := i.Description()
	if desc == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(desc))
}
