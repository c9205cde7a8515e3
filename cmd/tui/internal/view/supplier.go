package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
)

type supplierState int

const (
	supplierStateOverview supplierState = iota
	supplierStateConfirmSettle
	supplierStateStockForm
)

type SupplierModel struct {
	CommonModel
	ledgerService *ledger.Service

	state       supplierState
	summary     *ledger.Summary
	settlements []*ledger.SupplierSettlement
	loading     bool
	status      string

	form *huh.Form

	// Form field bindings
	formNetwork string
	formAmount  string
	formNote    string
}

func NewSupplierModel(svc *ledger.Service) SupplierModel {
	return SupplierModel{
		ledgerService: svc,
		loading:       true,
	}
}

func (m SupplierModel) Title() string { return "Supplier Account" }

func (m SupplierModel) ShortHelp() string {
	switch m.state {
	case supplierStateOverview:
		return "Esc: back | s: settle balance | n: receive stock | r: refresh"
	case supplierStateConfirmSettle:
		return "Enter: confirm"
	case supplierStateStockForm:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m SupplierModel) Init() tea.Cmd {
	return m.loadSupplierCmd()
}

func (m SupplierModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSupplierMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.summary = msg.summary
		m.settlements = msg.settlements

		return m, nil

	case supplierActionMsg:
		m.state = supplierStateOverview
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = msg.done
		m.loading = true

		return m, m.loadSupplierCmd()
	}

	switch m.state {
	case supplierStateOverview:
		return m.updateOverview(msg)
	case supplierStateConfirmSettle:
		return m.updateForm(msg, m.settleCmd)
	case supplierStateStockForm:
		return m.updateForm(msg, m.receiveStockCmd)
	}

	return m, nil
}

func (m SupplierModel) updateOverview(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "r":
		m.loading = true
		return m, m.loadSupplierCmd()
	case "s":
		if m.summary == nil || m.summary.SupplierBalance <= 0 {
			m.status = "Nothing owed to the supplier."
			return m, nil
		}

		m.form = m.buildSettleForm()
		m.state = supplierStateConfirmSettle

		return m, m.form.Init()
	case "n":
		m.form = m.buildStockForm()
		m.state = supplierStateStockForm

		return m, m.form.Init()
	}

	return m, nil
}

func (m SupplierModel) updateForm(msg tea.Msg, submit func() tea.Cmd) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = supplierStateOverview
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, submit()
}

func (m *SupplierModel) buildSettleForm() *huh.Form {
	m.formNote = ""

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("note").
				Title(fmt.Sprintf("Settle %s. Note (optional)", FormatMoney(m.summary.SupplierBalance))).
				Placeholder("settled with Anas").
				Value(&m.formNote),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m *SupplierModel) buildStockForm() *huh.Form {
	m.formNetwork = string(ledger.NetworkMTN)
	m.formAmount = ""

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("network").
				Title("Network").
				Options(
					huh.NewOption("MTN", string(ledger.NetworkMTN)),
					huh.NewOption("Syriatel", string(ledger.NetworkSyriatel)),
				).
				Value(&m.formNetwork),

			huh.NewInput().
				Key("amount").
				Title("Purchase amount").
				Placeholder("100000").
				Validate(validateAmount).
				Value(&m.formAmount),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m SupplierModel) View() string {
	if m.state != supplierStateOverview && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading supplier account...")
	}

	if m.summary == nil {
		return lipgloss.NewStyle().Padding(1).Render(lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	var b strings.Builder

	balStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	if m.summary.SupplierBalance > 0 {
		balStyle = balStyle.Foreground(lipgloss.Color("196"))
	}

	fmt.Fprintf(&b, "Owed to supplier: %s\n", balStyle.Render(FormatMoney(m.summary.SupplierBalance)))

	for _, a := range m.summary.Accounts {
		fmt.Fprintf(&b, "\n%s\n  debt  %s\n  stock %s\n",
			lipgloss.NewStyle().Bold(true).Render(networkLabel(a.Network)),
			FormatMoney(a.Debt), FormatMoney(a.Stock))
	}

	if len(m.settlements) > 0 {
		b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Past settlements") + "\n")
		for _, s := range m.settlements {
			note := s.Note
			if note != "" {
				note = "  " + lipgloss.NewStyle().Faint(true).Render(note)
			}

			fmt.Fprintf(&b, "  %s  %s%s\n", FormatDate(s.Date), FormatMoney(s.Amount), note)
		}
	}

	if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(b.String())

	return lipgloss.NewStyle().Padding(1).Render(box)
}

// Messages

type loadSupplierMsg struct {
	summary     *ledger.Summary
	settlements []*ledger.SupplierSettlement
	err         error
}

func (m SupplierModel) loadSupplierCmd() tea.Cmd {
	svc := m.ledgerService

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		summary, err := svc.Summary(ctx)
		if err != nil {
			return loadSupplierMsg{err: err}
		}

		settlements, err := svc.Settlements(ctx)

		return loadSupplierMsg{summary: summary, settlements: settlements, err: err}
	}
}

type supplierActionMsg struct {
	done string
	err  error
}

func (m SupplierModel) settleCmd() tea.Cmd {
	svc := m.ledgerService
	note := m.form.GetString("note")

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		settlement, err := svc.SettleSupplier(ctx, note)
		if err != nil {
			return supplierActionMsg{err: err}
		}
		if settlement == nil {
			return supplierActionMsg{done: "Nothing owed to the supplier."}
		}

		return supplierActionMsg{done: fmt.Sprintf("Settled %s.", FormatMoney(settlement.Amount))}
	}
}

func (m SupplierModel) receiveStockCmd() tea.Cmd {
	svc := m.ledgerService
	network := ledger.Network(m.form.GetString("network"))
	amount, _ := parseAmount(m.form.GetString("amount"))

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		acct, err := svc.ReceiveStock(ctx, network, amount)
		if err != nil {
			return supplierActionMsg{err: err}
		}

		return supplierActionMsg{
			done: fmt.Sprintf("%s stock now %s, debt %s.",
				networkLabel(acct.Network), FormatMoney(acct.Stock), FormatMoney(acct.Debt)),
		}
	}
}
