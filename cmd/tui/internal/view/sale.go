package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
)

type saleState int

const (
	saleStateForm saleState = iota
	saleStateSaving
	saleStateResult
)

type SaleModel struct {
	CommonModel
	ledgerService *ledger.Service

	state saleState
	form  *huh.Form
	saved *ledger.Transaction
	err   error

	// Form field bindings
	formKind     string
	formNetwork  string
	formCustomer string
	formSell     string
	formCost     string
	formIsDebt   bool
}

func NewSaleModel(svc *ledger.Service) SaleModel {
	m := SaleModel{
		ledgerService: svc,
		formKind:      string(ledger.KindBill),
		formNetwork:   string(ledger.NetworkMTN),
	}
	m.form = m.buildForm()

	return m
}

func (m SaleModel) Title() string { return "Record Sale" }

func (m SaleModel) ShortHelp() string {
	switch m.state {
	case saleStateForm:
		return "Esc: back | Enter/Tab: navigate form"
	case saleStateResult:
		return "n: another sale | Esc: back to menu"
	}

	return ""
}

func (m *SaleModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("kind").
				Title("Sale type").
				Options(
					huh.NewOption("Bill payment", string(ledger.KindBill)),
					huh.NewOption("Airtime credit", string(ledger.KindCredit)),
					huh.NewOption("Accessory", string(ledger.KindAccessories)),
				).
				Value(&m.formKind),

			huh.NewInput().
				Key("customer").
				Title("Customer").
				Placeholder(ledger.DefaultCustomerName).
				Value(&m.formCustomer),

			huh.NewInput().
				Key("sell").
				Title("Charged to customer").
				Placeholder("50000").
				Validate(validateAmount).
				Value(&m.formSell),

			huh.NewInput().
				Key("cost").
				Title("Cost price (bills and accessories)").
				Placeholder("0").
				Validate(validateOptionalAmount).
				Value(&m.formCost),

			huh.NewConfirm().
				Key("debt").
				Title("Customer owes this amount?").
				Affirmative("Yes").
				Negative("No").
				Value(&m.formIsDebt),
		),

		// Credit sales need the network so the right supplier account
		// absorbs the sale.
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("network").
				Title("Network").
				Options(
					huh.NewOption("MTN", string(ledger.NetworkMTN)),
					huh.NewOption("Syriatel", string(ledger.NetworkSyriatel)),
				).
				Value(&m.formNetwork),
		).WithHideFunc(func() bool {
			return m.formKind != string(ledger.KindCredit)
		}),
	).WithWidth(50).WithShowHelp(false)
}

func (m SaleModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SaleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(saleSavedMsg); ok {
		m.state = saleStateResult
		m.saved = result.tx
		m.err = result.err

		return m, nil
	}

	switch m.state {
	case saleStateForm:
		return m.updateForm(msg)
	case saleStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m SaleModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = saleStateSaving

	return m, m.saveSaleCmd()
}

func (m SaleModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			fresh := NewSaleModel(m.ledgerService)
			fresh.CommonModel = m.CommonModel

			return fresh, fresh.Init()
		}
	}

	return m, nil
}

func (m SaleModel) View() string {
	switch m.state {
	case saleStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case saleStateSaving:
		return lipgloss.NewStyle().Padding(1).Render("Saving sale...")

	case saleStateResult:
		return m.viewResult()
	}

	return ""
}

func (m SaleModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	tx := m.saved
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")).Render("Sale recorded")

	lines := fmt.Sprintf(
		"%s  %s  %s\nCharged: %s  Cost: %s  Profit: %s",
		FormatDate(tx.Date), kindLabel(tx.Kind), tx.CustomerName,
		FormatMoney(tx.SellPrice), FormatMoney(tx.CostPrice), FormatMoney(tx.Profit),
	)
	if tx.Network != "" {
		lines += fmt.Sprintf("\nNetwork: %s", networkLabel(tx.Network))
	}
	if tx.IsDebt {
		lines += "\n" + lipgloss.NewStyle().Faint(true).Render("Recorded as open customer debt.")
	}

	body := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(lines)

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body))
}

type saleSavedMsg struct {
	tx  *ledger.Transaction
	err error
}

func (m SaleModel) saveSaleCmd() tea.Cmd {
	params := ledger.SaleParams{
		Kind:         ledger.Kind(m.form.GetString("kind")),
		CustomerName: m.form.GetString("customer"),
		IsDebt:       m.form.GetBool("debt"),
	}
	params.SellPrice, _ = parseAmount(m.form.GetString("sell"))
	params.CostPrice, _ = parseAmount(m.form.GetString("cost"))

	if params.Kind == ledger.KindCredit {
		params.Network = ledger.Network(m.form.GetString("network"))
	}

	svc := m.ledgerService

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		tx, err := svc.RecordSale(ctx, params)

		return saleSavedMsg{tx: tx, err: err}
	}
}
