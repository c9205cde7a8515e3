package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
)

// ReportModel shows the derived totals for the whole record set.
type ReportModel struct {
	CommonModel
	ledgerService *ledger.Service

	summary *ledger.Summary
	loading bool
	status  string
}

func NewReportModel(svc *ledger.Service) ReportModel {
	return ReportModel{
		ledgerService: svc,
		loading:       true,
	}
}

func (m ReportModel) Title() string { return "Books Summary" }

func (m ReportModel) ShortHelp() string {
	return "Esc: back | r: refresh"
}

func (m ReportModel) Init() tea.Cmd {
	return m.loadSummaryCmd()
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSummaryMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.summary = msg.summary

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadSummaryCmd()
		}
	}

	return m, nil
}

func (m ReportModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading summary...")
	}

	if m.summary == nil {
		return lipgloss.NewStyle().Padding(1).Render(lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	label := lipgloss.NewStyle().Faint(true).Width(20)
	profit := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	if m.summary.NetProfit < 0 {
		profit = profit.Foreground(lipgloss.Color("196"))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s\n", label.Render("Gross profit"), FormatMoney(m.summary.GrossProfit))
	fmt.Fprintf(&b, "%s%s\n", label.Render("Operating expenses"), FormatMoney(m.summary.OperatingExpenses))
	fmt.Fprintf(&b, "%s%s\n", label.Render("Cost of goods"), FormatMoney(m.summary.CapitalCost))
	fmt.Fprintf(&b, "%s%s\n", label.Render("Total expenses"), FormatMoney(m.summary.TotalExpenses))
	fmt.Fprintf(&b, "%s%s\n", label.Render("Net profit"), profit.Render(FormatMoney(m.summary.NetProfit)))
	fmt.Fprintf(&b, "%s%s\n", label.Render("Customer debts"), FormatMoney(m.summary.CustomerDebt))
	fmt.Fprintf(&b, "%s%s\n", label.Render("Owed to supplier"), FormatMoney(m.summary.SupplierBalance))

	for _, a := range m.summary.Accounts {
		fmt.Fprintf(&b, "%s%s debt, %s stock\n",
			label.Render(networkLabel(a.Network)),
			FormatMoney(a.Debt), FormatMoney(a.Stock))
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(strings.TrimRight(b.String(), "\n"))

	return lipgloss.NewStyle().Padding(1).Render(box)
}

type loadSummaryMsg struct {
	summary *ledger.Summary
	err     error
}

func (m ReportModel) loadSummaryCmd() tea.Cmd {
	svc := m.ledgerService

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		summary, err := svc.Summary(ctx)

		return loadSummaryMsg{summary: summary, err: err}
	}
}
