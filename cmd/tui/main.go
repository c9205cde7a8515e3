package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/mayarh926-blip/etesalat-app/cmd/tui/internal/view"
	"github.com/mayarh926-blip/etesalat-app/internal/config"
	"github.com/mayarh926-blip/etesalat-app/internal/database"
	"github.com/mayarh926-blip/etesalat-app/internal/export"
	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
	"github.com/mayarh926-blip/etesalat-app/internal/ledger/localstore"
	ledgerStore "github.com/mayarh926-blip/etesalat-app/internal/ledger/store"
)

type model struct {
	ledgerService *ledger.Service
	exportService *export.Service
	exportDir     string

	currentView View

	saleView         view.SaleModel
	transactionsView view.TransactionsModel
	expensesView     view.ExpensesModel
	supplierView     view.SupplierModel
	reportView       view.ReportModel
	exportView       view.ExportModel
}

type View int

const (
	ViewMenu View = iota
	ViewSale
	ViewTransactions
	ViewExpenses
	ViewSupplier
	ViewReport
	ViewExport
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	repo, err := openRepository(cfg)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}

	policy, err := ledger.PolicyFor(ledger.PolicyName(cfg.Ledger.Policy))
	if err != nil {
		slog.Error("failed to resolve credit policy", "policy", cfg.Ledger.Policy, "error", err)
		os.Exit(1)
	}

	ledgerSvc := ledger.NewService(repo, policy)
	exportSvc := export.NewService(ledgerSvc)

	return model{
		ledgerService: ledgerSvc,
		exportService: exportSvc,
		exportDir:     cfg.Export.Dir,
		currentView:   ViewMenu,
	}
}

func openRepository(cfg *config.Config) (ledger.Repository, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, err
		}

		return ledgerStore.New(db), nil

	case "file":
		return localstore.Open(cfg.Storage.Dir)
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewSale
				m.saleView = view.NewSaleModel(m.ledgerService)

				return m, m.saleView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.ledgerService)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewExpenses
				m.expensesView = view.NewExpensesModel(m.ledgerService)

				return m, m.expensesView.Init()
			case "4":
				m.currentView = ViewSupplier
				m.supplierView = view.NewSupplierModel(m.ledgerService)

				return m, m.supplierView.Init()
			case "5":
				m.currentView = ViewReport
				m.reportView = view.NewReportModel(m.ledgerService)

				return m, m.reportView.Init()
			case "6":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.exportDir)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewSale:
		var newModel tea.Model
		newModel, cmd = m.saleView.Update(msg)
		m.saleView = newModel.(view.SaleModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewSupplier:
		var newModel tea.Model
		newModel, cmd = m.supplierView.Update(msg)
		m.supplierView = newModel.(view.SupplierModel)
	case ViewReport:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Etesalat Books\n\n" +
				"1. Record Sale\n" +
				"2. Transactions\n" +
				"3. Expenses\n" +
				"4. Supplier Account\n" +
				"5. Books Summary\n" +
				"6. Export Books\n\n" +
				"q. Quit",
		)
	case ViewSale:
		return m.saleView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewExpenses:
		return m.expensesView.View()
	case ViewSupplier:
		return m.supplierView.View()
	case ViewReport:
		return m.reportView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
