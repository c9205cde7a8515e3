package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
)

// utf8BOM makes spreadsheet apps decode the files as UTF-8, which matters
// for Arabic customer and expense names.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Service writes the ledger books as CSV files for handoff to an accountant.
type Service struct {
	ledger *ledger.Service
}

func NewService(svc *ledger.Service) *Service {
	return &Service{ledger: svc}
}

// Export writes transactions, expenses and settlements into outputDir and
// returns the paths of the files written.
func (s *Service) Export(ctx context.Context, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	txs, err := s.ledger.Transactions(ctx, ledger.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	exps, err := s.ledger.Expenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	sts, err := s.ledger.Settlements(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing settlements: %w", err)
	}

	var paths []string

	path, err := s.writeBook(outputDir, "transactions.csv", transactionRows(txs))
	if err != nil {
		return nil, err
	}

	paths = append(paths, path)

	path, err = s.writeBook(outputDir, "expenses.csv", expenseRows(exps))
	if err != nil {
		return nil, err
	}

	paths = append(paths, path)

	path, err = s.writeBook(outputDir, "settlements.csv", settlementRows(sts))
	if err != nil {
		return nil, err
	}

	return append(paths, path), nil
}

func (s *Service) writeBook(dir, name string, rows [][]string) (string, error) {
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	return path, nil
}

func transactionRows(txs []*ledger.Transaction) [][]string {
	rows := make([][]string, 0, len(txs)+1)
	rows = append(rows, []string{
		"date", "kind", "network", "customer", "sell_price", "cost_price",
		"profit", "is_debt", "debt_paid", "supplier_paid",
	})

	for _, t := range txs {
		rows = append(rows, []string{
			t.Date.Format("2006-01-02"),
			string(t.Kind),
			string(t.Network),
			t.CustomerName,
			strconv.FormatInt(t.SellPrice, 10),
			strconv.FormatInt(t.CostPrice, 10),
			strconv.FormatInt(t.Profit, 10),
			strconv.FormatBool(t.IsDebt),
			strconv.FormatBool(t.DebtPaid),
			strconv.FormatBool(t.SupplierPaid),
		})
	}

	return rows
}

func expenseRows(exps []*ledger.Expense) [][]string {
	rows := make([][]string, 0, len(exps)+1)
	rows = append(rows, []string{"date", "name", "amount"})

	for _, e := range exps {
		rows = append(rows, []string{
			e.Date.Format("2006-01-02"),
			e.Name,
			strconv.FormatInt(e.Amount, 10),
		})
	}

	return rows
}

func settlementRows(sts []*ledger.SupplierSettlement) [][]string {
	rows := make([][]string, 0, len(sts)+1)
	rows = append(rows, []string{"date", "amount", "note"})

	for _, st := range sts {
		rows = append(rows, []string{
			st.Date.Format("2006-01-02"),
			strconv.FormatInt(st.Amount, 10),
			st.Note,
		})
	}

	return rows
}
