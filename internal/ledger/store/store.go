// Package store is the PostgreSQL-backed ledger repository used by the HTTP
// API deployment.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row and returns a populated Transaction.
// Expected column order: id, date, kind, network, customer_name, sell_price,
// cost_price, profit, is_debt, debt_paid, supplier_paid, created_at
func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	var kindStr string

	var networkStr sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.Date, &kindStr, &networkStr, &tx.CustomerName,
		&tx.SellPrice, &tx.CostPrice, &tx.Profit,
		&tx.IsDebt, &tx.DebtPaid, &tx.SupplierPaid, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Kind = ledger.Kind(kindStr)
	tx.Network = ledger.Network(networkStr.String)

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.date, t.kind, t.network, t.customer_name,
	t.sell_price, t.cost_price, t.profit,
	t.is_debt, t.debt_paid, t.supplier_paid, t.created_at
`

func networkColumn(n ledger.Network) sql.NullString {
	return sql.NullString{String: string(n), Valid: n != ""}
}

func (s *Store) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (date, kind, network, customer_name, sell_price, cost_price, profit, is_debt, debt_paid, supplier_paid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, FALSE, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.Date,
		tx.Kind,
		networkColumn(tx.Network),
		tx.CustomerName,
		tx.SellPrice,
		tx.CostPrice,
		tx.Profit,
		tx.IsDebt,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND t.kind = $%d", argIdx)

		args = append(args, *filter.Kind)
		argIdx++
	}

	if filter.Network != nil {
		query += fmt.Sprintf(" AND t.network = $%d", argIdx)

		args = append(args, *filter.Network)
		argIdx++
	}

	if filter.OpenDebts {
		query += " AND t.is_debt AND NOT t.debt_paid"
	}

	query += " ORDER BY t.date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

func (s *Store) MarkDebtPaid(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE transactions
		SET debt_paid = TRUE
		WHERE id = $1 AND is_debt
	`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("marking debt paid: %w", err)
	}

	return nil
}

func (s *Store) MarkSupplierPaid(ctx context.Context) error {
	query := `
		UPDATE transactions
		SET supplier_paid = TRUE
		WHERE kind IN ('bill', 'credit') AND NOT supplier_paid
	`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("marking supplier paid: %w", err)
	}

	return nil
}

func (s *Store) CreateExpense(ctx context.Context, e *ledger.Expense) error {
	query := `
		INSERT INTO expenses (date, name, amount, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, e.Date, e.Name, e.Amount).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (s *Store) ListExpenses(ctx context.Context) ([]*ledger.Expense, error) {
	query := `
		SELECT id, date, name, amount, created_at
		FROM expenses
		ORDER BY date DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var exps []*ledger.Expense

	for rows.Next() {
		var e ledger.Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.Name, &e.Amount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		exps = append(exps, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense rows: %w", err)
	}

	return exps, nil
}

func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

func (s *Store) CreateSettlement(ctx context.Context, st *ledger.SupplierSettlement) error {
	query := `
		INSERT INTO supplier_settlements (date, amount, note, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, st.Date, st.Amount, st.Note).
		Scan(&st.ID, &st.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating settlement: %w", err)
	}

	return nil
}

func (s *Store) ListSettlements(ctx context.Context) ([]*ledger.SupplierSettlement, error) {
	query := `
		SELECT id, date, amount, note, created_at
		FROM supplier_settlements
		ORDER BY date DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing settlements: %w", err)
	}
	defer rows.Close()

	var sts []*ledger.SupplierSettlement

	for rows.Next() {
		var st ledger.SupplierSettlement
		if err := rows.Scan(&st.ID, &st.Date, &st.Amount, &st.Note, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning settlement: %w", err)
		}

		sts = append(sts, &st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating settlement rows: %w", err)
	}

	return sts, nil
}

func (s *Store) GetAccount(ctx context.Context, network ledger.Network) (*ledger.SupplierAccount, error) {
	query := `
		SELECT network, debt, stock
		FROM supplier_accounts
		WHERE network = $1
	`

	var acct ledger.SupplierAccount

	err := s.db.QueryRowContext(ctx, query, network).
		Scan(&acct.Network, &acct.Debt, &acct.Stock)
	if err != nil {
		if err == sql.ErrNoRows {
			return &ledger.SupplierAccount{Network: network}, nil
		}

		return nil, fmt.Errorf("getting supplier account: %w", err)
	}

	return &acct, nil
}

func (s *Store) SaveAccount(ctx context.Context, acct *ledger.SupplierAccount) error {
	query := `
		INSERT INTO supplier_accounts (network, debt, stock)
		VALUES ($1, $2, $3)
		ON CONFLICT (network) DO UPDATE SET debt = EXCLUDED.debt, stock = EXCLUDED.stock
	`

	if _, err := s.db.ExecContext(ctx, query, acct.Network, acct.Debt, acct.Stock); err != nil {
		return fmt.Errorf("saving supplier account: %w", err)
	}

	return nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]*ledger.SupplierAccount, error) {
	stored := make(map[ledger.Network]*ledger.SupplierAccount)

	rows, err := s.db.QueryContext(ctx, `SELECT network, debt, stock FROM supplier_accounts`)
	if err != nil {
		return nil, fmt.Errorf("listing supplier accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var acct ledger.SupplierAccount
		if err := rows.Scan(&acct.Network, &acct.Debt, &acct.Stock); err != nil {
			return nil, fmt.Errorf("scanning supplier account: %w", err)
		}

		stored[acct.Network] = &acct
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	// Unseeded networks come back with zero balances so callers always see
	// every operator.
	accts := make([]*ledger.SupplierAccount, 0, len(ledger.Networks()))

	for _, n := range ledger.Networks() {
		if a, ok := stored[n]; ok {
			accts = append(accts, a)
			continue
		}

		accts = append(accts, &ledger.SupplierAccount{Network: n})
	}

	return accts, nil
}

func (s *Store) Reset(ctx context.Context) error {
	query := `TRUNCATE transactions, expenses, supplier_settlements, supplier_accounts`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("resetting ledger: %w", err)
	}

	return nil
}
