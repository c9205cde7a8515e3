// Package localstore is a file-backed snapshot store for the ledger. Every
// record collection lives in its own named JSON blob under a data directory,
// loaded once at open and rewritten after each mutation, mirroring the
// key-value blob layout the ledger was originally persisted in.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
)

const (
	transactionsFile = "transactions.json"
	expensesFile     = "expenses.json"
	settlementsFile  = "settlements.json"
	accountsFile     = "supplier_accounts.json"
)

type Store struct {
	dir string

	mu           sync.Mutex
	transactions []*ledger.Transaction
	expenses     []*ledger.Expense
	settlements  []*ledger.SupplierSettlement
	accounts     map[ledger.Network]*ledger.SupplierAccount
}

// Open loads the last-persisted state from dir, creating the directory and
// starting from an empty ledger when nothing has been saved yet.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	s := &Store{
		dir:      dir,
		accounts: make(map[ledger.Network]*ledger.SupplierAccount),
	}

	if err := readBlob(filepath.Join(dir, transactionsFile), &s.transactions); err != nil {
		return nil, err
	}

	if err := readBlob(filepath.Join(dir, expensesFile), &s.expenses); err != nil {
		return nil, err
	}

	if err := readBlob(filepath.Join(dir, settlementsFile), &s.settlements); err != nil {
		return nil, err
	}

	var accts []*ledger.SupplierAccount
	if err := readBlob(filepath.Join(dir, accountsFile), &accts); err != nil {
		return nil, err
	}

	for _, a := range accts {
		s.accounts[a.Network] = a
	}

	return s, nil
}

func readBlob(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	return nil
}

// writeBlob persists one collection atomically: marshal, write a temp file,
// rename over the old blob.
func (s *Store) writeBlob(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}

	return nil
}

func (s *Store) saveTransactions() error {
	return s.writeBlob(transactionsFile, s.transactions)
}

func (s *Store) saveExpenses() error {
	return s.writeBlob(expensesFile, s.expenses)
}

func (s *Store) saveSettlements() error {
	return s.writeBlob(settlementsFile, s.settlements)
}

func (s *Store) saveAccounts() error {
	accts := make([]*ledger.SupplierAccount, 0, len(s.accounts))
	for _, n := range ledger.Networks() {
		if a, ok := s.accounts[n]; ok {
			accts = append(accts, a)
		}
	}

	return s.writeBlob(accountsFile, accts)
}

func (s *Store) CreateTransaction(_ context.Context, tx *ledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx.ID = uuid.New()
	tx.CreatedAt = time.Now()

	c := *tx
	// Most-recent-first is the display convention; aggregates never depend
	// on it.
	s.transactions = append([]*ledger.Transaction{&c}, s.transactions...)

	return s.saveTransactions()
}

func (s *Store) GetTransaction(_ context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range s.transactions {
		if tx.ID == id {
			c := *tx
			return &c, nil
		}
	}

	return nil, ledger.ErrNotFound
}

func (s *Store) ListTransactions(_ context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*ledger.Transaction, 0, len(s.transactions))

	for _, tx := range s.transactions {
		if filter.Kind != nil && tx.Kind != *filter.Kind {
			continue
		}

		if filter.Network != nil && tx.Network != *filter.Network {
			continue
		}

		if filter.OpenDebts && (!tx.IsDebt || tx.DebtPaid) {
			continue
		}

		c := *tx
		out = append(out, &c)
	}

	return out, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, tx := range s.transactions {
		if tx.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return s.saveTransactions()
		}
	}

	return ledger.ErrNotFound
}

func (s *Store) MarkDebtPaid(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range s.transactions {
		if tx.ID == id {
			if tx.IsDebt {
				tx.DebtPaid = true
			}

			return s.saveTransactions()
		}
	}

	return ledger.ErrNotFound
}

func (s *Store) MarkSupplierPaid(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range s.transactions {
		if ledger.SupplierLiable(tx) {
			tx.SupplierPaid = true
		}
	}

	return s.saveTransactions()
}

func (s *Store) CreateExpense(_ context.Context, e *ledger.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.New()
	e.CreatedAt = time.Now()

	c := *e
	s.expenses = append([]*ledger.Expense{&c}, s.expenses...)

	return s.saveExpenses()
}

func (s *Store) ListExpenses(_ context.Context) ([]*ledger.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*ledger.Expense, len(s.expenses))
	for i, e := range s.expenses {
		c := *e
		out[i] = &c
	}

	return out, nil
}

func (s *Store) DeleteExpense(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return s.saveExpenses()
		}
	}

	return ledger.ErrNotFound
}

func (s *Store) CreateSettlement(_ context.Context, st *ledger.SupplierSettlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st.ID = uuid.New()
	st.CreatedAt = time.Now()

	c := *st
	s.settlements = append([]*ledger.SupplierSettlement{&c}, s.settlements...)

	return s.saveSettlements()
}

func (s *Store) ListSettlements(_ context.Context) ([]*ledger.SupplierSettlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*ledger.SupplierSettlement, len(s.settlements))
	for i, st := range s.settlements {
		c := *st
		out[i] = &c
	}

	return out, nil
}

func (s *Store) GetAccount(_ context.Context, network ledger.Network) (*ledger.SupplierAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.accounts[network]; ok {
		c := *a
		return &c, nil
	}

	return &ledger.SupplierAccount{Network: network}, nil
}

func (s *Store) SaveAccount(_ context.Context, acct *ledger.SupplierAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *acct
	s.accounts[acct.Network] = &c

	return s.saveAccounts()
}

func (s *Store) ListAccounts(_ context.Context) ([]*ledger.SupplierAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*ledger.SupplierAccount, 0, len(ledger.Networks()))

	for _, n := range ledger.Networks() {
		if a, ok := s.accounts[n]; ok {
			c := *a
			out = append(out, &c)
			continue
		}

		out = append(out, &ledger.SupplierAccount{Network: n})
	}

	return out, nil
}

func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = nil
	s.expenses = nil
	s.settlements = nil
	s.accounts = make(map[ledger.Network]*ledger.SupplierAccount)

	for _, save := range []func() error{
		s.saveTransactions, s.saveExpenses, s.saveSettlements, s.saveAccounts,
	} {
		if err := save(); err != nil {
			return err
		}
	}

	return nil
}
