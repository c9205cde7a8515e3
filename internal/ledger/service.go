package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	MarkDebtPaid(ctx context.Context, id uuid.UUID) error
	MarkSupplierPaid(ctx context.Context) error

	CreateExpense(ctx context.Context, e *Expense) error
	ListExpenses(ctx context.Context) ([]*Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error

	CreateSettlement(ctx context.Context, st *SupplierSettlement) error
	ListSettlements(ctx context.Context) ([]*SupplierSettlement, error)

	// GetAccount returns the stored account for a network, or a zero-balance
	// account when none has been persisted yet.
	GetAccount(ctx context.Context, network Network) (*SupplierAccount, error)
	SaveAccount(ctx context.Context, acct *SupplierAccount) error
	ListAccounts(ctx context.Context) ([]*SupplierAccount, error)

	Reset(ctx context.Context) error
}

type Service struct {
	repo   Repository
	policy CreditPolicy
}

func NewService(repo Repository, policy CreditPolicy) *Service {
	return &Service{repo: repo, policy: policy}
}

// Policy exposes the configured credit pricing policy.
func (s *Service) Policy() CreditPolicy {
	return s.policy
}

type SaleParams struct {
	Kind         Kind
	Network      Network
	CustomerName string
	SellPrice    int64
	CostPrice    int64
	IsDebt       bool
}

type ListFilter struct {
	Kind      *Kind
	Network   *Network
	OpenDebts bool // only unpaid customer debts
}

// RecordSale validates the sale, prices it according to its kind and the
// configured credit policy, and appends an immutable transaction. For credit
// sales under the debt-amortization policy the per-network account is
// updated as a side effect: stock drops by the sale amount (floored at zero)
// and proceeds amortize the supplier debt before counting as profit.
func (s *Service) RecordSale(ctx context.Context, params SaleParams) (*Transaction, error) {
	if params.SellPrice < 0 || params.CostPrice < 0 {
		return nil, ErrInvalidAmount
	}

	if params.Network != "" && !validNetwork(params.Network) {
		return nil, ErrUnknownNetwork
	}

	name := params.CustomerName
	if name == "" {
		name = DefaultCustomerName
	}

	tx := &Transaction{
		Date:         time.Now(),
		Kind:         params.Kind,
		CustomerName: name,
		SellPrice:    params.SellPrice,
		IsDebt:       params.IsDebt,
	}

	switch params.Kind {
	case KindBill, KindAccessories:
		tx.CostPrice = params.CostPrice
		tx.Profit = params.SellPrice - params.CostPrice

	case KindCredit:
		if !s.policy.UsesAccounts() {
			tx.Network = params.Network
			tx.CostPrice, tx.Profit = s.policy.PriceCredit(params.SellPrice, nil)

			break
		}

		if params.Network == "" {
			return nil, ErrNetworkRequired
		}

		acct, err := s.repo.GetAccount(ctx, params.Network)
		if err != nil {
			return nil, fmt.Errorf("loading supplier account: %w", err)
		}

		tx.Network = params.Network
		tx.CostPrice, tx.Profit = s.policy.PriceCredit(params.SellPrice, acct)

		if err := s.repo.SaveAccount(ctx, acct); err != nil {
			return nil, fmt.Errorf("saving supplier account: %w", err)
		}

	default:
		return nil, ErrInvalidKind
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("recording sale: %w", err)
	}

	return tx, nil
}

// RecordExpense appends an operating cost entry.
func (s *Service) RecordExpense(ctx context.Context, name string, amount int64) (*Expense, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}

	if name == "" {
		name = DefaultExpenseName
	}

	e := &Expense{
		Date:   time.Now(),
		Name:   name,
		Amount: amount,
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, fmt.Errorf("recording expense: %w", err)
	}

	return e, nil
}

// MarkDebtPaid settles an outstanding customer debt. Idempotent: marking a
// debt that is already paid, or a sale that never was a debt, is a no-op.
func (s *Service) MarkDebtPaid(ctx context.Context, id uuid.UUID) error {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	if !tx.IsDebt || tx.DebtPaid {
		return nil
	}

	if err := s.repo.MarkDebtPaid(ctx, id); err != nil {
		return fmt.Errorf("marking debt paid: %w", err)
	}

	return nil
}

// DeleteTransaction removes a transaction record. Supplier accounts are left
// untouched even for credit sales: the airtime already changed hands, so
// deleting the bookkeeping entry must not resurrect debt or stock.
func (s *Service) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}

func (s *Service) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, id)
}

const defaultSettlementNote = "supplier account settlement"

// SettleSupplier clears the balance owed to the supplier. When nothing is
// owed it is a no-op and returns no settlement. Under the percentage-split
// policy the contributing transactions are marked supplier-paid; under
// debt-amortization the per-network debts are zeroed (stock is untouched).
func (s *Service) SettleSupplier(ctx context.Context, note string) (*SupplierSettlement, error) {
	if note == "" {
		note = defaultSettlementNote
	}

	if s.policy.UsesAccounts() {
		return s.settleAccounts(ctx, note)
	}

	txs, err := s.repo.ListTransactions(ctx, ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	balance := UnsettledSupplierCost(txs)
	if balance <= 0 {
		return nil, nil
	}

	st := &SupplierSettlement{Date: time.Now(), Amount: balance, Note: note}
	if err := s.repo.CreateSettlement(ctx, st); err != nil {
		return nil, fmt.Errorf("creating settlement: %w", err)
	}

	if err := s.repo.MarkSupplierPaid(ctx); err != nil {
		return nil, fmt.Errorf("marking transactions supplier-paid: %w", err)
	}

	return st, nil
}

func (s *Service) settleAccounts(ctx context.Context, note string) (*SupplierSettlement, error) {
	accts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing supplier accounts: %w", err)
	}

	var balance int64
	for _, a := range accts {
		balance += a.Debt
	}

	if balance <= 0 {
		return nil, nil
	}

	st := &SupplierSettlement{Date: time.Now(), Amount: balance, Note: note}
	if err := s.repo.CreateSettlement(ctx, st); err != nil {
		return nil, fmt.Errorf("creating settlement: %w", err)
	}

	for _, a := range accts {
		if a.Debt == 0 {
			continue
		}

		a.Debt = 0
		if err := s.repo.SaveAccount(ctx, a); err != nil {
			return nil, fmt.Errorf("clearing %s debt: %w", a.Network, err)
		}
	}

	return st, nil
}

// ReceiveStock books a supplier stock purchase against a network: debt grows
// by the marked-up purchase price and sellable stock by the bonus value.
// This is the sole producer side of the stock/debt pair consumed by credit
// sales, and only exists under the debt-amortization policy.
func (s *Service) ReceiveStock(ctx context.Context, network Network, purchase int64) (*SupplierAccount, error) {
	if !s.policy.UsesAccounts() {
		return nil, ErrPolicyMismatch
	}

	if purchase <= 0 {
		return nil, ErrInvalidAmount
	}

	if !validNetwork(network) {
		return nil, ErrUnknownNetwork
	}

	acct, err := s.repo.GetAccount(ctx, network)
	if err != nil {
		return nil, fmt.Errorf("loading supplier account: %w", err)
	}

	debt, stock := StockReceipt(purchase)
	acct.Debt += debt
	acct.Stock += stock

	if err := s.repo.SaveAccount(ctx, acct); err != nil {
		return nil, fmt.Errorf("saving supplier account: %w", err)
	}

	return acct, nil
}

// Summary re-derives all aggregates from the full record set.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	txs, err := s.repo.ListTransactions(ctx, ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	exps, err := s.repo.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	var accts []*SupplierAccount

	if s.policy.UsesAccounts() {
		accts, err = s.repo.ListAccounts(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing supplier accounts: %w", err)
		}
	}

	sum := Summarize(txs, exps, accts, s.policy.UsesAccounts())

	return &sum, nil
}

func (s *Service) Transaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) Transactions(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Expenses(ctx context.Context) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx)
}

func (s *Service) Settlements(ctx context.Context) ([]*SupplierSettlement, error) {
	return s.repo.ListSettlements(ctx)
}

func (s *Service) Accounts(ctx context.Context) ([]*SupplierAccount, error) {
	return s.repo.ListAccounts(ctx)
}

// Reset wipes every record and account. Callers gate this behind an explicit
// confirmation.
func (s *Service) Reset(ctx context.Context) error {
	return s.repo.Reset(ctx)
}

func validNetwork(n Network) bool {
	switch n {
	case NetworkMTN, NetworkSyriatel:
		return true
	}

	return false
}
