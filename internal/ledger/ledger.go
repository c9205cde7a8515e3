package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Kind represents the type of sale recorded in the ledger.
type Kind string

const (
	KindBill        Kind = "bill"
	KindCredit      Kind = "credit"
	KindAccessories Kind = "accessories"
)

// Network identifies the telecom operator an airtime sale belongs to.
type Network string

const (
	NetworkMTN      Network = "mtn"
	NetworkSyriatel Network = "syriatel"
)

// Networks lists the operators the shop trades with.
func Networks() []Network {
	return []Network{NetworkMTN, NetworkSyriatel}
}

// Placeholder names used when a form is submitted without them.
const (
	DefaultCustomerName = "walk-in customer"
	DefaultExpenseName  = "general expense"
)

// Transaction represents a single sale event. Amounts are whole Syrian
// pounds. Profit is fixed at creation time from the sale's kind and prices
// and is never recomputed afterwards.
type Transaction struct {
	ID           uuid.UUID
	Date         time.Time
	Kind         Kind
	Network      Network // set for credit sales only
	CustomerName string
	SellPrice    int64
	CostPrice    int64
	Profit       int64
	IsDebt       bool
	DebtPaid     bool
	SupplierPaid bool
	CreatedAt    time.Time
}

// Expense is an operating cost entry. Create and delete only, no edits.
type Expense struct {
	ID        uuid.UUID
	Date      time.Time
	Name      string
	Amount    int64
	CreatedAt time.Time
}

// SupplierSettlement records a lump-sum payment clearing the balance owed to
// the supplier at that moment. Append-only.
type SupplierSettlement struct {
	ID        uuid.UUID
	Date      time.Time
	Amount    int64
	Note      string
	CreatedAt time.Time
}

// SupplierAccount holds the running balances for one network under the
// debt-amortization policy. Debt is what the shop owes the supplier, Stock
// is the remaining sellable airtime value. Neither goes negative.
type SupplierAccount struct {
	Network Network
	Debt    int64
	Stock   int64
}
