package ledger

// PolicyName tags a credit pricing policy variant.
type PolicyName string

const (
	PolicyPercentageSplit  PolicyName = "percentage_split"
	PolicyDebtAmortization PolicyName = "debt_amortization"
)

// Basis-point rates shared by both policies.
const (
	supplierShareBps = 700   // 7% of a credit sale is owed to the supplier
	profitShareBps   = 1300  // 13% is kept as profit
	debtMarkupBps    = 10700 // a stock purchase incurs 107% supplier debt
	stockBonusBps    = 12000 // and yields 120% of its value as sellable stock
)

// CreditPolicy prices a credit (airtime) sale. A policy that tracks supplier
// liability in per-network accounts reports UsesAccounts true and mutates the
// account handed to PriceCredit; otherwise the account argument is ignored
// and liability lives on the unsettled transactions themselves.
type CreditPolicy interface {
	Name() PolicyName
	PriceCredit(sellPrice int64, acct *SupplierAccount) (cost, profit int64)
	UsesAccounts() bool
}

// PolicyFor returns the policy implementation for a variant name.
func PolicyFor(name PolicyName) (CreditPolicy, error) {
	switch name {
	case PolicyPercentageSplit:
		return PercentageSplit{}, nil
	case PolicyDebtAmortization:
		return DebtAmortization{}, nil
	}

	return nil, ErrUnknownPolicy
}

// PercentageSplit is the early fixed-rate policy: the supplier takes 7% of
// every credit sale and the shop keeps 13%, with no stock or debt tracking.
type PercentageSplit struct{}

func (PercentageSplit) Name() PolicyName   { return PolicyPercentageSplit }
func (PercentageSplit) UsesAccounts() bool { return false }

func (PercentageSplit) PriceCredit(sellPrice int64, _ *SupplierAccount) (int64, int64) {
	return bpsOf(sellPrice, supplierShareBps), bpsOf(sellPrice, profitShareBps)
}

// DebtAmortization is the canonical policy. The supplier fronts airtime stock
// on credit; every pound sold first pays down the outstanding per-network
// debt before any of it counts as profit.
type DebtAmortization struct{}

func (DebtAmortization) Name() PolicyName   { return PolicyDebtAmortization }
func (DebtAmortization) UsesAccounts() bool { return true }

func (DebtAmortization) PriceCredit(sellPrice int64, acct *SupplierAccount) (int64, int64) {
	acct.Stock = max(0, acct.Stock-sellPrice)

	profit, remaining := Amortize(acct.Debt, sellPrice)
	acct.Debt = remaining

	return sellPrice - profit, profit
}

// Amortize applies a sale against an outstanding debt: proceeds reduce the
// debt first, and only the part beyond it is profit. Both results are
// non-negative.
func Amortize(debt, sale int64) (profit, remaining int64) {
	if sale <= debt {
		return 0, debt - sale
	}

	return sale - debt, 0
}

// StockReceipt converts a purchase amount into the debt and stock increments
// it produces: the supplier charges a 7% markup but hands over 20% bonus
// airtime value.
func StockReceipt(purchase int64) (debt, stock int64) {
	return bpsOf(purchase, debtMarkupBps), bpsOf(purchase, stockBonusBps)
}

// bpsOf scales a non-negative amount by a basis-point rate, rounding half
// away from zero on whole pounds.
func bpsOf(amount, bps int64) int64 {
	return (amount*bps + 5000) / 10000
}
