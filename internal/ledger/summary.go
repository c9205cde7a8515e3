package ledger

// Summary holds the aggregates derived from the full record set. Every value
// is a plain sum or filter over the records, recomputed per query and
// independent of record order.
type Summary struct {
	SupplierBalance   int64
	CustomerDebt      int64
	GrossProfit       int64
	OperatingExpenses int64
	CapitalCost       int64
	TotalExpenses     int64 // operating expenses plus capital cost of goods
	NetProfit         int64 // gross profit minus operating expenses
	Accounts          []*SupplierAccount
}

// SupplierLiable reports whether a transaction still contributes to the
// per-transaction supplier balance.
func SupplierLiable(t *Transaction) bool {
	return (t.Kind == KindBill || t.Kind == KindCredit) && !t.SupplierPaid
}

// UnsettledSupplierCost sums the cost share of supplier-liable transactions.
// This is the supplier balance under the percentage-split policy.
func UnsettledSupplierCost(txs []*Transaction) int64 {
	var sum int64

	for _, t := range txs {
		if SupplierLiable(t) {
			sum += t.CostPrice
		}
	}

	return sum
}

// OpenCustomerDebt sums the sell price of debt sales the customer has not
// paid yet.
func OpenCustomerDebt(txs []*Transaction) int64 {
	var sum int64

	for _, t := range txs {
		if t.IsDebt && !t.DebtPaid {
			sum += t.SellPrice
		}
	}

	return sum
}

// GrossProfit sums the profit stored on every transaction.
func GrossProfit(txs []*Transaction) int64 {
	var sum int64

	for _, t := range txs {
		sum += t.Profit
	}

	return sum
}

// CapitalCost sums the purchase cost of non-credit sales, the money tied up
// in goods bought outright.
func CapitalCost(txs []*Transaction) int64 {
	var sum int64

	for _, t := range txs {
		if t.Kind != KindCredit {
			sum += t.CostPrice
		}
	}

	return sum
}

// ExpenseTotal sums all operating expense amounts.
func ExpenseTotal(exps []*Expense) int64 {
	var sum int64

	for _, e := range exps {
		sum += e.Amount
	}

	return sum
}

// Summarize derives all ledger aggregates. accts are only consulted when
// useAccounts is set (debt-amortization policy); otherwise the supplier
// balance comes from the unsettled transaction costs. Capital cost of goods
// is already netted into each transaction's profit, so net profit subtracts
// operating expenses only.
func Summarize(txs []*Transaction, exps []*Expense, accts []*SupplierAccount, useAccounts bool) Summary {
	s := Summary{
		CustomerDebt:      OpenCustomerDebt(txs),
		GrossProfit:       GrossProfit(txs),
		OperatingExpenses: ExpenseTotal(exps),
		CapitalCost:       CapitalCost(txs),
	}

	if useAccounts {
		s.Accounts = accts
		for _, a := range accts {
			s.SupplierBalance += a.Debt
		}
	} else {
		s.SupplierBalance = UnsettledSupplierCost(txs)
	}

	s.TotalExpenses = s.OperatingExpenses + s.CapitalCost
	s.NetProfit = s.GrossProfit - s.OperatingExpenses

	return s
}
