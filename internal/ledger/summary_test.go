package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
)

func sampleTransactions() []*ledger.Transaction {
	return []*ledger.Transaction{
		{Kind: ledger.KindBill, SellPrice: 40_000, CostPrice: 35_000, Profit: 5_000},
		{Kind: ledger.KindAccessories, SellPrice: 50_000, CostPrice: 30_000, Profit: 20_000},
		{Kind: ledger.KindCredit, Network: ledger.NetworkMTN, SellPrice: 80_000, CostPrice: 57_000, Profit: 23_000},
		{Kind: ledger.KindCredit, Network: ledger.NetworkSyriatel, SellPrice: 10_000, CostPrice: 10_000, IsDebt: true},
		{Kind: ledger.KindBill, SellPrice: 15_000, CostPrice: 12_000, Profit: 3_000, IsDebt: true, DebtPaid: true},
	}
}

func TestSummarize_OrderIndependent(t *testing.T) {
	txs := sampleTransactions()

	reversed := make([]*ledger.Transaction, len(txs))
	for i, tx := range txs {
		reversed[len(txs)-1-i] = tx
	}

	a := ledger.Summarize(txs, nil, nil, false)
	b := ledger.Summarize(reversed, nil, nil, false)

	assert.Equal(t, a, b)
}

func TestSummarize_GrossEqualsStoredProfits(t *testing.T) {
	txs := sampleTransactions()

	var want int64
	for _, tx := range txs {
		want += tx.Profit
	}

	s := ledger.Summarize(txs, nil, nil, false)
	assert.Equal(t, want, s.GrossProfit)
}

func TestSummarize_PerTransactionSupplierBalance(t *testing.T) {
	txs := sampleTransactions()
	s := ledger.Summarize(txs, nil, nil, false)

	// Bills and credits that are not supplier-paid: 35k + 57k + 10k + 12k.
	assert.Equal(t, int64(114_000), s.SupplierBalance)

	txs[0].SupplierPaid = true
	s = ledger.Summarize(txs, nil, nil, false)
	assert.Equal(t, int64(79_000), s.SupplierBalance)
}

func TestSummarize_AccountSupplierBalance(t *testing.T) {
	accts := []*ledger.SupplierAccount{
		{Network: ledger.NetworkMTN, Debt: 57_000, Stock: 70_000},
		{Network: ledger.NetworkSyriatel, Debt: 20_000, Stock: 5_000},
	}

	s := ledger.Summarize(nil, nil, accts, true)

	assert.Equal(t, int64(77_000), s.SupplierBalance)
	assert.Equal(t, accts, s.Accounts)
}

func TestSummarize_CustomerDebt(t *testing.T) {
	s := ledger.Summarize(sampleTransactions(), nil, nil, false)

	// Only the unpaid Syriatel debt sale counts; the paid bill debt does not.
	assert.Equal(t, int64(10_000), s.CustomerDebt)
}

func TestSummarize_ExpensesAndNetProfit(t *testing.T) {
	txs := sampleTransactions()
	exps := []*ledger.Expense{
		{Name: "shop rent", Amount: 800_000},
		{Name: "electricity", Amount: 45_000},
	}

	s := ledger.Summarize(txs, exps, nil, false)

	assert.Equal(t, int64(845_000), s.OperatingExpenses)
	// Capital cost: every non-credit sale's cost. 35k + 30k + 12k.
	assert.Equal(t, int64(77_000), s.CapitalCost)
	assert.Equal(t, int64(922_000), s.TotalExpenses)
	// Net profit subtracts operating expenses only; capital is already
	// netted into each transaction's profit.
	assert.Equal(t, s.GrossProfit-int64(845_000), s.NetProfit)
}

func TestSummarize_AccessoryRaisesCapitalCost(t *testing.T) {
	base := ledger.Summarize(sampleTransactions(), nil, nil, false)

	withAccessory := append(sampleTransactions(), &ledger.Transaction{
		Kind: ledger.KindAccessories, SellPrice: 50_000, CostPrice: 30_000, Profit: 20_000,
	})
	s := ledger.Summarize(withAccessory, nil, nil, false)

	assert.Equal(t, base.TotalExpenses+30_000, s.TotalExpenses)
	assert.Equal(t, base.GrossProfit+20_000, s.GrossProfit)
}
