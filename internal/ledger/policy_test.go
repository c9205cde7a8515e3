package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
)

func TestAmortize(t *testing.T) {
	type testCase struct {
		name          string
		debt          int64
		sale          int64
		wantProfit    int64
		wantRemaining int64
	}

	tests := []testCase{
		{name: "SaleBelowDebt", debt: 100_000, sale: 40_000, wantProfit: 0, wantRemaining: 60_000},
		{name: "SaleEqualsDebt", debt: 50_000, sale: 50_000, wantProfit: 0, wantRemaining: 0},
		{name: "SaleAboveDebt", debt: 30_000, sale: 80_000, wantProfit: 50_000, wantRemaining: 0},
		{name: "NoDebt", debt: 0, sale: 25_000, wantProfit: 25_000, wantRemaining: 0},
		{name: "ZeroSale", debt: 10_000, sale: 0, wantProfit: 0, wantRemaining: 10_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profit, remaining := ledger.Amortize(tt.debt, tt.sale)

			assert.Equal(t, tt.wantProfit, profit)
			assert.Equal(t, tt.wantRemaining, remaining)
			assert.GreaterOrEqual(t, remaining, int64(0))
		})
	}
}

func TestStockReceipt(t *testing.T) {
	debt, stock := ledger.StockReceipt(100_000)

	assert.Equal(t, int64(107_000), debt)
	assert.Equal(t, int64(120_000), stock)
}

func TestStockReceipt_RoundsHalfUp(t *testing.T) {
	// 107% of 50 is 53.5, which rounds away from zero to 54.
	debt, stock := ledger.StockReceipt(50)

	assert.Equal(t, int64(54), debt)
	assert.Equal(t, int64(60), stock)
}

func TestPercentageSplit_PriceCredit(t *testing.T) {
	policy := ledger.PercentageSplit{}

	cost, profit := policy.PriceCredit(100_000, nil)

	assert.Equal(t, int64(7_000), cost)
	assert.Equal(t, int64(13_000), profit)
	assert.False(t, policy.UsesAccounts())
}

// The full stock lifecycle: a 100,000 MTN purchase seeds 107,000 debt and
// 120,000 stock; a 50,000 sale is pure amortization; an 80,000 sale clears
// the debt and clamps the stock at zero.
func TestDebtAmortization_Lifecycle(t *testing.T) {
	policy := ledger.DebtAmortization{}
	acct := &ledger.SupplierAccount{Network: ledger.NetworkMTN}

	debt, stock := ledger.StockReceipt(100_000)
	acct.Debt += debt
	acct.Stock += stock

	assert.Equal(t, int64(107_000), acct.Debt)
	assert.Equal(t, int64(120_000), acct.Stock)

	cost, profit := policy.PriceCredit(50_000, acct)
	assert.Equal(t, int64(50_000), cost)
	assert.Equal(t, int64(0), profit)
	assert.Equal(t, int64(57_000), acct.Debt)
	assert.Equal(t, int64(70_000), acct.Stock)

	cost, profit = policy.PriceCredit(80_000, acct)
	assert.Equal(t, int64(57_000), cost)
	assert.Equal(t, int64(23_000), profit)
	assert.Equal(t, int64(0), acct.Debt)
	assert.Equal(t, int64(0), acct.Stock)
}

func TestDebtAmortization_StockNeverNegative(t *testing.T) {
	policy := ledger.DebtAmortization{}
	acct := &ledger.SupplierAccount{Network: ledger.NetworkSyriatel, Debt: 5_000, Stock: 10_000}

	for range 5 {
		policy.PriceCredit(7_500, acct)

		assert.GreaterOrEqual(t, acct.Debt, int64(0))
		assert.GreaterOrEqual(t, acct.Stock, int64(0))
	}
}

func TestPolicyFor(t *testing.T) {
	p, err := ledger.PolicyFor(ledger.PolicyPercentageSplit)
	assert.NoError(t, err)
	assert.Equal(t, ledger.PolicyPercentageSplit, p.Name())

	p, err = ledger.PolicyFor(ledger.PolicyDebtAmortization)
	assert.NoError(t, err)
	assert.Equal(t, ledger.PolicyDebtAmortization, p.Name())

	_, err = ledger.PolicyFor("fifo")
	assert.ErrorIs(t, err, ledger.ErrUnknownPolicy)
}
