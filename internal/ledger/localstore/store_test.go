package localstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
	"github.com/mayarh926-blip/etesalat-app/internal/ledger/localstore"
)

func TestStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := localstore.Open(dir)
	require.NoError(t, err)

	tx := &ledger.Transaction{
		Kind:         ledger.KindCredit,
		Network:      ledger.NetworkMTN,
		CustomerName: "Abu Firas",
		SellPrice:    50_000,
		CostPrice:    50_000,
		IsDebt:       true,
	}
	require.NoError(t, s.CreateTransaction(ctx, tx))
	require.NotEmpty(t, tx.ID)

	e := &ledger.Expense{Name: "shop rent", Amount: 800_000}
	require.NoError(t, s.CreateExpense(ctx, e))

	st := &ledger.SupplierSettlement{Amount: 57_000, Note: "weekly settlement"}
	require.NoError(t, s.CreateSettlement(ctx, st))

	require.NoError(t, s.SaveAccount(ctx, &ledger.SupplierAccount{
		Network: ledger.NetworkMTN, Debt: 57_000, Stock: 70_000,
	}))

	// Reopen from disk and compare field for field.
	reopened, err := localstore.Open(dir)
	require.NoError(t, err)

	txs, err := reopened.ListTransactions(ctx, ledger.ListFilter{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, tx.ID, txs[0].ID)
	assert.Equal(t, tx.CustomerName, txs[0].CustomerName)
	assert.Equal(t, tx.SellPrice, txs[0].SellPrice)
	assert.Equal(t, tx.Network, txs[0].Network)
	assert.True(t, txs[0].IsDebt)
	assert.True(t, tx.Date.Equal(txs[0].Date))

	exps, err := reopened.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, exps, 1)
	assert.Equal(t, e.Amount, exps[0].Amount)

	sts, err := reopened.ListSettlements(ctx)
	require.NoError(t, err)
	require.Len(t, sts, 1)
	assert.Equal(t, st.Note, sts[0].Note)

	acct, err := reopened.GetAccount(ctx, ledger.NetworkMTN)
	require.NoError(t, err)
	assert.Equal(t, int64(57_000), acct.Debt)
	assert.Equal(t, int64(70_000), acct.Stock)
}

func TestStore_OpenEmpty(t *testing.T) {
	s, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	txs, err := s.ListTransactions(context.Background(), ledger.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, txs)

	// Unseeded accounts come back with zero balances for every network.
	accts, err := s.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accts, len(ledger.Networks()))

	for _, a := range accts {
		assert.Zero(t, a.Debt)
		assert.Zero(t, a.Stock)
	}
}

func TestStore_ListFilters(t *testing.T) {
	s, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.CreateTransaction(ctx, &ledger.Transaction{Kind: ledger.KindBill, SellPrice: 100}))
	require.NoError(t, s.CreateTransaction(ctx, &ledger.Transaction{Kind: ledger.KindCredit, Network: ledger.NetworkMTN, SellPrice: 200, IsDebt: true}))
	require.NoError(t, s.CreateTransaction(ctx, &ledger.Transaction{Kind: ledger.KindCredit, Network: ledger.NetworkSyriatel, SellPrice: 300, IsDebt: true, DebtPaid: true}))

	kind := ledger.KindCredit
	txs, err := s.ListTransactions(ctx, ledger.ListFilter{Kind: &kind})
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	txs, err = s.ListTransactions(ctx, ledger.ListFilter{OpenDebts: true})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, int64(200), txs[0].SellPrice)

	network := ledger.NetworkSyriatel
	txs, err = s.ListTransactions(ctx, ledger.ListFilter{Network: &network})
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestStore_MarkDebtPaid(t *testing.T) {
	s, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	tx := &ledger.Transaction{Kind: ledger.KindBill, SellPrice: 100, IsDebt: true}
	require.NoError(t, s.CreateTransaction(ctx, tx))

	require.NoError(t, s.MarkDebtPaid(ctx, tx.ID))

	got, err := s.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.True(t, got.DebtPaid)
}

func TestStore_DeleteTransaction(t *testing.T) {
	s, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	tx := &ledger.Transaction{Kind: ledger.KindBill, SellPrice: 100}
	require.NoError(t, s.CreateTransaction(ctx, tx))

	require.NoError(t, s.DeleteTransaction(ctx, tx.ID))
	assert.ErrorIs(t, s.DeleteTransaction(ctx, tx.ID), ledger.ErrNotFound)

	_, err = s.GetTransaction(ctx, tx.ID)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestStore_Reset(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := localstore.Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.CreateTransaction(ctx, &ledger.Transaction{Kind: ledger.KindBill, SellPrice: 100}))
	require.NoError(t, s.SaveAccount(ctx, &ledger.SupplierAccount{Network: ledger.NetworkMTN, Debt: 1}))

	require.NoError(t, s.Reset(ctx))

	// The wipe must survive a reopen.
	reopened, err := localstore.Open(dir)
	require.NoError(t, err)

	txs, err := reopened.ListTransactions(ctx, ledger.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, txs)

	acct, err := reopened.GetAccount(ctx, ledger.NetworkMTN)
	require.NoError(t, err)
	assert.Zero(t, acct.Debt)
}
