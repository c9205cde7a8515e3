package export_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayarh926-blip/etesalat-app/internal/export"
	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
	"github.com/mayarh926-blip/etesalat-app/internal/ledger/localstore"
)

func TestService_Export(t *testing.T) {
	ctx := context.Background()

	repo, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	svc := ledger.NewService(repo, ledger.DebtAmortization{})

	_, err = svc.ReceiveStock(ctx, ledger.NetworkMTN, 100_000)
	require.NoError(t, err)

	_, err = svc.RecordSale(ctx, ledger.SaleParams{
		Kind:         ledger.KindCredit,
		Network:      ledger.NetworkMTN,
		CustomerName: "أبو فراس",
		SellPrice:    50_000,
	})
	require.NoError(t, err)

	_, err = svc.RecordExpense(ctx, "electricity", 45_000)
	require.NoError(t, err)

	outDir := t.TempDir()

	paths, err := export.NewService(svc).Export(ctx, outDir)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	data, err := os.ReadFile(filepath.Join(outDir, "transactions.csv"))
	require.NoError(t, err)

	// BOM first, then the header and the recorded sale.
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	content := string(data)
	assert.Contains(t, content, "date,kind,network,customer")
	assert.Contains(t, content, "credit,mtn,أبو فراس,50000,50000,0")

	data, err = os.ReadFile(filepath.Join(outDir, "expenses.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "electricity,45000")
}

func TestService_Export_EmptyLedger(t *testing.T) {
	repo, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	svc := ledger.NewService(repo, ledger.DebtAmortization{})
	outDir := t.TempDir()

	paths, err := export.NewService(svc).Export(context.Background(), outDir)
	require.NoError(t, err)

	// Header-only books are still written.
	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		assert.Len(t, lines, 1)
	}
}
