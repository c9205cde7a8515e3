package sale

import (
	"time"

	"github.com/google/uuid"

	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
)

type transactionResponse struct {
	ID           uuid.UUID      `json:"id"`
	Date         time.Time      `json:"date"`
	Kind         ledger.Kind    `json:"kind"`
	Network      ledger.Network `json:"network,omitempty"`
	CustomerName string         `json:"customer_name"`
	SellPrice    int64          `json:"sell_price"`
	CostPrice    int64          `json:"cost_price"`
	Profit       int64          `json:"profit"`
	IsDebt       bool           `json:"is_debt"`
	DebtPaid     bool           `json:"debt_paid"`
	SupplierPaid bool           `json:"supplier_paid"`
	CreatedAt    time.Time      `json:"created_at"`
}

func toResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:           tx.ID,
		Date:         tx.Date,
		Kind:         tx.Kind,
		Network:      tx.Network,
		CustomerName: tx.CustomerName,
		SellPrice:    tx.SellPrice,
		CostPrice:    tx.CostPrice,
		Profit:       tx.Profit,
		IsDebt:       tx.IsDebt,
		DebtPaid:     tx.DebtPaid,
		SupplierPaid: tx.SupplierPaid,
		CreatedAt:    tx.CreatedAt,
	}
}

func toResponseList(txs []*ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
