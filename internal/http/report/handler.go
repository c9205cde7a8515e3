package report

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mayarh926-blip/etesalat-app/internal/export"
	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
)

type Handler struct {
	svc       *ledger.Service
	exporter  *export.Service
	exportDir string
}

func NewHandler(svc *ledger.Service, exporter *export.Service, exportDir string) *Handler {
	return &Handler{svc: svc, exporter: exporter, exportDir: exportDir}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Post("/export", h.export)
	r.Delete("/records", h.reset)
}

type summaryResponse struct {
	SupplierBalance   int64             `json:"supplier_balance"`
	CustomerDebt      int64             `json:"customer_debt"`
	GrossProfit       int64             `json:"gross_profit"`
	OperatingExpenses int64             `json:"operating_expenses"`
	CapitalCost       int64             `json:"capital_cost"`
	TotalExpenses     int64             `json:"total_expenses"`
	NetProfit         int64             `json:"net_profit"`
	Accounts          []accountResponse `json:"accounts,omitempty"`
}

type accountResponse struct {
	Network ledger.Network `json:"network"`
	Debt    int64          `json:"debt"`
	Stock   int64          `json:"stock"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := summaryResponse{
		SupplierBalance:   sum.SupplierBalance,
		CustomerDebt:      sum.CustomerDebt,
		GrossProfit:       sum.GrossProfit,
		OperatingExpenses: sum.OperatingExpenses,
		CapitalCost:       sum.CapitalCost,
		TotalExpenses:     sum.TotalExpenses,
		NetProfit:         sum.NetProfit,
	}

	for _, a := range sum.Accounts {
		resp.Accounts = append(resp.Accounts, accountResponse{
			Network: a.Network,
			Debt:    a.Debt,
			Stock:   a.Stock,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type exportResponse struct {
	Files []string `json:"files"`
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	paths, err := h.exporter.Export(r.Context(), h.exportDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(exportResponse{Files: paths}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// reset wipes the entire ledger. The client is expected to have confirmed
// with the user before calling.
func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		http.Error(w, "reset requires confirm=true", http.StatusBadRequest)
		return
	}

	if err := h.svc.Reset(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
