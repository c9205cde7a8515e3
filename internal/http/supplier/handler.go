package supplier

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.accounts)
	r.Post("/stock", h.receiveStock)
	r.Post("/settlements", h.settle)
	r.Get("/settlements", h.settlements)
}

type accountResponse struct {
	Network ledger.Network `json:"network"`
	Debt    int64          `json:"debt"`
	Stock   int64          `json:"stock"`
}

type accountsResponse struct {
	Balance  int64             `json:"balance"`
	Accounts []accountResponse `json:"accounts"`
}

func (h *Handler) accounts(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := accountsResponse{Balance: sum.SupplierBalance}
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

type receiveStockRequest struct {
	Network ledger.Network `json:"network"`
	Amount  int64          `json:"amount"`
}

func (h *Handler) receiveStock(w http.ResponseWriter, r *http.Request) {
	var req receiveStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acct, err := h.svc.ReceiveStock(r.Context(), req.Network, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrUnknownNetwork):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, ledger.ErrPolicyMismatch):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := accountResponse{Network: acct.Network, Debt: acct.Debt, Stock: acct.Stock}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type settleRequest struct {
	Note string `json:"note,omitempty"`
}

type settlementResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      time.Time `json:"date"`
	Amount    int64     `json:"amount"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

func toSettlementResponse(st *ledger.SupplierSettlement) settlementResponse {
	return settlementResponse{
		ID:        st.ID,
		Date:      st.Date,
		Amount:    st.Amount,
		Note:      st.Note,
		CreatedAt: st.CreatedAt,
	}
}

func (h *Handler) settle(w http.ResponseWriter, r *http.Request) {
	// The note is optional; an empty body settles with the default note.
	var req settleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st, err := h.svc.SettleSupplier(r.Context(), req.Note)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Nothing owed: the settlement is an idempotent no-op.
	if st == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSettlementResponse(st)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) settlements(w http.ResponseWriter, r *http.Request) {
	sts, err := h.svc.Settlements(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]settlementResponse, len(sts))
	for i, st := range sts {
		resp[i] = toSettlementResponse(st)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
