package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mayarh926-blip/etesalat-app/internal/config"
	"github.com/mayarh926-blip/etesalat-app/internal/database"
	"github.com/mayarh926-blip/etesalat-app/internal/export"
	etesalatHttp "github.com/mayarh926-blip/etesalat-app/internal/http"
	expenseHandler "github.com/mayarh926-blip/etesalat-app/internal/http/expense"
	reportHandler "github.com/mayarh926-blip/etesalat-app/internal/http/report"
	saleHandler "github.com/mayarh926-blip/etesalat-app/internal/http/sale"
	supplierHandler "github.com/mayarh926-blip/etesalat-app/internal/http/supplier"
	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
	"github.com/mayarh926-blip/etesalat-app/internal/ledger/localstore"
	ledgerStore "github.com/mayarh926-blip/etesalat-app/internal/ledger/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	repo, cleanup, err := openRepository(cfg)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	policy, err := ledger.PolicyFor(ledger.PolicyName(cfg.Ledger.Policy))
	if err != nil {
		slog.Error("failed to resolve credit policy", "policy", cfg.Ledger.Policy, "error", err)
		os.Exit(1)
	}

	var (
		ledgerService = ledger.NewService(repo, policy)
		exportService = export.NewService(ledgerService)
	)

	var (
		salesH    = saleHandler.NewHandler(ledgerService)
		expensesH = expenseHandler.NewHandler(ledgerService)
		supplierH = supplierHandler.NewHandler(ledgerService)
		reportH   = reportHandler.NewHandler(ledgerService, exportService, cfg.Export.Dir)
	)

	router := etesalatHttp.New(salesH, expensesH, supplierH, reportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "policy", policy.Name(), "storage", cfg.Storage.Driver)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func openRepository(cfg *config.Config) (ledger.Repository, func(), error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		return ledgerStore.New(db), func() { db.Close() }, nil

	case "file":
		s, err := localstore.Open(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}

		return s, func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
