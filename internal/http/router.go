package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mayarh926-blip/etesalat-app/internal/http/expense"
	"github.com/mayarh926-blip/etesalat-app/internal/http/report"
	"github.com/mayarh926-blip/etesalat-app/internal/http/sale"
	"github.com/mayarh926-blip/etesalat-app/internal/http/supplier"
)

func New(
	salesV1 *sale.Handler,
	expensesV1 *expense.Handler,
	supplierV1 *supplier.Handler,
	reportV1 *report.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/sales", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			salesV1.Routes(r)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			expensesV1.Routes(r)
		})

		r.Route("/supplier", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			supplierV1.Routes(r)
		})

		reportV1.Routes(r)
	})

	return router
}
