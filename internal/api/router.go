package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	mux := chi.NewRouter()
	mux.Use(mw.Log, mw.Recover, mw.Cors)

	mux.Route("/api", func(r chi.Router) {
		r.HandleFunc("/health", h.HealthHandler)

		r.Route("/billing", func(r chi.Router) {
			r.Use(mw.BearerAuth)
			r.Post("/allocate-payment", h.AllocatePayment)
			r.Get("/receipts/{id}", h.Receipt)
			r.Get("/receipts", h.Receipts)
			r.Get("/invoices/{id}", h.Invoice)
			r.Get("/invoices/{id}/items", h.InvoiceItems)
			r.Get("/invoices", h.Invoices)
			r.Post("/invoices", h.CreateInvoice)
			r.Post("/invoice-items", h.SaveInvoiceItem)
			r.Get("/payment-modes", h.PaymentModes)
		})

		r.Route("/internal/v1/billing", func(r chi.Router) {
			r.Use(mw.APIKeyAuth)
			r.Get("/payment-breakdown", h.PaymentBreakdown)
		})
	})

	return mux
}
