package wire

import (
	"fleet-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler) {
	r.Route("/api/payments", func(r chi.Router) {
		// GET /api/payments/{id} - Payment with its transaction history
		r.Get("/{id}", paymentHandler.GetPayment)

		// POST /api/payments/{id}/charge - Record a charge
		r.Post("/{id}/charge", paymentHandler.ChargePayment)

		// POST /api/payments/{id}/refund - Record a refund
		r.Post("/{id}/refund", paymentHandler.RefundPayment)
	})
}
