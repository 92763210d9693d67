package wire

import (
	"fleet-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler) {
	r.Route("/api/reservations", func(r chi.Router) {
		// POST /api/reservations/car - Book a car over an interval
		r.Post("/car", reservationHandler.CreateCarReservation)

		// POST /api/reservations/trip - Book seats on a trip plan
		r.Post("/trip", reservationHandler.CreateTripReservation)

		// GET /api/reservations - Reservation history of the caller
		r.Get("/", reservationHandler.ListMyReservations)

		// GET /api/reservations/{id} - Reservation details with payment
		r.Get("/{id}", reservationHandler.GetReservation)

		// PUT /api/reservations/{id} - Reschedule a non-terminal reservation
		r.Put("/{id}", reservationHandler.UpdateReservation)

		// DELETE /api/reservations/{id} - Remove a pending reservation with no payments
		r.Delete("/{id}", reservationHandler.DeleteReservation)

		// Lifecycle transitions
		r.Put("/{id}/confirm", reservationHandler.ConfirmReservation)
		r.Put("/{id}/deny", reservationHandler.DenyReservation)
		r.Put("/{id}/cancel", reservationHandler.CancelReservation)
		r.Put("/{id}/start", reservationHandler.StartReservation)
		r.Put("/{id}/complete", reservationHandler.CompleteReservation)
	})
}
