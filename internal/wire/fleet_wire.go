package wire

import (
	"fleet-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFleet(r chi.Router, fleetHandler *adaptor.FleetHandler, reservationHandler *adaptor.ReservationHandler) {
	r.Route("/api/cars", func(r chi.Router) {
		// GET /api/cars - Active fleet listing
		r.Get("/", fleetHandler.ListCars)

		// GET /api/cars/{id} - Car details
		r.Get("/{id}", fleetHandler.GetCar)

		// GET /api/cars/{id}/reservations - Blocking reservations for a car
		r.Get("/{id}/reservations", reservationHandler.ListCarReservations)

		// GET /api/cars/{id}/availability?start=...&end=... - Interval check
		r.Get("/{id}/availability", reservationHandler.CheckCarAvailability)
	})

	// GET /api/trip-plans - Open trip plans
	r.Get("/api/trip-plans", fleetHandler.ListTripPlans)

	// GET /api/payment-methods - Accepted payment methods
	r.Get("/api/payment-methods", fleetHandler.ListPaymentMethods)
}
