package adaptor

import (
	"fleet-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Reservation *ReservationHandler
	Payment     *PaymentHandler
	Fleet       *FleetHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Reservation: NewReservationHandler(service.Reservation, service.Availability, log),
		Payment:     NewPaymentHandler(service.Payment, log),
		Fleet:       NewFleetHandler(service.Fleet, log),
	}
}
