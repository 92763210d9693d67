package adaptor

import (
	"net/http"

	"fleet-booking/internal/usecase"
	"fleet-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FleetHandler struct {
	service usecase.FleetService
	log     *zap.Logger
}

func NewFleetHandler(service usecase.FleetService, log *zap.Logger) *FleetHandler {
	return &FleetHandler{
		service: service,
		log:     log.With(zap.String("handler", "fleet")),
	}
}

// ListCars handles GET /api/cars
func (h *FleetHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.service.ListCars(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list cars")
		return
	}

	utils.ResponseSuccess(w, "success", cars)
}

// GetCar handles GET /api/cars/{id}
func (h *FleetHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	carID := chi.URLParam(r, "id")
	if carID == "" {
		utils.ResponseBadRequest(w, "Car ID is required", nil)
		return
	}

	car, err := h.service.GetCar(r.Context(), carID)
	if err != nil {
		handleServiceError(w, h.log, err, "get car")
		return
	}

	utils.ResponseSuccess(w, "success", car)
}

// ListTripPlans handles GET /api/trip-plans
func (h *FleetHandler) ListTripPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListTripPlans(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list trip plans")
		return
	}

	utils.ResponseSuccess(w, "success", plans)
}

// ListPaymentMethods handles GET /api/payment-methods
func (h *FleetHandler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.service.ListPaymentMethods(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list payment methods")
		return
	}

	utils.ResponseSuccess(w, "success", methods)
}
