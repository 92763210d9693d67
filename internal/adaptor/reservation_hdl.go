package adaptor

import (
	"encoding/json"
	"net/http"

	"fleet-booking/internal/dto/request"
	"fleet-booking/internal/dto/response"
	"fleet-booking/internal/usecase"
	"fleet-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service      usecase.ReservationService
	availability usecase.AvailabilityService
	log          *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, availability usecase.AvailabilityService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service:      service,
		availability: availability,
		log:          log.With(zap.String("handler", "reservation")),
	}
}

// CreateCarReservation handles POST /api/reservations/car
func (h *ReservationHandler) CreateCarReservation(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Customer identity required")
		return
	}

	var req request.CreateCarReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reservation, err := h.service.CreateCarReservation(r.Context(), customerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create car reservation")
		return
	}

	utils.ResponseCreated(w, "success", reservation)
}

// CreateTripReservation handles POST /api/reservations/trip
func (h *ReservationHandler) CreateTripReservation(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Customer identity required")
		return
	}

	var req request.CreateTripReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reservation, err := h.service.CreateTripReservation(r.Context(), customerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create trip reservation")
		return
	}

	utils.ResponseCreated(w, "success", reservation)
}

// GetReservation handles GET /api/reservations/{id}
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	reservation, err := h.service.GetReservation(r.Context(), reservationID)
	if err != nil {
		handleServiceError(w, h.log, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// ListMyReservations handles GET /api/reservations
func (h *ReservationHandler) ListMyReservations(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Customer identity required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	reservations, err := h.service.ListByCustomer(r.Context(), customerID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// UpdateReservation handles PUT /api/reservations/{id}
func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	var req request.UpdateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reservation, err := h.service.UpdateReservation(r.Context(), reservationID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// DeleteReservation handles DELETE /api/reservations/{id}
func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	if err := h.service.DeleteReservation(r.Context(), reservationID); err != nil {
		handleServiceError(w, h.log, err, "delete reservation")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ==================== LIFECYCLE ====================

// ConfirmReservation handles PUT /api/reservations/{id}/confirm
func (h *ReservationHandler) ConfirmReservation(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := utils.GetEmployeeIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Employee identity required")
		return
	}

	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	if err := h.service.Confirm(r.Context(), reservationID, employeeID); err != nil {
		handleServiceError(w, h.log, err, "confirm reservation")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// DenyReservation handles PUT /api/reservations/{id}/deny
func (h *ReservationHandler) DenyReservation(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetEmployeeIDFromContext(r.Context()); !ok {
		utils.ResponseUnauthorized(w, "Employee identity required")
		return
	}

	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	if err := h.service.Deny(r.Context(), reservationID); err != nil {
		handleServiceError(w, h.log, err, "deny reservation")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CancelReservation handles PUT /api/reservations/{id}/cancel
func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	if err := h.service.Cancel(r.Context(), reservationID); err != nil {
		handleServiceError(w, h.log, err, "cancel reservation")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// StartReservation handles PUT /api/reservations/{id}/start
func (h *ReservationHandler) StartReservation(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetEmployeeIDFromContext(r.Context()); !ok {
		utils.ResponseUnauthorized(w, "Employee identity required")
		return
	}

	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	if err := h.service.Start(r.Context(), reservationID); err != nil {
		handleServiceError(w, h.log, err, "start reservation")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CompleteReservation handles PUT /api/reservations/{id}/complete
func (h *ReservationHandler) CompleteReservation(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetEmployeeIDFromContext(r.Context()); !ok {
		utils.ResponseUnauthorized(w, "Employee identity required")
		return
	}

	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	if err := h.service.Complete(r.Context(), reservationID); err != nil {
		handleServiceError(w, h.log, err, "complete reservation")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ==================== AVAILABILITY ====================

// ListCarReservations handles GET /api/cars/{id}/reservations
func (h *ReservationHandler) ListCarReservations(w http.ResponseWriter, r *http.Request) {
	carID := chi.URLParam(r, "id")
	if carID == "" {
		utils.ResponseBadRequest(w, "Car ID is required", nil)
		return
	}

	reservations, err := h.service.ListByResource(r.Context(), carID)
	if err != nil {
		handleServiceError(w, h.log, err, "list car reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// CheckCarAvailability handles GET /api/cars/{id}/availability?start=...&end=...
func (h *ReservationHandler) CheckCarAvailability(w http.ResponseWriter, r *http.Request) {
	carID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid car ID", nil)
		return
	}

	query := r.URL.Query()
	start, err := utils.ParseTime(query.Get("start"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid start time", nil)
		return
	}
	end, err := utils.ParseTime(query.Get("end"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid end time", nil)
		return
	}

	available, err := h.availability.IsFree(r.Context(), carID, start, end)
	if err != nil {
		handleServiceError(w, h.log, err, "check car availability")
		return
	}

	utils.ResponseSuccess(w, "success", response.AvailabilityResponse{
		ResourceID: carID.String(),
		StartTime:  start,
		EndTime:    end,
		Available:  available,
	})
}
