package adaptor

import (
	"errors"
	"net/http"

	"fleet-booking/internal/usecase"
	"fleet-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors onto HTTP responses. Validation and
// bad input become 400, missing records 404, and anything the current state
// of the world forbids (double booking, illegal transition, overpayment)
// becomes 409.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrInvalidInterval),
		errors.Is(err, usecase.ErrInvalidAmount):
		log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrResourceUnavailable),
		errors.Is(err, usecase.ErrIllegalTransition),
		errors.Is(err, usecase.ErrOverPayment),
		errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
