package usecase

import "errors"

// Error taxonomy shared by every booking engine operation. Callers branch
// with errors.Is; operations wrap these with request context via fmt.Errorf.
var (
	// ErrValidation: bad input shape or range. Fix the request and retry.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidInterval: zero-length interval, reversed bounds, or a start
	// before today in the reference timezone.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrResourceUnavailable: the resource is already reserved for an
	// overlapping interval. Pick another interval or resource.
	ErrResourceUnavailable = errors.New("resource unavailable")

	// ErrIllegalTransition: the entity's current status does not permit the
	// requested lifecycle step.
	ErrIllegalTransition = errors.New("illegal transition")

	// ErrInvalidAmount: a non-positive or out-of-range money amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrOverPayment: the charge would push amount paid over amount due.
	ErrOverPayment = errors.New("overpayment")

	// ErrNotFound: unknown entity id.
	ErrNotFound = errors.New("not found")

	// ErrConflict: destructive operation on an entity with financial history.
	ErrConflict = errors.New("conflict")
)
