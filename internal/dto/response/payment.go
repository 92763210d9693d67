package response

import (
	"time"

	"fleet-booking/internal/data/entity"
)

type PaymentResponse struct {
	ID                string               `json:"id"`
	ReservationID     string               `json:"reservation_id"`
	AmountDue         float64              `json:"amount_due"`
	AmountPaid        float64              `json:"amount_paid"`
	Status            entity.PaymentStatus `json:"status"`
	LastTransactionAt *time.Time           `json:"last_transaction_at,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}

type TransactionResponse struct {
	ID        string                 `json:"id"`
	PaymentID string                 `json:"payment_id"`
	Kind      entity.TransactionKind `json:"kind"`
	Amount    float64                `json:"amount"`
	MethodID  string                 `json:"method_id"`
	Notes     string                 `json:"notes,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type PaymentDetailResponse struct {
	PaymentResponse
	Transactions []TransactionResponse `json:"transactions"`
}

type PaymentMethodResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// Helper converters
func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                payment.ID.String(),
		ReservationID:     payment.ReservationID.String(),
		AmountDue:         payment.AmountDue,
		AmountPaid:        payment.AmountPaid,
		Status:            payment.Status,
		LastTransactionAt: payment.LastTransactionAt,
		CreatedAt:         payment.CreatedAt,
	}
}

func TransactionToResponse(transaction *entity.PaymentTransaction) TransactionResponse {
	return TransactionResponse{
		ID:        transaction.ID.String(),
		PaymentID: transaction.PaymentID.String(),
		Kind:      transaction.Kind,
		Amount:    transaction.Amount,
		MethodID:  transaction.MethodID.String(),
		Notes:     transaction.Notes,
		CreatedAt: transaction.CreatedAt,
	}
}

func PaymentMethodToResponse(pm *entity.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:       pm.ID.String(),
		Name:     pm.Name,
		IsActive: pm.IsActive,
	}
}
