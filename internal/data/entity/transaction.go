package entity

import (
	"github.com/google/uuid"
)

type TransactionKind string

const (
	TransactionKindCharge TransactionKind = "charge"
	TransactionKindRefund TransactionKind = "refund"
)

// PaymentTransaction is an immutable money movement against a Payment.
// Rows are appended, never updated or deleted.
type PaymentTransaction struct {
	BaseSimple
	PaymentID uuid.UUID       `db:"payment_id"`
	Kind      TransactionKind `db:"kind"`
	Amount    float64         `db:"amount"`
	MethodID  uuid.UUID       `db:"method_id"`
	Notes     string          `db:"notes"`
}

// SignedAmount is positive for charges and negative for refunds.
func (t *PaymentTransaction) SignedAmount() float64 {
	if t.Kind == TransactionKindRefund {
		return -t.Amount
	}
	return t.Amount
}
