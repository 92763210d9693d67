package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusPartiallyPaid     PaymentStatus = "partially_paid"
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusRefunded          PaymentStatus = "refunded"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
)

// Payment is the ledger head for a reservation, one-to-one. AmountPaid is
// always the signed sum of the payment's transactions.
type Payment struct {
	Base
	ReservationID     uuid.UUID     `db:"reservation_id"`
	AmountDue         float64       `db:"amount_due"`
	AmountPaid        float64       `db:"amount_paid"`
	Status            PaymentStatus `db:"status"`
	LastTransactionAt *time.Time    `db:"last_transaction_at"`
}

// Outstanding is the remainder still owed.
func (p *Payment) Outstanding() float64 {
	return p.AmountDue - p.AmountPaid
}

// StatusAfterCharge derives the ledger status once a charge brings the
// running total to paid.
func StatusAfterCharge(paid, due float64) PaymentStatus {
	if paid >= due {
		return PaymentStatusPaid
	}
	return PaymentStatusPartiallyPaid
}

// StatusAfterRefund derives the ledger status once a refund brings the
// running total to paid.
func StatusAfterRefund(paid float64) PaymentStatus {
	if paid <= 0 {
		return PaymentStatusRefunded
	}
	return PaymentStatusPartiallyRefunded
}
