package usecase

import (
	"context"
	"fmt"

	"fleet-booking/internal/data/entity"
	"fleet-booking/internal/data/repository"
	"fleet-booking/internal/dto/request"
	"fleet-booking/internal/dto/response"
	"fleet-booking/internal/pricing"
	"fleet-booking/pkg/lock"
	"fleet-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService is the money ledger. Every charge and refund is an
// append-only transaction row; the payment's amount_paid is recomputed from
// the signed transaction sum inside the same database transaction.
type PaymentService interface {
	// Open creates the ledger head for a reservation, using the caller's
	// repository set so it joins the coordinator's database transaction.
	Open(ctx context.Context, txRepo *repository.Repository, reservationID uuid.UUID, amountDue float64) (*entity.Payment, error)

	Charge(ctx context.Context, paymentID string, req *request.ChargePaymentRequest) (*response.PaymentResponse, error)
	Refund(ctx context.Context, paymentID string, req *request.RefundPaymentRequest) (*response.PaymentResponse, error)
	GetPayment(ctx context.Context, paymentID string) (*response.PaymentDetailResponse, error)
}

type paymentService struct {
	repo  *repository.Repository
	tx    TxRunner
	locks *lock.Keyed
	clock Clock
	log   *zap.Logger
}

func NewPaymentService(repo *repository.Repository, tx TxRunner, locks *lock.Keyed, clock Clock, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:  repo,
		tx:    tx,
		locks: locks,
		clock: clock,
		log:   log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) Open(ctx context.Context, txRepo *repository.Repository, reservationID uuid.UUID, amountDue float64) (*entity.Payment, error) {
	if amountDue <= 0 {
		return nil, fmt.Errorf("%w: amount due %.2f must be positive", ErrInvalidAmount, amountDue)
	}

	now := s.clock()
	payment := &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReservationID: reservationID,
		AmountDue:     pricing.Round2(amountDue),
		AmountPaid:    0,
		Status:        entity.PaymentStatusPending,
	}

	if err := txRepo.Payment.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("open payment: %w", err)
	}

	return payment, nil
}

func (s *paymentService) Charge(ctx context.Context, paymentID string, req *request.ChargePaymentRequest) (*response.PaymentResponse, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: charge amount %.2f must be positive", ErrInvalidAmount, req.Amount)
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Charge validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(paymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment ID %s", ErrValidation, paymentID)
	}

	methodID, err := uuid.Parse(req.MethodID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid method ID %s", ErrValidation, req.MethodID)
	}

	// Read-validate-append-recompute is one critical section per payment.
	release := s.locks.Acquire("payment:" + id.String())
	defer release()

	payment, err := s.repo.Payment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("charge payment %s: %w", paymentID, err)
	}
	if payment == nil {
		return nil, fmt.Errorf("%w: payment %s", ErrNotFound, paymentID)
	}

	switch payment.Status {
	case entity.PaymentStatusPaid, entity.PaymentStatusRefunded, entity.PaymentStatusPartiallyRefunded:
		return nil, fmt.Errorf("%w: payment %s is %s, cannot charge", ErrIllegalTransition, paymentID, payment.Status)
	}

	amount := pricing.Round2(req.Amount)
	newPaid := pricing.Round2(payment.AmountPaid + amount)
	if newPaid > payment.AmountDue {
		return nil, fmt.Errorf("%w: charge %.2f would exceed amount due %.2f (paid %.2f)",
			ErrOverPayment, amount, payment.AmountDue, payment.AmountPaid)
	}

	method, err := s.repo.PaymentMethod.FindByID(ctx, methodID)
	if err != nil {
		return nil, fmt.Errorf("charge payment %s: %w", paymentID, err)
	}
	if method == nil {
		return nil, fmt.Errorf("%w: payment method %s", ErrNotFound, req.MethodID)
	}
	if !method.IsActive {
		return nil, fmt.Errorf("%w: payment method %s is not active", ErrValidation, method.Name)
	}

	now := s.clock()
	transaction := &entity.PaymentTransaction{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		PaymentID: id,
		Kind:      entity.TransactionKindCharge,
		Amount:    amount,
		MethodID:  methodID,
		Notes:     req.Notes,
	}

	err = s.tx.InTx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Transaction.Create(ctx, transaction); err != nil {
			return err
		}

		paid, err := txRepo.Transaction.SumSignedByPaymentID(ctx, id)
		if err != nil {
			return err
		}
		paid = pricing.Round2(paid)

		status := entity.StatusAfterCharge(paid, payment.AmountDue)
		if err := txRepo.Payment.UpdateTotals(ctx, id, paid, status, now); err != nil {
			return err
		}

		payment.AmountPaid = paid
		payment.Status = status
		payment.LastTransactionAt = &now
		return nil
	})
	if err != nil {
		s.log.Error("Failed to charge payment",
			zap.Error(err),
			zap.String("payment_id", paymentID),
			zap.Float64("amount", amount),
		)
		return nil, fmt.Errorf("charge payment %s: %w", paymentID, err)
	}

	s.log.Info("Payment charged",
		zap.String("payment_id", paymentID),
		zap.String("transaction_id", transaction.ID.String()),
		zap.Float64("amount", amount),
		zap.Float64("amount_paid", payment.AmountPaid),
		zap.String("status", string(payment.Status)),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) Refund(ctx context.Context, paymentID string, req *request.RefundPaymentRequest) (*response.PaymentResponse, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: refund amount %.2f must be positive", ErrInvalidAmount, req.Amount)
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Refund validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(paymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment ID %s", ErrValidation, paymentID)
	}

	methodID, err := uuid.Parse(req.MethodID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid method ID %s", ErrValidation, req.MethodID)
	}

	release := s.locks.Acquire("payment:" + id.String())
	defer release()

	payment, err := s.repo.Payment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("refund payment %s: %w", paymentID, err)
	}
	if payment == nil {
		return nil, fmt.Errorf("%w: payment %s", ErrNotFound, paymentID)
	}

	if payment.Status == entity.PaymentStatusPending || payment.AmountPaid == 0 {
		return nil, fmt.Errorf("%w: payment %s has nothing to refund", ErrIllegalTransition, paymentID)
	}

	amount := pricing.Round2(req.Amount)
	if amount > payment.AmountPaid {
		// The candidate total would be negative; reject before commit.
		return nil, fmt.Errorf("%w: refund %.2f exceeds amount paid %.2f",
			ErrInvalidAmount, amount, payment.AmountPaid)
	}

	method, err := s.repo.PaymentMethod.FindByID(ctx, methodID)
	if err != nil {
		return nil, fmt.Errorf("refund payment %s: %w", paymentID, err)
	}
	if method == nil {
		return nil, fmt.Errorf("%w: payment method %s", ErrNotFound, req.MethodID)
	}
	if !method.IsActive {
		return nil, fmt.Errorf("%w: payment method %s is not active", ErrValidation, method.Name)
	}

	now := s.clock()
	transaction := &entity.PaymentTransaction{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		PaymentID: id,
		Kind:      entity.TransactionKindRefund,
		Amount:    amount,
		MethodID:  methodID,
		Notes:     req.Reason,
	}

	err = s.tx.InTx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Transaction.Create(ctx, transaction); err != nil {
			return err
		}

		paid, err := txRepo.Transaction.SumSignedByPaymentID(ctx, id)
		if err != nil {
			return err
		}
		paid = pricing.Round2(paid)

		status := entity.StatusAfterRefund(paid)
		if err := txRepo.Payment.UpdateTotals(ctx, id, paid, status, now); err != nil {
			return err
		}

		payment.AmountPaid = paid
		payment.Status = status
		payment.LastTransactionAt = &now
		return nil
	})
	if err != nil {
		s.log.Error("Failed to refund payment",
			zap.Error(err),
			zap.String("payment_id", paymentID),
			zap.Float64("amount", amount),
		)
		return nil, fmt.Errorf("refund payment %s: %w", paymentID, err)
	}

	s.log.Info("Payment refunded",
		zap.String("payment_id", paymentID),
		zap.String("transaction_id", transaction.ID.String()),
		zap.Float64("amount", amount),
		zap.Float64("amount_paid", payment.AmountPaid),
		zap.String("status", string(payment.Status)),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) GetPayment(ctx context.Context, paymentID string) (*response.PaymentDetailResponse, error) {
	id, err := uuid.Parse(paymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment ID %s", ErrValidation, paymentID)
	}

	payment, err := s.repo.Payment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment %s: %w", paymentID, err)
	}
	if payment == nil {
		return nil, fmt.Errorf("%w: payment %s", ErrNotFound, paymentID)
	}

	transactions, err := s.repo.Transaction.FindByPaymentID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment %s transactions: %w", paymentID, err)
	}

	transactionResponses := make([]response.TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		transactionResponses[i] = response.TransactionToResponse(transaction)
	}

	return &response.PaymentDetailResponse{
		PaymentResponse: response.PaymentToResponse(payment),
		Transactions:    transactionResponses,
	}, nil
}
