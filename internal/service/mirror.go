package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventlify/booking-engine/internal/models"
	"github.com/eventlify/booking-engine/internal/repository"
	"gorm.io/gorm"
)

// Outcome tags the result of a lifecycle transition. The mirror switches
// over it exhaustively, so a transition without a mirror rule fails loudly
// instead of silently skipping the secondary records.
type Outcome int

const (
	OutcomeConfirmed Outcome = iota
	OutcomeRejected
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeRejected:
		return "rejected"
	case OutcomeCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// paymentMirror keeps Transaction and Payment in step with the booking:
//
//	confirmed → Transaction completed, Payment succeeded (+paid_at)
//	rejected  → Transaction failed,    Payment failed
//	cancelled → Transaction refunded (+refund_amount, +refunded_at) when a
//	            completed Transaction with amount > 0 exists; Payment untouched
type paymentMirror struct {
	txnRepo repository.TransactionRepository
	payRepo repository.PaymentRepository
}

func newPaymentMirror(txnRepo repository.TransactionRepository, payRepo repository.PaymentRepository) *paymentMirror {
	return &paymentMirror{txnRepo: txnRepo, payRepo: payRepo}
}

// apply runs inside the caller's transaction. For OutcomeCancelled it
// returns the refunded Transaction, nil otherwise.
func (m *paymentMirror) apply(ctx context.Context, tx *gorm.DB, booking *models.Booking, outcome Outcome, now time.Time) (*models.Transaction, error) {
	switch outcome {
	case OutcomeConfirmed:
		if err := m.setTransaction(ctx, tx, booking, models.TxnCompleted); err != nil {
			return nil, err
		}
		return nil, m.setPayment(ctx, tx, booking, models.PaySucceeded, &now)

	case OutcomeRejected:
		if err := m.setTransaction(ctx, tx, booking, models.TxnFailed); err != nil {
			return nil, err
		}
		return nil, m.setPayment(ctx, tx, booking, models.PayFailed, nil)

	case OutcomeCancelled:
		txn, err := m.txnRepo.FindByBookingID(ctx, tx, booking.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("lookup transaction: %w", err)
		}
		if txn.Status != models.TxnCompleted || txn.Amount <= 0 {
			return nil, nil
		}
		if err := m.txnRepo.MarkRefunded(ctx, tx, txn.ID, txn.Amount, now); err != nil {
			return nil, fmt.Errorf("mark transaction refunded: %w", err)
		}
		txn.Status = models.TxnRefunded
		txn.RefundAmount = txn.Amount
		txn.RefundedAt = &now
		return txn, nil
	}

	return nil, fmt.Errorf("no mirror rule for booking outcome %s", outcome)
}

// setTransaction updates the booking's transaction, creating the row when
// the mirror has never seen this booking before.
func (m *paymentMirror) setTransaction(ctx context.Context, tx *gorm.DB, booking *models.Booking, status models.TransactionStatus) error {
	txn, err := m.txnRepo.FindByBookingID(ctx, tx, booking.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m.txnRepo.Create(ctx, tx, &models.Transaction{
			BookingID: booking.ID,
			Amount:    booking.Amount,
			Status:    status,
		})
	}
	if err != nil {
		return fmt.Errorf("lookup transaction: %w", err)
	}
	return m.txnRepo.UpdateStatus(ctx, tx, txn.ID, status)
}

func (m *paymentMirror) setPayment(ctx context.Context, tx *gorm.DB, booking *models.Booking, status models.PaymentState, paidAt *time.Time) error {
	payment, err := m.payRepo.FindByBookingID(ctx, tx, booking.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m.payRepo.Create(ctx, tx, &models.Payment{
			BookingID: booking.ID,
			Status:    status,
			PaidAt:    paidAt,
		})
	}
	if err != nil {
		return fmt.Errorf("lookup payment: %w", err)
	}
	return m.payRepo.UpdateStatus(ctx, tx, payment.ID, status, paidAt)
}
