package service

import (
	"context"
	"testing"
	"time"

	"github.com/eventlify/booking-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Mock TransactionRepository ---

type mockTxnRepo struct {
	findFn         func(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Transaction, error)
	createFn       func(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error
	updateStatusFn func(ctx context.Context, tx *gorm.DB, txnID uint, status models.TransactionStatus) error
	markRefundedFn func(ctx context.Context, tx *gorm.DB, txnID uint, refundAmount int64, refundedAt time.Time) error
}

func (m *mockTxnRepo) FindByBookingID(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Transaction, error) {
	return m.findFn(ctx, tx, bookingID)
}
func (m *mockTxnRepo) Create(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, txn)
	}
	return nil
}
func (m *mockTxnRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, txnID uint, status models.TransactionStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, tx, txnID, status)
	}
	return nil
}
func (m *mockTxnRepo) MarkRefunded(ctx context.Context, tx *gorm.DB, txnID uint, refundAmount int64, refundedAt time.Time) error {
	if m.markRefundedFn != nil {
		return m.markRefundedFn(ctx, tx, txnID, refundAmount, refundedAt)
	}
	return nil
}

// --- Mock PaymentRepository ---

type mockPayRepo struct {
	findFn   func(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Payment, error)
	createFn func(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	updateFn func(ctx context.Context, tx *gorm.DB, paymentID uint, status models.PaymentState, paidAt *time.Time) error
}

func (m *mockPayRepo) FindByBookingID(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Payment, error) {
	return m.findFn(ctx, tx, bookingID)
}
func (m *mockPayRepo) Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, payment)
	}
	return nil
}
func (m *mockPayRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, paymentID uint, status models.PaymentState, paidAt *time.Time) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, tx, paymentID, status, paidAt)
	}
	return nil
}

// --- Tests ---

func TestMirror_Confirmed(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	booking := &models.Booking{ID: 1, Amount: 5000, PaymentStatus: models.PaymentConfirmed}

	var gotTxnStatus models.TransactionStatus
	var gotPayStatus models.PaymentState
	var gotPaidAt *time.Time

	txnRepo := &mockTxnRepo{
		findFn: func(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Transaction, error) {
			return &models.Transaction{ID: 11, BookingID: 1, Amount: 5000, Status: models.TxnPending}, nil
		},
		updateStatusFn: func(ctx context.Context, tx *gorm.DB, txnID uint, status models.TransactionStatus) error {
			gotTxnStatus = status
			return nil
		},
	}
	payRepo := &mockPayRepo{
		findFn: func(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Payment, error) {
			return &models.Payment{ID: 21, BookingID: 1, Status: models.PayPending}, nil
		},
		updateFn: func(ctx context.Context, tx *gorm.DB, paymentID uint, status models.PaymentState, paidAt *time.Time) error {
			gotPayStatus = status
			gotPaidAt = paidAt
			return nil
		},
	}

	m := newPaymentMirror(txnRepo, payRepo)
	refunded, err := m.apply(context.Background(), nil, booking, OutcomeConfirmed, now)

	require.NoError(t, err)
	assert.Nil(t, refunded)
	assert.Equal(t, models.TxnCompleted, gotTxnStatus)
	assert.Equal(t, models.PaySucceeded, gotPayStatus)
	require.NotNil(t, gotPaidAt)
	assert.Equal(t, now, *gotPaidAt)
}

func TestMirror_Rejected(t *testing.T) {
	booking := &models.Booking{ID: 2, Amount: 2500, PaymentStatus: models.PaymentRejected}

	var gotTxnStatus models.TransactionStatus
	var gotPayStatus models.PaymentState
	var gotPaidAt *time.Time

	txnRepo := &mockTxnRepo{
		findFn: func(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Transaction, error) {
			return &models.Transaction{ID: 12, BookingID: 2, Amount: 2500, Status: models.TxnPending}, nil
		},
		updateStatusFn: func(ctx context.Context, tx *gorm.DB, txnID uint, status models.TransactionStatus) error {
			gotTxnStatus = status
			return nil
		},
	}
	payRepo := &mockPayRepo{
		findFn: func(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Payment, error) {
			return &models.Payment{ID: 22, BookingID: 2, Status: models.PayPending}, nil
		},
		updateFn: func(ctx context.Context, tx *gorm.DB, paymentID uint, status models.PaymentState, paidAt *time.Time) error {
			gotPayStatus = status
			gotPaidAt = paidAt
			return nil
		},
	}

	m := newPaymentMirror(txnRepo, payRepo)
	refunded, err := m.apply(context.Background(), nil, booking, OutcomeRejected, time.Now())

	require.NoError(t, err)
	assert.Nil(t, refunded)
	assert.Equal(t, models.TxnFailed, gotTxnStatus)
	assert.Equal(t, models.PayFailed, gotPayStatus)
	assert.Nil(t, gotPaidAt, "a failed payment never gets paid_at")
}

func TestMirror_CreatesMissingRows(t *testing.T) {
	booking := &models.Booking{ID: 3, Amount: 1000, PaymentStatus: models.PaymentConfirmed}

	var createdTxn *models.Transaction
	var createdPay *models.Payment

	txnRepo := &mockTxnRepo{
		findFn: func(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Transaction, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error {
			createdTxn = txn
			return nil
		},
	}
	payRepo := &mockPayRepo{
		findFn: func(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Payment, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
			createdPay = payment
			return nil
		},
	}

	m := newPaymentMirror(txnRepo, payRepo)
	_, err := m.apply(context.Background(), nil, booking, OutcomeConfirmed, time.Now())

	require.NoError(t, err)
	require.NotNil(t, createdTxn)
	assert.Equal(t, int64(1000), createdTxn.Amount)
	assert.Equal(t, models.TxnCompleted, createdTxn.Status)
	require.NotNil(t, createdPay)
	assert.Equal(t, models.PaySucceeded, createdPay.Status)
}

func TestMirror_CancelledRefundsCompletedTransaction(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	booking := &models.Booking{ID: 4, PaymentStatus: models.PaymentConfirmed}

	var refundedID uint
	var refundedAmount int64

	txnRepo := &mockTxnRepo{
		findFn: func(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Transaction, error) {
			return &models.Transaction{ID: 14, BookingID: 4, Amount: 5000, Status: models.TxnCompleted}, nil
		},
		markRefundedFn: func(ctx context.Context, tx *gorm.DB, txnID uint, refundAmount int64, refundedAt time.Time) error {
			refundedID = txnID
			refundedAmount = refundAmount
			return nil
		},
	}
	payRepo := &mockPayRepo{
		findFn: func(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Payment, error) {
			t.Fatal("payment must stay untouched on cancellation")
			return nil, nil
		},
	}

	m := newPaymentMirror(txnRepo, payRepo)
	refunded, err := m.apply(context.Background(), nil, booking, OutcomeCancelled, now)

	require.NoError(t, err)
	require.NotNil(t, refunded)
	assert.Equal(t, uint(14), refundedID)
	assert.Equal(t, int64(5000), refundedAmount)
	assert.Equal(t, models.TxnRefunded, refunded.Status)
	assert.Equal(t, int64(5000), refunded.RefundAmount)
	require.NotNil(t, refunded.RefundedAt)
	assert.Equal(t, now, *refunded.RefundedAt)
}

func TestMirror_CancelledSkipsNonRefundableTransactions(t *testing.T) {
	booking := &models.Booking{ID: 5, PaymentStatus: models.PaymentPending}

	tests := []struct {
		name string
		txn  *models.Transaction
		err  error
	}{
		{"no transaction row", nil, gorm.ErrRecordNotFound},
		{"failed transaction", &models.Transaction{ID: 15, Status: models.TxnFailed, Amount: 5000}, nil},
		{"zero amount", &models.Transaction{ID: 16, Status: models.TxnCompleted, Amount: 0}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txnRepo := &mockTxnRepo{
				findFn: func(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Transaction, error) {
					return tt.txn, tt.err
				},
				markRefundedFn: func(ctx context.Context, tx *gorm.DB, txnID uint, refundAmount int64, refundedAt time.Time) error {
					t.Fatal("nothing should be refunded")
					return nil
				},
			}

			m := newPaymentMirror(txnRepo, &mockPayRepo{})
			refunded, err := m.apply(context.Background(), nil, booking, OutcomeCancelled, time.Now())

			require.NoError(t, err)
			assert.Nil(t, refunded)
		})
	}
}
