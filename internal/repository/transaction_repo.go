package repository

import (
	"context"
	"time"

	"github.com/eventlify/booking-engine/internal/models"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	FindByBookingID(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Transaction, error)
	Create(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, txnID uint, status models.TransactionStatus) error
	MarkRefunded(ctx context.Context, tx *gorm.DB, txnID uint, refundAmount int64, refundedAt time.Time) error
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) FindByBookingID(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Transaction, error) {
	if tx == nil {
		tx = r.db
	}
	var txn models.Transaction
	err := tx.WithContext(ctx).Where("booking_id = ?", bookingID).First(&txn).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) Create(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error {
	return tx.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, txnID uint, status models.TransactionStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ?", txnID).
		Update("status", status).Error
}

func (r *transactionRepository) MarkRefunded(ctx context.Context, tx *gorm.DB, txnID uint, refundAmount int64, refundedAt time.Time) error {
	return tx.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ?", txnID).
		Updates(map[string]any{
			"status":        models.TxnRefunded,
			"refund_amount": refundAmount,
			"refunded_at":   refundedAt,
		}).Error
}
