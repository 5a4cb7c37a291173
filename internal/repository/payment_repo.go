package repository

import (
	"context"
	"time"

	"github.com/eventlify/booking-engine/internal/models"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	FindByBookingID(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Payment, error)
	Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, paymentID uint, status models.PaymentState, paidAt *time.Time) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Payment, error) {
	if tx == nil {
		tx = r.db
	}
	var payment models.Payment
	err := tx.WithContext(ctx).Where("booking_id = ?", bookingID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, paymentID uint, status models.PaymentState, paidAt *time.Time) error {
	updates := map[string]any{"status": status}
	if paidAt != nil {
		updates["paid_at"] = *paidAt
	}
	return tx.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", paymentID).
		Updates(updates).Error
}
