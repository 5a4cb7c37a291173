package repository

import (
	"context"

	"github.com/eventlify/booking-engine/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	FindByEventID(ctx context.Context, eventID uint, status *models.PaymentStatus) ([]models.Booking, error)
	// TransitionFromPending flips payment_status only while it is still
	// pending. Returns false when another caller already resolved the
	// booking, making pending→terminal a one-shot transition.
	TransitionFromPending(ctx context.Context, tx *gorm.DB, bookingID uint, status models.PaymentStatus) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, bookingID uint) error
	CountByStatus(ctx context.Context, eventID uint, status models.PaymentStatus) (int64, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate acquires a row-level lock on the booking within the
// given transaction.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByEventID(ctx context.Context, eventID uint, status *models.PaymentStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).Where("event_id = ?", eventID)
	if status != nil {
		q = q.Where("payment_status = ?", *status)
	}
	if err := q.Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) TransitionFromPending(ctx context.Context, tx *gorm.DB, bookingID uint, status models.PaymentStatus) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND payment_status = ?", bookingID, models.PaymentPending).
		Update("payment_status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *bookingRepository) Delete(ctx context.Context, tx *gorm.DB, bookingID uint) error {
	return tx.WithContext(ctx).Delete(&models.Booking{}, bookingID).Error
}

func (r *bookingRepository) CountByStatus(ctx context.Context, eventID uint, status models.PaymentStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("event_id = ? AND payment_status = ?", eventID, status).
		Count(&count).Error
	return count, err
}
