package repository

import (
	"context"

	"github.com/eventlify/booking-engine/internal/models"
	"gorm.io/gorm"
)

type EventRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	// DecrementAvailable performs the capacity ledger's "decrement if > 0"
	// as a single conditional UPDATE. It returns false when no seat was
	// left to take, without error.
	DecrementAvailable(ctx context.Context, tx *gorm.DB, eventID uint) (bool, error)
	// IncrementAvailable restores one seat, capped at capacity ("increment
	// if < capacity"). Returns false when the counter was already full.
	IncrementAvailable(ctx context.Context, tx *gorm.DB, eventID uint) (bool, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) DecrementAvailable(ctx context.Context, tx *gorm.DB, eventID uint) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ? AND capacity IS NOT NULL AND available_tickets > 0", eventID).
		UpdateColumn("available_tickets", gorm.Expr("available_tickets - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *eventRepository) IncrementAvailable(ctx context.Context, tx *gorm.DB, eventID uint) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ? AND capacity IS NOT NULL AND available_tickets < capacity", eventID).
		UpdateColumn("available_tickets", gorm.Expr("available_tickets + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
