package repository

import (
	"context"

	"github.com/eventlify/booking-engine/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TicketRepository interface {
	FindByBookingID(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Ticket, error)
	// CreateIfAbsent inserts the ticket unless one already exists for its
	// booking. Returns false when the unique index on booking_id swallowed
	// the insert, meaning a concurrent caller won the race.
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) (bool, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, ticketID uint, status models.TicketStatus) error
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) FindByBookingID(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Ticket, error) {
	if tx == nil {
		tx = r.db
	}
	var ticket models.Ticket
	err := tx.WithContext(ctx).Where("booking_id = ?", bookingID).First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) CreateIfAbsent(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) (bool, error) {
	res := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "booking_id"}},
		DoNothing: true,
	}).Create(ticket)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, ticketID uint, status models.TicketStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ?", ticketID).
		Update("status", status).Error
}
