package models

import "time"

type TicketStatus string

const (
	TicketActive    TicketStatus = "active"
	TicketUsed      TicketStatus = "used"
	TicketCancelled TicketStatus = "cancelled"
)

type Ticket struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	BookingID    uint         `gorm:"not null;uniqueIndex" json:"booking_id"`
	TicketNumber string       `gorm:"not null;uniqueIndex" json:"ticket_number"`
	QRPayload    string       `gorm:"not null" json:"qr_payload"`
	Status       TicketStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
