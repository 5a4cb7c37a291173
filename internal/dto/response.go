package dto

import (
	"time"

	"github.com/eventlify/booking-engine/internal/models"
	"github.com/eventlify/booking-engine/internal/service"
)

type ResolvePaymentResponse struct {
	BookingID     uint                 `json:"booking_id"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	TicketNumber  string               `json:"ticket_number,omitempty"`
}

type CancelBookingResponse struct {
	BookingID uint `json:"booking_id"`
	Refunded  bool `json:"refunded"`
}

type BookingResponse struct {
	ID            uint                 `json:"id"`
	EventID       uint                 `json:"event_id"`
	UserID        string               `json:"user_id"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	Amount        int64                `json:"amount"`
	CreatedAt     time.Time            `json:"created_at"`
}

type EventStatusResponse struct {
	ID               uint   `json:"id"`
	Title            string `json:"title"`
	Capacity         *int   `json:"capacity,omitempty"`
	AvailableTickets int    `json:"available_tickets"`
	Confirmed        int64  `json:"confirmed_count"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToResolvePaymentResponse(r *service.ResolveResult) ResolvePaymentResponse {
	resp := ResolvePaymentResponse{
		BookingID:     r.BookingID,
		PaymentStatus: r.PaymentStatus,
	}
	if r.Ticket != nil {
		resp.TicketNumber = r.Ticket.TicketNumber
	}
	return resp
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		EventID:       b.EventID,
		UserID:        b.UserID,
		PaymentStatus: b.PaymentStatus,
		Amount:        b.Amount,
		CreatedAt:     b.CreatedAt,
	}
}
