package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/eventlify/booking-engine/internal/models"
	"github.com/eventlify/booking-engine/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketIssuer creates at most one ticket per confirmed booking. Issuance
// is idempotent: repeated and concurrent calls for the same booking all
// resolve to the single persisted ticket.
type TicketIssuer interface {
	IssueTicket(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Ticket, error)
}

type ticketIssuer struct {
	ticketRepo repository.TicketRepository
}

func NewTicketIssuer(ticketRepo repository.TicketRepository) TicketIssuer {
	return &ticketIssuer{ticketRepo: ticketRepo}
}

func (s *ticketIssuer) IssueTicket(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Ticket, error) {
	existing, err := s.ticketRepo.FindByBookingID(ctx, tx, bookingID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup ticket: %w", err)
	}

	number := newTicketNumber()
	payload, err := json.Marshal(map[string]any{
		"ticket_number": number,
		"booking_id":    bookingID,
	})
	if err != nil {
		return nil, fmt.Errorf("encode qr payload: %w", err)
	}

	ticket := &models.Ticket{
		BookingID:    bookingID,
		TicketNumber: number,
		QRPayload:    string(payload),
		Status:       models.TicketActive,
	}

	created, err := s.ticketRepo.CreateIfAbsent(ctx, tx, ticket)
	if err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	if created {
		return ticket, nil
	}

	// A concurrent issuer won the unique-index race; theirs is the ticket.
	winner, err := s.ticketRepo.FindByBookingID(ctx, tx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("refetch ticket after conflict: %w", err)
	}
	return winner, nil
}

func newTicketNumber() string {
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
