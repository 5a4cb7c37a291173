package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/eventlify/booking-engine/internal/effects"
	"github.com/eventlify/booking-engine/internal/models"
	"github.com/eventlify/booking-engine/internal/repository"
	"gorm.io/gorm"
)

// Dispatcher performs best-effort side effects after a transition has
// committed. Implementations must never block the caller or report
// failures back into the lifecycle result.
type Dispatcher interface {
	Dispatch(effs []effects.Effect)
}

type ResolveResult struct {
	BookingID     uint
	PaymentStatus models.PaymentStatus
	Ticket        *models.Ticket
}

type CancelResult struct {
	BookingID uint
	Refunded  bool
}

// LifecycleService is the only code path allowed to change a booking's
// payment status. Each operation is one synchronous unit of work: check
// permissions and state preconditions, mutate booking + capacity ledger +
// ticket + payment mirror inside a single database transaction, then hand
// notification/email effects to the dispatcher.
type LifecycleService interface {
	ResolvePayment(ctx context.Context, bookingID uint, actor Actor, decision models.PaymentStatus) (*ResolveResult, error)
	CancelBooking(ctx context.Context, bookingID uint, actor Actor) (*CancelResult, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
}

type lifecycleService struct {
	bookingRepo repository.BookingRepository
	eventRepo   repository.EventRepository
	ticketRepo  repository.TicketRepository
	issuer      TicketIssuer
	mirror      *paymentMirror
	dispatcher  Dispatcher
	now         func() time.Time
}

func NewLifecycleService(
	bookingRepo repository.BookingRepository,
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketRepository,
	txnRepo repository.TransactionRepository,
	payRepo repository.PaymentRepository,
	dispatcher Dispatcher,
) LifecycleService {
	return &lifecycleService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		ticketRepo:  ticketRepo,
		issuer:      NewTicketIssuer(ticketRepo),
		mirror:      newPaymentMirror(txnRepo, payRepo),
		dispatcher:  dispatcher,
		now:         time.Now,
	}
}

func (s *lifecycleService) ResolvePayment(ctx context.Context, bookingID uint, actor Actor, decision models.PaymentStatus) (*ResolveResult, error) {
	if decision != models.PaymentConfirmed && decision != models.PaymentRejected {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidDecision, decision)
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	event, err := s.eventRepo.FindByID(ctx, booking.EventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	if !CanResolvePayment(actor, event) {
		return nil, ErrForbidden
	}
	if booking.PaymentStatus != models.PaymentPending {
		return nil, fmt.Errorf("cannot resolve booking with status %s: %w", booking.PaymentStatus, ErrInvalidState)
	}

	var ticket *models.Ticket

	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if decision == models.PaymentConfirmed && !event.Unlimited() {
			// Atomic "decrement if > 0"; losing the last seat to a
			// concurrent confirmation surfaces here, before any write.
			took, err := s.eventRepo.DecrementAvailable(ctx, tx, event.ID)
			if err != nil {
				return fmt.Errorf("decrement capacity: %w", err)
			}
			if !took {
				return fmt.Errorf("event %q is sold out: %w", event.Title, ErrInvalidState)
			}
		}

		moved, err := s.bookingRepo.TransitionFromPending(ctx, tx, booking.ID, decision)
		if err != nil {
			return fmt.Errorf("update booking status: %w", err)
		}
		if !moved {
			return fmt.Errorf("booking already resolved: %w", ErrInvalidState)
		}
		booking.PaymentStatus = decision

		if decision == models.PaymentConfirmed {
			ticket, err = s.issuer.IssueTicket(ctx, tx, booking.ID)
			if err != nil {
				return err
			}
			_, err = s.mirror.apply(ctx, tx, booking, OutcomeConfirmed, s.now())
			return err
		}

		_, err = s.mirror.apply(ctx, tx, booking, OutcomeRejected, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(s.resolveEffects(booking, event))

	return &ResolveResult{
		BookingID:     booking.ID,
		PaymentStatus: booking.PaymentStatus,
		Ticket:        ticket,
	}, nil
}

func (s *lifecycleService) CancelBooking(ctx context.Context, bookingID uint, actor Actor) (*CancelResult, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	event, err := s.eventRepo.FindByID(ctx, booking.EventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	if !CanCancelBooking(actor, booking) {
		return nil, ErrForbidden
	}
	if !event.StartsAt().After(s.now()) {
		return nil, fmt.Errorf("event %q has already started: %w", event.Title, ErrInvalidState)
	}

	var refundedTxn *models.Transaction

	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		booking, refundedTxn, err = s.cancelLocked(ctx, tx, booking.ID, event)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(s.cancelEffects(booking, event, refundedTxn))

	return &CancelResult{BookingID: booking.ID, Refunded: refundedTxn != nil}, nil
}

// cancelLocked performs the compensations inside the caller's transaction.
// It re-fetches the booking under a row lock first: the snapshot the
// precondition checks used may be stale by now — a concurrent confirmation
// may have taken a seat that must come back, and a concurrent cancel may
// have removed the booking entirely, in which case nothing may be refunded
// twice. Every decision below keys off the locked row.
func (s *lifecycleService) cancelLocked(ctx context.Context, tx *gorm.DB, bookingID uint, event *models.Event) (*models.Booking, *models.Transaction, error) {
	booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBookingNotFound
		}
		return nil, nil, fmt.Errorf("lock booking: %w", err)
	}

	refundedTxn, err := s.mirror.apply(ctx, tx, booking, OutcomeCancelled, s.now())
	if err != nil {
		return nil, nil, err
	}

	ticket, err := s.ticketRepo.FindByBookingID(ctx, tx, booking.ID)
	switch {
	case err == nil:
		if err := s.ticketRepo.UpdateStatus(ctx, tx, ticket.ID, models.TicketCancelled); err != nil {
			return nil, nil, fmt.Errorf("cancel ticket: %w", err)
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, fmt.Errorf("lookup ticket: %w", err)
	}

	// Only a confirmed booking ever took a seat from the ledger; a
	// pending one must not give a seat back.
	if booking.PaymentStatus == models.PaymentConfirmed && !event.Unlimited() {
		restored, err := s.eventRepo.IncrementAvailable(ctx, tx, event.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("restore capacity: %w", err)
		}
		if !restored {
			log.Printf("[Lifecycle] event %d counter already at capacity, skipping restore for booking %d", event.ID, booking.ID)
		}
	}

	if err := s.bookingRepo.Delete(ctx, tx, booking.ID); err != nil {
		return nil, nil, err
	}
	return booking, refundedTxn, nil
}

func (s *lifecycleService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *lifecycleService) dispatch(effs []effects.Effect) {
	if s.dispatcher == nil || len(effs) == 0 {
		return
	}
	s.dispatcher.Dispatch(effs)
}

func (s *lifecycleService) resolveEffects(booking *models.Booking, event *models.Event) []effects.Effect {
	if booking.PaymentStatus == models.PaymentConfirmed {
		return []effects.Effect{
			effects.NotifyUser{
				UserID:  booking.UserID,
				Type:    "booking_confirmed",
				Title:   "Booking confirmed",
				Message: fmt.Sprintf("Your booking for %q is confirmed. Your ticket is ready.", event.Title),
				Link:    fmt.Sprintf("/bookings/%d", booking.ID),
			},
			effects.SendEmail{
				To:      booking.Email,
				Subject: fmt.Sprintf("Ticket for %s", event.Title),
				HTML:    fmt.Sprintf("<p>Your booking #%d for <b>%s</b> is confirmed.</p>", booking.ID, event.Title),
			},
		}
	}
	return []effects.Effect{
		effects.NotifyUser{
			UserID:  booking.UserID,
			Type:    "booking_rejected",
			Title:   "Booking rejected",
			Message: fmt.Sprintf("Your booking for %q could not be confirmed.", event.Title),
			Link:    fmt.Sprintf("/bookings/%d", booking.ID),
		},
		effects.SendEmail{
			To:      booking.Email,
			Subject: fmt.Sprintf("Booking for %s rejected", event.Title),
			HTML:    fmt.Sprintf("<p>Your booking #%d for <b>%s</b> was rejected.</p>", booking.ID, event.Title),
		},
	}
}

func (s *lifecycleService) cancelEffects(booking *models.Booking, event *models.Event, refundedTxn *models.Transaction) []effects.Effect {
	msg := fmt.Sprintf("Your booking for %q has been cancelled.", event.Title)
	if refundedTxn != nil {
		msg = fmt.Sprintf("Your booking for %q has been cancelled and a refund of %d is on its way.", event.Title, refundedTxn.RefundAmount)
	}

	effs := []effects.Effect{
		effects.NotifyUser{
			UserID:  booking.UserID,
			Type:    "booking_cancelled",
			Title:   "Booking cancelled",
			Message: msg,
		},
		effects.SendEmail{
			To:      booking.Email,
			Subject: fmt.Sprintf("Booking for %s cancelled", event.Title),
			HTML:    fmt.Sprintf("<p>%s</p>", msg),
		},
	}
	if refundedTxn != nil {
		effs = append(effs, effects.RequestRefund{
			TransactionID: refundedTxn.ID,
			BookingID:     booking.ID,
			Amount:        refundedTxn.RefundAmount,
		})
	}
	return effs
}
