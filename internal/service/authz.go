package service

import "github.com/eventlify/booking-engine/internal/models"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOrganizer Role = "organizer"
	RoleUser      Role = "user"
)

// Actor is the trusted identity resolved upstream: who is calling, in what
// role, and which organizer account they belong to (empty for plain users).
type Actor struct {
	ID          string
	Role        Role
	OrganizerID string
}

// CanResolvePayment allows admins, and organizers owning the event either
// directly or through their organizer affiliation.
func CanResolvePayment(actor Actor, event *models.Event) bool {
	if actor.Role == RoleAdmin {
		return true
	}
	if actor.Role != RoleOrganizer {
		return false
	}
	return actor.ID == event.OrganizerID || (actor.OrganizerID != "" && actor.OrganizerID == event.OrganizerID)
}

// CanCancelBooking allows admins and the booking's owning user.
func CanCancelBooking(actor Actor, booking *models.Booking) bool {
	if actor.Role == RoleAdmin {
		return true
	}
	return actor.ID == booking.UserID
}
