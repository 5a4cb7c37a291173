package service

import (
	"testing"

	"github.com/eventlify/booking-engine/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanResolvePayment(t *testing.T) {
	event := &models.Event{ID: 1, OrganizerID: "org-1"}

	tests := []struct {
		name  string
		actor Actor
		allow bool
	}{
		{"admin always allowed", Actor{ID: "admin-1", Role: RoleAdmin}, true},
		{"owning organizer by identity", Actor{ID: "org-1", Role: RoleOrganizer}, true},
		{"owning organizer by affiliation", Actor{ID: "staff-7", Role: RoleOrganizer, OrganizerID: "org-1"}, true},
		{"foreign organizer denied", Actor{ID: "org-2", Role: RoleOrganizer, OrganizerID: "org-2"}, false},
		{"plain user denied", Actor{ID: "user-1", Role: RoleUser}, false},
		{"user matching organizer id still denied", Actor{ID: "org-1", Role: RoleUser}, false},
		{"empty affiliation does not match empty organizer", Actor{ID: "staff-7", Role: RoleOrganizer}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allow, CanResolvePayment(tt.actor, event))
		})
	}
}

func TestCanCancelBooking(t *testing.T) {
	booking := &models.Booking{ID: 1, UserID: "user-1"}

	tests := []struct {
		name  string
		actor Actor
		allow bool
	}{
		{"admin always allowed", Actor{ID: "admin-1", Role: RoleAdmin}, true},
		{"owning user allowed", Actor{ID: "user-1", Role: RoleUser}, true},
		{"other user denied", Actor{ID: "user-2", Role: RoleUser}, false},
		{"organizer of the event denied", Actor{ID: "org-1", Role: RoleOrganizer}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allow, CanCancelBooking(tt.actor, booking))
		})
	}
}
