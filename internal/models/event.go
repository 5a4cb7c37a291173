package models

import "time"

type Event struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	OrganizerID      string    `gorm:"not null;index" json:"organizer_id"`
	Title            string    `gorm:"not null" json:"title"`
	Capacity         *int      `json:"capacity,omitempty"`
	AvailableTickets int       `gorm:"not null;default:0" json:"available_tickets"`
	Date             time.Time `gorm:"not null" json:"date"`
	StartTime        string    `gorm:"type:varchar(5);not null" json:"start_time"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Unlimited reports whether the event has no seat cap at all.
func (e *Event) Unlimited() bool {
	return e.Capacity == nil
}

// StartsAt combines the event date with its "15:04" start time. A
// malformed start time falls back to midnight of the event date.
func (e *Event) StartsAt() time.Time {
	t, err := time.Parse("15:04", e.StartTime)
	if err != nil {
		return time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, e.Date.Location())
	}
	return time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), t.Hour(), t.Minute(), 0, 0, e.Date.Location())
}
