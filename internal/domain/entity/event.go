package entity

import (
	"time"

	"github.com/lib/pq"
)

// TagReminder marks an event as a reminder: the scheduler persists an
// alert for it only around its exact deadline, and the alerts view shows
// it unconditionally while it exists.
const TagReminder = "reminder"

type Event struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      string `gorm:"not null;type:uuid;index"`
	Title       string `gorm:"not null"`
	Description string
	Tags        pq.StringArray `gorm:"type:text[]"`
	Deadline    time.Time      `gorm:"not null;index"`
}

// IsReminder reports whether the event carries reminder semantics.
func (e *Event) IsReminder() bool {
	for _, t := range e.Tags {
		if t == TagReminder {
			return true
		}
	}
	return false
}

// Expired reports whether the deadline has passed at the given instant.
// The boundary is inclusive: deadline == now counts as expired.
func (e *Event) Expired(now time.Time) bool {
	return !e.Deadline.After(now)
}
