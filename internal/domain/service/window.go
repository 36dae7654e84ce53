package service

import (
	"time"

	"github.com/studyhive/studyhive-backend/internal/domain/entity"
)

// Category is the urgency class of an event relative to an instant.
type Category string

const (
	CategoryExpired     Category = "expired"
	CategoryUpcoming    Category = "upcoming"
	CategoryReminderDue Category = "reminder_due"
	CategoryNone        Category = "none"
)

const (
	// upcomingWindow is how far ahead an event counts as "upcoming soon".
	upcomingWindow = time.Hour
	// reminderWindow is the half-width of the due window around a
	// reminder's exact deadline.
	reminderWindow = time.Minute
)

// Classify returns exactly one category for the event at the given
// instant. It is pure: no I/O, no clock reads. Deadlines are treated as
// UTC; naive timestamps are rejected at the creation boundary and never
// reach this function.
//
// A reminder-tagged event inside the ±1m due window classifies as
// reminder_due even though the expired or upcoming range also covers it;
// outside that window it falls through to the plain rules.
func Classify(now time.Time, e entity.Event) Category {
	if e.IsReminder() {
		if !e.Deadline.Before(now.Add(-reminderWindow)) && !e.Deadline.After(now.Add(reminderWindow)) {
			return CategoryReminderDue
		}
	}
	if !e.Deadline.After(now) {
		return CategoryExpired
	}
	if !e.Deadline.After(now.Add(upcomingWindow)) {
		return CategoryUpcoming
	}
	return CategoryNone
}
