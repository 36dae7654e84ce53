package postgres

import (
	"context"
	"time"

	"github.com/studyhive/studyhive-backend/internal/domain/entity"
	"gorm.io/gorm"
)

type EventStorage struct {
	db *gorm.DB
}

func NewEventStorage(db *gorm.DB) *EventStorage {
	return &EventStorage{
		db: db,
	}
}

// Create is a function that creates a new event in the database.
func (s *EventStorage) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Create(&event).Error
	return event, err
}

// Get is a function that gets an event from the database by id, scoped to its owner.
func (s *EventStorage) Get(ctx context.Context, userID, id string) (*entity.Event, error) {
	var event entity.Event
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&event).Error
	return &event, err
}

// GetByUser is a function that gets all events of one user, optionally
// bounded by deadline. Zero bounds are ignored.
func (s *EventStorage) GetByUser(ctx context.Context, userID string, from, to time.Time) ([]entity.Event, error) {
	var events []entity.Event
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if !from.IsZero() {
		q = q.Where("deadline >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("deadline <= ?", to)
	}
	err := q.Order("deadline ASC").Find(&events).Error
	return events, err
}

// GetUpcoming is a function that gets the user's events with a deadline
// strictly after the given instant, ascending by deadline.
func (s *EventStorage) GetUpcoming(ctx context.Context, userID string, after time.Time) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND deadline > ?", userID, after).
		Order("deadline ASC").
		Find(&events).Error
	return events, err
}

// GetDueBefore is a global sweep: events of every user whose deadline is
// at or before the given instant.
func (s *EventStorage) GetDueBefore(ctx context.Context, t time.Time) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).Where("deadline <= ?", t).Find(&events).Error
	return events, err
}

// GetRemindersDueBetween is a global sweep: reminder-tagged events of
// every user whose deadline falls in [from, to].
func (s *EventStorage) GetRemindersDueBetween(ctx context.Context, from, to time.Time) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).
		Where("deadline >= ? AND deadline <= ? AND ? = ANY(tags)", from, to, entity.TagReminder).
		Find(&events).Error
	return events, err
}

// Delete is a function that deletes an event from the database, scoped to
// its owner. Alerts referencing the event are left untouched.
func (s *EventStorage) Delete(ctx context.Context, userID, id string) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Event{})
	return res.RowsAffected, res.Error
}
