package service

import (
	"context"
	"strings"
	"time"

	"github.com/studyhive/studyhive-backend/internal/domain/common/errorz"
	"github.com/studyhive/studyhive-backend/internal/domain/entity"
)

type EventStorage interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Get(ctx context.Context, userID, id string) (*entity.Event, error)
	GetByUser(ctx context.Context, userID string, from, to time.Time) ([]entity.Event, error)
	GetUpcoming(ctx context.Context, userID string, after time.Time) ([]entity.Event, error)
	Delete(ctx context.Context, userID, id string) (int64, error)
}

type EventService struct {
	eventStorage EventStorage
}

func NewEventService(storage EventStorage) *EventService {
	return &EventService{
		eventStorage: storage,
	}
}

// Create validates and stores a new event. The legacy client marks a
// reminder by sending the literal description "Reminder"; that form is
// normalized into the reminder tag so the engine has a single notion of
// reminder semantics.
func (s *EventService) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	if strings.TrimSpace(event.Title) == "" {
		return nil, errorz.EmptyTitle
	}
	if event.Deadline.IsZero() {
		return nil, errorz.InvalidDeadline
	}
	event.Deadline = event.Deadline.UTC()
	if event.Description == "Reminder" && !event.IsReminder() {
		event.Tags = append(event.Tags, entity.TagReminder)
	}
	return s.eventStorage.Create(ctx, event)
}

func (s *EventService) Get(ctx context.Context, userID, id string) (*entity.Event, error) {
	return s.eventStorage.Get(ctx, userID, id)
}

func (s *EventService) GetByUser(ctx context.Context, userID string, from, to time.Time) ([]entity.Event, error) {
	return s.eventStorage.GetByUser(ctx, userID, from, to)
}

// UpcomingDeadlines returns the user's events with a deadline strictly
// after now, ascending. Pure query, re-runnable any time.
func (s *EventService) UpcomingDeadlines(ctx context.Context, userID string, now time.Time) ([]entity.Event, error) {
	return s.eventStorage.GetUpcoming(ctx, userID, now)
}

func (s *EventService) Delete(ctx context.Context, userID, id string) error {
	rows, err := s.eventStorage.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errorz.NotFound
	}
	return nil
}
