package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/studyhive/studyhive-backend/internal/domain/entity"
	"github.com/studyhive/studyhive-backend/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar(), Name: "test"}
}

// fakeAlertStorage mimics the postgres alert storage including its
// unique index on related_event_id. With missRelatedLookup set, the
// existence check always misses, which forces the reconciler onto the
// insert path and exercises the duplicate-key race handling.
type fakeAlertStorage struct {
	mu                sync.Mutex
	alerts            []entity.Alert
	missRelatedLookup bool
	unreadErr         error
}

func (s *fakeAlertStorage) Create(_ context.Context, alert *entity.Alert) (*entity.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if alert.RelatedEventID != nil {
		for _, a := range s.alerts {
			if a.RelatedEventID != nil && *a.RelatedEventID == *alert.RelatedEventID {
				return nil, gorm.ErrDuplicatedKey
			}
		}
	}
	alert.ID = fmt.Sprintf("alert-%d", len(s.alerts)+1)
	alert.CreatedAt = time.Now().UTC()
	s.alerts = append(s.alerts, *alert)
	return alert, nil
}

func (s *fakeAlertStorage) GetByRelatedEvent(_ context.Context, eventID string) (*entity.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.missRelatedLookup {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range s.alerts {
		if s.alerts[i].RelatedEventID != nil && *s.alerts[i].RelatedEventID == eventID {
			a := s.alerts[i]
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeAlertStorage) GetUnread(_ context.Context, userID string) ([]entity.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unreadErr != nil {
		return nil, s.unreadErr
	}
	var out []entity.Alert
	for _, a := range s.alerts {
		if a.UserID == userID && !a.Read {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAlertStorage) MarkRead(_ context.Context, userID, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		if s.alerts[i].ID == id && s.alerts[i].UserID == userID {
			s.alerts[i].Read = true
			return 1, nil
		}
	}
	return 0, nil
}

func (s *fakeAlertStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.alerts)
}

func (s *fakeAlertStorage) add(alert entity.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, alert)
}

func (s *fakeAlertStorage) get(id string) (entity.Alert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.alerts {
		if a.ID == id {
			return a, true
		}
	}
	return entity.Alert{}, false
}

type fakeEventStorage struct {
	mu     sync.Mutex
	events []entity.Event

	dueErr       error
	remindersErr error
}

func (s *fakeEventStorage) GetByUser(_ context.Context, userID string, from, to time.Time) ([]entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Event
	for _, e := range s.events {
		if e.UserID != userID {
			continue
		}
		if !from.IsZero() && e.Deadline.Before(from) {
			continue
		}
		if !to.IsZero() && e.Deadline.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *fakeEventStorage) GetDueBefore(_ context.Context, t time.Time) ([]entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dueErr != nil {
		return nil, s.dueErr
	}
	var out []entity.Event
	for _, e := range s.events {
		if !e.Deadline.After(t) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeEventStorage) GetRemindersDueBetween(_ context.Context, from, to time.Time) ([]entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.remindersErr != nil {
		return nil, s.remindersErr
	}
	var out []entity.Event
	for _, e := range s.events {
		if !e.IsReminder() {
			continue
		}
		if e.Deadline.Before(from) || e.Deadline.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fakeUserStorage struct {
	users map[string]entity.User
}

func (s *fakeUserStorage) Get(_ context.Context, id string) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *recordingMailer) SendDeadlineExpired(to, title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, fmt.Sprintf("%s:%s", to, title))
}
