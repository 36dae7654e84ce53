package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studyhive/studyhive-backend/internal/domain/common/errorz"
	"github.com/studyhive/studyhive-backend/internal/domain/entity"
	"github.com/studyhive/studyhive-backend/pkg/logger"
	"gorm.io/gorm"
)

type alertStorage interface {
	Create(ctx context.Context, alert *entity.Alert) (*entity.Alert, error)
	GetByRelatedEvent(ctx context.Context, eventID string) (*entity.Alert, error)
	GetUnread(ctx context.Context, userID string) ([]entity.Alert, error)
	MarkRead(ctx context.Context, userID, id string) (int64, error)
}

type alertEventStorage interface {
	GetByUser(ctx context.Context, userID string, from, to time.Time) ([]entity.Event, error)
}

type alertUserStorage interface {
	Get(ctx context.Context, id string) (*entity.User, error)
}

type expiryMailer interface {
	SendDeadlineExpired(to, title string)
}

// ReconcileResult tells whether a reconciliation pass persisted a new
// alert or found the work already done.
type ReconcileResult string

const (
	ReconcileCreated ReconcileResult = "created"
	ReconcileSkipped ReconcileResult = "skipped"
)

// AlertView is one entry of the alerts feed. Live entries carry the
// event deadline; persisted free-standing entries carry their creation
// time instead.
type AlertView struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type AlertService struct {
	alertStorage alertStorage
	eventStorage alertEventStorage
	userStorage  alertUserStorage

	mailer expiryMailer
	logger *logger.Logger
}

// NewAlertService builds the alert service. mailer may be nil, in which
// case no expiry mail is sent.
func NewAlertService(
	alertStorage alertStorage,
	eventStorage alertEventStorage,
	userStorage alertUserStorage,
	mailer expiryMailer,
	log *logger.Logger,
) *AlertService {
	return &AlertService{
		alertStorage: alertStorage,
		eventStorage: eventStorage,
		userStorage:  userStorage,
		mailer:       mailer,
		logger:       log,
	}
}

// Reconcile ensures exactly one alert exists for the event. Only the
// expired and reminder_due categories are persistable; upcoming is
// advisory and surfaces through ListAlerts only. A duplicate-key
// rejection from the store means a concurrent pass won the insert and is
// reported as skipped, not as an error.
func (s *AlertService) Reconcile(ctx context.Context, event entity.Event, category Category) (ReconcileResult, error) {
	var message string
	switch category {
	case CategoryExpired:
		message = fmt.Sprintf("Deadline expired: %s", event.Title)
	case CategoryReminderDue:
		if !event.IsReminder() {
			return ReconcileSkipped, errorz.InvalidCategory
		}
		message = fmt.Sprintf("Reminder: %s", event.Title)
	default:
		return ReconcileSkipped, errorz.InvalidCategory
	}

	_, err := s.alertStorage.GetByRelatedEvent(ctx, event.ID)
	if err == nil {
		return ReconcileSkipped, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ReconcileSkipped, err
	}

	eventID := event.ID
	alert := &entity.Alert{
		UserID:         event.UserID,
		Message:        message,
		RelatedEventID: &eventID,
	}
	if _, err = s.alertStorage.Create(ctx, alert); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ReconcileSkipped, nil
		}
		return ReconcileSkipped, err
	}

	if category == CategoryExpired {
		s.sendExpiryMail(ctx, event)
	}

	return ReconcileCreated, nil
}

// sendExpiryMail is best-effort: a mail failure never fails reconciliation.
func (s *AlertService) sendExpiryMail(ctx context.Context, event entity.Event) {
	if s.mailer == nil {
		return
	}
	user, err := s.userStorage.Get(ctx, event.UserID)
	if err != nil {
		s.logger.Errorf("failed to get user %s for expiry mail: %v", event.UserID, err)
		return
	}
	s.mailer.SendDeadlineExpired(user.Email, event.Title)
}

// ListAlerts assembles the user's alert feed at the given instant. The
// expired, upcoming and reminder entries are recomputed live from the
// events, never read back from persisted alerts, so the feed is always
// consistent with now regardless of scheduler timing. Persisted unread
// alerts are appended only when they do not reference an event already
// rendered live.
func (s *AlertService) ListAlerts(ctx context.Context, userID string, now time.Time) ([]AlertView, error) {
	events, err := s.eventStorage.GetByUser(ctx, userID, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	views := make([]AlertView, 0, len(events))
	rendered := make(map[string]struct{}, len(events))

	for _, e := range events {
		e := e
		switch {
		case e.IsReminder():
			views = append(views, AlertView{
				ID:       e.ID,
				Type:     "reminder",
				Message:  fmt.Sprintf("Reminder: %s", e.Title),
				Deadline: &e.Deadline,
			})
		case e.Expired(now):
			views = append(views, AlertView{
				ID:       e.ID,
				Type:     "expired",
				Message:  fmt.Sprintf("Deadline expired: %s", e.Title),
				Deadline: &e.Deadline,
			})
		case !e.Deadline.After(now.Add(upcomingWindow)):
			views = append(views, AlertView{
				ID:       e.ID,
				Type:     "upcoming",
				Message:  fmt.Sprintf("Upcoming soon: %s", e.Title),
				Deadline: &e.Deadline,
			})
		default:
			continue
		}
		rendered[e.ID] = struct{}{}
	}

	alerts, err := s.alertStorage.GetUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, a := range alerts {
		a := a
		if a.RelatedEventID != nil {
			if _, ok := rendered[*a.RelatedEventID]; ok {
				continue
			}
		}
		views = append(views, AlertView{
			ID:        a.ID,
			Type:      "alert",
			Message:   a.Message,
			CreatedAt: &a.CreatedAt,
		})
	}

	return views, nil
}

// MarkRead flips the read flag on the user's persisted alert. A missing
// alert and someone else's alert produce the same NotFound so existence
// does not leak across users.
func (s *AlertService) MarkRead(ctx context.Context, userID, alertID string) error {
	rows, err := s.alertStorage.MarkRead(ctx, userID, alertID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errorz.NotFound
	}
	return nil
}
