package postgres

import (
	"context"

	"github.com/studyhive/studyhive-backend/internal/domain/entity"
	"gorm.io/gorm"
)

type AlertStorage struct {
	db *gorm.DB
}

func NewAlertStorage(db *gorm.DB) *AlertStorage {
	return &AlertStorage{
		db: db,
	}
}

// Create inserts a new alert. A duplicate related_event_id surfaces as
// gorm.ErrDuplicatedKey through the driver's error translation; callers
// rely on that to resolve reconciliation races.
func (s *AlertStorage) Create(ctx context.Context, alert *entity.Alert) (*entity.Alert, error) {
	err := s.db.WithContext(ctx).Create(&alert).Error
	return alert, err
}

// GetByRelatedEvent returns the alert referencing the given event, if any.
func (s *AlertStorage) GetByRelatedEvent(ctx context.Context, eventID string) (*entity.Alert, error) {
	var alert entity.Alert
	err := s.db.WithContext(ctx).Where("related_event_id = ?", eventID).First(&alert).Error
	return &alert, err
}

// GetUnread returns the user's unread alerts, newest first.
func (s *AlertStorage) GetUnread(ctx context.Context, userID string) ([]entity.Alert, error) {
	var alerts []entity.Alert
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND read = ?", userID, false).
		Order("created_at DESC").
		Find(&alerts).Error
	return alerts, err
}

// MarkRead flips the read flag on the user's alert and reports how many
// rows matched. Zero means the alert does not exist or belongs to someone
// else; the two cases are indistinguishable on purpose.
func (s *AlertStorage) MarkRead(ctx context.Context, userID, id string) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&entity.Alert{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	return res.RowsAffected, res.Error
}
