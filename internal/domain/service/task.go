package service

import (
	"context"
	"errors"
	"strings"

	"github.com/studyhive/studyhive-backend/internal/domain/common/errorz"
	"github.com/studyhive/studyhive-backend/internal/domain/entity"
	"gorm.io/gorm"
)

type TaskStorage interface {
	Create(ctx context.Context, task *entity.Task) (*entity.Task, error)
	Get(ctx context.Context, userID, id string) (*entity.Task, error)
	GetByUser(ctx context.Context, userID string) ([]entity.Task, error)
	Update(ctx context.Context, task *entity.Task) (*entity.Task, error)
	Delete(ctx context.Context, userID, id string) (int64, error)
}

type TaskService struct {
	taskStorage TaskStorage
}

func NewTaskService(storage TaskStorage) *TaskService {
	return &TaskService{
		taskStorage: storage,
	}
}

func (s *TaskService) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return nil, errorz.EmptyTitle
	}
	return s.taskStorage.Create(ctx, task)
}

func (s *TaskService) GetByUser(ctx context.Context, userID string) ([]entity.Task, error) {
	return s.taskStorage.GetByUser(ctx, userID)
}

// Patch applies the non-nil fields to the user's task.
func (s *TaskService) Patch(ctx context.Context, userID, id string, title, details *string, done *bool) (*entity.Task, error) {
	task, err := s.taskStorage.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound
		}
		return nil, err
	}
	if title != nil {
		if strings.TrimSpace(*title) == "" {
			return nil, errorz.EmptyTitle
		}
		task.Title = *title
	}
	if details != nil {
		task.Details = *details
	}
	if done != nil {
		task.Done = *done
	}
	return s.taskStorage.Update(ctx, task)
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	rows, err := s.taskStorage.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errorz.NotFound
	}
	return nil
}
