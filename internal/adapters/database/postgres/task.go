package postgres

import (
	"context"

	"github.com/studyhive/studyhive-backend/internal/domain/entity"
	"gorm.io/gorm"
)

type TaskStorage struct {
	db *gorm.DB
}

func NewTaskStorage(db *gorm.DB) *TaskStorage {
	return &TaskStorage{
		db: db,
	}
}

// Create is a function that creates a new task in the database.
func (s *TaskStorage) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	err := s.db.WithContext(ctx).Create(&task).Error
	return task, err
}

// Get is a function that gets a task from the database by id, scoped to its owner.
func (s *TaskStorage) Get(ctx context.Context, userID, id string) (*entity.Task, error) {
	var task entity.Task
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&task).Error
	return &task, err
}

// GetByUser is a function that gets all tasks of one user, newest first.
func (s *TaskStorage) GetByUser(ctx context.Context, userID string) ([]entity.Task, error) {
	var tasks []entity.Task
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// Update is a function that updates a task in the database.
func (s *TaskStorage) Update(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	err := s.db.WithContext(ctx).Save(&task).Error
	return task, err
}

// Delete is a function that deletes a task from the database, scoped to its owner.
func (s *TaskStorage) Delete(ctx context.Context, userID, id string) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Task{})
	return res.RowsAffected, res.Error
}
