package postgres

import "github.com/studyhive/studyhive-backend/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Event{},
	&entity.Alert{},
	&entity.Task{},
}
