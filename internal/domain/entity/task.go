package entity

import "time"

type Task struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    string `gorm:"not null;type:uuid;index"`
	Title     string `gorm:"not null"`
	Details   string
	Done      bool `gorm:"not null;default:false"`
}
