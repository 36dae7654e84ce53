package entity

import "time"

// Alert is a persisted notification. RelatedEventID is a weak reference:
// the originating event may be deleted while the alert remains a valid
// historical record. The unique index is what makes reconciliation
// idempotent under concurrent passes; Postgres exempts NULLs, so
// free-standing alerts are not limited by it.
type Alert struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time
	UserID         string  `gorm:"not null;type:uuid;index"`
	Message        string  `gorm:"not null"`
	RelatedEventID *string `gorm:"type:uuid;uniqueIndex"`
	Read           bool    `gorm:"not null;default:false"`
}
