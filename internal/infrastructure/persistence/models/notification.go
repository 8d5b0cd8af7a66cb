package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationModel is the persistence model for the notification outbox.
// Rows are consumed and delivered by the main backend's mailer.
type NotificationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind      string    `gorm:"type:varchar(50);not null"`
	Payload   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
	SentAt    *time.Time
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}
