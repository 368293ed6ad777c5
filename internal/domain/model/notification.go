package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies why a notification was raised
type NotificationType string

const (
	NotificationTypeDeadlineReminder NotificationType = "deadline_reminder"
	NotificationTypeTaskAssigned     NotificationType = "task_assigned"
	NotificationTypeStatusUpdate     NotificationType = "status_update"
	NotificationTypeProjectUpdate    NotificationType = "project_update"
)

// Scan implements sql.Scanner interface
func (t *NotificationType) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = NotificationType(v)
	case []byte:
		*t = NotificationType(v)
	default:
		*t = NotificationTypeStatusUpdate
	}
	return nil
}

// Value implements driver.Valuer interface
func (t NotificationType) Value() (driver.Value, error) {
	return string(t), nil
}

// Notification is the internal record of an alert raised for a staff
// member. SentAt is set only after the email provider accepts the message;
// a nil SentAt with a persisted row means the email leg failed, which is a
// soft failure, not a lost notification.
type Notification struct {
	ID        int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      NotificationType `gorm:"type:notification_type;not null" json:"type"`
	Title     string           `gorm:"not null;size:200" json:"title"`
	Message   string           `gorm:"type:text" json:"message"`
	TaskID    *int64           `gorm:"index" json:"task_id,omitempty"`
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
	SentAt    *time.Time       `json:"sent_at,omitempty"`
	CreatedAt time.Time        `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}
