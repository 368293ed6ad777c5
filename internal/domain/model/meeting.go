package model

import (
	"time"

	"github.com/google/uuid"
)

// MeetingLog records a client or internal meeting, optionally tied to a
// project.
type MeetingLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID *int64    `gorm:"index" json:"project_id,omitempty"`
	Title     string    `gorm:"not null;size:200" json:"title"`
	Notes     string    `gorm:"type:text" json:"notes"`
	Attendees string    `gorm:"type:text" json:"attendees"`
	HeldAt    time.Time `gorm:"not null" json:"held_at"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (MeetingLog) TableName() string {
	return "meeting_logs"
}
