package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// ClearanceStatus represents the state of a clearance request
type ClearanceStatus string

const (
	ClearanceStatusPending  ClearanceStatus = "pending"
	ClearanceStatusApproved ClearanceStatus = "approved"
	ClearanceStatusRejected ClearanceStatus = "rejected"
)

// Scan implements sql.Scanner interface
func (s *ClearanceStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = ClearanceStatus(v)
	case []byte:
		*s = ClearanceStatus(v)
	default:
		*s = ""
	}
	return nil
}

// Value implements driver.Valuer interface
func (s ClearanceStatus) Value() (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	return string(s), nil
}

// Terminal reports whether the status can no longer change. A terminal
// clearance is immutable; re-requesting means inserting a new row.
func (s ClearanceStatus) Terminal() bool {
	return s == ClearanceStatusApproved || s == ClearanceStatusRejected
}

// ClearanceRequest is a review/approval negotiation attached to exactly one
// task. At most one pending request may exist per task; the partial unique
// index created in migrations enforces this.
type ClearanceRequest struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID      int64           `gorm:"not null;index" json:"task_id"`
	RequestedBy uuid.UUID       `gorm:"type:uuid;not null" json:"requested_by"`
	Status      ClearanceStatus `gorm:"type:clearance_status;not null;default:'pending'" json:"status"`
	Notes       string          `gorm:"type:text" json:"notes"`
	ClearedBy   *uuid.UUID      `gorm:"type:uuid" json:"cleared_by,omitempty"`
	ClearedAt   *time.Time      `json:"cleared_at,omitempty"`
	CreatedAt   time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"default:now()" json:"updated_at"`

	// Relations
	Task *Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}

// TableName specifies the table name for GORM
func (ClearanceRequest) TableName() string {
	return "task_clearances"
}
