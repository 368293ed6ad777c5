package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle status of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOverdue    TaskStatus = "overdue"
)

// Scan implements sql.Scanner interface
func (s *TaskStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = TaskStatus(v)
	case []byte:
		*s = TaskStatus(v)
	default:
		*s = TaskStatusPending
	}
	return nil
}

// Value implements driver.Valuer interface
func (s TaskStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// TaskPriority represents how urgent a task is
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Scan implements sql.Scanner interface
func (p *TaskPriority) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*p = TaskPriority(v)
	case []byte:
		*p = TaskPriority(v)
	default:
		*p = TaskPriorityMedium
	}
	return nil
}

// Value implements driver.Valuer interface
func (p TaskPriority) Value() (driver.Value, error) {
	return string(p), nil
}

// Task is a unit of work assigned to a staff member, optionally under a
// project. ClearanceStatus mirrors the latest clearance outcome for the
// task; it is written by the clearance workflow, never by hand.
type Task struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string          `gorm:"not null;size:200" json:"title"`
	Description     string          `gorm:"type:text" json:"description"`
	Status          TaskStatus      `gorm:"type:task_status;not null;default:'pending'" json:"status"`
	Priority        TaskPriority    `gorm:"type:task_priority;not null;default:'medium'" json:"priority"`
	DueDate         *time.Time      `gorm:"index" json:"due_date,omitempty"`
	AssignedTo      *uuid.UUID      `gorm:"type:uuid;index" json:"assigned_to,omitempty"`
	CreatedBy       uuid.UUID       `gorm:"type:uuid;not null" json:"created_by"`
	ProjectID       *int64          `gorm:"index" json:"project_id,omitempty"`
	ClearanceStatus ClearanceStatus `gorm:"type:clearance_status" json:"clearance_status,omitempty"`
	SelfAssigned    bool            `gorm:"not null;default:false" json:"self_assigned"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	ClearedAt       *time.Time      `json:"cleared_at,omitempty"`
	CreatedAt       time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// IsCompleted reports whether the task has been marked complete.
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}
