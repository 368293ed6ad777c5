package model

import (
	"database/sql/driver"
	"time"
)

// ProjectStatus represents the lifecycle status of a project
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusOnHold     ProjectStatus = "on_hold"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// Scan implements sql.Scanner interface
func (s *ProjectStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = ProjectStatus(v)
	case []byte:
		*s = ProjectStatus(v)
	default:
		*s = ProjectStatusPlanning
	}
	return nil
}

// Value implements driver.Valuer interface
func (s ProjectStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Project is a client engagement. The stat columns (totals and percentages)
// are derived from child tasks and images; the aggregation service
// recomputes and writes them back, they are never edited directly.
type Project struct {
	ID                      int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                    string        `gorm:"not null;size:200" json:"name"`
	Description             string        `gorm:"type:text" json:"description"`
	Status                  ProjectStatus `gorm:"type:project_status;not null;default:'planning'" json:"status"`
	Phase                   string        `gorm:"size:100" json:"phase"`
	ClientID                *int64        `gorm:"index" json:"client_id,omitempty"`
	StartDate               *time.Time    `json:"start_date,omitempty"`
	EstimatedCompletionDate *time.Time    `json:"estimated_completion_date,omitempty"`
	TotalTasks              int           `gorm:"not null;default:0" json:"total_tasks"`
	CompletedTasks          int           `gorm:"not null;default:0" json:"completed_tasks"`
	TotalImages             int           `gorm:"not null;default:0" json:"total_images"`
	CompletionPercent       float64       `gorm:"not null;default:0" json:"completion_percent"`
	TimeElapsedPercent      float64       `gorm:"not null;default:0" json:"time_elapsed_percent"`
	DisplayedPercent        float64       `gorm:"not null;default:0" json:"displayed_percent"`
	CreatedAt               time.Time     `gorm:"default:now()" json:"created_at"`
	UpdatedAt               time.Time     `gorm:"default:now()" json:"updated_at"`

	// Relations
	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// TableName specifies the table name for GORM
func (Project) TableName() string {
	return "projects"
}
