package model

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded file (drawing set, contract, spec sheet). The
// bytes live in blob storage; only the public URL and metadata are kept.
type Document struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID  *int64     `gorm:"index" json:"project_id,omitempty"`
	Title      string     `gorm:"not null;size:200" json:"title"`
	FileName   string     `gorm:"not null;size:255" json:"file_name"`
	StorageKey string     `gorm:"not null;size:1024" json:"-"`
	PublicURL  string     `gorm:"not null;size:1024" json:"public_url"`
	SizeBytes  int64      `gorm:"not null" json:"size_bytes"`
	MimeType   string     `gorm:"size:100" json:"mime_type"`
	UploadedBy uuid.UUID  `gorm:"type:uuid;not null" json:"uploaded_by"`
	CreatedAt  time.Time  `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Document) TableName() string {
	return "documents"
}

// ProjectImage is a gallery photo attached to a project.
type ProjectImage struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID  int64     `gorm:"not null;index" json:"project_id"`
	Caption    string    `gorm:"size:300" json:"caption"`
	StorageKey string    `gorm:"not null;size:1024" json:"-"`
	PublicURL  string    `gorm:"not null;size:1024" json:"public_url"`
	SizeBytes  int64     `gorm:"not null" json:"size_bytes"`
	MimeType   string    `gorm:"size:100" json:"mime_type"`
	UploadedBy uuid.UUID `gorm:"type:uuid;not null" json:"uploaded_by"`
	CreatedAt  time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (ProjectImage) TableName() string {
	return "project_images"
}
