package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/studioforma/atelier/internal/domain/role"
)

// Member is the firm's staff directory entry for a user managed by the
// identity provider. It maps the provider's user id to an email address and
// a role, the way customer mappings tie external accounts to internal ones.
type Member struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"not null;unique;size:255" json:"email"`
	FullName  string    `gorm:"size:200" json:"full_name"`
	Role      role.Role `gorm:"type:varchar(32);not null" json:"role"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Member) TableName() string {
	return "members"
}
