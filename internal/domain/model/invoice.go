package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the billing state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
	InvoiceStatusVoid  InvoiceStatus = "void"
)

// Scan implements sql.Scanner interface
func (s *InvoiceStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = InvoiceStatus(v)
	case []byte:
		*s = InvoiceStatus(v)
	default:
		*s = InvoiceStatusDraft
	}
	return nil
}

// Value implements driver.Valuer interface
func (s InvoiceStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Invoice is a billing record issued to a client.
type Invoice struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Number            string          `gorm:"not null;unique;size:50" json:"number"`
	ClientID          int64           `gorm:"not null;index" json:"client_id"`
	ProjectID         *int64          `gorm:"index" json:"project_id,omitempty"`
	Amount            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency          string          `gorm:"not null;size:3;default:'USD'" json:"currency"`
	Status            InvoiceStatus   `gorm:"type:invoice_status;not null;default:'draft'" json:"status"`
	Description       string          `gorm:"type:text" json:"description"`
	DueDate           *time.Time      `json:"due_date,omitempty"`
	IssuedAt          *time.Time      `json:"issued_at,omitempty"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	CheckoutSessionID *string         `gorm:"size:100" json:"checkout_session_id,omitempty"`
	CreatedBy         uuid.UUID       `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt         time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"default:now()" json:"updated_at"`

	// Relations
	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// TableName specifies the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}
