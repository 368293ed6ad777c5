package repository

import (
	"context"

	"github.com/studioforma/atelier/internal/domain/model"
)

// InvoiceFilter narrows invoice listings. Nil fields are ignored.
type InvoiceFilter struct {
	ClientID  *int64
	ProjectID *int64
	Status    *model.InvoiceStatus
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	GetByID(ctx context.Context, id int64) (*model.Invoice, error)
	Update(ctx context.Context, invoice *model.Invoice) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter InvoiceFilter) ([]*model.Invoice, error)
}
