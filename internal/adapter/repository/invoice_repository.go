package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/repository"
)

type invoiceRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB, logger *zap.Logger) repository.InvoiceRepository {
	return &invoiceRepository{
		db:     db,
		logger: logger,
	}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		r.logger.Error("Failed to create invoice",
			zap.String("number", invoice.Number),
			zap.Error(err))
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int64) (*model.Invoice, error) {
	var invoice model.Invoice

	err := r.db.WithContext(ctx).Preload("Client").First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrInvoiceNotFound
		}
		r.logger.Error("Failed to get invoice",
			zap.Int64("invoice_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return &invoice, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	if err := r.db.WithContext(ctx).Save(invoice).Error; err != nil {
		r.logger.Error("Failed to update invoice",
			zap.Int64("invoice_id", invoice.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Invoice{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepository) List(ctx context.Context, filter repository.InvoiceFilter) ([]*model.Invoice, error) {
	query := r.db.WithContext(ctx).Model(&model.Invoice{}).Preload("Client")

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var invoices []*model.Invoice
	if err := query.Order("created_at DESC").Find(&invoices).Error; err != nil {
		r.logger.Error("Failed to list invoices", zap.Error(err))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}
