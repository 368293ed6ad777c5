package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/repository"
)

type clearanceRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewClearanceRepository creates a new clearance repository
func NewClearanceRepository(db *gorm.DB, logger *zap.Logger) repository.ClearanceRepository {
	return &clearanceRepository{
		db:     db,
		logger: logger,
	}
}

func (r *clearanceRepository) Create(ctx context.Context, clearance *model.ClearanceRequest) error {
	err := r.db.WithContext(ctx).Create(clearance).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			// The partial unique index on (task_id) WHERE status = 'pending'
			// fired: another request is already open for this task.
			return domainErrors.NewDuplicatePendingError(clearance.RequestedBy.String(), clearance.TaskID)
		}
		r.logger.Error("Failed to create clearance request",
			zap.Int64("task_id", clearance.TaskID),
			zap.Error(err))
		return fmt.Errorf("failed to create clearance request: %w", err)
	}
	return nil
}

func (r *clearanceRepository) GetByID(ctx context.Context, id int64) (*model.ClearanceRequest, error) {
	var clearance model.ClearanceRequest

	err := r.db.WithContext(ctx).First(&clearance, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrClearanceNotFound
		}
		r.logger.Error("Failed to get clearance request",
			zap.Int64("clearance_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get clearance request: %w", err)
	}

	return &clearance, nil
}

func (r *clearanceRepository) Update(ctx context.Context, clearance *model.ClearanceRequest) error {
	if err := r.db.WithContext(ctx).Save(clearance).Error; err != nil {
		r.logger.Error("Failed to update clearance request",
			zap.Int64("clearance_id", clearance.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update clearance request: %w", err)
	}
	return nil
}

func (r *clearanceRepository) ListByTask(ctx context.Context, taskID int64) ([]*model.ClearanceRequest, error) {
	var clearances []*model.ClearanceRequest

	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&clearances).Error
	if err != nil {
		r.logger.Error("Failed to list task clearances",
			zap.Int64("task_id", taskID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list task clearances: %w", err)
	}
	return clearances, nil
}

func (r *clearanceRepository) ListPending(ctx context.Context) ([]*model.ClearanceRequest, error) {
	var clearances []*model.ClearanceRequest

	err := r.db.WithContext(ctx).
		Preload("Task").
		Where("status = ?", model.ClearanceStatusPending).
		Order("created_at ASC").
		Find(&clearances).Error
	if err != nil {
		r.logger.Error("Failed to list pending clearances", zap.Error(err))
		return nil, fmt.Errorf("failed to list pending clearances: %w", err)
	}
	return clearances, nil
}
