package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/repository"
)

type taskRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB, logger *zap.Logger) repository.TaskRepository {
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		r.logger.Error("Failed to create task",
			zap.String("title", task.Title),
			zap.Error(err))
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task

	err := r.db.WithContext(ctx).First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrTaskNotFound
		}
		r.logger.Error("Failed to get task",
			zap.Int64("task_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		r.logger.Error("Failed to update task",
			zap.Int64("task_id", task.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (r *taskRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		r.logger.Error("Failed to update task fields",
			zap.Int64("task_id", id),
			zap.Error(result.Error))
		return fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, id)
	if result.Error != nil {
		r.logger.Error("Failed to delete task",
			zap.Int64("task_id", id),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]*model.Task, error) {
	query := r.db.WithContext(ctx).Model(&model.Task{})

	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.CreatedBy != nil {
		query = query.Where("created_by = ?", *filter.CreatedBy)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}

	var tasks []*model.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		r.logger.Error("Failed to list tasks", zap.Error(err))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.Task, error) {
	var tasks []*model.Task

	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		r.logger.Error("Failed to list project tasks",
			zap.Int64("project_id", projectID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list project tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]*model.Task, error) {
	var tasks []*model.Task

	err := r.db.WithContext(ctx).
		Where("due_date BETWEEN ? AND ?", from, to).
		Where("assigned_to IS NOT NULL").
		Where("status <> ?", model.TaskStatusCompleted).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		r.logger.Error("Failed to list due tasks", zap.Error(err))
		return nil, fmt.Errorf("failed to list due tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]*model.Task, error) {
	var tasks []*model.Task

	err := r.db.WithContext(ctx).
		Where("due_date < ?", asOf).
		Where("assigned_to IS NOT NULL").
		Where("status <> ?", model.TaskStatusCompleted).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		r.logger.Error("Failed to list overdue tasks", zap.Error(err))
		return nil, fmt.Errorf("failed to list overdue tasks: %w", err)
	}
	return tasks, nil
}
