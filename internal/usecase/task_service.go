package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/repository"
	"github.com/studioforma/atelier/internal/domain/role"
)

// AssignmentNotifier raises a notification when a task is assigned.
// Notification failure never fails the task write.
type AssignmentNotifier interface {
	NotifyTaskAssigned(ctx context.Context, task *model.Task) error
}

// TaskService owns task CRUD and the completion transition. Permission
// checks run here on every mutation; there is no optimistic locking, the
// last writer wins.
type TaskService struct {
	taskRepo repository.TaskRepository
	notifier AssignmentNotifier
	logger   *zap.Logger
}

// NewTaskService creates a new task service. The notifier may be nil.
func NewTaskService(taskRepo repository.TaskRepository, notifier AssignmentNotifier, logger *zap.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateTaskInput carries the fields accepted on task creation.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    model.TaskPriority
	DueDate     *time.Time
	AssignedTo  *uuid.UUID
	ProjectID   *int64
	SelfAssign  bool
}

// CreateTask creates a task. Chiefs and juniors may create and assign
// tasks; juniors and interns may instead self-assign, which forces the
// assignee to be the creator.
func (s *TaskService) CreateTask(ctx context.Context, actor role.Actor, input CreateTaskInput) (*model.Task, error) {
	if input.Title == "" {
		return nil, domainErrors.NewValidationError(actor.ID.String(), "title is required")
	}

	if input.SelfAssign {
		if !actor.Role.CanSelfAssign() {
			return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "self-assigning tasks")
		}
		if input.AssignedTo != nil && *input.AssignedTo != actor.ID {
			return nil, domainErrors.NewValidationError(actor.ID.String(), "a self-assigned task must be assigned to its creator")
		}
	} else if !actor.Role.CanCreateTask() {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "creating tasks")
	}

	priority := input.Priority
	if priority == "" {
		priority = model.TaskPriorityMedium
	}

	task := &model.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      model.TaskStatusPending,
		Priority:    priority,
		DueDate:     input.DueDate,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   actor.ID,
		ProjectID:   input.ProjectID,
	}
	if input.SelfAssign {
		task.AssignedTo = &actor.ID
		task.SelfAssigned = true
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("Task created",
		zap.Int64("task_id", task.ID),
		zap.String("created_by", actor.ID.String()),
		zap.Bool("self_assigned", task.SelfAssigned))

	if task.AssignedTo != nil && !task.SelfAssigned && s.notifier != nil {
		if err := s.notifier.NotifyTaskAssigned(ctx, task); err != nil {
			s.logger.Warn("Failed to notify assignee",
				zap.Int64("task_id", task.ID),
				zap.Error(err))
		}
	}

	return task, nil
}

// UpdateTaskInput carries a partial task update. Nil fields are untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *model.TaskPriority
	DueDate     *time.Time
	AssignedTo  *uuid.UUID
	ProjectID   *int64
}

// UpdateTask applies a patch to a task. The chief, the creator and the
// assignee may edit; reassignment additionally requires the assign
// capability.
func (s *TaskService) UpdateTask(ctx context.Context, actor role.Actor, id int64, input UpdateTaskInput) (*model.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canMutate(actor, task) {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "editing this task")
	}

	reassigned := false
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.ProjectID != nil {
		task.ProjectID = input.ProjectID
	}
	if input.AssignedTo != nil && (task.AssignedTo == nil || *task.AssignedTo != *input.AssignedTo) {
		if !actor.Role.CanAssignTasks() {
			return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "assigning tasks")
		}
		task.AssignedTo = input.AssignedTo
		task.SelfAssigned = *input.AssignedTo == actor.ID && task.CreatedBy == actor.ID
		reassigned = true
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	if reassigned && !task.SelfAssigned && s.notifier != nil {
		if err := s.notifier.NotifyTaskAssigned(ctx, task); err != nil {
			s.logger.Warn("Failed to notify assignee",
				zap.Int64("task_id", task.ID),
				zap.Error(err))
		}
	}

	return task, nil
}

// DeleteTask removes a task. The chief or the creator may delete.
func (s *TaskService) DeleteTask(ctx context.Context, actor role.Actor, id int64) error {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor.Role != role.RoleChiefArchitect && task.CreatedBy != actor.ID {
		return domainErrors.NewNotAuthorizedError(actor.ID.String(), "deleting this task")
	}

	return s.taskRepo.Delete(ctx, id)
}

// SetStatus moves a task to a new status. Setting completed routes through
// the completion path so that completed_at stays in lockstep with the
// status; leaving completed clears the stamp again.
func (s *TaskService) SetStatus(ctx context.Context, actor role.Actor, id int64, status model.TaskStatus) (*model.Task, error) {
	switch status {
	case model.TaskStatusPending, model.TaskStatusInProgress, model.TaskStatusCompleted, model.TaskStatusOverdue:
	default:
		return nil, domainErrors.NewValidationError(actor.ID.String(), "unknown task status")
	}

	if status == model.TaskStatusCompleted {
		return s.MarkComplete(ctx, actor, id)
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canMutate(actor, task) {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "changing this task's status")
	}

	task.Status = status
	task.CompletedAt = nil

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// MarkComplete completes a task and stamps completed_at. An approved
// clearance is not required: clearance and completion are independent
// actions.
func (s *TaskService) MarkComplete(ctx context.Context, actor role.Actor, id int64) (*model.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canMutate(actor, task) {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "completing this task")
	}

	if task.IsCompleted() {
		return task, nil
	}

	now := time.Now()
	task.Status = model.TaskStatusCompleted
	task.CompletedAt = &now

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("Task completed",
		zap.Int64("task_id", task.ID),
		zap.String("completed_by", actor.ID.String()))

	return task, nil
}

// GetTask returns a single task.
func (s *TaskService) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

// ListTasks returns tasks matched by the filter.
func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]*model.Task, error) {
	return s.taskRepo.List(ctx, filter)
}

func (s *TaskService) canMutate(actor role.Actor, task *model.Task) bool {
	if actor.Role == role.RoleChiefArchitect {
		return true
	}
	if task.CreatedBy == actor.ID {
		return true
	}
	return task.AssignedTo != nil && *task.AssignedTo == actor.ID
}
