package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/repository"
	"github.com/studioforma/atelier/internal/domain/role"
)

// ClearanceDecision is the chief's verdict on a pending request.
type ClearanceDecision string

const (
	ClearanceDecisionApprove ClearanceDecision = "approve"
	ClearanceDecisionReject  ClearanceDecision = "reject"
)

// ClearanceNotifier raises a notification when a clearance is resolved.
// Notification failure never fails the resolution itself.
type ClearanceNotifier interface {
	NotifyClearanceResolved(ctx context.Context, clearance *model.ClearanceRequest, task *model.Task) error
}

// ClearanceWorkflow owns the pending -> approved/rejected state machine for
// clearance requests. All permission checks live here, not in the UI.
type ClearanceWorkflow struct {
	clearanceRepo repository.ClearanceRepository
	taskRepo      repository.TaskRepository
	notifier      ClearanceNotifier
	logger        *zap.Logger
}

// NewClearanceWorkflow creates a new clearance workflow. The notifier may
// be nil, in which case resolutions are not announced.
func NewClearanceWorkflow(
	clearanceRepo repository.ClearanceRepository,
	taskRepo repository.TaskRepository,
	notifier ClearanceNotifier,
	logger *zap.Logger,
) *ClearanceWorkflow {
	return &ClearanceWorkflow{
		clearanceRepo: clearanceRepo,
		taskRepo:      taskRepo,
		notifier:      notifier,
		logger:        logger,
	}
}

// RequestClearance opens a pending clearance request for a task. Only the
// task's assignee or creator may request, and only one pending request may
// exist per task at a time.
func (w *ClearanceWorkflow) RequestClearance(ctx context.Context, actor role.Actor, taskID int64, notes string) (*model.ClearanceRequest, error) {
	if !actor.Role.CanRequestClearance() {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "requesting clearance")
	}

	task, err := w.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	isAssignee := task.AssignedTo != nil && *task.AssignedTo == actor.ID
	if !isAssignee && task.CreatedBy != actor.ID {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "requesting clearance on a task that is not theirs")
	}

	clearance := &model.ClearanceRequest{
		TaskID:      taskID,
		RequestedBy: actor.ID,
		Status:      model.ClearanceStatusPending,
		Notes:       notes,
	}

	if err := w.clearanceRepo.Create(ctx, clearance); err != nil {
		return nil, err
	}

	if err := w.taskRepo.UpdateFields(ctx, taskID, map[string]interface{}{
		"clearance_status": model.ClearanceStatusPending,
	}); err != nil {
		w.logger.Error("Failed to mirror pending clearance on task",
			zap.Int64("task_id", taskID),
			zap.Error(err))
		return nil, err
	}

	w.logger.Info("Clearance requested",
		zap.Int64("clearance_id", clearance.ID),
		zap.Int64("task_id", taskID),
		zap.String("requested_by", actor.ID.String()))

	return clearance, nil
}

// ResolveClearance moves a pending request into a terminal state. Chief
// architects only. Approval stamps the cleared_at rollup on the task;
// rejection leaves the task's status untouched so the requester can submit
// a new request. Approval deliberately does not complete the task -
// completion stays a separate action on the task itself.
func (w *ClearanceWorkflow) ResolveClearance(ctx context.Context, actor role.Actor, clearanceID int64, decision ClearanceDecision, notes string) (*model.ClearanceRequest, error) {
	if !actor.Role.CanResolveClearance() {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "resolving clearance")
	}

	if decision != ClearanceDecisionApprove && decision != ClearanceDecisionReject {
		return nil, domainErrors.NewValidationError(actor.ID.String(), "decision must be approve or reject")
	}

	clearance, err := w.clearanceRepo.GetByID(ctx, clearanceID)
	if err != nil {
		return nil, err
	}

	if clearance.Status != model.ClearanceStatusPending {
		return nil, domainErrors.NewInvalidStateError(actor.ID.String(),
			"clearance request is not pending and cannot be resolved")
	}

	now := time.Now()
	if decision == ClearanceDecisionApprove {
		clearance.Status = model.ClearanceStatusApproved
	} else {
		clearance.Status = model.ClearanceStatusRejected
	}
	clearance.ClearedBy = &actor.ID
	clearance.ClearedAt = &now
	if notes != "" {
		clearance.Notes = strings.TrimSpace(clearance.Notes + "\n---\n" + notes)
	}

	if err := w.clearanceRepo.Update(ctx, clearance); err != nil {
		return nil, err
	}

	taskFields := map[string]interface{}{
		"clearance_status": clearance.Status,
	}
	if clearance.Status == model.ClearanceStatusApproved {
		taskFields["cleared_at"] = now
	}
	if err := w.taskRepo.UpdateFields(ctx, clearance.TaskID, taskFields); err != nil {
		w.logger.Error("Failed to roll clearance outcome up to task",
			zap.Int64("task_id", clearance.TaskID),
			zap.Error(err))
		return nil, err
	}

	w.logger.Info("Clearance resolved",
		zap.Int64("clearance_id", clearance.ID),
		zap.Int64("task_id", clearance.TaskID),
		zap.String("decision", string(decision)),
		zap.String("resolved_by", actor.ID.String()))

	if w.notifier != nil {
		task, err := w.taskRepo.GetByID(ctx, clearance.TaskID)
		if err == nil {
			if err := w.notifier.NotifyClearanceResolved(ctx, clearance, task); err != nil {
				w.logger.Warn("Failed to notify requester of clearance resolution",
					zap.Int64("clearance_id", clearance.ID),
					zap.Error(err))
			}
		}
	}

	return clearance, nil
}

// PendingQueue returns all pending clearance requests, oldest first. This
// is the chief's approval queue.
func (w *ClearanceWorkflow) PendingQueue(ctx context.Context, actor role.Actor) ([]*model.ClearanceRequest, error) {
	if !actor.Role.CanResolveClearance() {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "viewing the clearance queue")
	}
	return w.clearanceRepo.ListPending(ctx)
}

// HistoryForTask returns every clearance request raised against a task,
// newest first.
func (w *ClearanceWorkflow) HistoryForTask(ctx context.Context, taskID int64) ([]*model.ClearanceRequest, error) {
	return w.clearanceRepo.ListByTask(ctx, taskID)
}
