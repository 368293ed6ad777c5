package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/repository"
	"github.com/studioforma/atelier/internal/domain/role"
)

// EmailMessage is the payload handed to the external email provider.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// EmailSender delivers a single message through the external provider.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EventPublisher pushes a persisted notification to live UI sessions.
type EventPublisher interface {
	PublishNotification(ctx context.Context, notification *model.Notification) error
}

// DispatchResult records the outcome of one notification attempt. A
// persisted row with EmailSent false is a soft failure: the user still
// sees the notification in the app.
type DispatchResult struct {
	NotificationID int64     `json:"notification_id"`
	UserID         uuid.UUID `json:"user_id"`
	TaskID         *int64    `json:"task_id,omitempty"`
	EmailSent      bool      `json:"email_sent"`
	Error          string    `json:"error,omitempty"`
}

// DispatchReport summarizes a bulk dispatch. Partial success is the normal
// case, not an error.
type DispatchReport struct {
	Attempted int              `json:"attempted"`
	Sent      int              `json:"sent"`
	Failed    int              `json:"failed"`
	Results   []DispatchResult `json:"results"`
}

// NotificationDispatcher writes notification rows and fans emails out to
// the provider with a fixed concurrency ceiling.
type NotificationDispatcher struct {
	notificationRepo repository.NotificationRepository
	taskRepo         repository.TaskRepository
	memberRepo       repository.MemberRepository
	email            EmailSender
	publisher        EventPublisher
	logger           *zap.Logger
	dueSoonDays      int
	maxConcurrent    int
}

// NewNotificationDispatcher creates a new dispatcher. The publisher may be
// nil when no realtime channel is configured.
func NewNotificationDispatcher(
	notificationRepo repository.NotificationRepository,
	taskRepo repository.TaskRepository,
	memberRepo repository.MemberRepository,
	email EmailSender,
	publisher EventPublisher,
	logger *zap.Logger,
	dueSoonDays int,
	maxConcurrent int,
) *NotificationDispatcher {
	if dueSoonDays <= 0 {
		dueSoonDays = 3
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	return &NotificationDispatcher{
		notificationRepo: notificationRepo,
		taskRepo:         taskRepo,
		memberRepo:       memberRepo,
		email:            email,
		publisher:        publisher,
		logger:           logger,
		dueSoonDays:      dueSoonDays,
		maxConcurrent:    maxConcurrent,
	}
}

type dispatchJob struct {
	userID  uuid.UUID
	kind    model.NotificationType
	title   string
	message string
	taskID  *int64
}

// RunDeadlineScan walks all assigned, uncompleted tasks and notifies each
// assignee once per task: a reminder when the due date falls inside the
// configured window, an overdue alert when it has passed. Individual email
// failures are collected, not propagated.
func (d *NotificationDispatcher) RunDeadlineScan(ctx context.Context) (*DispatchReport, error) {
	now := time.Now()

	overdue, err := d.taskRepo.ListOverdue(ctx, now)
	if err != nil {
		return nil, err
	}

	dueSoon, err := d.taskRepo.ListDueBetween(ctx, now, now.AddDate(0, 0, d.dueSoonDays))
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	var jobs []dispatchJob

	for _, task := range overdue {
		if seen[task.ID] || task.AssignedTo == nil {
			continue
		}
		seen[task.ID] = true
		taskID := task.ID
		jobs = append(jobs, dispatchJob{
			userID:  *task.AssignedTo,
			kind:    model.NotificationTypeDeadlineReminder,
			title:   fmt.Sprintf("Overdue: %s", task.Title),
			message: fmt.Sprintf("The task %q was due on %s and is still open.", task.Title, task.DueDate.Format("2 Jan 2006")),
			taskID:  &taskID,
		})
	}

	for _, task := range dueSoon {
		if seen[task.ID] || task.AssignedTo == nil {
			continue
		}
		seen[task.ID] = true
		taskID := task.ID
		jobs = append(jobs, dispatchJob{
			userID:  *task.AssignedTo,
			kind:    model.NotificationTypeDeadlineReminder,
			title:   fmt.Sprintf("Due soon: %s", task.Title),
			message: fmt.Sprintf("The task %q is due on %s.", task.Title, task.DueDate.Format("2 Jan 2006")),
			taskID:  &taskID,
		})
	}

	report := &DispatchReport{
		Attempted: len(jobs),
		Results:   make([]DispatchResult, 0, len(jobs)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.maxConcurrent)

	for _, job := range jobs {
		job := job
		g.Go(func() error {
			result := d.dispatch(gctx, job)
			mu.Lock()
			report.Results = append(report.Results, result)
			if result.EmailSent {
				report.Sent++
			} else {
				report.Failed++
			}
			mu.Unlock()
			return nil
		})
	}

	// Dispatch funcs never return errors; Wait only joins the group.
	_ = g.Wait()

	d.logger.Info("Deadline scan finished",
		zap.Int("attempted", report.Attempted),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed))

	return report, nil
}

// SendCustomAlert lets the chief compose an ad-hoc alert for one staff
// member.
func (d *NotificationDispatcher) SendCustomAlert(ctx context.Context, actor role.Actor, recipient uuid.UUID, title, message string, taskID *int64) (*DispatchResult, error) {
	if !actor.Role.CanSendCustomAlert() {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "sending custom alerts")
	}
	if title == "" {
		return nil, domainErrors.NewValidationError(actor.ID.String(), "title is required")
	}

	result := d.dispatch(ctx, dispatchJob{
		userID:  recipient,
		kind:    model.NotificationTypeStatusUpdate,
		title:   title,
		message: message,
		taskID:  taskID,
	})
	return &result, nil
}

// SendCustomAlertByEmail resolves the recipient in the staff directory by
// email address, then dispatches the alert.
func (d *NotificationDispatcher) SendCustomAlertByEmail(ctx context.Context, actor role.Actor, email, title, message string, taskID *int64) (*DispatchResult, error) {
	if !actor.Role.CanSendCustomAlert() {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "sending custom alerts")
	}

	member, err := d.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return d.SendCustomAlert(ctx, actor, member.ID, title, message, taskID)
}

// NotifyTaskAssigned implements AssignmentNotifier.
func (d *NotificationDispatcher) NotifyTaskAssigned(ctx context.Context, task *model.Task) error {
	if task.AssignedTo == nil {
		return nil
	}
	taskID := task.ID
	result := d.dispatch(ctx, dispatchJob{
		userID:  *task.AssignedTo,
		kind:    model.NotificationTypeTaskAssigned,
		title:   fmt.Sprintf("New task: %s", task.Title),
		message: fmt.Sprintf("You have been assigned the task %q.", task.Title),
		taskID:  &taskID,
	})
	if result.NotificationID == 0 {
		return fmt.Errorf("failed to record assignment notification: %s", result.Error)
	}
	return nil
}

// NotifyClearanceResolved implements ClearanceNotifier.
func (d *NotificationDispatcher) NotifyClearanceResolved(ctx context.Context, clearance *model.ClearanceRequest, task *model.Task) error {
	taskID := clearance.TaskID
	result := d.dispatch(ctx, dispatchJob{
		userID:  clearance.RequestedBy,
		kind:    model.NotificationTypeStatusUpdate,
		title:   fmt.Sprintf("Clearance %s: %s", clearance.Status, task.Title),
		message: fmt.Sprintf("Your clearance request for %q was %s.", task.Title, clearance.Status),
		taskID:  &taskID,
	})
	if result.NotificationID == 0 {
		return fmt.Errorf("failed to record clearance notification: %s", result.Error)
	}
	return nil
}

// dispatch persists the notification row, then best-effort publishes it
// and emails the recipient. The row outlives an email failure: internal
// notification and email delivery succeed or fail independently.
func (d *NotificationDispatcher) dispatch(ctx context.Context, job dispatchJob) DispatchResult {
	result := DispatchResult{
		UserID: job.userID,
		TaskID: job.taskID,
	}

	notification := &model.Notification{
		UserID:  job.userID,
		Type:    job.kind,
		Title:   job.title,
		Message: job.message,
		TaskID:  job.taskID,
	}

	if err := d.notificationRepo.Create(ctx, notification); err != nil {
		result.Error = err.Error()
		return result
	}
	result.NotificationID = notification.ID

	if d.publisher != nil {
		if err := d.publisher.PublishNotification(ctx, notification); err != nil {
			d.logger.Warn("Failed to publish notification event",
				zap.Int64("notification_id", notification.ID),
				zap.Error(err))
		}
	}

	member, err := d.memberRepo.GetByID(ctx, job.userID)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	msg := EmailMessage{
		To:      member.Email,
		Subject: job.title,
		HTML:    fmt.Sprintf("<p>%s</p>", job.message),
		Text:    job.message,
	}
	if err := d.email.Send(ctx, msg); err != nil {
		d.logger.Warn("Email dispatch failed",
			zap.Int64("notification_id", notification.ID),
			zap.String("recipient", member.Email),
			zap.Error(err))
		result.Error = err.Error()
		return result
	}

	sentAt := time.Now()
	if err := d.notificationRepo.MarkSent(ctx, notification.ID, sentAt); err != nil {
		result.Error = err.Error()
		return result
	}

	result.EmailSent = true
	return result
}
