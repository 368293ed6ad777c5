package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/role"
	"github.com/studioforma/atelier/internal/usecase"
)

func chiefActor() role.Actor {
	return role.Actor{ID: uuid.New(), Email: "chief@studioforma.com", Role: role.RoleChiefArchitect}
}

func internActor() role.Actor {
	return role.Actor{ID: uuid.New(), Email: "intern@studioforma.com", Role: role.RoleIntern}
}

func assertWorkflowError(t *testing.T, err error, wantType string) {
	t.Helper()
	var workflowErr *domainErrors.WorkflowError
	assert.ErrorAs(t, err, &workflowErr)
	assert.Equal(t, wantType, workflowErr.Type)
}

func TestClearanceWorkflow_RequestClearance(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("assignee opens a pending request", func(t *testing.T) {
		clearanceRepo := new(MockClearanceRepository)
		taskRepo := new(MockTaskRepository)
		workflow := usecase.NewClearanceWorkflow(clearanceRepo, taskRepo, nil, logger)

		intern := internActor()
		task := &model.Task{ID: 7, Title: "Facade study", AssignedTo: &intern.ID, CreatedBy: uuid.New()}

		taskRepo.On("GetByID", ctx, int64(7)).Return(task, nil)
		clearanceRepo.On("Create", ctx, mock.MatchedBy(func(c *model.ClearanceRequest) bool {
			return c.TaskID == 7 && c.RequestedBy == intern.ID && c.Status == model.ClearanceStatusPending
		})).Return(nil)
		taskRepo.On("UpdateFields", ctx, int64(7), map[string]interface{}{
			"clearance_status": model.ClearanceStatusPending,
		}).Return(nil)

		clearance, err := workflow.RequestClearance(ctx, intern, 7, "ready for review")

		assert.NoError(t, err)
		assert.Equal(t, model.ClearanceStatusPending, clearance.Status)
		clearanceRepo.AssertExpectations(t)
		taskRepo.AssertExpectations(t)
	})

	t.Run("chief cannot request clearance", func(t *testing.T) {
		workflow := usecase.NewClearanceWorkflow(new(MockClearanceRepository), new(MockTaskRepository), nil, logger)

		_, err := workflow.RequestClearance(ctx, chiefActor(), 7, "")

		assertWorkflowError(t, err, domainErrors.ErrTypeNotAuthorized)
	})

	t.Run("stranger cannot request clearance on someone else's task", func(t *testing.T) {
		clearanceRepo := new(MockClearanceRepository)
		taskRepo := new(MockTaskRepository)
		workflow := usecase.NewClearanceWorkflow(clearanceRepo, taskRepo, nil, logger)

		intern := internActor()
		other := uuid.New()
		task := &model.Task{ID: 7, AssignedTo: &other, CreatedBy: other}
		taskRepo.On("GetByID", ctx, int64(7)).Return(task, nil)

		_, err := workflow.RequestClearance(ctx, intern, 7, "")

		assertWorkflowError(t, err, domainErrors.ErrTypeNotAuthorized)
		clearanceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("second pending request surfaces the conflict", func(t *testing.T) {
		clearanceRepo := new(MockClearanceRepository)
		taskRepo := new(MockTaskRepository)
		workflow := usecase.NewClearanceWorkflow(clearanceRepo, taskRepo, nil, logger)

		intern := internActor()
		task := &model.Task{ID: 7, AssignedTo: &intern.ID, CreatedBy: intern.ID}
		taskRepo.On("GetByID", ctx, int64(7)).Return(task, nil)
		clearanceRepo.On("Create", ctx, mock.Anything).
			Return(domainErrors.NewDuplicatePendingError(intern.ID.String(), 7))

		_, err := workflow.RequestClearance(ctx, intern, 7, "")

		assertWorkflowError(t, err, domainErrors.ErrTypeDuplicatePending)
		taskRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestClearanceWorkflow_ResolveClearance(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("approval stamps the clearance and rolls up to the task", func(t *testing.T) {
		clearanceRepo := new(MockClearanceRepository)
		taskRepo := new(MockTaskRepository)
		notifier := new(MockClearanceNotifier)
		workflow := usecase.NewClearanceWorkflow(clearanceRepo, taskRepo, notifier, logger)

		chief := chiefActor()
		requester := uuid.New()
		clearance := &model.ClearanceRequest{ID: 3, TaskID: 7, RequestedBy: requester, Status: model.ClearanceStatusPending}
		task := &model.Task{ID: 7, Title: "Facade study", Status: model.TaskStatusInProgress}

		clearanceRepo.On("GetByID", ctx, int64(3)).Return(clearance, nil)
		clearanceRepo.On("Update", ctx, mock.MatchedBy(func(c *model.ClearanceRequest) bool {
			return c.Status == model.ClearanceStatusApproved && c.ClearedBy != nil && *c.ClearedBy == chief.ID && c.ClearedAt != nil
		})).Return(nil)
		taskRepo.On("UpdateFields", ctx, int64(7), mock.MatchedBy(func(fields map[string]interface{}) bool {
			_, hasClearedAt := fields["cleared_at"]
			return fields["clearance_status"] == model.ClearanceStatusApproved && hasClearedAt
		})).Return(nil)
		taskRepo.On("GetByID", ctx, int64(7)).Return(task, nil)
		notifier.On("NotifyClearanceResolved", ctx, mock.Anything, task).Return(nil)

		resolved, err := workflow.ResolveClearance(ctx, chief, 3, usecase.ClearanceDecisionApprove, "")

		assert.NoError(t, err)
		assert.Equal(t, model.ClearanceStatusApproved, resolved.Status)
		clearanceRepo.AssertExpectations(t)
		taskRepo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("rejection leaves the task status field alone", func(t *testing.T) {
		clearanceRepo := new(MockClearanceRepository)
		taskRepo := new(MockTaskRepository)
		workflow := usecase.NewClearanceWorkflow(clearanceRepo, taskRepo, nil, logger)

		chief := chiefActor()
		clearance := &model.ClearanceRequest{ID: 3, TaskID: 7, Status: model.ClearanceStatusPending, Notes: "first pass"}

		clearanceRepo.On("GetByID", ctx, int64(3)).Return(clearance, nil)
		clearanceRepo.On("Update", ctx, mock.Anything).Return(nil)
		taskRepo.On("UpdateFields", ctx, int64(7), mock.MatchedBy(func(fields map[string]interface{}) bool {
			_, hasClearedAt := fields["cleared_at"]
			_, hasStatus := fields["status"]
			return fields["clearance_status"] == model.ClearanceStatusRejected && !hasClearedAt && !hasStatus
		})).Return(nil)

		resolved, err := workflow.ResolveClearance(ctx, chief, 3, usecase.ClearanceDecisionReject, "needs another elevation")

		assert.NoError(t, err)
		assert.Equal(t, model.ClearanceStatusRejected, resolved.Status)
		assert.NotNil(t, resolved.ClearedAt)
		assert.Contains(t, resolved.Notes, "first pass")
		assert.Contains(t, resolved.Notes, "needs another elevation")
	})

	t.Run("non-chief cannot resolve", func(t *testing.T) {
		workflow := usecase.NewClearanceWorkflow(new(MockClearanceRepository), new(MockTaskRepository), nil, logger)

		_, err := workflow.ResolveClearance(ctx, internActor(), 3, usecase.ClearanceDecisionApprove, "")

		assertWorkflowError(t, err, domainErrors.ErrTypeNotAuthorized)
	})

	t.Run("already resolved request cannot be resolved again", func(t *testing.T) {
		clearanceRepo := new(MockClearanceRepository)
		workflow := usecase.NewClearanceWorkflow(clearanceRepo, new(MockTaskRepository), nil, logger)

		clearance := &model.ClearanceRequest{ID: 3, TaskID: 7, Status: model.ClearanceStatusApproved}
		clearanceRepo.On("GetByID", ctx, int64(3)).Return(clearance, nil)

		_, err := workflow.ResolveClearance(ctx, chiefActor(), 3, usecase.ClearanceDecisionReject, "")

		assertWorkflowError(t, err, domainErrors.ErrTypeInvalidState)
		clearanceRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown decision is rejected", func(t *testing.T) {
		workflow := usecase.NewClearanceWorkflow(new(MockClearanceRepository), new(MockTaskRepository), nil, logger)

		_, err := workflow.ResolveClearance(ctx, chiefActor(), 3, usecase.ClearanceDecision("defer"), "")

		assertWorkflowError(t, err, domainErrors.ErrTypeValidation)
	})
}

func TestClearanceWorkflow_PendingQueue(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("chief sees the queue", func(t *testing.T) {
		clearanceRepo := new(MockClearanceRepository)
		workflow := usecase.NewClearanceWorkflow(clearanceRepo, new(MockTaskRepository), nil, logger)

		queue := []*model.ClearanceRequest{{ID: 1}, {ID: 2}}
		clearanceRepo.On("ListPending", ctx).Return(queue, nil)

		got, err := workflow.PendingQueue(ctx, chiefActor())

		assert.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("intern cannot see the queue", func(t *testing.T) {
		workflow := usecase.NewClearanceWorkflow(new(MockClearanceRepository), new(MockTaskRepository), nil, logger)

		_, err := workflow.PendingQueue(ctx, internActor())

		assertWorkflowError(t, err, domainErrors.ErrTypeNotAuthorized)
	})
}
