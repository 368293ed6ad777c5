package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/usecase"
)

func newDispatcher(
	notificationRepo *MockNotificationRepository,
	taskRepo *MockTaskRepository,
	memberRepo *MockMemberRepository,
	email *MockEmailSender,
) *usecase.NotificationDispatcher {
	return usecase.NewNotificationDispatcher(
		notificationRepo, taskRepo, memberRepo, email, nil, zap.NewNop(), 3, 2)
}

func TestNotificationDispatcher_RunDeadlineScan(t *testing.T) {
	ctx := context.Background()

	t.Run("partial email failure is reported, not propagated", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		taskRepo := new(MockTaskRepository)
		memberRepo := new(MockMemberRepository)
		email := new(MockEmailSender)
		dispatcher := newDispatcher(notificationRepo, taskRepo, memberRepo, email)

		due := time.Now().AddDate(0, 0, 1)
		past := time.Now().AddDate(0, 0, -2)
		userA := uuid.New()
		userB := uuid.New()
		userC := uuid.New()

		overdue := []*model.Task{
			{ID: 1, Title: "Permit filing", DueDate: &past, AssignedTo: &userA},
		}
		dueSoon := []*model.Task{
			{ID: 2, Title: "Interior mockup", DueDate: &due, AssignedTo: &userB},
			{ID: 3, Title: "Client deck", DueDate: &due, AssignedTo: &userC},
		}

		taskRepo.On("ListOverdue", mock.Anything, mock.AnythingOfType("time.Time")).Return(overdue, nil)
		taskRepo.On("ListDueBetween", mock.Anything, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(dueSoon, nil)

		var nextID int64
		notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Notification")).
			Run(func(args mock.Arguments) {
				nextID++
				args.Get(1).(*model.Notification).ID = nextID
			}).Return(nil)

		memberRepo.On("GetByID", mock.Anything, userA).Return(&model.Member{ID: userA, Email: "a@studioforma.com"}, nil)
		memberRepo.On("GetByID", mock.Anything, userB).Return(&model.Member{ID: userB, Email: "b@studioforma.com"}, nil)
		memberRepo.On("GetByID", mock.Anything, userC).Return(&model.Member{ID: userC, Email: "c@studioforma.com"}, nil)

		// One recipient's provider call fails; the other two go through.
		email.On("Send", mock.Anything, mock.MatchedBy(func(msg usecase.EmailMessage) bool {
			return msg.To == "b@studioforma.com"
		})).Return(errors.New("provider rejected message"))
		email.On("Send", mock.Anything, mock.Anything).Return(nil)

		notificationRepo.On("MarkSent", mock.Anything, mock.AnythingOfType("int64"), mock.AnythingOfType("time.Time")).Return(nil)

		report, err := dispatcher.RunDeadlineScan(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 3, report.Attempted)
		assert.Equal(t, 2, report.Sent)
		assert.Equal(t, 1, report.Failed)
		assert.Len(t, report.Results, 3)

		// Every attempt persisted a row, but only the successes were stamped.
		notificationRepo.AssertNumberOfCalls(t, "Create", 3)
		notificationRepo.AssertNumberOfCalls(t, "MarkSent", 2)

		for _, result := range report.Results {
			assert.NotZero(t, result.NotificationID)
			if result.UserID == userB {
				assert.False(t, result.EmailSent)
				assert.Contains(t, result.Error, "provider rejected")
			} else {
				assert.True(t, result.EmailSent)
			}
		}
	})

	t.Run("a task both overdue and due soon is notified once", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		taskRepo := new(MockTaskRepository)
		memberRepo := new(MockMemberRepository)
		email := new(MockEmailSender)
		dispatcher := newDispatcher(notificationRepo, taskRepo, memberRepo, email)

		past := time.Now().Add(-time.Hour)
		user := uuid.New()
		task := &model.Task{ID: 9, Title: "Permit filing", DueDate: &past, AssignedTo: &user}

		taskRepo.On("ListOverdue", mock.Anything, mock.AnythingOfType("time.Time")).Return([]*model.Task{task}, nil)
		taskRepo.On("ListDueBetween", mock.Anything, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return([]*model.Task{task}, nil)

		notificationRepo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { args.Get(1).(*model.Notification).ID = 1 }).Return(nil)
		memberRepo.On("GetByID", mock.Anything, user).Return(&model.Member{ID: user, Email: "a@studioforma.com"}, nil)
		email.On("Send", mock.Anything, mock.Anything).Return(nil)
		notificationRepo.On("MarkSent", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).Return(nil)

		report, err := dispatcher.RunDeadlineScan(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, report.Attempted)
		notificationRepo.AssertNumberOfCalls(t, "Create", 1)

		// The overdue framing wins over the reminder.
		email.AssertCalled(t, "Send", mock.Anything, mock.MatchedBy(func(msg usecase.EmailMessage) bool {
			return msg.Subject == "Overdue: Permit filing"
		}))
	})

	t.Run("unassigned tasks are skipped", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		taskRepo := new(MockTaskRepository)
		dispatcher := newDispatcher(notificationRepo, taskRepo, new(MockMemberRepository), new(MockEmailSender))

		past := time.Now().Add(-time.Hour)
		taskRepo.On("ListOverdue", mock.Anything, mock.AnythingOfType("time.Time")).
			Return([]*model.Task{{ID: 1, Title: "Orphan", DueDate: &past}}, nil)
		taskRepo.On("ListDueBetween", mock.Anything, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return([]*model.Task{}, nil)

		report, err := dispatcher.RunDeadlineScan(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 0, report.Attempted)
		notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestNotificationDispatcher_SendCustomAlert(t *testing.T) {
	ctx := context.Background()

	t.Run("chief sends an alert and the row survives an email failure", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		memberRepo := new(MockMemberRepository)
		email := new(MockEmailSender)
		dispatcher := newDispatcher(notificationRepo, new(MockTaskRepository), memberRepo, email)

		recipient := uuid.New()
		notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
			return n.UserID == recipient && n.Type == model.NotificationTypeStatusUpdate
		})).Run(func(args mock.Arguments) { args.Get(1).(*model.Notification).ID = 42 }).Return(nil)
		memberRepo.On("GetByID", mock.Anything, recipient).Return(&model.Member{ID: recipient, Email: "i@studioforma.com"}, nil)
		email.On("Send", mock.Anything, mock.Anything).Return(errors.New("timeout"))

		result, err := dispatcher.SendCustomAlert(ctx, chiefActor(), recipient, "Site visit moved", "Now on Friday.", nil)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), result.NotificationID)
		assert.False(t, result.EmailSent)
		notificationRepo.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-chief may not send", func(t *testing.T) {
		dispatcher := newDispatcher(new(MockNotificationRepository), new(MockTaskRepository), new(MockMemberRepository), new(MockEmailSender))

		_, err := dispatcher.SendCustomAlert(ctx, juniorActor(), uuid.New(), "Hi", "", nil)

		assertWorkflowError(t, err, domainErrors.ErrTypeNotAuthorized)
	})

	t.Run("title is required", func(t *testing.T) {
		dispatcher := newDispatcher(new(MockNotificationRepository), new(MockTaskRepository), new(MockMemberRepository), new(MockEmailSender))

		_, err := dispatcher.SendCustomAlert(ctx, chiefActor(), uuid.New(), "", "body", nil)

		assertWorkflowError(t, err, domainErrors.ErrTypeValidation)
	})
}

func TestNotificationDispatcher_SendCustomAlertByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("chief addresses a colleague by email", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		memberRepo := new(MockMemberRepository)
		email := new(MockEmailSender)
		dispatcher := newDispatcher(notificationRepo, new(MockTaskRepository), memberRepo, email)

		recipient := uuid.New()
		memberRepo.On("GetByEmail", mock.Anything, "i@studioforma.com").
			Return(&model.Member{ID: recipient, Email: "i@studioforma.com"}, nil)
		memberRepo.On("GetByID", mock.Anything, recipient).
			Return(&model.Member{ID: recipient, Email: "i@studioforma.com"}, nil)
		notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
			return n.UserID == recipient
		})).Run(func(args mock.Arguments) { args.Get(1).(*model.Notification).ID = 7 }).Return(nil)
		email.On("Send", mock.Anything, mock.Anything).Return(nil)
		notificationRepo.On("MarkSent", mock.Anything, int64(7), mock.AnythingOfType("time.Time")).Return(nil)

		result, err := dispatcher.SendCustomAlertByEmail(ctx, chiefActor(), "i@studioforma.com", "Site visit moved", "Now on Friday.", nil)

		assert.NoError(t, err)
		assert.Equal(t, recipient, result.UserID)
		assert.True(t, result.EmailSent)
	})

	t.Run("unknown address surfaces not found", func(t *testing.T) {
		memberRepo := new(MockMemberRepository)
		dispatcher := newDispatcher(new(MockNotificationRepository), new(MockTaskRepository), memberRepo, new(MockEmailSender))

		memberRepo.On("GetByEmail", mock.Anything, "ghost@studioforma.com").
			Return((*model.Member)(nil), domainErrors.ErrMemberNotFound)

		_, err := dispatcher.SendCustomAlertByEmail(ctx, chiefActor(), "ghost@studioforma.com", "Hello", "", nil)

		assert.ErrorIs(t, err, domainErrors.ErrMemberNotFound)
	})

	t.Run("non-chief is denied before any lookup", func(t *testing.T) {
		memberRepo := new(MockMemberRepository)
		dispatcher := newDispatcher(new(MockNotificationRepository), new(MockTaskRepository), memberRepo, new(MockEmailSender))

		_, err := dispatcher.SendCustomAlertByEmail(ctx, internActor(), "i@studioforma.com", "Hello", "", nil)

		assertWorkflowError(t, err, domainErrors.ErrTypeNotAuthorized)
		memberRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})
}
