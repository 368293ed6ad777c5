package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/usecase"
)

func TestMeetingService_UpdateMeeting(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("patching the notes keeps title and attendees", func(t *testing.T) {
		meetingRepo := new(MockMeetingRepository)
		service := usecase.NewMeetingService(meetingRepo, logger)

		author := juniorActor()
		heldAt := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
		meetingRepo.On("GetByID", ctx, int64(11)).Return(&model.MeetingLog{
			ID:        11,
			Title:     "Facade review",
			Notes:     "First pass",
			Attendees: "Vera, Ines, client rep",
			HeldAt:    heldAt,
			CreatedBy: author.ID,
		}, nil)
		meetingRepo.On("Update", ctx, mock.MatchedBy(func(m *model.MeetingLog) bool {
			return m.Notes == "Client approved the louvre spacing" &&
				m.Title == "Facade review" &&
				m.Attendees == "Vera, Ines, client rep" &&
				m.HeldAt.Equal(heldAt)
		})).Return(nil)

		updated, err := service.UpdateMeeting(ctx, author, 11, usecase.MeetingPatch{
			Notes: strPtr("Client approved the louvre spacing"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "Facade review", updated.Title)
		meetingRepo.AssertExpectations(t)
	})

	t.Run("only the author or the chief may edit", func(t *testing.T) {
		meetingRepo := new(MockMeetingRepository)
		service := usecase.NewMeetingService(meetingRepo, logger)

		meetingRepo.On("GetByID", ctx, int64(11)).Return(&model.MeetingLog{
			ID: 11, Title: "Facade review", CreatedBy: chiefActor().ID,
		}, nil)

		_, err := service.UpdateMeeting(ctx, internActor(), 11, usecase.MeetingPatch{
			Notes: strPtr("edited"),
		})

		assertWorkflowError(t, err, domainErrors.ErrTypeNotAuthorized)
		meetingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("explicit empty title is rejected", func(t *testing.T) {
		meetingRepo := new(MockMeetingRepository)
		service := usecase.NewMeetingService(meetingRepo, logger)

		author := juniorActor()
		meetingRepo.On("GetByID", ctx, int64(11)).Return(&model.MeetingLog{
			ID: 11, Title: "Facade review", CreatedBy: author.ID,
		}, nil)

		_, err := service.UpdateMeeting(ctx, author, 11, usecase.MeetingPatch{Title: strPtr("")})

		assertWorkflowError(t, err, domainErrors.ErrTypeValidation)
		meetingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
