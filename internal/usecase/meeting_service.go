package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/repository"
	"github.com/studioforma/atelier/internal/domain/role"
)

// MeetingService records meeting logs. Any staff member may log meetings;
// edits are limited to the author and the chief.
type MeetingService struct {
	meetingRepo repository.MeetingRepository
	logger      *zap.Logger
}

// NewMeetingService creates a new meeting service.
func NewMeetingService(meetingRepo repository.MeetingRepository, logger *zap.Logger) *MeetingService {
	return &MeetingService{
		meetingRepo: meetingRepo,
		logger:      logger,
	}
}

// MeetingInput carries the fields accepted on creation and update.
type MeetingInput struct {
	Title     string
	Notes     string
	Attendees string
	HeldAt    time.Time
	ProjectID *int64
}

// CreateMeeting records a new meeting log.
func (s *MeetingService) CreateMeeting(ctx context.Context, actor role.Actor, input MeetingInput) (*model.MeetingLog, error) {
	if input.Title == "" {
		return nil, domainErrors.NewValidationError(actor.ID.String(), "title is required")
	}

	heldAt := input.HeldAt
	if heldAt.IsZero() {
		heldAt = time.Now()
	}

	meeting := &model.MeetingLog{
		ProjectID: input.ProjectID,
		Title:     input.Title,
		Notes:     input.Notes,
		Attendees: input.Attendees,
		HeldAt:    heldAt,
		CreatedBy: actor.ID,
	}

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

// MeetingPatch carries optional edits; nil fields stay untouched.
type MeetingPatch struct {
	Title     *string
	Notes     *string
	Attendees *string
	HeldAt    *time.Time
	ProjectID *int64
}

// UpdateMeeting applies a patch to an existing meeting log.
func (s *MeetingService) UpdateMeeting(ctx context.Context, actor role.Actor, id int64, patch MeetingPatch) (*model.MeetingLog, error) {
	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Role != role.RoleChiefArchitect && meeting.CreatedBy != actor.ID {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "editing this meeting log")
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, domainErrors.NewValidationError(actor.ID.String(), "title cannot be empty")
		}
		meeting.Title = *patch.Title
	}
	if patch.Notes != nil {
		meeting.Notes = *patch.Notes
	}
	if patch.Attendees != nil {
		meeting.Attendees = *patch.Attendees
	}
	if patch.HeldAt != nil && !patch.HeldAt.IsZero() {
		meeting.HeldAt = *patch.HeldAt
	}
	if patch.ProjectID != nil {
		meeting.ProjectID = patch.ProjectID
	}

	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

// DeleteMeeting removes a meeting log.
func (s *MeetingService) DeleteMeeting(ctx context.Context, actor role.Actor, id int64) error {
	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor.Role != role.RoleChiefArchitect && meeting.CreatedBy != actor.ID {
		return domainErrors.NewNotAuthorizedError(actor.ID.String(), "deleting this meeting log")
	}

	return s.meetingRepo.Delete(ctx, id)
}

// GetMeeting returns a single meeting log.
func (s *MeetingService) GetMeeting(ctx context.Context, id int64) (*model.MeetingLog, error) {
	return s.meetingRepo.GetByID(ctx, id)
}

// ListMeetings returns meeting logs, optionally scoped to one project.
func (s *MeetingService) ListMeetings(ctx context.Context, projectID *int64) ([]*model.MeetingLog, error) {
	return s.meetingRepo.List(ctx, projectID)
}
