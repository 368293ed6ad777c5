package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/studioforma/atelier/internal/middleware/auth"
	"github.com/studioforma/atelier/internal/usecase"
)

type MeetingHandler struct {
	meetings *usecase.MeetingService
	logger   *zap.Logger
}

func NewMeetingHandler(meetings *usecase.MeetingService, logger *zap.Logger) *MeetingHandler {
	return &MeetingHandler{
		meetings: meetings,
		logger:   logger,
	}
}

type meetingRequest struct {
	Title     string    `json:"title" validate:"max=200"`
	Notes     string    `json:"notes"`
	Attendees string    `json:"attendees" validate:"max=500"`
	HeldAt    time.Time `json:"held_at"`
	ProjectID *int64    `json:"project_id"`
}

func (r meetingRequest) toInput() usecase.MeetingInput {
	return usecase.MeetingInput{
		Title:     r.Title,
		Notes:     r.Notes,
		Attendees: r.Attendees,
		HeldAt:    r.HeldAt,
		ProjectID: r.ProjectID,
	}
}

func (h *MeetingHandler) CreateMeeting(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req meetingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	meeting, err := h.meetings.CreateMeeting(c.Request().Context(), *actor, req.toInput())
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, meeting)
}

// updateMeetingRequest is a partial edit: absent fields stay untouched.
type updateMeetingRequest struct {
	Title     *string    `json:"title" validate:"omitempty,max=200"`
	Notes     *string    `json:"notes"`
	Attendees *string    `json:"attendees" validate:"omitempty,max=500"`
	HeldAt    *time.Time `json:"held_at"`
	ProjectID *int64     `json:"project_id"`
}

func (h *MeetingHandler) UpdateMeeting(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var req updateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	meeting, err := h.meetings.UpdateMeeting(c.Request().Context(), *actor, id, usecase.MeetingPatch{
		Title:     req.Title,
		Notes:     req.Notes,
		Attendees: req.Attendees,
		HeldAt:    req.HeldAt,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, meeting)
}

func (h *MeetingHandler) DeleteMeeting(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.meetings.DeleteMeeting(c.Request().Context(), *actor, id); err != nil {
		return writeDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *MeetingHandler) GetMeeting(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	meeting, err := h.meetings.GetMeeting(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, meeting)
}

func (h *MeetingHandler) ListMeetings(c echo.Context) error {
	var projectID *int64
	if raw := c.QueryParam("project_id"); raw != "" {
		id, err := parsePositiveQueryInt(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		projectID = &id
	}

	meetings, err := h.meetings.ListMeetings(c.Request().Context(), projectID)
	if err != nil {
		h.logger.Error("Failed to list meetings", zap.Error(err))
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, meetings)
}
