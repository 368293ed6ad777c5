package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/studioforma/atelier/internal/domain/repository"
	"github.com/studioforma/atelier/internal/middleware/auth"
	"github.com/studioforma/atelier/internal/usecase"
)

type NotificationHandler struct {
	dispatcher       *usecase.NotificationDispatcher
	notificationRepo repository.NotificationRepository
	logger           *zap.Logger
}

func NewNotificationHandler(
	dispatcher *usecase.NotificationDispatcher,
	notificationRepo repository.NotificationRepository,
	logger *zap.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		dispatcher:       dispatcher,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// ListMine returns the authenticated user's notifications, newest first.
// Pass ?unread=true to restrict to unread ones.
func (h *NotificationHandler) ListMine(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	unreadOnly := c.QueryParam("unread") == "true"

	notifications, err := h.notificationRepo.ListByUser(c.Request().Context(), actor.ID, unreadOnly)
	if err != nil {
		h.logger.Error("Failed to list notifications",
			zap.String("user_id", actor.ID.String()),
			zap.Error(err))
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, notifications)
}

// MarkRead marks one of the authenticated user's notifications as read.
// The user scoping lives in the repository query, so one user cannot mark
// another's rows.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.notificationRepo.MarkRead(c.Request().Context(), id, actor.ID); err != nil {
		return writeDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

type customAlertRequest struct {
	Recipient      string `json:"recipient" validate:"omitempty,uuid"`
	RecipientEmail string `json:"recipient_email" validate:"omitempty,email"`
	Title          string `json:"title" validate:"required,max=200"`
	Message        string `json:"message" validate:"required,max=2000"`
	TaskID         *int64 `json:"task_id"`
}

// SendCustomAlert lets the chief push an ad-hoc notification to a member,
// addressed either by id or by directory email.
func (h *NotificationHandler) SendCustomAlert(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req customAlertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var result *usecase.DispatchResult
	switch {
	case req.Recipient != "":
		recipient, err := uuid.Parse(req.Recipient)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid recipient"})
		}
		result, err = h.dispatcher.SendCustomAlert(
			c.Request().Context(), *actor, recipient, req.Title, req.Message, req.TaskID)
		if err != nil {
			return writeDomainError(c, err)
		}
	case req.RecipientEmail != "":
		result, err = h.dispatcher.SendCustomAlertByEmail(
			c.Request().Context(), *actor, req.RecipientEmail, req.Title, req.Message, req.TaskID)
		if err != nil {
			return writeDomainError(c, err)
		}
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Either recipient or recipient_email is required"})
	}

	return c.JSON(http.StatusCreated, result)
}

// RunDeadlineScan triggers a due-soon and overdue sweep across all
// assigned tasks. Chief only; the scheduled trigger is the remind command.
func (h *NotificationHandler) RunDeadlineScan(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	if !actor.Role.CanSendCustomAlert() {
		return c.JSON(http.StatusForbidden, echo.Map{
			"error": "Only the chief architect may trigger a deadline scan",
			"code":  "NOT_AUTHORIZED",
		})
	}

	report, err := h.dispatcher.RunDeadlineScan(c.Request().Context())
	if err != nil {
		h.logger.Error("Deadline scan failed", zap.Error(err))
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, report)
}
