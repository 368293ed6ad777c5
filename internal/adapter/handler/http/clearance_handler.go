package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/studioforma/atelier/internal/middleware/auth"
	"github.com/studioforma/atelier/internal/usecase"
)

type ClearanceHandler struct {
	workflow *usecase.ClearanceWorkflow
	logger   *zap.Logger
}

func NewClearanceHandler(workflow *usecase.ClearanceWorkflow, logger *zap.Logger) *ClearanceHandler {
	return &ClearanceHandler{
		workflow: workflow,
		logger:   logger,
	}
}

type requestClearanceRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

// RequestClearance opens a pending clearance on the task in the path.
func (h *ClearanceHandler) RequestClearance(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var req requestClearanceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	clearance, err := h.workflow.RequestClearance(c.Request().Context(), *actor, taskID, req.Notes)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, clearance)
}

type resolveClearanceRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Notes    string `json:"notes" validate:"max=2000"`
}

// ResolveClearance approves or rejects a pending clearance.
func (h *ClearanceHandler) ResolveClearance(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	clearanceID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var req resolveClearanceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	clearance, err := h.workflow.ResolveClearance(
		c.Request().Context(), *actor, clearanceID, usecase.ClearanceDecision(req.Decision), req.Notes)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, clearance)
}

// PendingQueue lists all pending clearances, oldest first.
func (h *ClearanceHandler) PendingQueue(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	queue, err := h.workflow.PendingQueue(c.Request().Context(), *actor)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, queue)
}

// HistoryForTask lists all clearance requests ever opened on a task.
func (h *ClearanceHandler) HistoryForTask(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	history, err := h.workflow.HistoryForTask(c.Request().Context(), taskID)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, history)
}
