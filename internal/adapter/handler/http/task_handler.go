package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/repository"
	"github.com/studioforma/atelier/internal/middleware/auth"
	"github.com/studioforma/atelier/internal/usecase"
)

type TaskHandler struct {
	tasks  *usecase.TaskService
	logger *zap.Logger
}

func NewTaskHandler(tasks *usecase.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		tasks:  tasks,
		logger: logger,
	}
}

type createTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *string    `json:"assigned_to" validate:"omitempty,uuid"`
	ProjectID   *int64     `json:"project_id"`
	SelfAssign  bool       `json:"self_assign"`
}

func (h *TaskHandler) CreateTask(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
		SelfAssign:  req.SelfAssign,
	}
	if req.AssignedTo != nil {
		assignee, err := uuid.Parse(*req.AssignedTo)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid assigned_to"})
		}
		input.AssignedTo = &assignee
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), *actor, input)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, task)
}

type updateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *string    `json:"assigned_to" validate:"omitempty,uuid"`
	ProjectID   *int64     `json:"project_id"`
}

func (h *TaskHandler) UpdateTask(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := usecase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
	}
	if req.Priority != nil {
		priority := model.TaskPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.AssignedTo != nil {
		assignee, err := uuid.Parse(*req.AssignedTo)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid assigned_to"})
		}
		input.AssignedTo = &assignee
	}

	task, err := h.tasks.UpdateTask(c.Request().Context(), *actor, id, input)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, task)
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed overdue"`
}

func (h *TaskHandler) SetStatus(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.tasks.SetStatus(c.Request().Context(), *actor, id, model.TaskStatus(req.Status))
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) CompleteTask(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	task, err := h.tasks.MarkComplete(c.Request().Context(), *actor, id)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.tasks.DeleteTask(c.Request().Context(), *actor, id); err != nil {
		return writeDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	task, err := h.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) ListTasks(c echo.Context) error {
	filter, err := taskFilterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	tasks, err := h.tasks.ListTasks(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list tasks", zap.Error(err))
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, tasks)
}

func taskFilterFromQuery(c echo.Context) (repository.TaskFilter, error) {
	var filter repository.TaskFilter

	if raw := c.QueryParam("assigned_to"); raw != "" {
		assignee, err := uuid.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.AssignedTo = &assignee
	}
	if raw := c.QueryParam("created_by"); raw != "" {
		creator, err := uuid.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.CreatedBy = &creator
	}
	if raw := c.QueryParam("project_id"); raw != "" {
		projectID, err := parsePositiveQueryInt(raw)
		if err != nil {
			return filter, err
		}
		filter.ProjectID = &projectID
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := model.TaskStatus(raw)
		filter.Status = &status
	}
	if raw := c.QueryParam("priority"); raw != "" {
		priority := model.TaskPriority(raw)
		filter.Priority = &priority
	}

	return filter, nil
}
