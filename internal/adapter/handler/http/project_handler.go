package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/middleware/auth"
	"github.com/studioforma/atelier/internal/usecase"
)

type ProjectHandler struct {
	projects *usecase.ProjectService
	stats    *usecase.ProjectStatsService
	logger   *zap.Logger
}

func NewProjectHandler(projects *usecase.ProjectService, stats *usecase.ProjectStatsService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		stats:    stats,
		logger:   logger,
	}
}

type projectRequest struct {
	Name                    string     `json:"name" validate:"max=200"`
	Description             string     `json:"description"`
	Phase                   string     `json:"phase" validate:"max=100"`
	Status                  string     `json:"status" validate:"omitempty,oneof=planning in_progress on_hold completed cancelled"`
	ClientID                *int64     `json:"client_id"`
	StartDate               *time.Time `json:"start_date"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date"`
}

func (r projectRequest) toInput() usecase.ProjectInput {
	return usecase.ProjectInput{
		Name:                    r.Name,
		Description:             r.Description,
		Phase:                   r.Phase,
		Status:                  model.ProjectStatus(r.Status),
		ClientID:                r.ClientID,
		StartDate:               r.StartDate,
		EstimatedCompletionDate: r.EstimatedCompletionDate,
	}
}

func (h *ProjectHandler) CreateProject(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.projects.CreateProject(c.Request().Context(), *actor, req.toInput())
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, project)
}

// updateProjectRequest is a partial edit: absent fields stay untouched.
type updateProjectRequest struct {
	Name                    *string    `json:"name" validate:"omitempty,max=200"`
	Description             *string    `json:"description"`
	Phase                   *string    `json:"phase" validate:"omitempty,max=100"`
	Status                  *string    `json:"status" validate:"omitempty,oneof=planning in_progress on_hold completed cancelled"`
	ClientID                *int64     `json:"client_id"`
	StartDate               *time.Time `json:"start_date"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date"`
}

func (r updateProjectRequest) toPatch() usecase.ProjectPatch {
	patch := usecase.ProjectPatch{
		Name:                    r.Name,
		Description:             r.Description,
		Phase:                   r.Phase,
		ClientID:                r.ClientID,
		StartDate:               r.StartDate,
		EstimatedCompletionDate: r.EstimatedCompletionDate,
	}
	if r.Status != nil {
		status := model.ProjectStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.projects.UpdateProject(c.Request().Context(), *actor, id, req.toPatch())
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.projects.DeleteProject(c.Request().Context(), *actor, id); err != nil {
		return writeDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ProjectHandler) GetProject(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	project, err := h.projects.GetProject(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) ListProjects(c echo.Context) error {
	projects, err := h.projects.ListProjects(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list projects", zap.Error(err))
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, projects)
}

// GetProjectStats recomputes and returns the derived figures for a
// project. Recompute-on-read keeps the gallery numbers honest without a
// background job.
func (h *ProjectHandler) GetProjectStats(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	stats, err := h.stats.RecomputeStats(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}
