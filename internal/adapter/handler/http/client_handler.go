package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/studioforma/atelier/internal/middleware/auth"
	"github.com/studioforma/atelier/internal/usecase"
)

type ClientHandler struct {
	projects *usecase.ProjectService
	logger   *zap.Logger
}

func NewClientHandler(projects *usecase.ProjectService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		projects: projects,
		logger:   logger,
	}
}

type clientRequest struct {
	Name    string `json:"name" validate:"max=200"`
	Company string `json:"company" validate:"max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Notes   string `json:"notes"`
}

func (r clientRequest) toInput() usecase.ClientInput {
	return usecase.ClientInput{
		Name:    r.Name,
		Company: r.Company,
		Email:   r.Email,
		Phone:   r.Phone,
		Notes:   r.Notes,
	}
}

func (h *ClientHandler) CreateClient(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.projects.CreateClient(c.Request().Context(), *actor, req.toInput())
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, client)
}

// updateClientRequest is a partial edit: absent fields stay untouched.
type updateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=200"`
	Company *string `json:"company" validate:"omitempty,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Notes   *string `json:"notes"`
}

func (h *ClientHandler) UpdateClient(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.projects.UpdateClient(c.Request().Context(), *actor, id, usecase.ClientPatch{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Notes:   req.Notes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) DeleteClient(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.projects.DeleteClient(c.Request().Context(), *actor, id); err != nil {
		return writeDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ClientHandler) GetClient(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	client, err := h.projects.GetClient(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) ListClients(c echo.Context) error {
	clients, err := h.projects.ListClients(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list clients", zap.Error(err))
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, clients)
}
