package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/studioforma/atelier/internal/middleware/auth"
	"github.com/studioforma/atelier/internal/usecase"
)

type MemberHandler struct {
	members *usecase.MemberService
	logger  *zap.Logger
}

func NewMemberHandler(members *usecase.MemberService, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{
		members: members,
		logger:  logger,
	}
}

// ListMembers returns the staff directory.
func (h *MemberHandler) ListMembers(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	members, err := h.members.Directory(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list members", zap.Error(err))
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, members)
}

type syncProfileRequest struct {
	FullName string `json:"full_name" validate:"max=200"`
}

// SyncProfile refreshes the caller's directory entry from their token.
func (h *MemberHandler) SyncProfile(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req syncProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	member, err := h.members.SyncProfile(c.Request().Context(), *actor, req.FullName)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, member)
}
