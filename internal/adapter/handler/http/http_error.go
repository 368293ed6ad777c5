package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
)

// writeDomainError maps domain errors onto HTTP responses: workflow
// rejections carry their own type constant, not-found sentinels become
// 404, anything else is a 500 with the detail kept out of the body.
func writeDomainError(c echo.Context, err error) error {
	var workflowErr *domainErrors.WorkflowError
	if errors.As(err, &workflowErr) {
		return c.JSON(workflowStatus(workflowErr.Type), echo.Map{
			"error": workflowErr.Message,
			"code":  workflowErr.Type,
		})
	}

	if isNotFound(err) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": err.Error(),
			"code":  "NOT_FOUND",
		})
	}

	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": "Internal server error",
		"code":  "INTERNAL",
	})
}

func workflowStatus(errType string) int {
	switch errType {
	case domainErrors.ErrTypeNotAuthorized:
		return http.StatusForbidden
	case domainErrors.ErrTypeInvalidState:
		return http.StatusConflict
	case domainErrors.ErrTypeDuplicatePending:
		return http.StatusConflict
	case domainErrors.ErrTypeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isNotFound(err error) bool {
	for _, sentinel := range []error{
		domainErrors.ErrTaskNotFound,
		domainErrors.ErrClearanceNotFound,
		domainErrors.ErrProjectNotFound,
		domainErrors.ErrClientNotFound,
		domainErrors.ErrNotificationNotFound,
		domainErrors.ErrMemberNotFound,
		domainErrors.ErrInvoiceNotFound,
		domainErrors.ErrDocumentNotFound,
		domainErrors.ErrMeetingNotFound,
		domainErrors.ErrImageNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return id, nil
}

func parsePositiveQueryInt(raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid numeric parameter %q", raw)
	}
	return n, nil
}
