package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/repository"
	"github.com/studioforma/atelier/internal/middleware/auth"
	"github.com/studioforma/atelier/internal/usecase"
)

type InvoiceHandler struct {
	invoices *usecase.InvoiceService
	logger   *zap.Logger
}

func NewInvoiceHandler(invoices *usecase.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoices: invoices,
		logger:   logger,
	}
}

type createInvoiceRequest struct {
	Number      string     `json:"number" validate:"required,max=50"`
	ClientID    int64      `json:"client_id" validate:"required,gt=0"`
	ProjectID   *int64     `json:"project_id"`
	Amount      string     `json:"amount" validate:"required"`
	Currency    string     `json:"currency" validate:"omitempty,len=3"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

func (h *InvoiceHandler) CreateInvoice(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req createInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid amount"})
	}

	invoice, err := h.invoices.CreateInvoice(c.Request().Context(), *actor, usecase.CreateInvoiceInput{
		Number:      req.Number,
		ClientID:    req.ClientID,
		ProjectID:   req.ProjectID,
		Amount:      amount,
		Currency:    req.Currency,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, invoice)
}

func (h *InvoiceHandler) IssueInvoice(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	invoice, err := h.invoices.IssueInvoice(c.Request().Context(), *actor, id)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) MarkPaid(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	invoice, err := h.invoices.MarkPaid(c.Request().Context(), *actor, id)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) VoidInvoice(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	invoice, err := h.invoices.VoidInvoice(c.Request().Context(), *actor, id)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, invoice)
}

// CreatePaymentLink creates a Stripe checkout session for a sent invoice
// and returns the hosted payment URL.
func (h *InvoiceHandler) CreatePaymentLink(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	url, err := h.invoices.CreatePaymentLink(c.Request().Context(), *actor, id)
	if err != nil {
		h.logger.Error("Failed to create payment link",
			zap.Int64("invoice_id", id),
			zap.Error(err))
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"payment_url": url})
}

func (h *InvoiceHandler) DeleteInvoice(c echo.Context) error {
	actor, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.invoices.DeleteInvoice(c.Request().Context(), *actor, id); err != nil {
		return writeDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *InvoiceHandler) GetInvoice(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	invoice, err := h.invoices.GetInvoice(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) ListInvoices(c echo.Context) error {
	var filter repository.InvoiceFilter

	if raw := c.QueryParam("client_id"); raw != "" {
		clientID, err := parsePositiveQueryInt(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		filter.ClientID = &clientID
	}
	if raw := c.QueryParam("project_id"); raw != "" {
		projectID, err := parsePositiveQueryInt(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		filter.ProjectID = &projectID
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := model.InvoiceStatus(raw)
		filter.Status = &status
	}

	invoices, err := h.invoices.ListInvoices(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list invoices", zap.Error(err))
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, invoices)
}
