package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/repository"
	"github.com/studioforma/atelier/internal/domain/role"
)

// InvoiceService owns the firm's billing records. Financial mutations are
// limited to chiefs and juniors.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	logger      *zap.Logger
	clientURL   string
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	logger *zap.Logger,
	clientURL string,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		logger:      logger,
		clientURL:   clientURL,
	}
}

// CreateInvoiceInput carries the fields accepted on invoice creation.
type CreateInvoiceInput struct {
	Number      string
	ClientID    int64
	ProjectID   *int64
	Amount      decimal.Decimal
	Currency    string
	Description string
	DueDate     *time.Time
}

// CreateInvoice creates a draft invoice for a client.
func (s *InvoiceService) CreateInvoice(ctx context.Context, actor role.Actor, input CreateInvoiceInput) (*model.Invoice, error) {
	if !actor.Role.CanManageFinancials() {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "managing financial records")
	}
	if input.Number == "" {
		return nil, domainErrors.NewValidationError(actor.ID.String(), "invoice number is required")
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domainErrors.NewValidationError(actor.ID.String(), "amount must be positive")
	}

	if _, err := s.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	invoice := &model.Invoice{
		Number:      input.Number,
		ClientID:    input.ClientID,
		ProjectID:   input.ProjectID,
		Amount:      input.Amount,
		Currency:    currency,
		Status:      model.InvoiceStatusDraft,
		Description: input.Description,
		DueDate:     input.DueDate,
		CreatedBy:   actor.ID,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("Invoice created",
		zap.Int64("invoice_id", invoice.ID),
		zap.String("number", invoice.Number),
		zap.String("amount", invoice.Amount.String()))

	return invoice, nil
}

// IssueInvoice moves a draft invoice to sent and stamps issued_at.
func (s *InvoiceService) IssueInvoice(ctx context.Context, actor role.Actor, id int64) (*model.Invoice, error) {
	if !actor.Role.CanManageFinancials() {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "managing financial records")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != model.InvoiceStatusDraft {
		return nil, domainErrors.NewInvalidStateError(actor.ID.String(), "only draft invoices can be issued")
	}

	now := time.Now()
	invoice.Status = model.InvoiceStatusSent
	invoice.IssuedAt = &now

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// MarkPaid settles a sent invoice.
func (s *InvoiceService) MarkPaid(ctx context.Context, actor role.Actor, id int64) (*model.Invoice, error) {
	if !actor.Role.CanManageFinancials() {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "managing financial records")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != model.InvoiceStatusSent {
		return nil, domainErrors.NewInvalidStateError(actor.ID.String(), "only sent invoices can be marked paid")
	}

	now := time.Now()
	invoice.Status = model.InvoiceStatusPaid
	invoice.PaidAt = &now

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// VoidInvoice cancels an unpaid invoice.
func (s *InvoiceService) VoidInvoice(ctx context.Context, actor role.Actor, id int64) (*model.Invoice, error) {
	if !actor.Role.CanManageFinancials() {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "managing financial records")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == model.InvoiceStatusPaid {
		return nil, domainErrors.NewInvalidStateError(actor.ID.String(), "a paid invoice cannot be voided")
	}

	invoice.Status = model.InvoiceStatusVoid
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// CreatePaymentLink creates a Stripe checkout session for a sent invoice
// and stores the session id on the record. The returned URL is handed to
// the client.
func (s *InvoiceService) CreatePaymentLink(ctx context.Context, actor role.Actor, id int64) (string, error) {
	if !actor.Role.CanManageFinancials() {
		return "", domainErrors.NewNotAuthorizedError(actor.ID.String(), "managing financial records")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if invoice.Status != model.InvoiceStatusSent {
		return "", domainErrors.NewInvalidStateError(actor.ID.String(), "payment links are only issued for sent invoices")
	}

	// Stripe wants the amount in the currency's minor unit.
	amountCents := invoice.Amount.Mul(decimal.NewFromInt(100)).IntPart()

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(invoice.Currency),
					UnitAmount: stripe.Int64(amountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Invoice %s", invoice.Number)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.clientURL + "/invoices/paid"),
		CancelURL:  stripe.String(s.clientURL + "/invoices"),
	}

	session, err := checkoutsession.New(params)
	if err != nil {
		s.logger.Error("Failed to create checkout session",
			zap.Int64("invoice_id", invoice.ID),
			zap.Error(err))
		return "", fmt.Errorf("failed to create payment link: %w", err)
	}

	invoice.CheckoutSessionID = &session.ID
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return "", err
	}

	s.logger.Info("Payment link created",
		zap.Int64("invoice_id", invoice.ID),
		zap.String("session_id", session.ID))

	return session.URL, nil
}

// GetInvoice returns a single invoice.
func (s *InvoiceService) GetInvoice(ctx context.Context, id int64) (*model.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

// ListInvoices returns invoices matched by the filter.
func (s *InvoiceService) ListInvoices(ctx context.Context, filter repository.InvoiceFilter) ([]*model.Invoice, error) {
	return s.invoiceRepo.List(ctx, filter)
}

// DeleteInvoice removes a draft invoice.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, actor role.Actor, id int64) error {
	if !actor.Role.CanManageFinancials() {
		return domainErrors.NewNotAuthorizedError(actor.ID.String(), "managing financial records")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice.Status != model.InvoiceStatusDraft {
		return domainErrors.NewInvalidStateError(actor.ID.String(), "only draft invoices can be deleted")
	}

	return s.invoiceRepo.Delete(ctx, id)
}
