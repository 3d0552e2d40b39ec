package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/removals-office/internal/config"
	"github.com/nurpe/removals-office/internal/model"
	"github.com/nurpe/removals-office/internal/numbering"
	"github.com/nurpe/removals-office/internal/pricing"
	"github.com/nurpe/removals-office/internal/repository"
)

type InvoiceService struct {
	invoices    InvoiceStore
	bookings    BookingStore
	clients     ClientStore
	renderer    DocumentRenderer
	excel       ExcelGenerator
	company     model.Company
	defaultVAT  float64
	dueDays     int
	maxAttempts int
	now         func() time.Time
	log         zerolog.Logger
}

func NewInvoiceService(
	invoices InvoiceStore,
	bookings BookingStore,
	clients ClientStore,
	renderer DocumentRenderer,
	excel ExcelGenerator,
	cfg *config.Config,
	log zerolog.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices:    invoices,
		bookings:    bookings,
		clients:     clients,
		renderer:    renderer,
		excel:       excel,
		company:     companyFromConfig(cfg),
		defaultVAT:  cfg.Documents.DefaultVATPercentage,
		dueDays:     cfg.Documents.InvoiceDueDays,
		maxAttempts: cfg.Documents.NumberingMaxAttempts,
		now:         time.Now,
		log:         log,
	}
}

// InvoiceInput describes an invoice for a booking. When Items is nil the
// booking's line items are invoiced.
type InvoiceInput struct {
	BookingID          uuid.UUID
	Items              []model.LineItem
	ExtraCharges       []model.Charge
	VATPercentage      *float64
	DueDate            *time.Time
	Notes              string
	TermsAndConditions string
}

type SignatureInput struct {
	SignedBy string
	Data     string
}

// Create derives a draft invoice from a booking and stores it under the
// first free number of the current month.
func (s *InvoiceService) Create(ctx context.Context, input InvoiceInput) (*model.Invoice, error) {
	if input.BookingID == uuid.Nil {
		return nil, fieldError("bookingId", "bookingId is required")
	}
	booking, err := s.bookings.Get(ctx, input.BookingID)
	if err != nil {
		if errors.Is(storeError(err, "booking"), ErrNotFound) {
			return nil, fieldError("bookingId", "booking does not exist")
		}
		return nil, err
	}
	if booking.Status == model.BookingStatusCancelled {
		return nil, fmt.Errorf("%w: cancelled bookings cannot be invoiced", ErrConflict)
	}

	now := s.now()
	items := input.Items
	if items == nil {
		items = booking.Items
	}
	dueDate := input.DueDate
	if dueDate == nil {
		due := now.AddDate(0, 0, s.dueDays)
		dueDate = &due
	}

	invoice := &model.Invoice{
		BookingID:          booking.ID,
		ClientID:           booking.ClientID,
		Items:              cloneItems(items),
		ExtraCharges:       cloneCharges(input.ExtraCharges),
		VATPercentage:      s.defaultVAT,
		Status:             model.InvoiceStatusDraft,
		PaymentStatus:      model.PaymentStatusUnpaid,
		IssueDate:          now,
		DueDate:            dueDate,
		Notes:              input.Notes,
		TermsAndConditions: input.TermsAndConditions,
	}
	if input.VATPercentage != nil {
		invoice.VATPercentage = *input.VATPercentage
	}
	if err := s.prepare(invoice); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		number, err := s.nextNumber(ctx)
		if err != nil {
			return nil, err
		}
		invoice.InvoiceNumber = number
		err = s.invoices.Create(ctx, invoice)
		if err == nil {
			return invoice, nil
		}
		if !errors.Is(err, repository.ErrNumberTaken) {
			return nil, storeError(err, "invoice")
		}
		s.log.Warn().
			Str("invoice_number", number).
			Int("attempt", attempt+1).
			Msg("invoice number taken, retrying")
	}
	return nil, fmt.Errorf("%w: could not assign a unique invoice number", ErrConflict)
}

func (s *InvoiceService) nextNumber(ctx context.Context) (string, error) {
	now := s.now()
	existing, err := s.invoices.ListNumbers(ctx, numbering.InvoicePrefix(now))
	if err != nil {
		return "", fmt.Errorf("list invoice numbers: %w", err)
	}
	return numbering.NextInvoiceNumber(now, existing), nil
}

func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	invoice, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "invoice")
	}
	return invoice, nil
}

// Update replaces the priced content of an open invoice and recomputes
// its totals.
func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, input InvoiceInput) (*model.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureEditable(invoice); err != nil {
		return nil, err
	}
	if input.Items != nil {
		invoice.Items = cloneItems(input.Items)
	}
	invoice.ExtraCharges = cloneCharges(input.ExtraCharges)
	if input.VATPercentage != nil {
		invoice.VATPercentage = *input.VATPercentage
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}
	invoice.Notes = input.Notes
	invoice.TermsAndConditions = input.TermsAndConditions
	if err := s.prepare(invoice); err != nil {
		return nil, err
	}
	if invoice.AmountPaid > invoice.GrandTotal {
		return nil, fieldError("items", "grand total cannot drop below the amount already paid")
	}
	invoice.PaymentStatus = paymentStatusFor(invoice.AmountPaid, invoice.GrandTotal)
	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, storeError(err, "invoice")
	}
	return invoice, nil
}

func (s *InvoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.InvoiceStatus) (*model.Invoice, error) {
	if !status.Valid() {
		return nil, fieldError("status", "status is not a valid invoice status")
	}
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if status == model.InvoiceStatusPaid && invoice.PaymentStatus != model.PaymentStatusPaid {
		return nil, fmt.Errorf("%w: record the full payment before marking the invoice paid", ErrConflict)
	}
	invoice.Status = status
	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, storeError(err, "invoice")
	}
	return invoice, nil
}

// RecordPayment sets the amount paid so far and derives the payment status.
func (s *InvoiceService) RecordPayment(ctx context.Context, id uuid.UUID, amountPaid float64) (*model.Invoice, error) {
	amountPaid = pricing.Round2(amountPaid)
	if amountPaid < 0 {
		return nil, fieldError("amountPaid", "amountPaid must not be negative")
	}
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == model.InvoiceStatusCancelled {
		return nil, fmt.Errorf("%w: cancelled invoices cannot take payments", ErrConflict)
	}
	if amountPaid > invoice.GrandTotal {
		return nil, fieldError("amountPaid", "amountPaid exceeds the invoice grand total")
	}

	invoice.AmountPaid = amountPaid
	invoice.PaymentStatus = paymentStatusFor(amountPaid, invoice.GrandTotal)
	if invoice.PaymentStatus == model.PaymentStatusPaid {
		invoice.Status = model.InvoiceStatusPaid
	} else if invoice.Status == model.InvoiceStatusPaid {
		invoice.Status = model.InvoiceStatusSent
	}
	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, storeError(err, "invoice")
	}
	return invoice, nil
}

func (s *InvoiceService) Sign(ctx context.Context, id uuid.UUID, input SignatureInput) (*model.Invoice, error) {
	signedBy := strings.TrimSpace(input.SignedBy)
	if signedBy == "" {
		return nil, fieldError("signedBy", "signedBy is required")
	}
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice.Signature = &model.Signature{
		SignedBy: signedBy,
		SignedAt: s.now(),
		Data:     input.Data,
	}
	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, storeError(err, "invoice")
	}
	return invoice, nil
}

// ConfirmDelivery marks the goods as delivered. Repeated calls keep the
// first confirmation time.
func (s *InvoiceService) ConfirmDelivery(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.DeliveryConfirmed {
		return invoice, nil
	}
	now := s.now()
	invoice.DeliveryConfirmed = true
	invoice.DeliveryConfirmedAt = &now
	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, storeError(err, "invoice")
	}
	return invoice, nil
}

func (s *InvoiceService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if invoice.AmountPaid > 0 {
		return fmt.Errorf("%w: invoices with recorded payments cannot be deleted", ErrConflict)
	}
	return storeError(s.invoices.Delete(ctx, id), "invoice")
}

func (s *InvoiceService) List(ctx context.Context, filter model.ListFilter) (model.Page[model.Invoice], error) {
	return s.invoices.List(ctx, filter)
}

func (s *InvoiceService) RenderPDF(ctx context.Context, id uuid.UUID) (*FileResult, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.Get(ctx, invoice.ClientID)
	if err != nil {
		return nil, storeError(err, "client")
	}
	booking, err := s.bookings.Get(ctx, invoice.BookingID)
	if err != nil {
		return nil, storeError(err, "booking")
	}
	content, err := s.renderer.Invoice(model.InvoiceDocument{
		Invoice: *invoice,
		Client:  *client,
		Booking: *booking,
		Company: s.company,
	})
	if err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", invoice.InvoiceNumber, err)
	}
	return &FileResult{
		FileName:    documentFileName("Invoice", invoice.InvoiceNumber),
		ContentType: ContentTypePDF,
		Content:     content,
	}, nil
}

func (s *InvoiceService) Export(ctx context.Context, filter model.ListFilter) (*FileResult, error) {
	invoices, err := s.invoices.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(invoices))
	for _, invoice := range invoices {
		ids = append(ids, invoice.ClientID)
	}
	clients, err := clientIndex(ctx, s.clients, ids)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Invoices(invoices, clients)
	if err != nil {
		return nil, fmt.Errorf("export invoices: %w", err)
	}
	return &FileResult{
		FileName:    fmt.Sprintf("invoices-%s.xlsx", s.now().Format("20060102")),
		ContentType: ContentTypeXLSX,
		Content:     content,
	}, nil
}

// prepare validates the invoice and recomputes its totals. Invoices carry
// no discounts.
func (s *InvoiceService) prepare(invoice *model.Invoice) error {
	model.NormalizeUnits(invoice.Items)
	if err := validationError(invoice.Validate()); err != nil {
		return err
	}
	vat := invoice.VATPercentage
	totals := pricing.ComputeTotals(pricing.Draft{
		Items:         invoice.Items,
		Charges:       invoice.ExtraCharges,
		VATPercentage: &vat,
	})
	invoice.Subtotal = totals.Subtotal
	invoice.TotalAdditionalCharges = totals.TotalAdditionalCharges
	invoice.VATPercentage = totals.VATPercentage
	invoice.VATAmount = totals.VATAmount
	invoice.GrandTotal = totals.GrandTotal
	return nil
}

func ensureEditable(invoice *model.Invoice) error {
	switch invoice.Status {
	case model.InvoiceStatusPaid, model.InvoiceStatusCancelled:
		return fmt.Errorf("%w: %s invoices cannot be modified", ErrConflict, invoice.Status)
	}
	return nil
}

func paymentStatusFor(amountPaid, grandTotal float64) model.PaymentStatus {
	switch {
	case amountPaid <= 0:
		return model.PaymentStatusUnpaid
	case amountPaid >= grandTotal:
		return model.PaymentStatusPaid
	default:
		return model.PaymentStatusPartiallyPaid
	}
}
