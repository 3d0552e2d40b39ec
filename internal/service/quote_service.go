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

type QuoteService struct {
	quotes      QuoteStore
	clients     ClientStore
	renderer    DocumentRenderer
	excel       ExcelGenerator
	company     model.Company
	defaultVAT  float64
	maxAttempts int
	now         func() time.Time
	log         zerolog.Logger
}

func NewQuoteService(
	quotes QuoteStore,
	clients ClientStore,
	renderer DocumentRenderer,
	excel ExcelGenerator,
	cfg *config.Config,
	log zerolog.Logger,
) *QuoteService {
	return &QuoteService{
		quotes:      quotes,
		clients:     clients,
		renderer:    renderer,
		excel:       excel,
		company:     companyFromConfig(cfg),
		defaultVAT:  cfg.Documents.DefaultVATPercentage,
		maxAttempts: cfg.Documents.NumberingMaxAttempts,
		now:         time.Now,
		log:         log,
	}
}

type QuoteInput struct {
	ClientID           uuid.UUID
	Items              []model.LineItem
	AdditionalCharges  []model.Charge
	Discounts          []model.Discount
	VATPercentage      *float64
	ValidUntil         *time.Time
	MoveDate           *time.Time
	PickupAddress      string
	DeliveryAddress    string
	Notes              string
	TermsAndConditions string
}

func (in QuoteInput) apply(quote *model.Quote) {
	quote.ClientID = in.ClientID
	quote.Items = cloneItems(in.Items)
	quote.AdditionalCharges = cloneCharges(in.AdditionalCharges)
	quote.Discounts = cloneDiscounts(in.Discounts)
	if in.VATPercentage != nil {
		quote.VATPercentage = *in.VATPercentage
	}
	quote.ValidUntil = in.ValidUntil
	quote.MoveDate = in.MoveDate
	quote.PickupAddress = strings.TrimSpace(in.PickupAddress)
	quote.DeliveryAddress = strings.TrimSpace(in.DeliveryAddress)
	quote.Notes = in.Notes
	quote.TermsAndConditions = in.TermsAndConditions
}

// Create stores a new draft quote under the next free quote number.
func (s *QuoteService) Create(ctx context.Context, input QuoteInput) (*model.Quote, error) {
	quote := &model.Quote{
		Status:        model.QuoteStatusDraft,
		VATPercentage: s.defaultVAT,
	}
	input.apply(quote)
	if err := s.prepare(ctx, quote); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		quote.QuoteNumber = s.nextNumber(ctx, attempt)
		err := s.quotes.Create(ctx, quote)
		if err == nil {
			return quote, nil
		}
		if !errors.Is(err, repository.ErrNumberTaken) {
			return nil, storeError(err, "quote")
		}
		s.log.Warn().
			Str("quote_number", quote.QuoteNumber).
			Int("attempt", attempt+1).
			Msg("quote number taken, retrying")
	}
	return nil, fmt.Errorf("%w: could not assign a unique quote number", ErrConflict)
}

// nextNumber follows the quote count on the first attempt. After a
// conflict the count is behind the sequence, so later attempts continue
// from the highest number issued this year.
func (s *QuoteService) nextNumber(ctx context.Context, attempt int) string {
	now := s.now()
	if attempt == 0 {
		count, err := s.quotes.Count(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("count quotes failed, using timestamp quote number")
			return numbering.FallbackQuoteNumber(now, attempt)
		}
		return numbering.QuoteNumber(now, count)
	}

	prefix := numbering.QuotePrefix(now)
	existing, err := s.quotes.ListNumbers(ctx, prefix)
	if err != nil {
		s.log.Warn().Err(err).Msg("list quote numbers failed, using timestamp quote number")
		return numbering.FallbackQuoteNumber(now, attempt)
	}
	return numbering.QuoteNumber(now, int64(numbering.HighestInSequence(prefix, existing)))
}

func (s *QuoteService) Get(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	quote, err := s.quotes.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "quote")
	}
	return quote, nil
}

// Update replaces the priced content and recomputes totals. The quote
// number never changes.
func (s *QuoteService) Update(ctx context.Context, id uuid.UUID, input QuoteInput) (*model.Quote, error) {
	quote, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.Status == model.QuoteStatusConverted {
		return nil, fmt.Errorf("%w: converted quotes cannot be modified", ErrConflict)
	}
	input.apply(quote)
	if err := s.prepare(ctx, quote); err != nil {
		return nil, err
	}
	if err := s.quotes.Update(ctx, quote); err != nil {
		return nil, storeError(err, "quote")
	}
	return quote, nil
}

func (s *QuoteService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.QuoteStatus) (*model.Quote, error) {
	if !status.Valid() {
		return nil, fieldError("status", "status is not a valid quote status")
	}
	if status == model.QuoteStatusConverted {
		return nil, fieldError("status", "use the convert operation to convert a quote")
	}
	quote, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.Status == model.QuoteStatusConverted {
		return nil, fmt.Errorf("%w: converted quotes cannot change status", ErrConflict)
	}
	quote.Status = status
	if err := s.quotes.Update(ctx, quote); err != nil {
		return nil, storeError(err, "quote")
	}
	return quote, nil
}

// Convert turns an accepted quote into a confirmed booking. The booking and
// the quote status change are written together, and only while the quote
// is still accepted.
func (s *QuoteService) Convert(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	quote, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.Status != model.QuoteStatusAccepted {
		return nil, fmt.Errorf("%w: only accepted quotes can be converted", ErrConflict)
	}

	fields := model.FieldErrors{}
	if quote.MoveDate == nil {
		fields.Add("moveDate", "moveDate is required to create a booking")
	}
	if quote.PickupAddress == "" {
		fields.Add("pickupAddress", "pickupAddress is required to create a booking")
	}
	if quote.DeliveryAddress == "" {
		fields.Add("deliveryAddress", "deliveryAddress is required to create a booking")
	}
	if err := validationError(fields); err != nil {
		return nil, err
	}

	quoteID := quote.ID
	booking := &model.Booking{
		ClientID:        quote.ClientID,
		QuoteID:         &quoteID,
		MoveDate:        *quote.MoveDate,
		PickupAddress:   quote.PickupAddress,
		DeliveryAddress: quote.DeliveryAddress,
		Status:          model.BookingStatusConfirmed,
		Items:           cloneItems(quote.Items),
		Notes:           quote.Notes,
	}
	err = s.quotes.ConvertToBooking(ctx, quote.ID, booking)
	if errors.Is(err, repository.ErrStaleStatus) {
		return nil, fmt.Errorf("%w: quote is no longer accepted", ErrConflict)
	}
	if err != nil {
		return nil, storeError(err, "quote")
	}
	return booking, nil
}

func (s *QuoteService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}
	return storeError(s.quotes.Delete(ctx, id), "quote")
}

func (s *QuoteService) List(ctx context.Context, filter model.ListFilter) (model.Page[model.Quote], error) {
	return s.quotes.List(ctx, filter)
}

func (s *QuoteService) RenderPDF(ctx context.Context, id uuid.UUID) (*FileResult, error) {
	quote, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.Get(ctx, quote.ClientID)
	if err != nil {
		return nil, storeError(err, "client")
	}
	content, err := s.renderer.Quote(model.QuoteDocument{
		Quote:   *quote,
		Client:  *client,
		Company: s.company,
	})
	if err != nil {
		return nil, fmt.Errorf("render quote %s: %w", quote.QuoteNumber, err)
	}
	return &FileResult{
		FileName:    documentFileName("Quote", quote.QuoteNumber),
		ContentType: ContentTypePDF,
		Content:     content,
	}, nil
}

func (s *QuoteService) Export(ctx context.Context, filter model.ListFilter) (*FileResult, error) {
	quotes, err := s.quotes.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(quotes))
	for _, quote := range quotes {
		ids = append(ids, quote.ClientID)
	}
	clients, err := clientIndex(ctx, s.clients, ids)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Quotes(quotes, clients)
	if err != nil {
		return nil, fmt.Errorf("export quotes: %w", err)
	}
	return &FileResult{
		FileName:    fmt.Sprintf("quotes-%s.xlsx", s.now().Format("20060102")),
		ContentType: ContentTypeXLSX,
		Content:     content,
	}, nil
}

func (s *QuoteService) prepare(ctx context.Context, quote *model.Quote) error {
	model.NormalizeUnits(quote.Items)
	if err := validationError(quote.Validate()); err != nil {
		return err
	}
	if err := ensureClient(ctx, s.clients, quote.ClientID); err != nil {
		return err
	}

	vat := quote.VATPercentage
	totals := pricing.ComputeTotals(pricing.Draft{
		Items:         quote.Items,
		Charges:       quote.AdditionalCharges,
		Discounts:     quote.Discounts,
		VATPercentage: &vat,
	})
	if totals.VATBase < 0 {
		return fieldError("discounts", "discounts exceed subtotal plus additional charges")
	}

	quote.Subtotal = totals.Subtotal
	quote.TotalAdditionalCharges = totals.TotalAdditionalCharges
	quote.TotalDiscount = totals.TotalDiscount
	quote.VATPercentage = totals.VATPercentage
	quote.VATAmount = totals.VATAmount
	quote.GrandTotal = totals.GrandTotal
	return nil
}
