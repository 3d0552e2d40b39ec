package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/nurpe/removals-office/internal/model"
)

type ClientStore interface {
	Create(ctx context.Context, client *model.Client) error
	Get(ctx context.Context, id uuid.UUID) (*model.Client, error)
	GetMany(ctx context.Context, ids []uuid.UUID) ([]model.Client, error)
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter model.ListFilter) (model.Page[model.Client], error)
}

type ItemStore interface {
	Create(ctx context.Context, item *model.Item) error
	Get(ctx context.Context, id uuid.UUID) (*model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter model.ListFilter) (model.Page[model.Item], error)
}

type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) error
	Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	Update(ctx context.Context, booking *model.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter model.ListFilter) (model.Page[model.Booking], error)
}

type QuoteStore interface {
	Create(ctx context.Context, quote *model.Quote) error
	Get(ctx context.Context, id uuid.UUID) (*model.Quote, error)
	Update(ctx context.Context, quote *model.Quote) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	ListNumbers(ctx context.Context, prefix string) ([]string, error)
	// ConvertToBooking stores booking and marks the quote converted in one
	// write. It returns repository.ErrStaleStatus if the quote is no longer
	// accepted.
	ConvertToBooking(ctx context.Context, quoteID uuid.UUID, booking *model.Booking) error
	List(ctx context.Context, filter model.ListFilter) (model.Page[model.Quote], error)
	ListAll(ctx context.Context, filter model.ListFilter) ([]model.Quote, error)
}

type InvoiceStore interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	Get(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	Update(ctx context.Context, invoice *model.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListNumbers(ctx context.Context, prefix string) ([]string, error)
	List(ctx context.Context, filter model.ListFilter) (model.Page[model.Invoice], error)
	ListAll(ctx context.Context, filter model.ListFilter) ([]model.Invoice, error)
}

type DocumentRenderer interface {
	Quote(doc model.QuoteDocument) ([]byte, error)
	Invoice(doc model.InvoiceDocument) ([]byte, error)
}

type ExcelGenerator interface {
	Quotes(quotes []model.Quote, clients map[uuid.UUID]model.Client) ([]byte, error)
	Invoices(invoices []model.Invoice, clients map[uuid.UUID]model.Client) ([]byte, error)
}

// FileResult is a generated download.
type FileResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)
