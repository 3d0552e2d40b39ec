package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/removals-office/internal/model"
)

type InvoiceRepository struct {
	db    *gorm.DB
	store store[model.Invoice]
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db, store: store[model.Invoice]{db: db}}
}

// Create returns ErrNumberTaken when the invoice number is already in use.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	return r.store.create(ctx, invoice)
}

func (r *InvoiceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	return r.store.get(ctx, id)
}

func (r *InvoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return r.store.update(ctx, invoice)
}

func (r *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.delete(ctx, id)
}

// ListNumbers returns every invoice number starting with prefix, ascending.
func (r *InvoiceRepository) ListNumbers(ctx context.Context, prefix string) ([]string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT invoice_number
		FROM invoices
		WHERE invoice_number LIKE ?
		ORDER BY invoice_number ASC
	`, escapeLike(prefix)+"%").Scan(&numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

func (r *InvoiceRepository) List(ctx context.Context, filter model.ListFilter) (model.Page[model.Invoice], error) {
	return r.store.list(ctx, filter, r.scope(filter), "created_at DESC")
}

func (r *InvoiceRepository) ListAll(ctx context.Context, filter model.ListFilter) ([]model.Invoice, error) {
	return r.store.all(ctx, r.scope(filter), "invoice_number ASC")
}

func (r *InvoiceRepository) scope(filter model.ListFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		q = searchScope(q, filter.Search, "invoice_number", "notes")
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return dateRangeScope(q, "created_at", filter)
	}
}
