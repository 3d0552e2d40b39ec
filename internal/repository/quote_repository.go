package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/removals-office/internal/model"
)

type QuoteRepository struct {
	db    *gorm.DB
	store store[model.Quote]
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db, store: store[model.Quote]{db: db}}
}

// Create returns ErrNumberTaken when the quote number is already in use.
func (r *QuoteRepository) Create(ctx context.Context, quote *model.Quote) error {
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	return r.store.create(ctx, quote)
}

func (r *QuoteRepository) Get(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	return r.store.get(ctx, id)
}

func (r *QuoteRepository) Update(ctx context.Context, quote *model.Quote) error {
	return r.store.update(ctx, quote)
}

func (r *QuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.delete(ctx, id)
}

// Count returns the number of quotes across all periods.
func (r *QuoteRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM quotes`).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ListNumbers returns every quote number starting with prefix, ascending.
func (r *QuoteRepository) ListNumbers(ctx context.Context, prefix string) ([]string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT quote_number
		FROM quotes
		WHERE quote_number LIKE ?
		ORDER BY quote_number ASC
	`, escapeLike(prefix)+"%").Scan(&numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

// ConvertToBooking inserts booking and flips the quote to converted in one
// transaction. The quote update only matches while the quote is accepted, so
// a concurrent conversion rolls back with ErrStaleStatus.
func (r *QuoteRepository) ConvertToBooking(ctx context.Context, quoteID uuid.UUID, booking *model.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return err
		}
		result := tx.Model(&model.Quote{}).
			Where("id = ? AND status = ?", quoteID, model.QuoteStatusAccepted).
			Updates(map[string]interface{}{
				"status":               model.QuoteStatusConverted,
				"converted_booking_id": booking.ID,
				"updated_at":           time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleStatus
		}
		return nil
	})
	return translateError(err)
}

func (r *QuoteRepository) List(ctx context.Context, filter model.ListFilter) (model.Page[model.Quote], error) {
	return r.store.list(ctx, filter, r.scope(filter), "created_at DESC")
}

func (r *QuoteRepository) ListAll(ctx context.Context, filter model.ListFilter) ([]model.Quote, error) {
	return r.store.all(ctx, r.scope(filter), "quote_number ASC")
}

func (r *QuoteRepository) scope(filter model.ListFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		q = searchScope(q, filter.Search, "quote_number", "notes", "pickup_address", "delivery_address")
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return dateRangeScope(q, "created_at", filter)
	}
}
