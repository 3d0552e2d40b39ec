package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/removals-office/internal/model"
)

type BookingRepository struct {
	store store[model.Booking]
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{store: store[model.Booking]{db: db}}
}

func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return r.store.create(ctx, booking)
}

func (r *BookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return r.store.get(ctx, id)
}

func (r *BookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	return r.store.update(ctx, booking)
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.delete(ctx, id)
}

// List filters on the move date rather than the creation date.
func (r *BookingRepository) List(ctx context.Context, filter model.ListFilter) (model.Page[model.Booking], error) {
	return r.store.list(ctx, filter, func(q *gorm.DB) *gorm.DB {
		q = searchScope(q, filter.Search, "pickup_address", "delivery_address", "notes")
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return dateRangeScope(q, "move_date", filter)
	}, "move_date DESC")
}
