package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/removals-office/internal/model"
)

type ItemRepository struct {
	store store[model.Item]
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{store: store[model.Item]{db: db}}
}

func (r *ItemRepository) Create(ctx context.Context, item *model.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return r.store.create(ctx, item)
}

func (r *ItemRepository) Get(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	return r.store.get(ctx, id)
}

func (r *ItemRepository) Update(ctx context.Context, item *model.Item) error {
	return r.store.update(ctx, item)
}

func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.delete(ctx, id)
}

func (r *ItemRepository) List(ctx context.Context, filter model.ListFilter) (model.Page[model.Item], error) {
	return r.store.list(ctx, filter, func(q *gorm.DB) *gorm.DB {
		q = searchScope(q, filter.Search, "name", "description")
		if filter.Category != "" {
			q = q.Where("category = ?", filter.Category)
		}
		return dateRangeScope(q, "created_at", filter)
	}, "name ASC")
}
