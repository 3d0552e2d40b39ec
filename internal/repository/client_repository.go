package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/removals-office/internal/model"
)

type ClientRepository struct {
	store store[model.Client]
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{store: store[model.Client]{db: db}}
}

func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	return r.store.create(ctx, client)
}

func (r *ClientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	return r.store.get(ctx, id)
}

func (r *ClientRepository) Update(ctx context.Context, client *model.Client) error {
	return r.store.update(ctx, client)
}

func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.delete(ctx, id)
}

func (r *ClientRepository) List(ctx context.Context, filter model.ListFilter) (model.Page[model.Client], error) {
	return r.store.list(ctx, filter, func(q *gorm.DB) *gorm.DB {
		q = searchScope(q, filter.Search, "name", "email", "phone", "company")
		return dateRangeScope(q, "created_at", filter)
	}, "name ASC")
}

func (r *ClientRepository) GetMany(ctx context.Context, ids []uuid.UUID) ([]model.Client, error) {
	if len(ids) == 0 {
		return []model.Client{}, nil
	}
	var clients []model.Client
	if err := r.store.db.WithContext(ctx).Where("id IN ?", ids).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}
