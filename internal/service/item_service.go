package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/removals-office/internal/model"
)

type ItemService struct {
	items ItemStore
}

func NewItemService(items ItemStore) *ItemService {
	return &ItemService{items: items}
}

type ItemInput struct {
	Name        string
	Category    model.ItemCategory
	Unit        string
	UnitPrice   float64
	VolumeM3    float64
	Description string
}

func (in ItemInput) apply(item *model.Item) {
	item.Name = strings.TrimSpace(in.Name)
	item.Category = model.ItemCategory(strings.ToLower(strings.TrimSpace(string(in.Category))))
	item.Unit = strings.TrimSpace(in.Unit)
	if item.Unit == "" {
		item.Unit = model.DefaultUnit
	}
	item.UnitPrice = in.UnitPrice
	item.VolumeM3 = in.VolumeM3
	item.Description = in.Description
}

func (s *ItemService) Create(ctx context.Context, input ItemInput) (*model.Item, error) {
	item := &model.Item{}
	input.apply(item)
	if err := validationError(item.Validate()); err != nil {
		return nil, err
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, storeError(err, "item")
	}
	return item, nil
}

func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "item")
	}
	return item, nil
}

func (s *ItemService) Update(ctx context.Context, id uuid.UUID, input ItemInput) (*model.Item, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(item)
	if err := validationError(item.Validate()); err != nil {
		return nil, err
	}
	if err := s.items.Update(ctx, item); err != nil {
		return nil, storeError(err, "item")
	}
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}
	return storeError(s.items.Delete(ctx, id), "item")
}

func (s *ItemService) List(ctx context.Context, filter model.ListFilter) (model.Page[model.Item], error) {
	return s.items.List(ctx, filter)
}
