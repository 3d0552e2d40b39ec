package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/removals-office/internal/model"
)

// store holds the persistence steps shared by every record type.
type store[T any] struct {
	db *gorm.DB
}

func (s store[T]) create(ctx context.Context, entity *T) error {
	return translateError(s.db.WithContext(ctx).Create(entity).Error)
}

func (s store[T]) get(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (s store[T]) update(ctx context.Context, entity *T) error {
	result := s.db.WithContext(ctx).
		Model(entity).
		Select("*").
		Omit("id", "created_at").
		Updates(entity)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s store[T]) delete(ctx context.Context, id uuid.UUID) error {
	var entity T
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s store[T]) list(
	ctx context.Context,
	filter model.ListFilter,
	scope func(*gorm.DB) *gorm.DB,
	order string,
) (model.Page[T], error) {
	filter = filter.Normalize()
	var entity T

	query := scope(s.db.WithContext(ctx).Model(&entity))

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return model.Page[T]{}, err
	}

	items := make([]T, 0, filter.Limit)
	if err := query.Session(&gorm.Session{}).
		Order(order).
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&items).Error; err != nil {
		return model.Page[T]{}, err
	}

	return model.Page[T]{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s store[T]) all(ctx context.Context, scope func(*gorm.DB) *gorm.DB, order string) ([]T, error) {
	var entity T
	var items []T
	if err := scope(s.db.WithContext(ctx).Model(&entity)).Order(order).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func searchScope(query *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + escapeLike(term) + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, column := range columns {
		clauses[i] = column + " ILIKE ?"
		args[i] = pattern
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

func dateRangeScope(query *gorm.DB, column string, filter model.ListFilter) *gorm.DB {
	if filter.From != nil {
		query = query.Where(column+" >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where(column+" < ?", *filter.To)
	}
	return query
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
