package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/removals-office/internal/model"
	"github.com/nurpe/removals-office/internal/service/servicetest"
)

func TestClientServiceCreateValidates(t *testing.T) {
	svc := NewClientService(servicetest.NewClients())

	_, err := svc.Create(context.Background(), ClientInput{Name: "  ", Email: "not-an-email"})
	require.ErrorIs(t, err, ErrInvalidInput)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name is required", verr.Fields["name"])
	assert.Equal(t, "email is not a valid address", verr.Fields["email"])
}

func TestClientServiceRejectsDuplicateNames(t *testing.T) {
	svc := NewClientService(servicetest.NewClients())
	ctx := context.Background()

	created, err := svc.Create(ctx, ClientInput{Name: " Thandi Mokoena ", Email: "thandi@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Thandi Mokoena", created.Name)
	assert.NotEqual(t, uuid.Nil, created.ID)

	_, err = svc.Create(ctx, ClientInput{Name: "thandi mokoena"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestClientServiceUpdateAndGet(t *testing.T) {
	store := servicetest.NewClients()
	svc := NewClientService(store)
	ctx := context.Background()
	client := store.Seed("Pieter Botha")

	updated, err := svc.Update(ctx, client.ID, ClientInput{Name: "Pieter Botha", Phone: "082 555 0101"})
	require.NoError(t, err)
	assert.Equal(t, "082 555 0101", updated.Phone)

	got, err := svc.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "082 555 0101", got.Phone)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRequiresAdmin(t *testing.T) {
	store := servicetest.NewClients()
	svc := NewClientService(store)
	ctx := context.Background()
	client := store.Seed("Pieter Botha")

	err := svc.Delete(ctx, staffUser, client.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, svc.Delete(ctx, adminUser, client.ID))
	assert.ErrorIs(t, svc.Delete(ctx, adminUser, client.ID), ErrNotFound)
}

func TestItemServiceDefaults(t *testing.T) {
	svc := NewItemService(servicetest.NewItems())

	item, err := svc.Create(context.Background(), ItemInput{Name: "Wardrobe", Category: " Furniture ", UnitPrice: 120})
	require.NoError(t, err)
	assert.Equal(t, model.ItemCategoryFurniture, item.Category)
	assert.Equal(t, model.DefaultUnit, item.Unit)

	_, err = svc.Create(context.Background(), ItemInput{Name: "Piano", Category: "instrument", UnitPrice: -1})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category")
	assert.Contains(t, verr.Fields, "unitPrice")
}
