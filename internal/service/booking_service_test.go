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

func TestBookingCreate(t *testing.T) {
	clients := servicetest.NewClients()
	client := clients.Seed("Thandi Mokoena")
	svc := NewBookingService(servicetest.NewBookings(), clients)

	booking, err := svc.Create(context.Background(), BookingInput{
		ClientID:        client.ID,
		MoveDate:        fixedNow,
		PickupAddress:   " 12 Long Street ",
		DeliveryAddress: "4 Beach Road",
		Items:           []model.LineItem{{Name: "Bed", Quantity: 2, UnitPrice: 45.5}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, booking.Status)
	assert.Equal(t, "12 Long Street", booking.PickupAddress)
	assert.Equal(t, 91.0, booking.Items[0].TotalPrice)
	assert.Equal(t, model.DefaultUnit, booking.Items[0].Unit)
}

func TestBookingValidation(t *testing.T) {
	svc := NewBookingService(servicetest.NewBookings(), servicetest.NewClients())
	ctx := context.Background()

	_, err := svc.Create(ctx, BookingInput{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "clientId")
	assert.Contains(t, verr.Fields, "moveDate")
	assert.Contains(t, verr.Fields, "pickupAddress")
	assert.Contains(t, verr.Fields, "deliveryAddress")

	_, err = svc.Create(ctx, BookingInput{
		ClientID:        uuid.New(),
		MoveDate:        fixedNow,
		PickupAddress:   "A",
		DeliveryAddress: "B",
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "client does not exist", verr.Fields["clientId"])
}

func TestBookingUpdateStatus(t *testing.T) {
	clients := servicetest.NewClients()
	client := clients.Seed("Thandi Mokoena")
	svc := NewBookingService(servicetest.NewBookings(), clients)
	ctx := context.Background()

	input := BookingInput{ClientID: client.ID, MoveDate: fixedNow, PickupAddress: "A", DeliveryAddress: "B"}
	booking, err := svc.Create(ctx, input)
	require.NoError(t, err)

	input.Status = model.BookingStatusInProgress
	updated, err := svc.Update(ctx, booking.ID, input)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusInProgress, updated.Status)

	input.Status = "lost"
	_, err = svc.Update(ctx, booking.ID, input)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
