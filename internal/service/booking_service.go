package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/removals-office/internal/model"
	"github.com/nurpe/removals-office/internal/pricing"
)

type BookingService struct {
	bookings BookingStore
	clients  ClientStore
}

func NewBookingService(bookings BookingStore, clients ClientStore) *BookingService {
	return &BookingService{bookings: bookings, clients: clients}
}

type BookingInput struct {
	ClientID        uuid.UUID
	MoveDate        time.Time
	PickupAddress   string
	DeliveryAddress string
	Status          model.BookingStatus
	Items           []model.LineItem
	Notes           string
}

func (in BookingInput) apply(booking *model.Booking) {
	booking.ClientID = in.ClientID
	booking.MoveDate = in.MoveDate
	booking.PickupAddress = strings.TrimSpace(in.PickupAddress)
	booking.DeliveryAddress = strings.TrimSpace(in.DeliveryAddress)
	if in.Status != "" {
		booking.Status = in.Status
	}
	booking.Items = cloneItems(in.Items)
	booking.Notes = in.Notes
}

func (s *BookingService) Create(ctx context.Context, input BookingInput) (*model.Booking, error) {
	booking := &model.Booking{Status: model.BookingStatusPending}
	input.apply(booking)
	if err := s.prepare(ctx, booking); err != nil {
		return nil, err
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, storeError(err, "booking")
	}
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "booking")
	}
	return booking, nil
}

func (s *BookingService) Update(ctx context.Context, id uuid.UUID, input BookingInput) (*model.Booking, error) {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(booking)
	if err := s.prepare(ctx, booking); err != nil {
		return nil, err
	}
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, storeError(err, "booking")
	}
	return booking, nil
}

func (s *BookingService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}
	return storeError(s.bookings.Delete(ctx, id), "booking")
}

func (s *BookingService) List(ctx context.Context, filter model.ListFilter) (model.Page[model.Booking], error) {
	return s.bookings.List(ctx, filter)
}

func (s *BookingService) prepare(ctx context.Context, booking *model.Booking) error {
	model.NormalizeUnits(booking.Items)
	if err := validationError(booking.Validate()); err != nil {
		return err
	}
	if err := ensureClient(ctx, s.clients, booking.ClientID); err != nil {
		return err
	}
	pricing.ComputeTotals(pricing.Draft{Items: booking.Items})
	return nil
}

func ensureClient(ctx context.Context, clients ClientStore, id uuid.UUID) error {
	_, err := clients.Get(ctx, id)
	if err == nil {
		return nil
	}
	if errors.Is(storeError(err, "client"), ErrNotFound) {
		return fieldError("clientId", "client does not exist")
	}
	return err
}

func cloneItems(items []model.LineItem) []model.LineItem {
	if items == nil {
		return []model.LineItem{}
	}
	out := make([]model.LineItem, len(items))
	copy(out, items)
	return out
}
