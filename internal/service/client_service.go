package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/removals-office/internal/model"
)

type ClientService struct {
	clients ClientStore
}

func NewClientService(clients ClientStore) *ClientService {
	return &ClientService{clients: clients}
}

type ClientInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Company string
	Notes   string
}

func (in ClientInput) apply(client *model.Client) {
	client.Name = strings.TrimSpace(in.Name)
	client.Email = strings.TrimSpace(in.Email)
	client.Phone = strings.TrimSpace(in.Phone)
	client.Address = strings.TrimSpace(in.Address)
	client.Company = strings.TrimSpace(in.Company)
	client.Notes = in.Notes
}

func (s *ClientService) Create(ctx context.Context, input ClientInput) (*model.Client, error) {
	client := &model.Client{}
	input.apply(client)
	if err := validationError(client.Validate()); err != nil {
		return nil, err
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, storeError(err, "client")
	}
	return client, nil
}

func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, err := s.clients.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "client")
	}
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, input ClientInput) (*model.Client, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(client)
	if err := validationError(client.Validate()); err != nil {
		return nil, err
	}
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, storeError(err, "client")
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}
	return storeError(s.clients.Delete(ctx, id), "client")
}

func (s *ClientService) List(ctx context.Context, filter model.ListFilter) (model.Page[model.Client], error) {
	return s.clients.List(ctx, filter)
}

func requireAdmin(principal model.Principal) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	return nil
}
