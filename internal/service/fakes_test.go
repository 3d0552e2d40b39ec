package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/nurpe/removals-office/internal/config"
	"github.com/nurpe/removals-office/internal/mailer"
	"github.com/nurpe/removals-office/internal/model"
)

var (
	fixedNow  = time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	adminUser = model.Principal{UserID: uuid.New(), Role: model.RoleAdmin}
	staffUser = model.Principal{UserID: uuid.New(), Role: model.RoleStaff}
)

func testConfig() *config.Config {
	return &config.Config{
		Company: config.CompanyConfig{Name: "Swift Removals", Email: "office@swift.example"},
		Documents: config.DocumentsConfig{
			DefaultVATPercentage: 15,
			InvoiceDueDays:       30,
			NumberingMaxAttempts: 5,
		},
	}
}

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Quote(doc model.QuoteDocument) ([]byte, error) {
	args := m.Called(doc)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func (m *mockRenderer) Invoice(doc model.InvoiceDocument) ([]byte, error) {
	args := m.Called(doc)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

type mockExcel struct {
	mock.Mock
}

func (m *mockExcel) Quotes(quotes []model.Quote, clients map[uuid.UUID]model.Client) ([]byte, error) {
	args := m.Called(quotes, clients)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func (m *mockExcel) Invoices(invoices []model.Invoice, clients map[uuid.UUID]model.Client) ([]byte, error) {
	args := m.Called(invoices, clients)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, msg mailer.Message) error {
	return m.Called(ctx, msg).Error(0)
}

var errStoreDown = errors.New("store unavailable")

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}
