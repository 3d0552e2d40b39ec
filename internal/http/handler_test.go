package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/removals-office/internal/auth"
	"github.com/nurpe/removals-office/internal/config"
	"github.com/nurpe/removals-office/internal/excel"
	"github.com/nurpe/removals-office/internal/http/middleware"
	"github.com/nurpe/removals-office/internal/mailer"
	"github.com/nurpe/removals-office/internal/model"
	"github.com/nurpe/removals-office/internal/pdf"
	"github.com/nurpe/removals-office/internal/service"
	"github.com/nurpe/removals-office/internal/service/servicetest"
)

const testSecret = "test-secret"

type testServer struct {
	t       *testing.T
	router  *gin.Engine
	clients *servicetest.Clients
	mailLog *bytes.Buffer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment: "test",
		HTTP:        config.HTTPConfig{AllowedOrigins: []string{"*"}},
		Company:     config.CompanyConfig{Name: "Swift Removals", Email: "office@swift.example"},
		Documents: config.DocumentsConfig{
			DefaultVATPercentage: 15,
			InvoiceDueDays:       30,
			NumberingMaxAttempts: 5,
		},
	}
	log := zerolog.Nop()
	mailLog := &bytes.Buffer{}

	clients := servicetest.NewClients()
	bookings := servicetest.NewBookings()
	quotes := servicetest.NewQuotes(bookings)
	invoices := servicetest.NewInvoices()
	renderer := pdf.NewGenerator()
	sheets := excel.NewGenerator()

	handler := NewHandler(Services{
		Clients:  service.NewClientService(clients),
		Items:    service.NewItemService(servicetest.NewItems()),
		Bookings: service.NewBookingService(bookings, clients),
		Quotes:   service.NewQuoteService(quotes, clients, renderer, sheets, cfg, log),
		Invoices: service.NewInvoiceService(invoices, bookings, clients, renderer, sheets, cfg, log),
		Email:    service.NewEmailService(mailer.NewLogMailer(zerolog.New(mailLog)), cfg),
	}, log)

	authMiddleware := middleware.Auth(auth.NewParser(testSecret))
	return &testServer{
		t:       t,
		router:  NewRouter(handler, authMiddleware, cfg, log),
		clients: clients,
		mailLog: mailLog,
	}
}

func token(t *testing.T, role model.Role) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Email: "ops@swift.example",
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

type response struct {
	Success    bool              `json:"success"`
	Data       json.RawMessage   `json:"data"`
	Pagination *pagination       `json:"pagination"`
	Error      string            `json:"error"`
	Errors     map[string]string `json:"errors"`
}

func (s *testServer) do(method, path string, body interface{}, role model.Role) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+token(s.t, role))
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) response {
	t.Helper()
	var out response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(out.Data, data))
	}
	return out
}

func TestHealthzIsPublic(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIRequiresToken(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/api/clients", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClientEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/clients", gin.H{"name": "Thandi Mokoena", "email": "thandi@example.com"}, model.RoleStaff)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var client model.Client
	out := decode(t, rec, &client)
	assert.True(t, out.Success)
	assert.Equal(t, "Thandi Mokoena", client.Name)

	rec = s.do(http.MethodPost, "/api/clients", gin.H{"name": "THANDI MOKOENA"}, model.RoleStaff)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, decode(t, rec, nil).Success)

	rec = s.do(http.MethodPost, "/api/clients", gin.H{"email": "nope"}, model.RoleStaff)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	out = decode(t, rec, nil)
	assert.Equal(t, "validation failed", out.Error)
	assert.Equal(t, "name is required", out.Errors["name"])
	assert.Equal(t, "email must be a valid email address", out.Errors["email"])

	rec = s.do(http.MethodGet, "/api/clients?page=1&limit=5", nil, model.RoleStaff)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.Client
	out = decode(t, rec, &list)
	require.Len(t, list, 1)
	require.NotNil(t, out.Pagination)
	assert.Equal(t, pagination{Page: 1, Limit: 5, Total: 1, Pages: 1}, *out.Pagination)

	rec = s.do(http.MethodGet, "/api/clients?limit=abc", nil, model.RoleStaff)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/clients/not-a-uuid", nil, model.RoleStaff)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(http.MethodGet, "/api/clients/"+uuid.NewString(), nil, model.RoleStaff)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	path := "/api/clients/" + client.ID.String()
	rec = s.do(http.MethodDelete, path, nil, model.RoleStaff)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(http.MethodDelete, path, nil, model.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestQuoteToInvoiceFlow(t *testing.T) {
	s := newTestServer(t)
	client := s.clients.Seed("Pieter Botha")
	now := time.Now()

	rec := s.do(http.MethodPost, "/api/quotes", gin.H{
		"clientId":          client.ID,
		"items":             []gin.H{{"name": "Sofa", "quantity": 2, "unitPrice": 10}},
		"additionalCharges": []gin.H{{"description": "Stairs", "amount": 5}},
		"discounts":         []gin.H{{"description": "Loyalty", "amount": 10, "type": "percentage"}},
		"moveDate":          "2025-03-14",
		"pickupAddress":     "12 Long Street",
		"deliveryAddress":   "4 Beach Road",
	}, model.RoleStaff)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var quote model.Quote
	decode(t, rec, &quote)
	assert.Equal(t, fmt.Sprintf("QT-%02d-00001", now.Year()%100), quote.QuoteNumber)
	assert.Equal(t, 26.45, quote.GrandTotal)
	assert.Equal(t, 3.45, quote.VATAmount)

	quotePath := "/api/quotes/" + quote.ID.String()
	rec = s.do(http.MethodGet, quotePath+"/pdf", nil, model.RoleStaff)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Quote_`+quote.QuoteNumber+`.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = s.do(http.MethodPost, quotePath+"/convert", nil, model.RoleStaff)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPatch, quotePath+"/status", gin.H{"status": "accepted"}, model.RoleStaff)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, quotePath+"/convert", nil, model.RoleStaff)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var booking model.Booking
	decode(t, rec, &booking)
	assert.Equal(t, model.BookingStatusConfirmed, booking.Status)

	rec = s.do(http.MethodPost, "/api/bookings/"+booking.ID.String()+"/invoice", nil, model.RoleStaff)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var invoice model.Invoice
	decode(t, rec, &invoice)
	assert.Equal(t, fmt.Sprintf("INV-%02d%02d-0001", now.Year()%100, int(now.Month())), invoice.InvoiceNumber)
	assert.Equal(t, 23.0, invoice.GrandTotal)

	invoicePath := "/api/invoices/" + invoice.ID.String()
	rec = s.do(http.MethodPut, invoicePath+"/payment", gin.H{"amountPaid": 10}, model.RoleStaff)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &invoice)
	assert.Equal(t, model.PaymentStatusPartiallyPaid, invoice.PaymentStatus)

	rec = s.do(http.MethodPut, invoicePath+"/payment", gin.H{}, model.RoleStaff)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, invoicePath+"/signature", gin.H{"signedBy": "Pieter Botha"}, model.RoleStaff)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(http.MethodPost, invoicePath+"/delivery", nil, model.RoleStaff)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &invoice)
	assert.True(t, invoice.DeliveryConfirmed)
	require.NotNil(t, invoice.Signature)

	rec = s.do(http.MethodGet, invoicePath+"/pdf", nil, model.RoleStaff)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Invoice_`+invoice.InvoiceNumber+`.pdf"`, rec.Header().Get("Content-Disposition"))

	rec = s.do(http.MethodDelete, invoicePath, nil, model.RoleAdmin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodGet, "/api/invoices/export", nil, model.RoleStaff)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ContentTypeXLSX, rec.Header().Get("Content-Type"))
}

func TestQuoteValidationErrors(t *testing.T) {
	s := newTestServer(t)
	client := s.clients.Seed("Pieter Botha")

	rec := s.do(http.MethodPost, "/api/quotes", gin.H{
		"clientId": client.ID,
		"items":    []gin.H{{"name": "Sofa", "quantity": 0, "unitPrice": 10}},
	}, model.RoleStaff)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	out := decode(t, rec, nil)
	assert.Equal(t, "quantity must be greater than zero", out.Errors["items[0].quantity"])

	rec = s.do(http.MethodPost, "/api/quotes", gin.H{"clientId": "abc"}, model.RoleStaff)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	out = decode(t, rec, nil)
	assert.Equal(t, "clientId must be a valid id", out.Errors["clientId"])

	rec = s.do(http.MethodPost, "/api/quotes", gin.H{"clientId": client.ID, "moveDate": "14/03/2025"}, model.RoleStaff)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	out = decode(t, rec, nil)
	assert.Contains(t, out.Errors, "moveDate")
}

func multipartEmail(t *testing.T, fields map[string]string, pdf []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if pdf != nil {
		part, err := writer.CreateFormFile("pdf", "Quote_QT-25-00001.pdf")
		require.NoError(t, err)
		_, err = part.Write(pdf)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestSendEmail(t *testing.T) {
	s := newTestServer(t)

	send := func(fields map[string]string, pdf []byte) *httptest.ResponseRecorder {
		body, contentType := multipartEmail(t, fields, pdf)
		req := httptest.NewRequest(http.MethodPost, "/api/email/send", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+token(t, model.RoleStaff))
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		return rec
	}

	rec := send(map[string]string{"documentNumber": "QT-25-00001"}, []byte("%PDF-1.3"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "recipient email is required", decode(t, rec, nil).Error)

	rec = send(map[string]string{
		"email":          "thandi@example.com",
		"documentNumber": "QT-25-00001",
		"documentType":   "Quote",
		"clientName":     "Thandi Mokoena",
	}, []byte("%PDF-1.3"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, s.mailLog.String(), "thandi@example.com")
	assert.Contains(t, s.mailLog.String(), "Quote_QT-25-00001.pdf")
}

func TestParseListFilterExtendsDateOnlyTo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/?from=2025-01-01&to=2025-01-31&limit=500&category=Box", nil)

	filter, ok := parseListFilter(c)
	require.True(t, ok)
	assert.Equal(t, model.MaxLimit, filter.Limit)
	assert.Equal(t, model.DefaultPage, filter.Page)
	assert.Equal(t, "box", filter.Category)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *filter.From)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), *filter.To)
}

func TestParseListFilterCapsPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=9223372036854775807&limit=100", nil)

	filter, ok := parseListFilter(c)
	require.True(t, ok)
	assert.Equal(t, model.MaxPage, filter.Page)
	assert.GreaterOrEqual(t, filter.Offset(), 0)
}
