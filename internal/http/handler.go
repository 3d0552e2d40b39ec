package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/removals-office/internal/http/middleware"
	"github.com/nurpe/removals-office/internal/model"
	"github.com/nurpe/removals-office/internal/service"
)

type Services struct {
	Clients  *service.ClientService
	Items    *service.ItemService
	Bookings *service.BookingService
	Quotes   *service.QuoteService
	Invoices *service.InvoiceService
	Email    *service.EmailService
}

type Handler struct {
	clients  *service.ClientService
	items    *service.ItemService
	bookings *service.BookingService
	quotes   *service.QuoteService
	invoices *service.InvoiceService
	email    *service.EmailService
	log      zerolog.Logger
}

func NewHandler(services Services, log zerolog.Logger) *Handler {
	return &Handler{
		clients:  services.Clients,
		items:    services.Items,
		bookings: services.Bookings,
		quotes:   services.Quotes,
		invoices: services.Invoices,
		email:    services.Email,
		log:      log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := router.Group("/api")
	api.Use(authMiddleware)

	clients := api.Group("/clients")
	clients.GET("", h.listClients)
	clients.POST("", h.createClient)
	clients.GET("/:id", h.getClient)
	clients.PUT("/:id", h.updateClient)
	clients.DELETE("/:id", h.deleteClient)

	items := api.Group("/items")
	items.GET("", h.listItems)
	items.POST("", h.createItem)
	items.GET("/:id", h.getItem)
	items.PUT("/:id", h.updateItem)
	items.DELETE("/:id", h.deleteItem)

	bookings := api.Group("/bookings")
	bookings.GET("", h.listBookings)
	bookings.POST("", h.createBooking)
	bookings.GET("/:id", h.getBooking)
	bookings.PUT("/:id", h.updateBooking)
	bookings.DELETE("/:id", h.deleteBooking)
	bookings.POST("/:id/invoice", h.invoiceBooking)

	quotes := api.Group("/quotes")
	quotes.GET("", h.listQuotes)
	quotes.POST("", h.createQuote)
	quotes.GET("/export", h.exportQuotes)
	quotes.GET("/:id", h.getQuote)
	quotes.PUT("/:id", h.updateQuote)
	quotes.DELETE("/:id", h.deleteQuote)
	quotes.PATCH("/:id/status", h.updateQuoteStatus)
	quotes.POST("/:id/convert", h.convertQuote)
	quotes.GET("/:id/pdf", h.quotePDF)

	invoices := api.Group("/invoices")
	invoices.GET("", h.listInvoices)
	invoices.POST("", h.createInvoice)
	invoices.GET("/export", h.exportInvoices)
	invoices.GET("/:id", h.getInvoice)
	invoices.PUT("/:id", h.updateInvoice)
	invoices.DELETE("/:id", h.deleteInvoice)
	invoices.PATCH("/:id/status", h.updateInvoiceStatus)
	invoices.PUT("/:id/payment", h.recordPayment)
	invoices.PUT("/:id/signature", h.signInvoice)
	invoices.POST("/:id/delivery", h.confirmDelivery)
	invoices.GET("/:id/pdf", h.invoicePDF)

	api.POST("/email/send", h.sendEmail)
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type envelope struct {
	Success    bool              `json:"success"`
	Data       interface{}       `json:"data,omitempty"`
	Pagination *pagination       `json:"pagination,omitempty"`
	Error      string            `json:"error,omitempty"`
	Errors     model.FieldErrors `json:"errors,omitempty"`
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func respondPage[T any](c *gin.Context, page model.Page[T]) {
	c.JSON(http.StatusOK, envelope{
		Success: true,
		Data:    page.Items,
		Pagination: &pagination{
			Page:  page.Page,
			Limit: page.Limit,
			Total: page.Total,
			Pages: page.Pages(),
		},
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, envelope{Error: message})
}

func respondFile(c *gin.Context, file *service.FileResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+file.FileName+"\"")
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, envelope{Error: validationSummary(verr.Fields), Errors: verr.Fields})
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		respondError(c, http.StatusConflict, err.Error())
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}

// bindJSON decodes the request body and answers 400 itself on failure.
func bindJSON(c *gin.Context, target interface{}) bool {
	err := c.ShouldBindJSON(target)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := fieldErrors(verrs)
		c.AbortWithStatusJSON(http.StatusBadRequest, envelope{Error: validationSummary(fields), Errors: fields})
		return false
	}
	respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
	return false
}

// validationSummary repeats a lone field message, otherwise stays generic.
func validationSummary(fields model.FieldErrors) string {
	if len(fields) == 1 {
		for _, message := range fields {
			return message
		}
	}
	return "validation failed"
}

func fieldErrors(verrs validator.ValidationErrors) model.FieldErrors {
	fields := model.FieldErrors{}
	for _, fe := range verrs {
		path := fe.Namespace()
		if _, rest, found := strings.Cut(path, "."); found {
			path = rest
		}
		fields.Add(path, validationMessage(fe))
	}
	return fields
}

func validationMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "uuid":
		return name + " must be a valid id"
	case "oneof":
		return name + " must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gt":
		return name + " must be greater than " + fe.Param()
	case "gte":
		return name + " must be at least " + fe.Param()
	case "lte":
		return name + " must be at most " + fe.Param()
	}
	return name + " is invalid"
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func principal(c *gin.Context) (model.Principal, bool) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing principal")
	}
	return p, ok
}

// parseListFilter reads paging, search and date range query parameters.
// A date-only "to" includes the whole day.
func parseListFilter(c *gin.Context) (model.ListFilter, bool) {
	filter := model.ListFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   strings.TrimSpace(c.Query("status")),
		Category: strings.ToLower(strings.TrimSpace(c.Query("category"))),
	}
	for key, target := range map[string]*int{"page": &filter.Page, "limit": &filter.Limit} {
		raw := strings.TrimSpace(c.Query(key))
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid "+key)
			return model.ListFilter{}, false
		}
		*target = value
	}
	if raw := c.Query("from"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid from")
			return model.ListFilter{}, false
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid to")
			return model.ListFilter{}, false
		}
		if isDateOnly(raw) {
			to = to.Add(24 * time.Hour)
		}
		filter.To = &to
	}
	return filter.Normalize(), true
}

func isDateOnly(raw string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	return err == nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

// parseOptionalDate accepts an empty value as "not set".
func parseOptionalDate(field, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parsed, err := parseDate(raw)
	if err != nil {
		return nil, &service.ValidationError{Fields: model.FieldErrors{field: field + " must be a date (YYYY-MM-DD or RFC 3339)"}}
	}
	return &parsed, nil
}

func parseUUIDField(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, &service.ValidationError{Fields: model.FieldErrors{field: field + " must be a valid id"}}
	}
	return id, nil
}
