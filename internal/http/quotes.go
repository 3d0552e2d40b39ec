package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/removals-office/internal/model"
	"github.com/nurpe/removals-office/internal/service"
)

type quoteRequest struct {
	ClientID           string           `json:"clientId" binding:"required,uuid"`
	Items              []model.LineItem `json:"items"`
	AdditionalCharges  []model.Charge   `json:"additionalCharges"`
	Discounts          []model.Discount `json:"discounts"`
	VATPercentage      *float64         `json:"vatPercentage" binding:"omitempty,gte=0,lte=100"`
	ValidUntil         string           `json:"validUntil"`
	MoveDate           string           `json:"moveDate"`
	PickupAddress      string           `json:"pickupAddress"`
	DeliveryAddress    string           `json:"deliveryAddress"`
	Notes              string           `json:"notes"`
	TermsAndConditions string           `json:"termsAndConditions"`
}

func (r quoteRequest) input() (service.QuoteInput, error) {
	clientID, err := parseUUIDField("clientId", r.ClientID)
	if err != nil {
		return service.QuoteInput{}, err
	}
	validUntil, err := parseOptionalDate("validUntil", r.ValidUntil)
	if err != nil {
		return service.QuoteInput{}, err
	}
	moveDate, err := parseOptionalDate("moveDate", r.MoveDate)
	if err != nil {
		return service.QuoteInput{}, err
	}
	return service.QuoteInput{
		ClientID:           clientID,
		Items:              r.Items,
		AdditionalCharges:  r.AdditionalCharges,
		Discounts:          r.Discounts,
		VATPercentage:      r.VATPercentage,
		ValidUntil:         validUntil,
		MoveDate:           moveDate,
		PickupAddress:      r.PickupAddress,
		DeliveryAddress:    r.DeliveryAddress,
		Notes:              r.Notes,
		TermsAndConditions: r.TermsAndConditions,
	}, nil
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) listQuotes(c *gin.Context) {
	filter, ok := parseListFilter(c)
	if !ok {
		return
	}
	page, err := h.quotes.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *Handler) createQuote(c *gin.Context) {
	var req quoteRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		h.handleError(c, err)
		return
	}
	quote, err := h.quotes.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, quote)
}

func (h *Handler) getQuote(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	quote, err := h.quotes.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, quote)
}

func (h *Handler) updateQuote(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req quoteRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		h.handleError(c, err)
		return
	}
	quote, err := h.quotes.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, quote)
}

func (h *Handler) deleteQuote(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.quotes.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, nil)
}

func (h *Handler) updateQuoteStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	quote, err := h.quotes.UpdateStatus(c.Request.Context(), id, model.QuoteStatus(req.Status))
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, quote)
}

func (h *Handler) convertQuote(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	booking, err := h.quotes.Convert(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, booking)
}

func (h *Handler) quotePDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	file, err := h.quotes.RenderPDF(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondFile(c, file)
}

func (h *Handler) exportQuotes(c *gin.Context) {
	filter, ok := parseListFilter(c)
	if !ok {
		return
	}
	file, err := h.quotes.Export(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondFile(c, file)
}
