package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/removals-office/internal/model"
	"github.com/nurpe/removals-office/internal/service"
)

type bookingRequest struct {
	ClientID        string           `json:"clientId" binding:"required,uuid"`
	MoveDate        string           `json:"moveDate" binding:"required"`
	PickupAddress   string           `json:"pickupAddress" binding:"required"`
	DeliveryAddress string           `json:"deliveryAddress" binding:"required"`
	Status          string           `json:"status" binding:"omitempty,oneof=pending confirmed in_progress completed cancelled"`
	Items           []model.LineItem `json:"items"`
	Notes           string           `json:"notes"`
}

func (r bookingRequest) input() (service.BookingInput, error) {
	clientID, err := parseUUIDField("clientId", r.ClientID)
	if err != nil {
		return service.BookingInput{}, err
	}
	moveDate, err := parseOptionalDate("moveDate", r.MoveDate)
	if err != nil {
		return service.BookingInput{}, err
	}
	if moveDate == nil {
		return service.BookingInput{}, &service.ValidationError{Fields: model.FieldErrors{"moveDate": "moveDate is required"}}
	}
	return service.BookingInput{
		ClientID:        clientID,
		MoveDate:        *moveDate,
		PickupAddress:   r.PickupAddress,
		DeliveryAddress: r.DeliveryAddress,
		Status:          model.BookingStatus(r.Status),
		Items:           r.Items,
		Notes:           r.Notes,
	}, nil
}

// bookingInvoiceRequest is the optional body of POST /bookings/:id/invoice.
type bookingInvoiceRequest struct {
	ExtraCharges       []model.Charge `json:"extraCharges"`
	VATPercentage      *float64       `json:"vatPercentage" binding:"omitempty,gte=0,lte=100"`
	DueDate            string         `json:"dueDate"`
	Notes              string         `json:"notes"`
	TermsAndConditions string         `json:"termsAndConditions"`
}

func (h *Handler) listBookings(c *gin.Context) {
	filter, ok := parseListFilter(c)
	if !ok {
		return
	}
	page, err := h.bookings.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *Handler) createBooking(c *gin.Context) {
	var req bookingRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		h.handleError(c, err)
		return
	}
	booking, err := h.bookings.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, booking)
}

func (h *Handler) getBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	booking, err := h.bookings.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, booking)
}

func (h *Handler) updateBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req bookingRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		h.handleError(c, err)
		return
	}
	booking, err := h.bookings.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, booking)
}

func (h *Handler) deleteBooking(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.bookings.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, nil)
}

func (h *Handler) invoiceBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req bookingInvoiceRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	dueDate, err := parseOptionalDate("dueDate", req.DueDate)
	if err != nil {
		h.handleError(c, err)
		return
	}
	invoice, err := h.invoices.Create(c.Request.Context(), service.InvoiceInput{
		BookingID:          id,
		ExtraCharges:       req.ExtraCharges,
		VATPercentage:      req.VATPercentage,
		DueDate:            dueDate,
		Notes:              req.Notes,
		TermsAndConditions: req.TermsAndConditions,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, invoice)
}
