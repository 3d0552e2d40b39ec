package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/removals-office/internal/model"
	"github.com/nurpe/removals-office/internal/service"
)

type invoiceRequest struct {
	BookingID          string           `json:"bookingId"`
	Items              []model.LineItem `json:"items"`
	ExtraCharges       []model.Charge   `json:"extraCharges"`
	VATPercentage      *float64         `json:"vatPercentage" binding:"omitempty,gte=0,lte=100"`
	DueDate            string           `json:"dueDate"`
	Notes              string           `json:"notes"`
	TermsAndConditions string           `json:"termsAndConditions"`
}

func (r invoiceRequest) input() (service.InvoiceInput, error) {
	dueDate, err := parseOptionalDate("dueDate", r.DueDate)
	if err != nil {
		return service.InvoiceInput{}, err
	}
	return service.InvoiceInput{
		Items:              r.Items,
		ExtraCharges:       r.ExtraCharges,
		VATPercentage:      r.VATPercentage,
		DueDate:            dueDate,
		Notes:              r.Notes,
		TermsAndConditions: r.TermsAndConditions,
	}, nil
}

type paymentRequest struct {
	AmountPaid *float64 `json:"amountPaid" binding:"required"`
}

type signatureRequest struct {
	SignedBy      string `json:"signedBy" binding:"required"`
	SignatureData string `json:"signatureData"`
}

func (h *Handler) listInvoices(c *gin.Context) {
	filter, ok := parseListFilter(c)
	if !ok {
		return
	}
	page, err := h.invoices.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *Handler) createInvoice(c *gin.Context) {
	var req invoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	bookingID, err := parseUUIDField("bookingId", req.BookingID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	input, err := req.input()
	if err != nil {
		h.handleError(c, err)
		return
	}
	input.BookingID = bookingID
	invoice, err := h.invoices.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, invoice)
}

func (h *Handler) getInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	invoice, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, invoice)
}

func (h *Handler) updateInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req invoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		h.handleError(c, err)
		return
	}
	invoice, err := h.invoices.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, invoice)
}

func (h *Handler) deleteInvoice(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.invoices.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, nil)
}

func (h *Handler) updateInvoiceStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	invoice, err := h.invoices.UpdateStatus(c.Request.Context(), id, model.InvoiceStatus(req.Status))
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, invoice)
}

func (h *Handler) recordPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req paymentRequest
	if !bindJSON(c, &req) {
		return
	}
	invoice, err := h.invoices.RecordPayment(c.Request.Context(), id, *req.AmountPaid)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, invoice)
}

func (h *Handler) signInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req signatureRequest
	if !bindJSON(c, &req) {
		return
	}
	invoice, err := h.invoices.Sign(c.Request.Context(), id, service.SignatureInput{
		SignedBy: req.SignedBy,
		Data:     req.SignatureData,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, invoice)
}

func (h *Handler) confirmDelivery(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	invoice, err := h.invoices.ConfirmDelivery(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, invoice)
}

func (h *Handler) invoicePDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	file, err := h.invoices.RenderPDF(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondFile(c, file)
}

func (h *Handler) exportInvoices(c *gin.Context) {
	filter, ok := parseListFilter(c)
	if !ok {
		return
	}
	file, err := h.invoices.Export(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondFile(c, file)
}
