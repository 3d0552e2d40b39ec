package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/removals-office/internal/service"
)

type clientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
}

func (r clientRequest) input() service.ClientInput {
	return service.ClientInput{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		Company: r.Company,
		Notes:   r.Notes,
	}
}

func (h *Handler) listClients(c *gin.Context) {
	filter, ok := parseListFilter(c)
	if !ok {
		return
	}
	page, err := h.clients.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *Handler) createClient(c *gin.Context) {
	var req clientRequest
	if !bindJSON(c, &req) {
		return
	}
	client, err := h.clients.Create(c.Request.Context(), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, client)
}

func (h *Handler) getClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, client)
}

func (h *Handler) updateClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req clientRequest
	if !bindJSON(c, &req) {
		return
	}
	client, err := h.clients.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, client)
}

func (h *Handler) deleteClient(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.clients.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, nil)
}
