package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/removals-office/internal/model"
	"github.com/nurpe/removals-office/internal/service"
)

type itemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice" binding:"gte=0"`
	VolumeM3    float64 `json:"volumeM3" binding:"gte=0"`
	Description string  `json:"description"`
}

func (r itemRequest) input() service.ItemInput {
	return service.ItemInput{
		Name:        r.Name,
		Category:    model.ItemCategory(r.Category),
		Unit:        r.Unit,
		UnitPrice:   r.UnitPrice,
		VolumeM3:    r.VolumeM3,
		Description: r.Description,
	}
}

func (h *Handler) listItems(c *gin.Context) {
	filter, ok := parseListFilter(c)
	if !ok {
		return
	}
	page, err := h.items.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *Handler) createItem(c *gin.Context) {
	var req itemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.items.Create(c.Request.Context(), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, item)
}

func (h *Handler) getItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.items.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, item)
}

func (h *Handler) updateItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req itemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.items.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, item)
}

func (h *Handler) deleteItem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.items.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, nil)
}
