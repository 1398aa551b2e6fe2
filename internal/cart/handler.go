package cart

import (
	"errors"
	"net/http"

	"bandiwala/internal/menu"
	"bandiwala/internal/middleware"
	"bandiwala/internal/pricing"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GET /cart
func (h *Handler) GetCart(c *gin.Context) {
	view, err := h.service.GetCart(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// POST /cart/items
func (h *Handler) AddItem(c *gin.Context) {
	var req struct {
		MenuItemID  string `json:"menuItemId"`
		Subcategory string `json:"subcategory"`
		Quantity    int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.MenuItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menuItemId, subcategory and quantity are required"})
		return
	}

	view, err := h.service.AddItem(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		req.MenuItemID,
		req.Subcategory,
		req.Quantity,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// PATCH /cart/items/:menuItemId
func (h *Handler) UpdateItem(c *gin.Context) {
	var req struct {
		Subcategory string `json:"subcategory"`
		Quantity    *int   `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subcategory and quantity are required"})
		return
	}

	view, err := h.service.UpdateQuantity(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.Param("menuItemId"),
		req.Subcategory,
		*req.Quantity,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// DELETE /cart/items/:menuItemId?subcategory=
func (h *Handler) RemoveItem(c *gin.Context) {
	view, err := h.service.RemoveItem(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.Param("menuItemId"),
		c.Query("subcategory"),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// DELETE /cart
func (h *Handler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), c.GetString(middleware.ContextUserID)); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrItemUnavailable),
		errors.Is(err, pricing.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrLineNotFound),
		errors.Is(err, ErrUnknownSubcategory),
		errors.Is(err, menu.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process cart"})
	}
}
