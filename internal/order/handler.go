package order

import (
	"errors"
	"net/http"

	"bandiwala/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// POST /orders
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req struct {
		DeliveryAddress string `json:"deliveryAddress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	o, err := h.service.PlaceOrder(c.Request.Context(), c.GetString(middleware.ContextUserID), req.DeliveryAddress)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, o)
}

// GET /orders
func (h *Handler) ListMyOrders(c *gin.Context) {
	orders, err := h.service.ListMyOrders(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GET /orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.service.GetOrder(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.GetString(middleware.ContextUserRole),
		c.Param("id"),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

// PATCH /orders/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	o, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrMissingAddress), errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrStatusConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process order"})
	}
}
