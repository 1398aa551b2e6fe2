package menu

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

// GET /vendors
func (h *Handler) ListVendors(c *gin.Context) {
	vendors, err := h.service.ListVendors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch vendors"})
		return
	}

	c.JSON(http.StatusOK, vendors)
}

// GET /vendors/:id/menu
func (h *Handler) GetVendorMenu(c *gin.Context) {
	menu, err := h.service.GetVendorMenu(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, menu)
}

// POST /vendors
func (h *Handler) CreateVendor(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	vendor, err := h.service.CreateVendor(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		req.Name,
		req.Location,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, vendor)
}

// POST /vendors/:id/items
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var item MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// vendor comes from the path, never the body
	item.VendorID = c.Param("id")

	if err := h.service.CreateMenuItem(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		&item,
	); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// POST /menu-items/:id/image
func (h *Handler) UploadItemImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	defer file.Close()

	url, err := h.service.UploadItemImage(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.Param("id"),
		file,
		header.Filename,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrVendorNotFound), errors.Is(err, ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidItem), errors.Is(err, ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
