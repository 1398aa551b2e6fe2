package router

import (
	"net/http"
	"time"

	"bandiwala/internal/auth"
	"bandiwala/internal/cart"
	"bandiwala/internal/menu"
	"bandiwala/internal/metrics"
	"bandiwala/internal/middleware"
	"bandiwala/internal/order"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the HTTP surface exposes.
type Handlers struct {
	Auth  *auth.Handler
	Menu  *menu.Handler
	Cart  *cart.Handler
	Order *order.Handler

	// Tokens validates bearer tokens on protected routes.
	Tokens *auth.Tokens

	// Metrics is optional; nil disables /metrics.
	Metrics *metrics.ServerMetrics
}

func NewRouter(h Handlers, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	if len(corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	// ───────────────────────── MENU (PUBLIC) ─────────────────────────
	r.GET("/vendors", h.Menu.ListVendors)
	r.GET("/vendors/:id/menu", h.Menu.GetVendorMenu)

	// ───────────────────────── MENU (VENDOR) ─────────────────────────
	vendorOnly := r.Group("")
	vendorOnly.Use(
		middleware.AuthMiddleware(h.Tokens),
		middleware.RequireRole(auth.RoleVendor, auth.RoleAdmin),
	)
	{
		vendorOnly.POST("/vendors", h.Menu.CreateVendor)
		vendorOnly.POST("/vendors/:id/items", h.Menu.CreateMenuItem)
		vendorOnly.POST("/menu-items/:id/image", h.Menu.UploadItemImage)
	}

	// ───────────────────────── CART ─────────────────────────
	carts := r.Group("/cart")
	carts.Use(middleware.AuthMiddleware(h.Tokens))
	{
		carts.GET("", h.Cart.GetCart)
		carts.POST("/items", h.Cart.AddItem)
		carts.PATCH("/items/:menuItemId", h.Cart.UpdateItem)
		carts.DELETE("/items/:menuItemId", h.Cart.RemoveItem)
		carts.DELETE("", h.Cart.Clear)
	}

	// ───────────────────────── ORDERS ─────────────────────────
	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware(h.Tokens))
	{
		orders.POST("", h.Order.PlaceOrder)
		orders.GET("", h.Order.ListMyOrders)
		orders.GET("/:id", h.Order.GetOrder)
		orders.PATCH("/:id/status",
			middleware.RequireRole(auth.RoleVendor, auth.RoleDeliveryPartner, auth.RoleAdmin),
			h.Order.UpdateStatus,
		)
	}

	return r
}
