package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bandiwala/internal/auth"
	"bandiwala/internal/cart"
	"bandiwala/internal/events"
	"bandiwala/internal/menu"
	"bandiwala/internal/order"
	"bandiwala/internal/pricing"
	"bandiwala/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSmokeServer(t *testing.T, fees pricing.Fees) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	tokens, err := auth.NewTokens("smoke-test-secret")
	require.NoError(t, err)

	menuRepo := menu.NewInMemoryRepository()
	vendor := &menu.Vendor{OwnerID: "owner-1", Name: "Chaat Corner"}
	require.NoError(t, menuRepo.CreateVendor(ctx, vendor))
	require.NoError(t, menuRepo.CreateItem(ctx, &menu.MenuItem{
		VendorID:      vendor.ID,
		Name:          "Pani Puri",
		IsAvailable:   false,
		Subcategories: []pricing.Subcategory{{Title: "6 pcs", Quantity: "6", Price: 30}},
	}))
	require.NoError(t, menuRepo.CreateItem(ctx, &menu.MenuItem{
		VendorID:      vendor.ID,
		Name:          "Sev Puri",
		IsAvailable:   true,
		Subcategories: []pricing.Subcategory{{Title: "Plate", Quantity: "1", Price: 45}},
	}))

	authService := auth.NewService(auth.NewInMemoryUserRepository(), tokens)
	_, err = authService.Register(ctx, auth.RegisterInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	calc, err := pricing.NewCalculator(fees)
	require.NoError(t, err)
	menuService := menu.NewService(menuRepo, nil)
	cartService := cart.NewService(cart.NewInMemoryRepository(), menuService, calc)

	engine := router.NewRouter(router.Handlers{
		Auth:  auth.NewHandler(authService),
		Menu:  menu.NewHandler(menuService),
		Cart:  cart.NewHandler(cartService),
		Order: order.NewHandler(order.NewService(order.NewInMemoryRepository(), cartService, &events.Recorder{})),

		Tokens: tokens,
	}, nil)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

func TestSmoke_MatchesServerBreakdown(t *testing.T) {
	srv := newSmokeServer(t, pricing.DefaultFees)
	calc, err := pricing.NewCalculator(pricing.DefaultFees)
	require.NoError(t, err)

	s := &smokeClient{http: srv.Client(), baseURL: srv.URL}
	view, err := s.run(context.Background(), "asha@example.com", "secret123", calc)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, "Sev Puri", view.Items[0].Name)
	assert.Equal(t, 73.5, view.Breakdown.Total)
}

func TestSmoke_DetectsFeeDrift(t *testing.T) {
	srv := newSmokeServer(t, pricing.Fees{PlatformFee: 10, DeliveryCharge: 20, TaxRate: 0.05})
	calc, err := pricing.NewCalculator(pricing.DefaultFees)
	require.NoError(t, err)

	s := &smokeClient{http: srv.Client(), baseURL: srv.URL}
	_, err = s.run(context.Background(), "asha@example.com", "secret123", calc)
	assert.ErrorIs(t, err, errBreakdownMismatch)
}

func TestSmoke_BadCredentials(t *testing.T) {
	srv := newSmokeServer(t, pricing.DefaultFees)

	calc, err := pricing.NewCalculator(pricing.DefaultFees)
	require.NoError(t, err)

	s := &smokeClient{http: http.DefaultClient, baseURL: srv.URL}
	_, err = s.run(context.Background(), "asha@example.com", "wrong", calc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login")
}
