package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bandiwala/internal/auth"
	"bandiwala/internal/cart"
	"bandiwala/internal/events"
	"bandiwala/internal/menu"
	"bandiwala/internal/metrics"
	"bandiwala/internal/order"
	"bandiwala/internal/pricing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens(t *testing.T) *auth.Tokens {
	t.Helper()
	tokens, err := auth.NewTokens("router-test-secret")
	require.NoError(t, err)
	return tokens
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := newTestTokens(t)

	menuService := menu.NewService(menu.NewInMemoryRepository(), nil)
	calc, err := pricing.NewCalculator(pricing.DefaultFees)
	require.NoError(t, err)
	cartService := cart.NewService(cart.NewInMemoryRepository(), menuService, calc)
	orderService := order.NewService(order.NewInMemoryRepository(), cartService, &events.Recorder{})

	return NewRouter(Handlers{
		Auth:  auth.NewHandler(auth.NewService(auth.NewInMemoryUserRepository(), tokens)),
		Menu:  menu.NewHandler(menuService),
		Cart:  cart.NewHandler(cartService),
		Order: order.NewHandler(orderService),

		Tokens:  tokens,
		Metrics: metrics.NewServerMetrics("router_test"),
	}, []string{"http://localhost:5173"})
}

func request(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	r := newTestEngine(t)

	w := request(r, http.MethodGet, "/health", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestEngine(t)

	for _, path := range []string{"/cart", "/orders"} {
		w := request(r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestEmptyCartBreakdownThroughRouter(t *testing.T) {
	r := newTestEngine(t)

	token, err := newTestTokens(t).Generate("user-1", "asha@example.com", auth.RoleCustomer)
	require.NoError(t, err)

	w := request(r, http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var view cart.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 0.0, view.Breakdown.Subtotal)
	assert.Equal(t, 1.25, view.Breakdown.Tax)
	assert.Equal(t, 26.25, view.Breakdown.Total)
}

func TestVendorRoutesRejectCustomers(t *testing.T) {
	r := newTestEngine(t)

	token, err := newTestTokens(t).Generate("user-1", "asha@example.com", auth.RoleCustomer)
	require.NoError(t, err)

	w := request(r, http.MethodPost, "/vendors", token, map[string]string{"name": "Chaat Corner"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(r, http.MethodPatch, "/orders/some-id/status", token, map[string]string{"status": "CONFIRMED"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	r := newTestEngine(t)

	w := request(r, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Asha",
		"email":    "asha@example.com",
		"phone":    "9876543210",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = request(r, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "asha@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestEngine(t)

	request(r, http.MethodGet, "/health", "", nil)
	w := request(r, http.MethodGet, "/metrics", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `handler="/health"`)
}
