package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bandiwala/internal/menu"
	"bandiwala/internal/middleware"
	"bandiwala/internal/pricing"

	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "user-1")
		c.Next()
	})

	h := NewHandler(svc)
	r.GET("/cart", h.GetCart)
	r.POST("/cart/items", h.AddItem)
	r.PATCH("/cart/items/:menuItemId", h.UpdateItem)
	r.DELETE("/cart/items/:menuItemId", h.RemoveItem)
	r.DELETE("/cart", h.Clear)
	return r
}

func send(r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) View {
	t.Helper()
	var v View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHandler_GetCartReturnsBreakdown(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.AddItem(context.Background(), "user-1", f.thali.ID, "Deluxe", 1)
	require.NoError(t, err)

	w := send(setupCartTestRouter(f.svc), http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	breakdown := raw["breakdown"].(map[string]any)
	assert.Equal(t, 45.0, breakdown["subtotal"])
	assert.Equal(t, 5.0, breakdown["platformFee"])
	assert.Equal(t, 20.0, breakdown["deliveryCharge"])
	assert.Equal(t, 70.0, breakdown["taxableAmount"])
	assert.Equal(t, 3.5, breakdown["tax"])
	assert.Equal(t, 73.5, breakdown["total"])
}

func TestHandler_AddUpdateRemove(t *testing.T) {
	f := newFixture(t)
	r := setupCartTestRouter(f.svc)

	w := send(r, http.MethodPost, "/cart/items", map[string]any{
		"menuItemId":  f.thali.ID,
		"subcategory": "Regular",
		"quantity":    2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 60.0, decodeView(t, w).Breakdown.Subtotal)

	w = send(r, http.MethodPatch, "/cart/items/"+f.thali.ID, map[string]any{
		"subcategory": "Regular",
		"quantity":    3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 90.0, decodeView(t, w).Breakdown.Subtotal)

	w = send(r, http.MethodDelete, "/cart/items/"+f.thali.ID+"?subcategory=Regular", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, decodeView(t, w).Items)
}

func TestHandler_ErrorMapping(t *testing.T) {
	f := newFixture(t)
	r := setupCartTestRouter(f.svc)

	cases := []struct {
		name    string
		method  string
		path    string
		payload any
		want    int
	}{
		{"zero quantity", http.MethodPost, "/cart/items", map[string]any{"menuItemId": f.thali.ID, "subcategory": "Regular", "quantity": 0}, http.StatusBadRequest},
		{"missing body", http.MethodPost, "/cart/items", nil, http.StatusBadRequest},
		{"unknown item", http.MethodPost, "/cart/items", map[string]any{"menuItemId": "nope", "subcategory": "Regular", "quantity": 1}, http.StatusNotFound},
		{"unknown subcategory", http.MethodPost, "/cart/items", map[string]any{"menuItemId": f.thali.ID, "subcategory": "Jumbo", "quantity": 1}, http.StatusNotFound},
		{"sold out", http.MethodPost, "/cart/items", map[string]any{"menuItemId": f.soldOut.ID, "subcategory": "Full", "quantity": 1}, http.StatusBadRequest},
		{"patch without quantity", http.MethodPatch, "/cart/items/" + f.thali.ID, map[string]any{"subcategory": "Regular"}, http.StatusBadRequest},
		{"remove missing line", http.MethodDelete, "/cart/items/" + f.chai.ID + "?subcategory=Cup", nil, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := send(r, tc.method, tc.path, tc.payload)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestHandler_Clear(t *testing.T) {
	f := newFixture(t)
	_, _ = f.svc.AddItem(context.Background(), "user-1", f.chai.ID, "Cup", 2)

	w := send(setupCartTestRouter(f.svc), http.MethodDelete, "/cart", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	view, err := f.svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, view.IsEmpty())
}

func TestHandler_NonUUIDMenuItemIsNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	calc, err := pricing.NewCalculator(pricing.DefaultFees)
	require.NoError(t, err)
	svc := NewService(
		NewPostgresRepository(mock),
		menu.NewService(menu.NewPostgresRepository(mock), nil),
		calc,
	)
	r := setupCartTestRouter(svc)

	w := send(r, http.MethodPost, "/cart/items", map[string]any{"menuItemId": "abc", "subcategory": "Regular", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	w = send(r, http.MethodDelete, "/cart/items/abc?subcategory=Regular", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}
