package menu

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bandiwala/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v4"
)

func setupMenuTestRouter(svc *Service, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	})

	handler := NewHandler(svc)
	r.GET("/vendors", handler.ListVendors)
	r.GET("/vendors/:id/menu", handler.GetVendorMenu)
	r.POST("/vendors/:id/items", handler.CreateMenuItem)

	return r
}

func TestHandler_GetVendorMenu(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil)
	v, _ := svc.CreateVendor(context.Background(), "owner-1", "Sharma Chaat", "Sector 7")
	_ = svc.CreateMenuItem(context.Background(), "owner-1", samosa(v.ID))

	r := setupMenuTestRouter(svc, "customer-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vendors/"+v.ID+"/menu", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp VendorMenu
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 1 || len(resp.Items[0].Subcategories) != 2 {
		t.Fatalf("unexpected menu payload: %s", w.Body.String())
	}
}

func TestHandler_GetVendorMenu_NotFound(t *testing.T) {
	r := setupMenuTestRouter(NewService(NewInMemoryRepository(), nil), "customer-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vendors/nope/menu", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHandler_CreateMenuItem(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil)
	v, _ := svc.CreateVendor(context.Background(), "owner-1", "Sharma Chaat", "Sector 7")

	body, _ := json.Marshal(map[string]any{
		"name":         "Lassi",
		"is_available": true,
		"subcategories": []map[string]any{
			{"title": "Small", "quantity": "250 ml", "price": 40},
		},
	})

	cases := []struct {
		user string
		want int
	}{
		{"owner-1", http.StatusCreated},
		{"owner-2", http.StatusForbidden},
	}

	for _, tc := range cases {
		r := setupMenuTestRouter(svc, tc.user)
		req := httptest.NewRequest(http.MethodPost, "/vendors/"+v.ID+"/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Fatalf("user %s: expected %d, got %d (%s)", tc.user, tc.want, w.Code, w.Body.String())
		}
	}
}

func TestHandler_GetVendorMenu_NonUUID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	r := setupMenuTestRouter(NewService(NewPostgresRepository(mock), nil), "customer-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vendors/abc/menu", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
