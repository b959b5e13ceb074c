package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"jerseyorders/internal/lifecycle"
	"jerseyorders/internal/middleware"
	"jerseyorders/internal/models"
	"jerseyorders/internal/store"
)

const testBaseURL = "https://shop.example.com"

func newStaffRouter(t *testing.T) (*gin.Engine, *store.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemory()
	engine := lifecycle.NewEngine(st, nil)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/orders", CreateOrder(engine))
	api.GET("/orders", ListOrders(st))
	api.GET("/orders/:id", GetOrder(st))
	api.DELETE("/orders/:id", DeleteOrder(st))
	api.POST("/orders/:id/approve", ApproveOrder(engine))
	api.POST("/orders/:id/reject", RejectOrder(engine))
	api.POST("/orders/:id/link", GenerateLink(engine, testBaseURL))
	api.POST("/orders/:id/notifications", SendNotification(engine))
	api.GET("/stats", Stats(st))
	return r, st
}

func doJSONWithAuth(t *testing.T, r *gin.Engine, method, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type orderEnvelope struct {
	Order models.Order `json:"order"`
}

func decodeOrder(t *testing.T, body []byte) models.Order {
	t.Helper()
	var env orderEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode order envelope: %v\nbody: %s", err, body)
	}
	return env.Order
}

func TestCreateOrder(t *testing.T) {
	r, _ := newStaffRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"customerName":   "  Sarah Johnson  ",
		"customerEmail":  "sarah.johnson@email.com",
		"customerPhone":  "+1-555-2043",
		"jerseyQuantity": 3,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	order := decodeOrder(t, w.Body.Bytes())
	if order.ID == "" || order.Status != models.StatusPending {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.CustomerName != "Sarah Johnson" {
		t.Fatalf("name must be trimmed, got %q", order.CustomerName)
	}
}

func TestCreateOrderRejectsBadQuantity(t *testing.T) {
	r, _ := newStaffRouter(t)

	for _, quantity := range []int{0, 11} {
		w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
			"customerName":   "A",
			"customerEmail":  "a@x.com",
			"customerPhone":  "1",
			"jerseyQuantity": quantity,
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("quantity %d: expected 400, got %d", quantity, w.Code)
		}
	}
}

func TestListOrdersFiltersAndPaginates(t *testing.T) {
	r, st := newStaffRouter(t)
	ctx := context.Background()

	for _, name := range []string{"Sarah Johnson", "Mike Chen", "Emma Wilson"} {
		if _, err := st.Create(ctx, models.Order{
			CustomerName:   name,
			CustomerEmail:  strings.ToLower(strings.Fields(name)[0]) + "@x.com",
			CustomerPhone:  "1",
			JerseyQuantity: 1,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	var listResp struct {
		Orders []models.Order `json:"orders"`
		Total  int            `json:"total"`
		Page   int            `json:"page"`
		Limit  int            `json:"limit"`
	}

	w := doJSON(t, r, http.MethodGet, "/api/orders?search=mike", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listResp.Total != 1 || listResp.Orders[0].CustomerName != "Mike Chen" {
		t.Fatalf("search filter: %+v", listResp)
	}

	w = doJSON(t, r, http.MethodGet, "/api/orders?page=2&limit=2", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listResp.Total != 3 || len(listResp.Orders) != 1 || listResp.Page != 2 {
		t.Fatalf("pagination: %+v", listResp)
	}

	w = doJSON(t, r, http.MethodGet, "/api/orders?page=0", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for page=0, got %d", w.Code)
	}
}

func TestGetOrderIncludesDefaultMessage(t *testing.T) {
	r, st := newStaffRouter(t)

	stored, _ := st.Create(context.Background(), models.Order{
		CustomerName:   "Sarah Johnson",
		CustomerEmail:  "s@x.com",
		CustomerPhone:  "1",
		JerseyQuantity: 1,
	})

	w := doJSON(t, r, http.MethodGet, "/api/orders/"+stored.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Order          models.Order `json:"order"`
		DefaultMessage string       `json:"defaultMessage"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.DefaultMessage == "" {
		t.Fatal("pending order must come with a default message template")
	}

	w = doJSON(t, r, http.MethodGet, "/api/orders/ORD-404", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestReviewEndpoints(t *testing.T) {
	r, st := newStaffRouter(t)

	stored, _ := st.Create(context.Background(), models.Order{
		CustomerName:   "A",
		CustomerEmail:  "a@x.com",
		CustomerPhone:  "1",
		JerseyQuantity: 1,
	})

	w := doJSON(t, r, http.MethodPost, "/api/orders/"+stored.ID+"/approve", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	order := decodeOrder(t, w.Body.Bytes())
	if order.Status != models.StatusApproved || order.ApprovedDate == nil {
		t.Fatalf("approve did not land: %+v", order)
	}

	// Approving again stays 200, rejecting an approved order conflicts.
	if w = doJSON(t, r, http.MethodPost, "/api/orders/"+stored.ID+"/approve", nil); w.Code != http.StatusOK {
		t.Fatalf("repeat approve: expected 200, got %d", w.Code)
	}
	if w = doJSON(t, r, http.MethodPost, "/api/orders/"+stored.ID+"/reject", nil); w.Code != http.StatusConflict {
		t.Fatalf("reject after approve: expected 409, got %d", w.Code)
	}

	if w = doJSON(t, r, http.MethodPost, "/api/orders/ORD-404/approve", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown order: expected 404, got %d", w.Code)
	}
}

func TestGenerateLinkEndpoint(t *testing.T) {
	r, st := newStaffRouter(t)

	stored, _ := st.Create(context.Background(), models.Order{
		CustomerName:   "A",
		CustomerEmail:  "a@x.com",
		CustomerPhone:  "1",
		JerseyQuantity: 1,
	})

	w := doJSON(t, r, http.MethodPost, "/api/orders/"+stored.ID+"/link", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	order := decodeOrder(t, w.Body.Bytes())
	if !strings.HasPrefix(order.UniqueLink, testBaseURL+"/customer.html?") {
		t.Fatalf("unexpected link: %q", order.UniqueLink)
	}
	parsed, err := url.Parse(order.UniqueLink)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if parsed.Query().Get("order") != stored.ID || parsed.Query().Get("payload") == "" {
		t.Fatalf("link query incomplete: %q", order.UniqueLink)
	}

	if w = doJSON(t, r, http.MethodPost, "/api/orders/"+stored.ID+"/link", nil); w.Code != http.StatusConflict {
		t.Fatalf("second link: expected 409, got %d", w.Code)
	}
}

func TestSendNotificationEndpoint(t *testing.T) {
	r, st := newStaffRouter(t)

	stored, _ := st.Create(context.Background(), models.Order{
		CustomerName:   "A",
		CustomerEmail:  "a@x.com",
		CustomerPhone:  "1",
		JerseyQuantity: 1,
	})

	w := doJSON(t, r, http.MethodPost, "/api/orders/"+stored.ID+"/notifications",
		gin.H{"type": "carrier-pigeon"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad type: expected 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/orders/"+stored.ID+"/notifications",
		gin.H{"type": "email", "message": "your jerseys shipped"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	order := decodeOrder(t, w.Body.Bytes())
	if len(order.Notifications) != 1 || order.Notifications[0].Type != "email" {
		t.Fatalf("notification not recorded: %+v", order.Notifications)
	}
}

func TestDeleteOrderEndpoint(t *testing.T) {
	r, st := newStaffRouter(t)

	stored, _ := st.Create(context.Background(), models.Order{
		CustomerName:   "A",
		CustomerEmail:  "a@x.com",
		CustomerPhone:  "1",
		JerseyQuantity: 1,
	})

	if w := doJSON(t, r, http.MethodDelete, "/api/orders/"+stored.ID, nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, "/api/orders/"+stored.ID, nil); w.Code != http.StatusNotFound {
		t.Fatalf("double delete: expected 404, got %d", w.Code)
	}
}

func TestStatsCountsByStatus(t *testing.T) {
	r, st := newStaffRouter(t)
	ctx := context.Background()
	engine := lifecycle.NewEngine(st, nil)

	a, _ := st.Create(ctx, models.Order{CustomerName: "A", CustomerEmail: "a@x.com", CustomerPhone: "1", JerseyQuantity: 1})
	b, _ := st.Create(ctx, models.Order{CustomerName: "B", CustomerEmail: "b@x.com", CustomerPhone: "2", JerseyQuantity: 1})
	st.Create(ctx, models.Order{CustomerName: "C", CustomerEmail: "c@x.com", CustomerPhone: "3", JerseyQuantity: 1})

	if _, err := engine.Approve(ctx, a.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := engine.Reject(ctx, b.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var stats struct {
		TotalOrders      int `json:"totalOrders"`
		PendingOrders    int `json:"pendingOrders"`
		ApprovedOrders   int `json:"approvedOrders"`
		RejectedOrders   int `json:"rejectedOrders"`
		DetailsSubmitted int `json:"detailsSubmitted"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.TotalOrders != 3 || stats.PendingOrders != 1 || stats.ApprovedOrders != 1 || stats.RejectedOrders != 1 {
		t.Fatalf("unexpected counters: %+v", stats)
	}
}

func TestStaffLoginAndAuthGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const secret = "test-secret"

	r := gin.New()
	r.POST("/auth/login", StaffLogin("admin", "password123", "", secret, 30*time.Minute))
	api := r.Group("/api", middleware.StaffAuth(secret))
	api.GET("/stats", Stats(store.NewMemory()))

	// Protected routes reject missing and garbage tokens.
	if w := doJSON(t, r, http.MethodGet, "/api/stats", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"username": "admin", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"username": "Admin", "password": "password123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var login struct {
		Token     string `json:"token"`
		ExpiresIn int    `json:"expiresIn"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if login.Token == "" || login.ExpiresIn != 1800 {
		t.Fatalf("unexpected login payload: %+v", login)
	}

	req := doJSONWithAuth(t, r, http.MethodGet, "/api/stats", login.Token)
	if req.Code != http.StatusOK {
		t.Fatalf("authorized request: expected 200, got %d", req.Code)
	}
}
