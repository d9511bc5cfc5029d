package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/amresh-singh-kipm/quick-admin/models"
	"github.com/amresh-singh-kipm/quick-admin/pkg/logger"
)

type fakeSession struct {
	mu      sync.Mutex
	token   string
	cleared int
}

func (f *fakeSession) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeSession) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.cleared++
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Output: "stderr"})
}

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *fakeSession) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess := &fakeSession{token: token}
	c, err := New(srv.URL, sess, 5*time.Second, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	return c, sess
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth, gotRequestID string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode(map[string]any{"users": []models.User{}})
	}), "tok-123")

	if _, err := c.Users(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("expected an X-Request-ID header")
	}
}

func TestNoBearerWithoutToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"users": []models.User{}})
	}), "")

	if _, err := c.Users(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want none", gotAuth)
	}
}

func TestAuthFailureClearsSession(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]string{"message": "token invalid"})
		}), "stale-token")

		_, err := c.Users(context.Background())
		if !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("status %d: err = %v, want ErrSessionExpired", status, err)
		}
		if sess.cleared != 1 {
			t.Errorf("status %d: session cleared %d times, want 1", status, sess.cleared)
		}
		if sess.Token() != "" {
			t.Errorf("status %d: token survived auth failure", status)
		}
	}
}

func TestOtherFailuresDoNotClearSession(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), "tok")

	_, err := c.Users(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrSessionExpired) {
		t.Error("500 should not read as session expiry")
	}
	if sess.cleared != 0 {
		t.Error("500 should not clear the session")
	}
}

func TestMessageNormalization(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message key", `{"message":"name is required"}`, "name is required"},
		{"error key fallback", `{"error":"duplicate category"}`, "duplicate category"},
		{"no body", ``, "Something went wrong. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tt.body))
			}), "tok")

			_, err := c.Categories(context.Background())
			if got := Message(err); got != tt.want {
				t.Errorf("Message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessageOnTransportError(t *testing.T) {
	sess := &fakeSession{}
	c, err := New("http://127.0.0.1:1", sess, 100*time.Millisecond, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Shops(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	if got := Message(err); got != "Something went wrong. Please try again." {
		t.Errorf("Message = %q", got)
	}
	if sess.cleared != 0 {
		t.Error("transport failure must not clear the session")
	}
}

func TestLoginAdminSuccess(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["mobile"] != "9999999999" || req["password"] != "hunter2" {
			t.Errorf("unexpected credentials %v", req)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "admin-token",
			"user":    models.UserProfile{Name: "Asha", Role: models.RoleAdmin},
		})
	}), "")

	token, user, err := c.Login(context.Background(), "9999999999", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if token != "admin-token" {
		t.Errorf("token = %q", token)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("role = %q", user.Role)
	}
}

func TestLoginNonAdminDenied(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "user-token",
			"user":    models.UserProfile{Name: "Ravi", Role: models.RoleUser},
		})
	}), "")

	token, _, err := c.Login(context.Background(), "8888888888", "pw")
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("err = %v, want ErrAccessDenied", err)
	}
	if token != "" {
		t.Error("non-admin login must not yield a token")
	}
}

func TestLoginRejectedCredentials(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid mobile or password"})
	}), "")

	token, _, err := c.Login(context.Background(), "7777777777", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if token != "" {
		t.Error("rejected login must not yield a token")
	}
	if got := Message(err); got != "invalid mobile or password" {
		t.Errorf("Message = %q", got)
	}
}

func TestDeleteInventoryQueryShapes(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	})

	c, _ := newTestClient(t, handler, "tok")

	shopID := int64(7)
	if err := c.DeleteInventory(context.Background(), 42, &shopID); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "product_id=42&shop_id=7" {
		t.Errorf("shop-scoped delete query = %q", gotQuery)
	}

	if err := c.DeleteInventory(context.Background(), 42, nil); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "product_id=42" {
		t.Errorf("global delete query = %q", gotQuery)
	}
}

func TestDashboardStatsParamOmission(t *testing.T) {
	var gotQuery map[string][]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{"stats": models.DashboardStats{}})
	})
	c, _ := newTestClient(t, handler, "tok")

	if _, err := c.DashboardStats(context.Background(), StatsFilter{}); err != nil {
		t.Fatal(err)
	}
	if len(gotQuery) != 0 {
		t.Errorf("all-time fetch carried parameters: %v", gotQuery)
	}

	filter := StatsFilter{StartDate: "2026-08-01", EndDate: "2026-08-31", ShopID: "3"}
	if _, err := c.DashboardStats(context.Background(), filter); err != nil {
		t.Fatal(err)
	}
	if got := gotQuery["startDate"]; len(got) != 1 || got[0] != "2026-08-01" {
		t.Errorf("startDate = %v", got)
	}
	if got := gotQuery["endDate"]; len(got) != 1 || got[0] != "2026-08-31" {
		t.Errorf("endDate = %v", got)
	}
	if got := gotQuery["shopId"]; len(got) != 1 || got[0] != "3" {
		t.Errorf("shopId = %v", got)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	var gotPath, gotStatus string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		gotStatus = req["status"]
		w.WriteHeader(http.StatusOK)
	})
	c, _ := newTestClient(t, handler, "tok")

	if err := c.UpdateOrderStatus(context.Background(), 15, models.OrderShipped); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/admin/orders/15/status" {
		t.Errorf("path = %q", gotPath)
	}
	if gotStatus != models.OrderShipped {
		t.Errorf("status = %q", gotStatus)
	}

	if err := c.UpdateOrderStatus(context.Background(), 15, "REFUNDED"); err == nil {
		t.Error("unknown status should be rejected before any request")
	}
}

func TestBaseURLPathPreserved(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{"shops": []models.Shop{}})
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/api/", &fakeSession{token: "tok"}, 5*time.Second, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Shops(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/api/admin/shops" {
		t.Errorf("path = %q", gotPath)
	}
}
