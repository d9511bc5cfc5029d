package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amresh-singh-kipm/quick-admin/client"
	"github.com/amresh-singh-kipm/quick-admin/models"
	"github.com/amresh-singh-kipm/quick-admin/pkg/logger"
	"github.com/amresh-singh-kipm/quick-admin/session"
)

// fakePlatform stands in for the remote platform API. Failure switches let
// tests flip individual endpoints between healthy and broken mid-test.
type fakePlatform struct {
	mu sync.Mutex

	users  []models.User
	shops  []models.Shop
	orders []models.Order

	usersFail  bool
	listsAuth  bool // when true, every admin read answers 401
	statusFail string

	userListCalls  int
	orderListCalls int
	statusUpdates  []string
}

func (p *fakePlatform) set(f func(*fakePlatform)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f(p)
}

func (p *fakePlatform) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (p *fakePlatform) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := r.Method + " " + r.URL.Path
	if p.listsAuth && strings.HasPrefix(r.URL.Path, "/admin/") {
		p.writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
		return
	}

	switch {
	case key == "POST /auth/login":
		var body struct {
			Mobile   string `json:"mobile"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		switch {
		case body.Mobile == "9000000001" && body.Password == "secret":
			p.writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"token":   "platform-token",
				"user":    models.UserProfile{Name: "Asha", Role: models.RoleAdmin},
			})
		case body.Mobile == "9000000002":
			p.writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"token":   "shopper-token",
				"user":    models.UserProfile{Name: "Ravi", Role: models.RoleUser},
			})
		default:
			p.writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid mobile number or password"})
		}

	case key == "GET /admin/users":
		p.userListCalls++
		if p.usersFail {
			p.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "database unavailable"})
			return
		}
		p.writeJSON(w, http.StatusOK, map[string]any{"users": p.users})

	case key == "GET /admin/shops":
		p.writeJSON(w, http.StatusOK, map[string]any{"shops": p.shops})

	case key == "GET /admin/orders":
		p.orderListCalls++
		p.writeJSON(w, http.StatusOK, map[string]any{"orders": p.orders})

	case r.Method == "PUT" && strings.HasPrefix(r.URL.Path, "/admin/orders/"):
		if p.statusFail != "" {
			p.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": p.statusFail})
			return
		}
		var body struct {
			Status string `json:"status"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/admin/orders/"), "/status")
		for i := range p.orders {
			if fmt.Sprint(p.orders[i].ID) == id {
				p.orders[i].Status = body.Status
			}
		}
		p.statusUpdates = append(p.statusUpdates, r.URL.Path+"="+body.Status)
		p.writeJSON(w, http.StatusOK, map[string]any{"success": true})

	case key == "POST /admin/shops":
		p.writeJSON(w, http.StatusCreated, map[string]any{"success": true})

	case key == "GET /admin/dashboard-stats":
		p.writeJSON(w, http.StatusOK, map[string]any{
			"stats": models.DashboardStats{
				TotalRevenue: decimal.NewFromInt(1500),
				TotalOrders:  3,
			},
		})

	default:
		p.writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	}
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "text", Output: "stderr"})
}

// newConsole wires a full handler stack against the fake platform, with a
// session store rooted in a temp dir.
func newConsole(t *testing.T, p *fakePlatform) (*http.ServeMux, *session.Store) {
	t.Helper()

	srv := httptest.NewServer(p)
	t.Cleanup(srv.Close)

	sessions, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatal(err)
	}

	api, err := client.New(srv.URL, sessions, 5*time.Second, quietLogger())
	if err != nil {
		t.Fatal(err)
	}

	return New(api, sessions, quietLogger()).Routes(), sessions
}

func signIn(t *testing.T, sessions *session.Store) {
	t.Helper()
	err := sessions.Save("platform-token", models.UserProfile{Name: "Asha", Role: models.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
}

func get(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	return rec
}

func postForm(mux *http.ServeMux, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestScreensRequireSession(t *testing.T) {
	mux, _ := newConsole(t, &fakePlatform{})

	for _, path := range []string{"/", "/users", "/categories", "/products", "/shops", "/inventory", "/orders"} {
		rec := get(mux, path)
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
			t.Errorf("GET %s = %d -> %q, want 303 -> /login", path, rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestLoginSuccess(t *testing.T) {
	mux, sessions := newConsole(t, &fakePlatform{})

	rec := postForm(mux, "/login", url.Values{"mobile": {"9000000001"}, "password": {"secret"}})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("login = %d -> %q, want 303 -> /", rec.Code, rec.Header().Get("Location"))
	}
	if !sessions.Active() {
		t.Fatal("session not active after login")
	}
	if sessions.Token() != "platform-token" {
		t.Fatalf("token = %q", sessions.Token())
	}
	if got := sessions.User().Name; got != "Asha" {
		t.Fatalf("profile name = %q", got)
	}
}

func TestLoginRejectsNonAdmin(t *testing.T) {
	mux, sessions := newConsole(t, &fakePlatform{})

	rec := postForm(mux, "/login", url.Values{"mobile": {"9000000002"}, "password": {"whatever"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Access denied") {
		t.Fatalf("body missing access denied message:\n%s", rec.Body.String())
	}
	if sessions.Active() {
		t.Fatal("non-admin login left a session behind")
	}
}

func TestLoginBadCredentialsShowsServerMessage(t *testing.T) {
	mux, _ := newConsole(t, &fakePlatform{})

	rec := postForm(mux, "/login", url.Values{"mobile": {"9000000001"}, "password": {"wrong"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid mobile number or password") {
		t.Fatalf("body missing server message:\n%s", rec.Body.String())
	}
	// The entered mobile number is retained so the operator can retry.
	if !strings.Contains(rec.Body.String(), "9000000001") {
		t.Fatal("entered mobile number not retained")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	mux, sessions := newConsole(t, &fakePlatform{})
	signIn(t, sessions)

	rec := postForm(mux, "/logout", nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("logout = %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
	if sessions.Active() {
		t.Fatal("session still active after logout")
	}
}

func TestUserListRenders(t *testing.T) {
	p := &fakePlatform{users: []models.User{
		{ID: 1, FullName: "Meera Nair", MobileNumber: "9111111111", Role: models.RoleUser, IsActive: 1},
		{ID: 2, FullName: "Arun Pillai", MobileNumber: "9222222222", Role: models.RoleShopOwner, IsActive: 0},
	}}
	mux, sessions := newConsole(t, p)
	signIn(t, sessions)

	rec := get(mux, "/users")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Meera Nair", "Arun Pillai", "Inactive", `href="/users">Refresh<`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestUserListServesStaleSnapshotOnFetchFailure(t *testing.T) {
	p := &fakePlatform{users: []models.User{
		{ID: 1, FullName: "Meera Nair", Role: models.RoleUser, IsActive: 1},
	}}
	mux, sessions := newConsole(t, p)
	signIn(t, sessions)

	if rec := get(mux, "/users"); rec.Code != http.StatusOK {
		t.Fatalf("warm-up fetch = %d", rec.Code)
	}

	p.set(func(p *fakePlatform) { p.usersFail = true })

	rec := get(mux, "/users")
	if rec.Code != http.StatusOK {
		t.Fatalf("status after upstream failure = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Meera Nair") {
		t.Fatal("stale snapshot not served after fetch failure")
	}
}

func TestExpiredSessionOnReadRedirectsToLogin(t *testing.T) {
	p := &fakePlatform{listsAuth: true}
	mux, sessions := newConsole(t, p)
	signIn(t, sessions)

	rec := get(mux, "/users")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("got %d -> %q, want 303 -> /login", rec.Code, rec.Header().Get("Location"))
	}
	if sessions.Active() {
		t.Fatal("session not cleared after upstream 401")
	}
}

func TestCreateShopValidationKeepsFormValues(t *testing.T) {
	mux, sessions := newConsole(t, &fakePlatform{})
	signIn(t, sessions)

	rec := postForm(mux, "/shops", url.Values{
		"name":      {"Fresh Corner"},
		"latitude":  {"not-a-number"},
		"longitude": {"76.95"},
		"status":    {"OPEN"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 re-render", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Latitude must be a number.") {
		t.Fatal("validation message missing")
	}
	for _, kept := range []string{"Fresh Corner", "not-a-number", "76.95"} {
		if !strings.Contains(body, kept) {
			t.Errorf("entered value %q not retained", kept)
		}
	}
}

func TestOrderStatusUpdatePatchesWithoutRefetch(t *testing.T) {
	p := &fakePlatform{orders: []models.Order{
		{ID: 7, CustomerName: "Divya", Status: models.OrderPending, TotalAmount: decimal.NewFromInt(240)},
	}}
	mux, sessions := newConsole(t, p)
	signIn(t, sessions)

	if rec := get(mux, "/orders"); rec.Code != http.StatusOK {
		t.Fatalf("warm-up fetch = %d", rec.Code)
	}

	rec := postForm(mux, "/orders/7/status", url.Values{"status": {models.OrderPacked}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Order status updated") {
		t.Fatal("confirmation banner missing")
	}

	p.mu.Lock()
	updates, listCalls := p.statusUpdates, p.orderListCalls
	p.mu.Unlock()
	if len(updates) != 1 || updates[0] != "/admin/orders/7/status="+models.OrderPacked {
		t.Fatalf("status updates = %v", updates)
	}
	if listCalls != 1 {
		t.Fatalf("order list fetched %d times, want the warm-up fetch only", listCalls)
	}

	rec = get(mux, "/orders")
	if !strings.Contains(rec.Body.String(), models.OrderPacked) {
		t.Fatal("list does not reflect the confirmed status")
	}
}

func TestOrderStatusFailureShowsServerTruth(t *testing.T) {
	p := &fakePlatform{orders: []models.Order{
		{ID: 7, CustomerName: "Divya", Status: models.OrderPending, TotalAmount: decimal.NewFromInt(240)},
	}}
	mux, sessions := newConsole(t, p)
	signIn(t, sessions)

	if rec := get(mux, "/orders"); rec.Code != http.StatusOK {
		t.Fatalf("warm-up fetch = %d", rec.Code)
	}
	p.set(func(p *fakePlatform) { p.statusFail = "Cannot pack a cancelled order" })

	rec := postForm(mux, "/orders/7/status", url.Values{"status": {models.OrderPacked}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Cannot pack a cancelled order") {
		t.Fatal("server error message missing")
	}
	if strings.Contains(body, "Order status updated") {
		t.Fatal("failure rendered a success banner")
	}
	// The dropdown selection falls back to the status the server holds.
	if !strings.Contains(body, fmt.Sprintf(`value="%s" selected`, models.OrderPending)) {
		t.Fatal("dropdown does not show the server-truth status")
	}
}

func TestDashboardRenders(t *testing.T) {
	p := &fakePlatform{shops: []models.Shop{{ID: 1, Name: "Central Hub", Status: models.ShopOpen}}}
	mux, sessions := newConsole(t, p)
	signIn(t, sessions)

	rec := get(mux, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "₹1500.00") {
		t.Fatal("total revenue missing")
	}
	if !strings.Contains(body, "Central Hub") {
		t.Fatal("shop filter options missing")
	}
}
