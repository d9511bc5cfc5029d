// Package handlers serves the console screens: a login gate, six resource
// management screens, an order detail view, and the dashboard. Every screen
// follows the same shape: fetch a list, render a table, post a form, refetch.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/amresh-singh-kipm/quick-admin/client"
	"github.com/amresh-singh-kipm/quick-admin/models"
	"github.com/amresh-singh-kipm/quick-admin/pkg/logger"
	"github.com/amresh-singh-kipm/quick-admin/session"
)

// Handler holds the console's collaborators and per-resource snapshots.
type Handler struct {
	api      *client.Client
	sessions *session.Store
	log      *logger.Logger

	users      snapshot[models.User]
	categories snapshot[models.Category]
	products   snapshot[models.Product]
	shops      snapshot[models.Shop]
	inventory  snapshot[models.InventoryItem]
	orders     snapshot[models.Order]
}

// New creates the console handler set.
func New(api *client.Client, sessions *session.Store, log *logger.Logger) *Handler {
	return &Handler{
		api:      api,
		sessions: sessions,
		log:      log.WithComponent("console"),
	}
}

// consoleFunc is a screen handler that may fail; the adapter below turns
// failures into the right navigation or a 500.
type consoleFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts a consoleFunc. An expired session anywhere sends the operator
// to the login screen; anything else that escapes a screen is a server error.
func (h *Handler) handle(fn consoleFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			if errors.Is(err, client.ErrSessionExpired) {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			h.log.Error("screen failed", "path", r.URL.Path, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

// requireSession gates a screen behind the session store: no token, no shell.
func (h *Handler) requireSession(fn consoleFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.sessions.Active() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		h.handle(fn)(w, r)
	}
}

// Routes builds the console route table.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /login", h.handle(h.loginForm))
	mux.HandleFunc("POST /login", h.handle(h.loginSubmit))
	mux.HandleFunc("POST /logout", h.handle(h.logout))

	mux.HandleFunc("GET /{$}", h.requireSession(h.dashboard))

	mux.HandleFunc("GET /users", h.requireSession(h.listUsers))
	mux.HandleFunc("GET /users/{id}/edit", h.requireSession(h.editUserForm))
	mux.HandleFunc("POST /users/{id}", h.requireSession(h.updateUser))
	mux.HandleFunc("GET /users/{id}/deactivate", h.requireSession(h.confirmDeactivateUser))
	mux.HandleFunc("POST /users/{id}/deactivate", h.requireSession(h.deactivateUser))

	mux.HandleFunc("GET /categories", h.requireSession(h.listCategories))
	mux.HandleFunc("GET /categories/new", h.requireSession(h.newCategoryForm))
	mux.HandleFunc("POST /categories", h.requireSession(h.createCategory))
	mux.HandleFunc("GET /categories/{id}/edit", h.requireSession(h.editCategoryForm))
	mux.HandleFunc("POST /categories/{id}", h.requireSession(h.updateCategory))
	mux.HandleFunc("GET /categories/{id}/delete", h.requireSession(h.confirmDeleteCategory))
	mux.HandleFunc("POST /categories/{id}/delete", h.requireSession(h.deleteCategory))

	mux.HandleFunc("GET /products", h.requireSession(h.listProducts))
	mux.HandleFunc("GET /products/new", h.requireSession(h.newProductForm))
	mux.HandleFunc("POST /products", h.requireSession(h.createProduct))
	mux.HandleFunc("GET /products/{id}/edit", h.requireSession(h.editProductForm))
	mux.HandleFunc("GET /products/{id}/clone", h.requireSession(h.cloneProductForm))
	mux.HandleFunc("POST /products/{id}", h.requireSession(h.updateProduct))
	mux.HandleFunc("GET /products/{id}/delete", h.requireSession(h.confirmDeleteProduct))
	mux.HandleFunc("POST /products/{id}/delete", h.requireSession(h.deleteProduct))

	mux.HandleFunc("GET /shops", h.requireSession(h.listShops))
	mux.HandleFunc("GET /shops/new", h.requireSession(h.newShopForm))
	mux.HandleFunc("POST /shops", h.requireSession(h.createShop))
	mux.HandleFunc("GET /shops/{id}/edit", h.requireSession(h.editShopForm))
	mux.HandleFunc("POST /shops/{id}", h.requireSession(h.updateShop))
	mux.HandleFunc("GET /shops/{id}/delete", h.requireSession(h.confirmDeleteShop))
	mux.HandleFunc("POST /shops/{id}/delete", h.requireSession(h.deleteShop))

	mux.HandleFunc("GET /inventory", h.requireSession(h.listInventory))
	mux.HandleFunc("GET /inventory/new", h.requireSession(h.inventoryForm))
	mux.HandleFunc("POST /inventory", h.requireSession(h.upsertInventory))
	mux.HandleFunc("GET /inventory/delete", h.requireSession(h.confirmDeleteInventory))
	mux.HandleFunc("POST /inventory/delete", h.requireSession(h.deleteInventory))

	mux.HandleFunc("GET /orders", h.requireSession(h.listOrders))
	mux.HandleFunc("GET /orders/{id}", h.requireSession(h.orderDetail))
	mux.HandleFunc("POST /orders/{id}/status", h.requireSession(h.updateOrderStatus))

	return mux
}

// fetchList runs one list fetch through a snapshot. Read failures other than
// an expired session are logged, never surfaced: the caller renders whatever
// the snapshot last held.
func fetchList[T any](ctx context.Context, snap *snapshot[T], log *logger.Logger,
	what string, fetch func(context.Context) ([]T, error)) ([]T, error) {

	ticket := snap.begin()
	data, err := fetch(ctx)
	if err != nil {
		if errors.Is(err, client.ErrSessionExpired) {
			return nil, err
		}
		log.Warn("failed to fetch "+what, "error", err)
		cached, _ := snap.get()
		return cached, nil
	}
	snap.install(ticket, data)
	return data, nil
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// sessionLost reports whether an error must bubble up to the login redirect
// instead of being shown on the screen that caused it.
func sessionLost(err error) bool {
	return errors.Is(err, client.ErrSessionExpired)
}
