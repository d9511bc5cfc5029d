package handlers

import (
	"fmt"
	"net/http"

	"github.com/amresh-singh-kipm/quick-admin/client"
	"github.com/amresh-singh-kipm/quick-admin/models"
)

type ordersView struct {
	Orders []models.Order
}

type orderDetailView struct {
	Order    models.Order
	Statuses []string
	Updated  bool
}

func (h *Handler) fetchOrders(r *http.Request) ([]models.Order, error) {
	return fetchList(r.Context(), &h.orders, h.log, "orders", h.api.Orders)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) error {
	orders, err := h.fetchOrders(r)
	if err != nil {
		return err
	}
	return h.render(w, "orders.html", pageData{
		Title:  "Orders",
		Active: "orders",
		Data:   ordersView{Orders: orders},
	})
}

// findOrder resolves a detail view from the fetched collection; the platform
// has no single-order read.
func (h *Handler) findOrder(r *http.Request) (models.Order, error) {
	id, err := pathID(r)
	if err != nil {
		return models.Order{}, fmt.Errorf("bad order id: %w", err)
	}
	orders, ok := h.orders.get()
	if !ok {
		if orders, err = h.fetchOrders(r); err != nil {
			return models.Order{}, err
		}
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, fmt.Errorf("order %d not found", id)
}

func (h *Handler) orderDetail(w http.ResponseWriter, r *http.Request) error {
	order, err := h.findOrder(r)
	if err != nil {
		return err
	}
	return h.render(w, "order_detail.html", pageData{
		Title:  fmt.Sprintf("Order #%d", order.ID),
		Active: "orders",
		Data:   orderDetailView{Order: order, Statuses: models.OrderStatuses},
	})
}

// updateOrderStatus is its own transaction per selection: the update goes out
// immediately, and the detail view either reflects the confirmed new status
// without refetching the collection, or visibly falls back to the status the
// server still holds.
func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) error {
	order, err := h.findOrder(r)
	if err != nil {
		return err
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	newStatus := r.PostFormValue("status")

	if err := h.api.UpdateOrderStatus(r.Context(), order.ID, newStatus); err != nil {
		if sessionLost(err) {
			return err
		}
		// Rolled back: the dropdown shows the server-truth status again.
		return h.render(w, "order_detail.html", pageData{
			Title:  fmt.Sprintf("Order #%d", order.ID),
			Active: "orders",
			Error:  client.Message(err),
			Data:   orderDetailView{Order: order, Statuses: models.OrderStatuses},
		})
	}

	// Confirmed: patch the local copy so list and detail agree without a
	// refetch.
	h.orders.patch(func(orders []models.Order) []models.Order {
		for i := range orders {
			if orders[i].ID == order.ID {
				orders[i].Status = newStatus
			}
		}
		return orders
	})
	order.Status = newStatus
	return h.render(w, "order_detail.html", pageData{
		Title:  fmt.Sprintf("Order #%d", order.ID),
		Active: "orders",
		Data:   orderDetailView{Order: order, Statuses: models.OrderStatuses, Updated: true},
	})
}
