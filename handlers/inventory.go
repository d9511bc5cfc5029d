package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/amresh-singh-kipm/quick-admin/client"
	"github.com/amresh-singh-kipm/quick-admin/models"
)

type inventoryView struct {
	Inventory []models.InventoryItem
	// LowStockAt marks rows whose stock warrants attention.
	LowStockAt int
}

type inventoryFormView struct {
	ShopID        string
	ProductID     string
	Price         string
	StockQuantity string
	Shops         []models.Shop
	Products      []models.Product
}

func (h *Handler) fetchInventory(r *http.Request) ([]models.InventoryItem, error) {
	return fetchList(r.Context(), &h.inventory, h.log, "inventory", h.api.Inventory)
}

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) error {
	inventory, err := h.fetchInventory(r)
	if err != nil {
		return err
	}
	return h.render(w, "inventory.html", pageData{
		Title:  "Inventory Control",
		Active: "inventory",
		Data:   inventoryView{Inventory: inventory, LowStockAt: 10},
	})
}

// inventoryForm serves both "add stock" and "edit stock": editing a row is
// re-submitting its identity with new price and quantity, which the platform
// upserts. Prefill values come in as query parameters from the list screen.
func (h *Handler) inventoryForm(w http.ResponseWriter, r *http.Request) error {
	shops, err := h.fetchShops(r)
	if err != nil {
		return err
	}
	products, err := h.fetchProducts(r)
	if err != nil {
		return err
	}

	q := r.URL.Query()
	return h.render(w, "inventory_form.html", pageData{
		Title:  "Update Stock",
		Active: "inventory",
		Data: inventoryFormView{
			ShopID:        q.Get("shop_id"),
			ProductID:     q.Get("product_id"),
			Price:         q.Get("price"),
			StockQuantity: q.Get("stock_quantity"),
			Shops:         shops,
			Products:      products,
		},
	})
}

func (h *Handler) inventoryRequestFromForm(r *http.Request) (client.InventoryRequest, inventoryFormView, string) {
	view := inventoryFormView{
		ShopID:        r.PostFormValue("shop_id"),
		ProductID:     r.PostFormValue("product_id"),
		Price:         strings.TrimSpace(r.PostFormValue("price")),
		StockQuantity: strings.TrimSpace(r.PostFormValue("stock_quantity")),
	}

	var req client.InventoryRequest
	productID, err := strconv.ParseInt(view.ProductID, 10, 64)
	if err != nil {
		return req, view, "Select a product."
	}
	req.ProductID = productID

	if view.ShopID != "" {
		shopID, err := strconv.ParseInt(view.ShopID, 10, 64)
		if err != nil {
			return req, view, "Invalid shop."
		}
		req.ShopID = &shopID
	}

	price, err := decimal.NewFromString(view.Price)
	if err != nil {
		return req, view, "Unit price must be a number."
	}
	req.Price = price

	quantity, err := strconv.Atoi(view.StockQuantity)
	if err != nil || quantity < 0 {
		return req, view, "Stock quantity must be a non-negative number."
	}
	req.StockQuantity = quantity

	return req, view, ""
}

func (h *Handler) upsertInventory(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	req, view, problem := h.inventoryRequestFromForm(r)
	if problem == "" {
		if err := h.api.UpsertInventory(r.Context(), req); err != nil {
			if sessionLost(err) {
				return err
			}
			problem = client.Message(err)
		}
	}
	if problem != "" {
		shops, err := h.fetchShops(r)
		if err != nil {
			return err
		}
		products, err := h.fetchProducts(r)
		if err != nil {
			return err
		}
		view.Shops = shops
		view.Products = products
		return h.render(w, "inventory_form.html", pageData{
			Title: "Update Stock", Active: "inventory", Error: problem, Data: view,
		})
	}
	http.Redirect(w, r, "/inventory", http.StatusSeeOther)
	return nil
}

// deleteTarget reads the (product, shop-or-global) identity from either query
// or form values.
func deleteTarget(values map[string][]string) (productID int64, shopID *int64, ok bool) {
	get := func(key string) string {
		if v, found := values[key]; found && len(v) > 0 {
			return v[0]
		}
		return ""
	}
	productID, err := strconv.ParseInt(get("product_id"), 10, 64)
	if err != nil {
		return 0, nil, false
	}
	if raw := get("shop_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, nil, false
		}
		shopID = &id
	}
	return productID, shopID, true
}

func (h *Handler) confirmDeleteInventory(w http.ResponseWriter, r *http.Request) error {
	productID, shopID, ok := deleteTarget(r.URL.Query())
	if !ok {
		http.Redirect(w, r, "/inventory", http.StatusSeeOther)
		return nil
	}
	fields := map[string]string{"product_id": strconv.FormatInt(productID, 10)}
	scope := "Independent / Global stock"
	if shopID != nil {
		fields["shop_id"] = strconv.FormatInt(*shopID, 10)
		scope = "Shop-specific stock"
	}
	return h.renderConfirm(w, "inventory", "", confirmView{
		Prompt: "Remove this stock record?",
		Detail: scope,
		Action: "/inventory/delete",
		Cancel: "/inventory",
		Fields: fields,
	})
}

func (h *Handler) deleteInventory(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	productID, shopID, ok := deleteTarget(r.PostForm)
	if !ok {
		http.Redirect(w, r, "/inventory", http.StatusSeeOther)
		return nil
	}
	if err := h.api.DeleteInventory(r.Context(), productID, shopID); err != nil {
		if sessionLost(err) {
			return err
		}
		fields := map[string]string{"product_id": strconv.FormatInt(productID, 10)}
		if shopID != nil {
			fields["shop_id"] = strconv.FormatInt(*shopID, 10)
		}
		return h.renderConfirm(w, "inventory", client.Message(err), confirmView{
			Prompt: "Remove this stock record?",
			Action: "/inventory/delete",
			Cancel: "/inventory",
			Fields: fields,
		})
	}
	http.Redirect(w, r, "/inventory", http.StatusSeeOther)
	return nil
}
