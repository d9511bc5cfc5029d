package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/amresh-singh-kipm/quick-admin/client"
	"github.com/amresh-singh-kipm/quick-admin/models"
)

type productsView struct {
	Products []models.Product
}

// productFormView carries the split size fields; the combined size string
// only exists on the wire.
type productFormView struct {
	Mode          string // "add" or "edit"
	ID            int64
	Name          string
	CategoryID    string
	Brand         string
	Description   string
	SizeQuantity  string
	SizeUnit      string
	MRP           string
	ActualPrice   string
	StockQuantity string
	ImageURL      string
	Categories    []models.Category
	SizeUnits     []string
}

func (h *Handler) fetchProducts(r *http.Request) ([]models.Product, error) {
	return fetchList(r.Context(), &h.products, h.log, "products", h.api.Products)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) error {
	products, err := h.fetchProducts(r)
	if err != nil {
		return err
	}
	return h.render(w, "products.html", pageData{
		Title:  "Global Product Catalog",
		Active: "products",
		Data:   productsView{Products: products},
	})
}

func (h *Handler) findProduct(r *http.Request) (models.Product, error) {
	id, err := pathID(r)
	if err != nil {
		return models.Product{}, fmt.Errorf("bad product id: %w", err)
	}
	products, err := h.fetchProducts(r)
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("product %d not found", id)
}

func productFormFromRecord(p models.Product, mode string) productFormView {
	quantity, unit := models.SplitSize(p.Size)
	view := productFormView{
		Mode:         mode,
		ID:           p.ID,
		Name:         p.Name,
		CategoryID:   strconv.FormatInt(p.CategoryID, 10),
		Brand:        p.Brand,
		Description:  p.Description,
		SizeQuantity: quantity,
		SizeUnit:     unit,
		ImageURL:     p.ImageURL,
		SizeUnits:    models.SizeUnits,
	}
	if !p.MRP.IsZero() {
		view.MRP = p.MRP.String()
	}
	if !p.ActualPrice.IsZero() {
		view.ActualPrice = p.ActualPrice.String()
	}
	return view
}

func (h *Handler) newProductForm(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.fetchCategories(r)
	if err != nil {
		return err
	}
	return h.render(w, "product_form.html", pageData{
		Title:  "Register Product",
		Active: "products",
		Data: productFormView{
			Mode:       "add",
			SizeUnit:   models.SizeUnits[0],
			Categories: categories,
			SizeUnits:  models.SizeUnits,
		},
	})
}

func (h *Handler) editProductForm(w http.ResponseWriter, r *http.Request) error {
	p, err := h.findProduct(r)
	if err != nil {
		return err
	}
	categories, err := h.fetchCategories(r)
	if err != nil {
		return err
	}
	view := productFormFromRecord(p, "edit")
	view.Categories = categories
	return h.render(w, "product_form.html", pageData{
		Title:  "Edit Product",
		Active: "products",
		Data:   view,
	})
}

// cloneProductForm pre-fills the create form from an existing record: name
// gains a copy marker, identity and stock are cleared, and nothing is sent to
// the server until the operator submits.
func (h *Handler) cloneProductForm(w http.ResponseWriter, r *http.Request) error {
	p, err := h.findProduct(r)
	if err != nil {
		return err
	}
	categories, err := h.fetchCategories(r)
	if err != nil {
		return err
	}
	view := productFormFromRecord(p, "add")
	view.ID = 0
	view.Name = p.Name + " (Copy)"
	view.StockQuantity = ""
	view.Categories = categories
	return h.render(w, "product_form.html", pageData{
		Title:  "Register Product",
		Active: "products",
		Data:   view,
	})
}

// productRequestFromForm recombines the split size fields and parses the
// optional money and stock inputs. The returned view echoes the submitted
// values so a rejected form reopens exactly as entered.
func (h *Handler) productRequestFromForm(r *http.Request) (client.ProductRequest, productFormView, string) {
	view := productFormView{
		Name:          strings.TrimSpace(r.PostFormValue("name")),
		CategoryID:    r.PostFormValue("category_id"),
		Brand:         strings.TrimSpace(r.PostFormValue("brand")),
		Description:   r.PostFormValue("description"),
		SizeQuantity:  strings.TrimSpace(r.PostFormValue("size_quantity")),
		SizeUnit:      r.PostFormValue("size_unit"),
		MRP:           strings.TrimSpace(r.PostFormValue("mrp")),
		ActualPrice:   strings.TrimSpace(r.PostFormValue("actual_price")),
		StockQuantity: strings.TrimSpace(r.PostFormValue("stock_quantity")),
		ImageURL:      strings.TrimSpace(r.PostFormValue("image_url")),
		SizeUnits:     models.SizeUnits,
	}

	req := client.ProductRequest{
		Name:        view.Name,
		Brand:       view.Brand,
		Description: view.Description,
		ImageURL:    view.ImageURL,
	}

	if view.Name == "" {
		return req, view, "Name is required."
	}
	categoryID, err := strconv.ParseInt(view.CategoryID, 10, 64)
	if err != nil {
		return req, view, "Select a category."
	}
	req.CategoryID = categoryID

	if size := models.CombineSize(view.SizeQuantity, view.SizeUnit); size != "" {
		req.Size = &size
	}
	if view.MRP != "" {
		d, err := decimal.NewFromString(view.MRP)
		if err != nil {
			return req, view, "MRP must be a number."
		}
		req.MRP = &d
	}
	if view.ActualPrice != "" {
		d, err := decimal.NewFromString(view.ActualPrice)
		if err != nil {
			return req, view, "Actual price must be a number."
		}
		req.ActualPrice = &d
	}
	if view.StockQuantity != "" {
		n, err := strconv.Atoi(view.StockQuantity)
		if err != nil || n < 0 {
			return req, view, "Stock quantity must be a non-negative number."
		}
		req.StockQuantity = &n
	}
	return req, view, ""
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	req, view, problem := h.productRequestFromForm(r)
	view.Mode = "add"
	if problem == "" {
		if err := h.api.CreateProduct(r.Context(), req); err != nil {
			if sessionLost(err) {
				return err
			}
			problem = client.Message(err)
		}
	}
	if problem != "" {
		categories, err := h.fetchCategories(r)
		if err != nil {
			return err
		}
		view.Categories = categories
		return h.render(w, "product_form.html", pageData{
			Title: "Register Product", Active: "products", Error: problem, Data: view,
		})
	}
	http.Redirect(w, r, "/products", http.StatusSeeOther)
	return nil
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return fmt.Errorf("bad product id: %w", err)
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	req, view, problem := h.productRequestFromForm(r)
	view.Mode = "edit"
	view.ID = id
	if problem == "" {
		if err := h.api.UpdateProduct(r.Context(), id, req); err != nil {
			if sessionLost(err) {
				return err
			}
			problem = client.Message(err)
		}
	}
	if problem != "" {
		categories, err := h.fetchCategories(r)
		if err != nil {
			return err
		}
		view.Categories = categories
		return h.render(w, "product_form.html", pageData{
			Title: "Edit Product", Active: "products", Error: problem, Data: view,
		})
	}
	http.Redirect(w, r, "/products", http.StatusSeeOther)
	return nil
}

func (h *Handler) confirmDeleteProduct(w http.ResponseWriter, r *http.Request) error {
	p, err := h.findProduct(r)
	if err != nil {
		return err
	}
	return h.renderConfirm(w, "products", "", confirmView{
		Prompt: "Delete this product?",
		Detail: p.Name,
		Action: fmt.Sprintf("/products/%d/delete", p.ID),
		Cancel: "/products",
	})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return fmt.Errorf("bad product id: %w", err)
	}
	if err := h.api.DeleteProduct(r.Context(), id); err != nil {
		if sessionLost(err) {
			return err
		}
		return h.renderConfirm(w, "products", client.Message(err), confirmView{
			Prompt: "Delete this product?",
			Action: fmt.Sprintf("/products/%d/delete", id),
			Cancel: "/products",
		})
	}
	http.Redirect(w, r, "/products", http.StatusSeeOther)
	return nil
}
