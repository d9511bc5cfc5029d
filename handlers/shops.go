package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/amresh-singh-kipm/quick-admin/client"
	"github.com/amresh-singh-kipm/quick-admin/models"
)

type shopsView struct {
	Shops []models.Shop
}

type shopFormView struct {
	Mode        string
	ID          int64
	Name        string
	Latitude    string
	Longitude   string
	Description string
	Status      string
}

func (h *Handler) fetchShops(r *http.Request) ([]models.Shop, error) {
	return fetchList(r.Context(), &h.shops, h.log, "shops", h.api.Shops)
}

func (h *Handler) listShops(w http.ResponseWriter, r *http.Request) error {
	shops, err := h.fetchShops(r)
	if err != nil {
		return err
	}
	return h.render(w, "shops.html", pageData{
		Title:  "Shops",
		Active: "shops",
		Data:   shopsView{Shops: shops},
	})
}

func (h *Handler) findShop(r *http.Request) (models.Shop, error) {
	id, err := pathID(r)
	if err != nil {
		return models.Shop{}, fmt.Errorf("bad shop id: %w", err)
	}
	shops, err := h.fetchShops(r)
	if err != nil {
		return models.Shop{}, err
	}
	for _, s := range shops {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Shop{}, fmt.Errorf("shop %d not found", id)
}

func (h *Handler) newShopForm(w http.ResponseWriter, r *http.Request) error {
	return h.render(w, "shop_form.html", pageData{
		Title:  "Add Shop",
		Active: "shops",
		Data:   shopFormView{Mode: "add", Status: models.ShopOpen},
	})
}

func (h *Handler) editShopForm(w http.ResponseWriter, r *http.Request) error {
	s, err := h.findShop(r)
	if err != nil {
		return err
	}
	return h.render(w, "shop_form.html", pageData{
		Title:  "Edit Shop",
		Active: "shops",
		Data: shopFormView{
			Mode:        "edit",
			ID:          s.ID,
			Name:        s.Name,
			Latitude:    strconv.FormatFloat(s.Latitude, 'f', -1, 64),
			Longitude:   strconv.FormatFloat(s.Longitude, 'f', -1, 64),
			Description: s.Description,
			Status:      s.Status,
		},
	})
}

func shopRequestFromForm(r *http.Request) (client.ShopRequest, shopFormView, string) {
	view := shopFormView{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Latitude:    strings.TrimSpace(r.PostFormValue("latitude")),
		Longitude:   strings.TrimSpace(r.PostFormValue("longitude")),
		Description: r.PostFormValue("description"),
		Status:      r.PostFormValue("status"),
	}

	req := client.ShopRequest{
		Name:        view.Name,
		Description: view.Description,
		Status:      view.Status,
	}
	if view.Name == "" {
		return req, view, "Name is required."
	}
	lat, err := strconv.ParseFloat(view.Latitude, 64)
	if err != nil {
		return req, view, "Latitude must be a number."
	}
	long, err := strconv.ParseFloat(view.Longitude, 64)
	if err != nil {
		return req, view, "Longitude must be a number."
	}
	req.Latitude = lat
	req.Longitude = long
	if view.Status != models.ShopOpen && view.Status != models.ShopClosed {
		return req, view, "Status must be OPEN or CLOSED."
	}
	return req, view, ""
}

func (h *Handler) createShop(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	req, view, problem := shopRequestFromForm(r)
	view.Mode = "add"
	if problem == "" {
		if err := h.api.CreateShop(r.Context(), req); err != nil {
			if sessionLost(err) {
				return err
			}
			problem = client.Message(err)
		}
	}
	if problem != "" {
		return h.render(w, "shop_form.html", pageData{
			Title: "Add Shop", Active: "shops", Error: problem, Data: view,
		})
	}
	http.Redirect(w, r, "/shops", http.StatusSeeOther)
	return nil
}

func (h *Handler) updateShop(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return fmt.Errorf("bad shop id: %w", err)
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	req, view, problem := shopRequestFromForm(r)
	view.Mode = "edit"
	view.ID = id
	if problem == "" {
		if err := h.api.UpdateShop(r.Context(), id, req); err != nil {
			if sessionLost(err) {
				return err
			}
			problem = client.Message(err)
		}
	}
	if problem != "" {
		return h.render(w, "shop_form.html", pageData{
			Title: "Edit Shop", Active: "shops", Error: problem, Data: view,
		})
	}
	http.Redirect(w, r, "/shops", http.StatusSeeOther)
	return nil
}

func (h *Handler) confirmDeleteShop(w http.ResponseWriter, r *http.Request) error {
	s, err := h.findShop(r)
	if err != nil {
		return err
	}
	return h.renderConfirm(w, "shops", "", confirmView{
		Prompt: "Delete this shop?",
		Detail: s.Name,
		Action: fmt.Sprintf("/shops/%d/delete", s.ID),
		Cancel: "/shops",
	})
}

func (h *Handler) deleteShop(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return fmt.Errorf("bad shop id: %w", err)
	}
	if err := h.api.DeleteShop(r.Context(), id); err != nil {
		if sessionLost(err) {
			return err
		}
		return h.renderConfirm(w, "shops", client.Message(err), confirmView{
			Prompt: "Delete this shop?",
			Action: fmt.Sprintf("/shops/%d/delete", id),
			Cancel: "/shops",
		})
	}
	http.Redirect(w, r, "/shops", http.StatusSeeOther)
	return nil
}
