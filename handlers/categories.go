package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/amresh-singh-kipm/quick-admin/client"
	"github.com/amresh-singh-kipm/quick-admin/models"
)

type categoriesView struct {
	Categories []models.Category
}

type categoryFormView struct {
	Mode     string // "add" or "edit"
	ID       int64
	Name     string
	ParentID string
	// Parents excludes the record being edited; a category cannot be its
	// own parent.
	Parents []models.Category
}

func (h *Handler) fetchCategories(r *http.Request) ([]models.Category, error) {
	return fetchList(r.Context(), &h.categories, h.log, "categories", h.api.Categories)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.fetchCategories(r)
	if err != nil {
		return err
	}
	return h.render(w, "categories.html", pageData{
		Title:  "Product Categories",
		Active: "categories",
		Data:   categoriesView{Categories: categories},
	})
}

func (h *Handler) categoryParents(r *http.Request, excludeID int64) ([]models.Category, error) {
	categories, err := h.fetchCategories(r)
	if err != nil {
		return nil, err
	}
	parents := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if c.ID != excludeID {
			parents = append(parents, c)
		}
	}
	return parents, nil
}

func (h *Handler) newCategoryForm(w http.ResponseWriter, r *http.Request) error {
	parents, err := h.categoryParents(r, 0)
	if err != nil {
		return err
	}
	return h.render(w, "category_form.html", pageData{
		Title:  "Add Category",
		Active: "categories",
		Data:   categoryFormView{Mode: "add", Parents: parents},
	})
}

func (h *Handler) editCategoryForm(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return fmt.Errorf("bad category id: %w", err)
	}
	categories, err := h.fetchCategories(r)
	if err != nil {
		return err
	}

	view := categoryFormView{Mode: "edit", ID: id}
	found := false
	for _, c := range categories {
		if c.ID == id {
			found = true
			view.Name = c.Name
			if c.ParentID != nil {
				view.ParentID = strconv.FormatInt(*c.ParentID, 10)
			}
		} else {
			view.Parents = append(view.Parents, c)
		}
	}
	if !found {
		return fmt.Errorf("category %d not found", id)
	}
	return h.render(w, "category_form.html", pageData{
		Title:  "Edit Category",
		Active: "categories",
		Data:   view,
	})
}

func (h *Handler) categoryRequestFromForm(r *http.Request) (client.CategoryRequest, string) {
	name := strings.TrimSpace(r.PostFormValue("name"))
	parent := r.PostFormValue("parent_id")

	req := client.CategoryRequest{Name: name}
	if parent != "" {
		if id, err := strconv.ParseInt(parent, 10, 64); err == nil {
			req.ParentID = &id
		}
	}
	if name == "" {
		return req, "Name is required."
	}
	return req, ""
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	req, problem := h.categoryRequestFromForm(r)
	if problem == "" {
		if err := h.api.CreateCategory(r.Context(), req); err != nil {
			if sessionLost(err) {
				return err
			}
			problem = client.Message(err)
		}
	}
	if problem != "" {
		parents, err := h.categoryParents(r, 0)
		if err != nil {
			return err
		}
		return h.render(w, "category_form.html", pageData{
			Title: "Add Category", Active: "categories", Error: problem,
			Data: categoryFormView{
				Mode:     "add",
				Name:     r.PostFormValue("name"),
				ParentID: r.PostFormValue("parent_id"),
				Parents:  parents,
			},
		})
	}
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
	return nil
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return fmt.Errorf("bad category id: %w", err)
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	req, problem := h.categoryRequestFromForm(r)
	if problem == "" {
		if err := h.api.UpdateCategory(r.Context(), id, req); err != nil {
			if sessionLost(err) {
				return err
			}
			problem = client.Message(err)
		}
	}
	if problem != "" {
		parents, err := h.categoryParents(r, id)
		if err != nil {
			return err
		}
		return h.render(w, "category_form.html", pageData{
			Title: "Edit Category", Active: "categories", Error: problem,
			Data: categoryFormView{
				Mode:     "edit",
				ID:       id,
				Name:     r.PostFormValue("name"),
				ParentID: r.PostFormValue("parent_id"),
				Parents:  parents,
			},
		})
	}
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
	return nil
}

func (h *Handler) confirmDeleteCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return fmt.Errorf("bad category id: %w", err)
	}
	detail := ""
	if categories, err := h.fetchCategories(r); err == nil {
		for _, c := range categories {
			if c.ID == id {
				detail = c.Name
			}
		}
	} else {
		return err
	}
	return h.renderConfirm(w, "categories", "", confirmView{
		Prompt: "Are you sure you want to delete this category?",
		Detail: detail,
		Action: fmt.Sprintf("/categories/%d/delete", id),
		Cancel: "/categories",
	})
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return fmt.Errorf("bad category id: %w", err)
	}
	if err := h.api.DeleteCategory(r.Context(), id); err != nil {
		if sessionLost(err) {
			return err
		}
		return h.renderConfirm(w, "categories", client.Message(err), confirmView{
			Prompt: "Are you sure you want to delete this category?",
			Action: fmt.Sprintf("/categories/%d/delete", id),
			Cancel: "/categories",
		})
	}
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
	return nil
}
