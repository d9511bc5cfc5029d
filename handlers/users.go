package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/amresh-singh-kipm/quick-admin/client"
	"github.com/amresh-singh-kipm/quick-admin/models"
)

type usersView struct {
	Users []models.User
}

type userFormView struct {
	ID           int64
	FullName     string
	MobileNumber string
	Role         string
	IsActive     int
	Roles        []string
}

func (h *Handler) fetchUsers(r *http.Request) ([]models.User, error) {
	return fetchList(r.Context(), &h.users, h.log, "users", h.api.Users)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.fetchUsers(r)
	if err != nil {
		return err
	}
	return h.render(w, "users.html", pageData{
		Title:  "Platform Users",
		Active: "users",
		Data:   usersView{Users: users},
	})
}

func (h *Handler) findUser(r *http.Request) (models.User, error) {
	id, err := pathID(r)
	if err != nil {
		return models.User{}, fmt.Errorf("bad user id: %w", err)
	}
	users, err := h.fetchUsers(r)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %d not found", id)
}

func (h *Handler) editUserForm(w http.ResponseWriter, r *http.Request) error {
	u, err := h.findUser(r)
	if err != nil {
		return err
	}
	active := u.IsActive
	if active == 0 {
		active = 1
	}
	return h.render(w, "user_form.html", pageData{
		Title:  "Edit User",
		Active: "users",
		Data: userFormView{
			ID:           u.ID,
			FullName:     u.FullName,
			MobileNumber: u.MobileNumber,
			Role:         u.Role,
			IsActive:     active,
			Roles:        models.Roles,
		},
	})
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return fmt.Errorf("bad user id: %w", err)
	}
	if err := r.ParseForm(); err != nil {
		return err
	}

	update := client.UserUpdate{
		FullName:     strings.TrimSpace(r.PostFormValue("full_name")),
		MobileNumber: strings.TrimSpace(r.PostFormValue("mobile_number")),
		Role:         r.PostFormValue("role"),
		IsActive:     1,
	}
	if v, err := strconv.Atoi(r.PostFormValue("is_active")); err == nil {
		update.IsActive = v
	}

	view := userFormView{
		ID:           id,
		FullName:     update.FullName,
		MobileNumber: update.MobileNumber,
		Role:         update.Role,
		IsActive:     update.IsActive,
		Roles:        models.Roles,
	}

	if update.FullName == "" || update.MobileNumber == "" || update.Role == "" {
		return h.render(w, "user_form.html", pageData{
			Title: "Edit User", Active: "users",
			Error: "Full name, mobile number and role are required.",
			Data:  view,
		})
	}

	if err := h.api.UpdateUser(r.Context(), id, update); err != nil {
		if sessionLost(err) {
			return err
		}
		// The form stays open with the entered values intact.
		return h.render(w, "user_form.html", pageData{
			Title: "Edit User", Active: "users",
			Error: client.Message(err),
			Data:  view,
		})
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
	return nil
}

func (h *Handler) confirmDeactivateUser(w http.ResponseWriter, r *http.Request) error {
	u, err := h.findUser(r)
	if err != nil {
		return err
	}
	return h.renderConfirm(w, "users", "", confirmView{
		Prompt: "Deactivate this user?",
		Detail: u.FullName + " (" + u.MobileNumber + ")",
		Action: fmt.Sprintf("/users/%d/deactivate", u.ID),
		Cancel: "/users",
	})
}

func (h *Handler) deactivateUser(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return fmt.Errorf("bad user id: %w", err)
	}
	if err := h.api.DeactivateUser(r.Context(), id); err != nil {
		if sessionLost(err) {
			return err
		}
		return h.renderConfirm(w, "users", client.Message(err), confirmView{
			Prompt: "Deactivate this user?",
			Action: fmt.Sprintf("/users/%d/deactivate", id),
			Cancel: "/users",
		})
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
	return nil
}
