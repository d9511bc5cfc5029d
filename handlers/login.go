package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/amresh-singh-kipm/quick-admin/client"
)

type loginView struct {
	Mobile string
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) error {
	if h.sessions.Active() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil
	}
	return h.render(w, "login.html", pageData{Title: "Sign In", Data: loginView{}})
}

func (h *Handler) loginSubmit(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return h.render(w, "login.html", pageData{
			Title: "Sign In",
			Error: "Invalid form submission.",
			Data:  loginView{},
		})
	}

	mobile := strings.TrimSpace(r.PostFormValue("mobile"))
	password := r.PostFormValue("password")
	view := loginView{Mobile: mobile}

	if mobile == "" || password == "" {
		return h.render(w, "login.html", pageData{
			Title: "Sign In",
			Error: "Mobile number and password are required.",
			Data:  view,
		})
	}

	token, user, err := h.api.Login(r.Context(), mobile, password)
	if err != nil {
		// Failed logins of every kind leave no state behind; resubmitting
		// the form retries safely.
		msg := client.Message(err)
		var apiErr *client.APIError
		if !errors.Is(err, client.ErrAccessDenied) &&
			(!errors.As(err, &apiErr) || apiErr.Message == "") {
			msg = "Login failed. Please check your credentials."
		}
		h.log.Info("login rejected", "mobile", mobile)
		return h.render(w, "login.html", pageData{Title: "Sign In", Error: msg, Data: view})
	}

	if err := h.sessions.Save(token, user); err != nil {
		return err
	}
	h.log.Info("operator signed in", "name", user.Name)
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return nil
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) error {
	if err := h.sessions.Clear(); err != nil {
		return err
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return nil
}
