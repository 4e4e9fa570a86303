package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"finbook/internal/auth"
	"finbook/internal/http/flash"
	"finbook/internal/http/view"
)

// PageHandler serves the HTML surface: dashboard, login, register, logout.
type PageHandler struct {
	Users    auth.Store
	Sessions *auth.Sessions
}

type pageData struct {
	Flash string
	User  *auth.User
}

func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	view.Render(w, "index.html", pageData{User: u})
}

func (h *PageHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	msg, _ := flash.Take(w, r)
	view.Render(w, "login.html", pageData{Flash: msg})
}

func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		view.Render(w, "login.html", pageData{Flash: "Invalid email or password"})
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	remember := r.PostFormValue("remember") != ""

	u, err := h.Users.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			view.Render(w, "login.html", pageData{Flash: "Invalid email or password"})
			return
		}
		slog.Error("login failed", "err", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	if err := h.Sessions.Begin(w, u, remember); err != nil {
		slog.Error("session begin failed", "err", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *PageHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	msg, _ := flash.Take(w, r)
	view.Render(w, "register.html", pageData{Flash: msg})
}

func (h *PageHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		view.Render(w, "register.html", pageData{Flash: "All fields are required"})
		return
	}
	name := strings.TrimSpace(r.PostFormValue("name"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if name == "" || email == "" || password == "" {
		view.Render(w, "register.html", pageData{Flash: "All fields are required"})
		return
	}

	if _, err := h.Users.Register(r.Context(), name, email, password); err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			view.Render(w, "register.html", pageData{Flash: "Email already registered"})
			return
		}
		slog.Error("register failed", "err", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	flash.Set(w, "Registration successful! Please login.")
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.End(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
