package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/tonmoyth/landing-page-two/internal/backend"
	"github.com/tonmoyth/landing-page-two/internal/imghost"
)

type AdminHandler struct {
	Backend      *backend.Client
	Uploader     *imghost.Uploader
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

// relayCookies forwards the backend's Set-Cookie headers to the browser so
// the backend session credential lives in the visitor's browser, not here.
func relayCookies(w http.ResponseWriter, cookies []*http.Cookie) {
	for _, ck := range cookies {
		http.SetCookie(w, ck)
	}
}

func (h *AdminHandler) renderAuthPage(w http.ResponseWriter, r *http.Request, name string) {
	tmpl := h.Templates.Get(name)
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	h.renderAuthPage(w, r, "login.html")
}

func (h *AdminHandler) RegisterGet(w http.ResponseWriter, r *http.Request) {
	h.renderAuthPage(w, r, "register.html")
}

func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	creds := backend.Credentials{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	result, cookies, err := h.Backend.Bind(r).Login(r.Context(), creds)
	relayCookies(w, cookies)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: UserMessage(err)})
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	name := result.UserName
	if name == "" {
		name = "User"
	}

	session.Values["authenticated"] = true
	session.Values["user_name"] = name
	session.Options.Path = "/"
	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome back, " + name + "!"})

	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Login successful, redirecting to /admin", "user", name)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) RegisterPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	creds := backend.Credentials{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	result, cookies, err := h.Backend.Bind(r).Register(r.Context(), creds)
	relayCookies(w, cookies)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: UserMessage(err)})
		session.Save(r, w)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	msg := result.Message
	if msg == "" {
		msg = "Registration successful. Please log in."
	}
	session.AddFlash(FlashMessage{Type: "success", Message: msg})
	session.Save(r, w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	result, cookies, err := h.Backend.Bind(r).Logout(r.Context())
	relayCookies(w, cookies)

	// The local session is cleared regardless: a failed backend logout
	// must not leave the admin shell accessible.
	session.Values["authenticated"] = false
	session.Options.MaxAge = -1

	msg := "Logged out successfully!"
	if err != nil {
		slog.Warn("Backend logout failed", "error", err)
	} else if result.Message != "" {
		msg = result.Message
	}
	session.AddFlash(FlashMessage{Type: "success", Message: msg})
	session.Save(r, w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// AuthMiddleware ensures the user is logged in
func (h *AdminHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.SessionStore.Get(r, "admin-session")
		if auth, ok := session.Values["authenticated"].(bool); !ok || !auth {
			slog.Info("AuthMiddleware: User not authenticated, redirecting to /login", "path", r.URL.Path)
			session.AddFlash(FlashMessage{Type: "error", Message: "You must be logged in to access this page."})
			session.Save(r, w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}
