package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/tonmoyth/landing-page-two/internal/backend"
	"github.com/tonmoyth/landing-page-two/internal/catalog"
	"github.com/tonmoyth/landing-page-two/internal/models"
)

type HomeHandler struct {
	Backend      *backend.Client
	Legacy       *catalog.FileSource
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// loadCatalog fetches the product list from the backend, falling back to the
// legacy static products.json only when the backend call fails.
func (h *HomeHandler) loadCatalog(r *http.Request) catalog.View {
	products, err := h.Backend.Bind(r).Products(r.Context())
	if err != nil && h.Legacy != nil {
		if legacy, lerr := h.Legacy.Products(r.Context()); lerr == nil {
			return catalog.ViewOf(legacy, nil)
		}
	}
	return catalog.ViewOf(products, err)
}

func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.RenderHome(w, r, models.OrderForm{}, 1, r.URL.Query().Get("product"), nil)
}

// RenderHome renders the public page: hero switcher, feature list and order
// form. The order handlers reuse it to re-render with entered values intact
// after a validation failure or a rejected submission.
func (h *HomeHandler) RenderHome(w http.ResponseWriter, r *http.Request, form models.OrderForm, qty int, selectedID string, fieldErrors map[string]string) {
	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	view := h.loadCatalog(r)
	selected, _ := view.Select(selectedID)
	pricing := models.NewPricing(selected.Price, qty)

	publicSession, _ := h.SessionStore.Get(r, "public-session")
	adminSession, _ := h.SessionStore.Get(r, "admin-session")

	isAdmin := false
	if auth, ok := adminSession.Values["authenticated"].(bool); ok && auth {
		isAdmin = true
	}

	data := map[string]interface{}{
		"Failed":      view.State == catalog.StateFailed,
		"Empty":       view.State == catalog.StateEmpty,
		"Products":    view.Products,
		"Selected":    selected,
		"Qty":         qty,
		"Pricing":     pricing,
		"Form":        form,
		"FieldErrors": fieldErrors,
		"CsrfField":   csrf.TemplateField(r),
		"Flashes":     GetFlash(publicSession),
		"IsAdmin":     isAdmin,
	}
	if view.Err != nil {
		data["Error"] = "Failed to load products. Please try again later."
	}
	publicSession.Save(r, w)
	tmpl.Execute(w, data)
}
