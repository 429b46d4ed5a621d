package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/tonmoyth/landing-page-two/internal/models"
)

// filterOrders keeps orders whose buyer name or email contains the term,
// case-insensitively. An empty term keeps everything.
func filterOrders(orders []models.Order, term string) []models.Order {
	if term == "" {
		return orders
	}
	term = strings.ToLower(term)
	var filtered []models.Order
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.Name), term) ||
			strings.Contains(strings.ToLower(o.Email), term) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	query := r.URL.Query().Get("q")

	orders, err := h.Backend.Bind(r).AllOrders(r.Context())
	if err != nil {
		if RedirectIfUnauthorized(h.SessionStore, w, r, err) {
			return
		}
		session.AddFlash(FlashMessage{Type: "error", Message: UserMessage(err)})
		orders = nil
	}

	tmpl := h.Templates.Get("admin_orders.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Orders":    filterOrders(orders, query),
		"Query":     query,
		"Statuses":  models.OrderStatuses,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UpdateOrderStatus sends a status-only partial update, then redirects back
// to the list so the table is re-fetched rather than patched in place.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	id := r.FormValue("id")
	status := r.FormValue("status")
	query := r.FormValue("q")

	back := "/admin/orders"
	if query != "" {
		back += "?q=" + url.QueryEscape(query)
	}

	if id == "" || !models.ValidStatus(status) {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid status update."})
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	if err := h.Backend.Bind(r).UpdateOrderStatus(r.Context(), id, status); err != nil {
		if RedirectIfUnauthorized(h.SessionStore, w, r, err) {
			return
		}
		session.AddFlash(FlashMessage{Type: "error", Message: UserMessage(err)})
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Order marked as " + status + "."})
	http.Redirect(w, r, back, http.StatusSeeOther)
}
