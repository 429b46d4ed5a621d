package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/tonmoyth/landing-page-two/internal/backend"
	"github.com/tonmoyth/landing-page-two/internal/models"
)

type OrderHandler struct {
	Backend      *backend.Client
	Home         *HomeHandler
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Validate     *validator.Validate
}

func formFromRequest(r *http.Request) models.OrderForm {
	return models.OrderForm{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Address: r.FormValue("address"),
		Floor:   r.FormValue("floor"),
	}
}

// Review validates the order form and, when it passes, shows the blocking
// confirmation page with the full payload carried in hidden fields.
// Validation failures re-render the form with per-field messages and issue
// no order request.
func (h *OrderHandler) Review(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "public-session")

	if err := r.ParseForm(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	form := formFromRequest(r)
	qty := models.ClampQuantity(r.FormValue("qty"))
	selectedID := r.FormValue("product_id")

	if fieldErrors := form.Validate(h.Validate); len(fieldErrors) > 0 {
		h.Home.RenderHome(w, r, form, qty, selectedID, fieldErrors)
		return
	}

	// Snapshot the product from the live catalog rather than trusting
	// hidden price fields from the public form.
	view := h.Home.loadCatalog(r)
	product, ok := view.Select(selectedID)
	if !ok {
		session.AddFlash(FlashMessage{Type: "error", Message: "No products are available to order right now."})
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	tmpl := h.Templates.Get("order_review.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Form":      form,
		"Product":   product,
		"Qty":       qty,
		"Pricing":   models.NewPricing(product.Price, qty),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Submit sends the confirmed order to the backend. Success clears the form
// (the product selection survives via the redirect); failure re-renders the
// form with everything the buyer typed still in place.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "public-session")

	if err := r.ParseForm(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	form := formFromRequest(r)
	qty := models.ClampQuantity(r.FormValue("qty"))
	selectedID := r.FormValue("product_id")

	if fieldErrors := form.Validate(h.Validate); len(fieldErrors) > 0 {
		h.Home.RenderHome(w, r, form, qty, selectedID, fieldErrors)
		return
	}

	// Same snapshot rule as Review: price and product details come from the
	// live catalog, never from hidden fields the browser could tamper with.
	view := h.Home.loadCatalog(r)
	product, ok := view.Select(selectedID)
	if !ok {
		session.AddFlash(FlashMessage{Type: "error", Message: "No products are available to order right now."})
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	order := models.Order{
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		Address:   form.Address,
		Floor:     form.Floor,
		Product:   product,
		Quantity:  qty,
		Pricing:   models.NewPricing(product.Price, qty),
		Status:    models.StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	orderID, err := h.Backend.Bind(r).CreateOrder(r.Context(), order)
	if err != nil {
		if RedirectIfUnauthorized(h.SessionStore, w, r, err) {
			return
		}
		session.AddFlash(FlashMessage{Type: "error", Message: UserMessage(err)})
		session.Save(r, w)
		h.Home.RenderHome(w, r, form, qty, selectedID, nil)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Order placed successfully! Your order ID is " + orderID + "."})
	session.Save(r, w)
	http.Redirect(w, r, "/?product="+url.QueryEscape(selectedID), http.StatusSeeOther)
}

// Lookup shows a buyer's past orders by email. Every lookup is a fresh
// fetch; a failed fetch shows an empty list, never stale data.
func (h *OrderHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "public-session")

	email := r.URL.Query().Get("email")
	submitted := r.URL.Query().Has("email")

	var orders []models.Order
	switch {
	case submitted && email == "":
		session.AddFlash(FlashMessage{Type: "error", Message: "Please enter your email."})
	case email != "":
		var err error
		orders, err = h.Backend.Bind(r).OrdersByEmail(r.Context(), email)
		if err != nil {
			if RedirectIfUnauthorized(h.SessionStore, w, r, err) {
				return
			}
			session.AddFlash(FlashMessage{Type: "error", Message: UserMessage(err)})
			orders = nil
		}
	}

	tmpl := h.Templates.Get("orders_lookup.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Email":   email,
		"Orders":  orders,
		"Flashes": GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
