package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tonmoyth/landing-page-two/internal/models"
)

const recentOrdersLimit = 5

// MonthBucket is one slot of the fixed twelve-month revenue overview.
// Percent is relative to the busiest month, for the bar chart.
type MonthBucket struct {
	Month   string
	Total   float64
	Percent int
}

// monthlyRevenue buckets order totals into twelve fixed calendar-month
// slots keyed by each order's creation month. Months without orders stay
// at zero.
func monthlyRevenue(orders []models.Order) []MonthBucket {
	buckets := make([]MonthBucket, 12)
	for i := range buckets {
		buckets[i].Month = time.Month(i + 1).String()[:3]
	}
	for _, o := range orders {
		m := int(o.CreatedAt.Month()) - 1
		buckets[m].Total += o.Pricing.Total
	}

	var max float64
	for _, b := range buckets {
		if b.Total > max {
			max = b.Total
		}
	}
	if max > 0 {
		for i := range buckets {
			buckets[i].Percent = int(buckets[i].Total / max * 100)
		}
	}
	return buckets
}

func totalRevenue(orders []models.Order) float64 {
	var sum float64
	for _, o := range orders {
		sum += o.Pricing.Total
	}
	return sum
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	s := h.Backend.Bind(r)
	orders, err := s.AllOrders(r.Context())
	if err != nil {
		if RedirectIfUnauthorized(h.SessionStore, w, r, err) {
			return
		}
		session.AddFlash(FlashMessage{Type: "error", Message: UserMessage(err)})
		orders = nil
	}

	recent, err := s.RecentOrders(r.Context(), recentOrdersLimit)
	if err != nil {
		if RedirectIfUnauthorized(h.SessionStore, w, r, err) {
			return
		}
		// The dashboard still renders without the recent-orders table.
		slog.Error("Failed to fetch recent orders", "error", err)
		recent = nil
	}

	tmpl := h.Templates.Get("admin.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Revenue":     totalRevenue(orders),
		"OrdersCount": len(orders),
		"Monthly":     monthlyRevenue(orders),
		"Recent":      recent,
		"UserName":    session.Values["user_name"],
		"Flashes":     GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
