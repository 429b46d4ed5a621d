package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/tonmoyth/landing-page-two/internal/models"
)

func TestFilterOrders(t *testing.T) {
	orders := []models.Order{
		{ID: "o1", Name: "Arif Hossain", Email: "arif@example.com"},
		{ID: "o2", Name: "Nadia Islam", Email: "nadia@example.com"},
		{ID: "o3", Name: "Karim Uddin", Email: "md.arif.karim@example.com"},
	}

	t.Run("empty term keeps everything", func(t *testing.T) {
		if got := filterOrders(orders, ""); len(got) != 3 {
			t.Errorf("expected all 3 orders, got %d", len(got))
		}
	})

	t.Run("matches name or email case-insensitively", func(t *testing.T) {
		got := filterOrders(orders, "ARIF")
		if len(got) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(got))
		}
		if got[0].ID != "o1" || got[1].ID != "o3" {
			t.Errorf("unexpected matches: %+v", got)
		}
	})

	t.Run("no matches yields an empty list", func(t *testing.T) {
		if got := filterOrders(orders, "zzz"); len(got) != 0 {
			t.Errorf("expected no matches, got %d", len(got))
		}
	})
}

func newAdminHandler(t *testing.T, backendFn http.HandlerFunc) (*AdminHandler, *backendRecorder) {
	t.Helper()
	client, rec := testBackend(t, backendFn)
	return &AdminHandler{
		Backend:      client,
		SessionStore: testSessionStore(),
		Templates:    loadTestTemplates(t),
	}, rec
}

func TestListOrders(t *testing.T) {
	h, _ := newAdminHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ordersA" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`[
			{"_id":"o1","name":"Arif Hossain","email":"arif@example.com","qty":2,"pricing":{"total":1100},"status":"Pending","createdAt":"2026-03-15T10:00:00Z"},
			{"_id":"o2","name":"Nadia Islam","email":"nadia@example.com","qty":1,"pricing":{"total":480},"status":"Shipped","createdAt":"2026-04-02T10:00:00Z"}
		]`))
	})

	rr := httptest.NewRecorder()
	h.ListOrders(rr, httptest.NewRequest(http.MethodGet, "/admin/orders?q=arif", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Arif Hossain") {
		t.Error("expected the matching order in the table")
	}
	if strings.Contains(body, "Nadia Islam") {
		t.Error("expected non-matching orders to be filtered out")
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("valid update patches the backend and redirects back", func(t *testing.T) {
		h, rec := newAdminHandler(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"message":"updated"}`))
		})

		form := url.Values{"id": {"o1"}, "status": {"Shipped"}, "q": {"arif"}}
		rr := httptest.NewRecorder()
		h.UpdateOrderStatus(rr, postForm("/admin/orders/update", form))

		if rr.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/admin/orders?q=arif" {
			t.Errorf("expected the search term to survive, got %s", loc)
		}
		if !rec.saw("PATCH /orders/o1") {
			t.Error("expected a PATCH to the backend")
		}
	})

	t.Run("an unknown status never reaches the backend", func(t *testing.T) {
		h, rec := newAdminHandler(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"message":"updated"}`))
		})

		form := url.Values{"id": {"o1"}, "status": {"Refunded"}}
		rr := httptest.NewRecorder()
		h.UpdateOrderStatus(rr, postForm("/admin/orders/update", form))

		if rr.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", rr.Code)
		}
		if rec.saw("PATCH /orders/o1") {
			t.Error("an invalid status must not be sent to the backend")
		}
	})

	t.Run("lowercase pending is not an admin status", func(t *testing.T) {
		h, rec := newAdminHandler(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"message":"updated"}`))
		})

		form := url.Values{"id": {"o1"}, "status": {"pending"}}
		rr := httptest.NewRecorder()
		h.UpdateOrderStatus(rr, postForm("/admin/orders/update", form))

		if rec.saw("PATCH /orders/o1") {
			t.Error("the creation-time status must not pass admin validation")
		}
	})
}
