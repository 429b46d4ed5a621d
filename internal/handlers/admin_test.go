package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestLoginPost(t *testing.T) {
	t.Run("success relays the backend cookie and opens the admin shell", func(t *testing.T) {
		h, _ := newAdminHandler(t, func(w http.ResponseWriter, r *http.Request) {
			http.SetCookie(w, &http.Cookie{Name: "connect.sid", Value: "s3ss10n"})
			_, _ = w.Write([]byte(`{"message":"logged in","user":{"name":"Julia"}}`))
		})

		form := url.Values{"username": {"admin"}, "password": {"hunter2"}}
		rr := httptest.NewRecorder()
		h.LoginPost(rr, postForm("/login", form))

		if rr.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/admin" {
			t.Errorf("expected /admin, got %s", loc)
		}

		var relayed bool
		for _, ck := range rr.Result().Cookies() {
			if ck.Name == "connect.sid" && ck.Value == "s3ss10n" {
				relayed = true
			}
		}
		if !relayed {
			t.Error("expected the backend session cookie on the response")
		}
	})

	t.Run("bad credentials bounce back to the login page", func(t *testing.T) {
		h, _ := newAdminHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		form := url.Values{"username": {"admin"}, "password": {"wrong"}}
		rr := httptest.NewRecorder()
		h.LoginPost(rr, postForm("/login", form))

		if rr.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/login" {
			t.Errorf("expected /login, got %s", loc)
		}
	})
}

func TestLogout(t *testing.T) {
	t.Run("clears the local session even when the backend call fails", func(t *testing.T) {
		h, _ := newAdminHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		rr := httptest.NewRecorder()
		h.Logout(rr, httptest.NewRequest(http.MethodGet, "/logout", nil))

		if loc := rr.Header().Get("Location"); loc != "/login" {
			t.Errorf("expected /login, got %s", loc)
		}
		var expired bool
		for _, ck := range rr.Result().Cookies() {
			if ck.Name == "admin-session" && ck.MaxAge < 0 {
				expired = true
			}
		}
		if !expired {
			t.Error("expected the admin session cookie to be expired")
		}
	})
}

func TestAuthMiddleware(t *testing.T) {
	h, _ := newAdminHandler(t, func(w http.ResponseWriter, r *http.Request) {})

	var called bool
	protected := h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rr := httptest.NewRecorder()
	protected(rr, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if called {
		t.Error("the protected handler must not run without a session")
	}
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected a redirect, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected /login, got %s", loc)
	}
}
