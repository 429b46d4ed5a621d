package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/tonmoyth/landing-page-two/internal/backend"
)

// UserMessage maps a backend error to something safe to show the user.
func UserMessage(err error) string {
	var se *backend.StatusError
	if errors.As(err, &se) {
		return se.UserMessage()
	}
	var de *backend.DecodeError
	if errors.As(err, &de) {
		return "Unexpected response from the server. Please try again."
	}
	return "Something went wrong. Please try again."
}

// RedirectIfUnauthorized is the single place 401s are handled: clear the
// admin session, flash a session-expired notice and send the user to the
// login page. Returns true when the error was a 401 and the response has
// been written.
func RedirectIfUnauthorized(store *sessions.CookieStore, w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, backend.ErrUnauthorized) {
		return false
	}
	session, _ := store.Get(r, "admin-session")
	session.Values["authenticated"] = false
	session.AddFlash(FlashMessage{Type: "warning", Message: "Session expired. Please log in again."})
	session.Save(r, w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}
