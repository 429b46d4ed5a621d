package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gorilla/sessions"

	"github.com/tonmoyth/landing-page-two/internal/backend"
)

func loadTestTemplates(t *testing.T) *TemplateCache {
	t.Helper()
	tc := NewTemplateCache()
	if err := tc.Load(filepath.Join("..", "..", "templates")); err != nil {
		t.Fatalf("loading templates: %v", err)
	}
	return tc
}

func testSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
}

// backendRecorder remembers every request the handlers sent to the backend,
// on top of whatever responses the wrapped handler gives.
type backendRecorder struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string][]byte
}

func (br *backendRecorder) record(r *http.Request, body []byte) {
	br.mu.Lock()
	defer br.mu.Unlock()
	key := r.Method + " " + r.URL.Path
	br.requests = append(br.requests, key)
	if br.bodies == nil {
		br.bodies = make(map[string][]byte)
	}
	br.bodies[key] = body
}

func (br *backendRecorder) saw(methodPath string) bool {
	br.mu.Lock()
	defer br.mu.Unlock()
	for _, req := range br.requests {
		if req == methodPath {
			return true
		}
	}
	return false
}

func (br *backendRecorder) body(methodPath string) []byte {
	br.mu.Lock()
	defer br.mu.Unlock()
	return br.bodies[methodPath]
}

func testBackend(t *testing.T, h http.HandlerFunc) (*backend.Client, *backendRecorder) {
	t.Helper()
	rec := &backendRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.record(r, body)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL, backend.WithHTTPClient(srv.Client())), rec
}
