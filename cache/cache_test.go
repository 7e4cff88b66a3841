package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// countingHandler records how many times the live handler served a path.
type countingHandler struct {
	hits   map[string]int
	status int
	body   string
}

func newCountingHandler(status int, body string) *countingHandler {
	return &countingHandler{
		hits:   make(map[string]int),
		status: status,
		body:   body,
	}
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.hits[r.URL.Path]++
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(h.status)
	_, _ = w.Write([]byte(h.body))
}

func TestAPIRequestsNeverServedFromCache(t *testing.T) {
	store := NewMemoryStore()
	// even a warm entry for the API path must be ignored
	err := store.Put(context.Background(), RuntimeBucket, "/api/readings/current", &Entry{
		Status:      http.StatusOK,
		ContentType: "application/json",
		Body:        []byte(`{"stale":true}`),
	})
	assert.NoError(t, err, "wrong Put")

	next := newCountingHandler(http.StatusOK, "live")
	m := New(next, store, "")

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/readings/current", nil))
		assert.Equal(t, "live", rec.Body.String(), "wrong body")
	}
	assert.Equal(t, 2, next.hits["/api/readings/current"], "api path must hit the network every time")
}

func TestCacheFirstServesFromCache(t *testing.T) {
	next := newCountingHandler(http.StatusOK, "asset")
	m := New(next, NewMemoryStore(), "")

	first := httptest.NewRecorder()
	m.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	assert.Equal(t, "asset", first.Body.String(), "wrong body")

	second := httptest.NewRecorder()
	m.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	assert.Equal(t, "asset", second.Body.String(), "wrong cached body")
	assert.Equal(t, 1, next.hits["/static/app.js"], "second request must come from cache")
}

func TestOnlySuccessfulResponsesStored(t *testing.T) {
	next := newCountingHandler(http.StatusNotFound, "missing")
	m := New(next, NewMemoryStore(), "")

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/gone.js", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, "wrong status")
	}
	assert.Equal(t, 2, next.hits["/static/gone.js"], "non-200 must not be cached")
}

func TestNavigationNetworkFirst(t *testing.T) {
	next := newCountingHandler(http.StatusOK, "page")
	m := New(next, NewMemoryStore(), "")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "text/html")

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		m.ServeHTTP(rec, req)
		assert.Equal(t, "page", rec.Body.String(), "wrong body")
	}
	assert.Equal(t, 2, next.hits["/dashboard"], "navigation must go to the network first")
}

func TestNavigationFallsBackToCachedPage(t *testing.T) {
	store := NewMemoryStore()
	err := store.Put(context.Background(), RuntimeBucket, "/dashboard", &Entry{
		Status:      http.StatusOK,
		ContentType: "text/html",
		Body:        []byte("cached page"),
	})
	assert.NoError(t, err, "wrong Put")

	next := newCountingHandler(http.StatusBadGateway, "down")
	m := New(next, store, "")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "text/html")

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "wrong status")
	assert.Equal(t, "cached page", rec.Body.String(), "wrong fallback body")
}

func TestNavigationFallsBackToRoot(t *testing.T) {
	store := NewMemoryStore()
	err := store.Put(context.Background(), PrecacheBucket, "/", &Entry{
		Status:      http.StatusOK,
		ContentType: "text/html",
		Body:        []byte("shell"),
	})
	assert.NoError(t, err, "wrong Put")

	next := newCountingHandler(http.StatusInternalServerError, "down")
	m := New(next, store, "")

	req := httptest.NewRequest(http.MethodGet, "/never-seen", nil)
	req.Header.Set("Accept", "text/html")

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	assert.Equal(t, "shell", rec.Body.String(), "wrong shell fallback")
}

func TestCrossOriginPassThrough(t *testing.T) {
	next := newCountingHandler(http.StatusOK, "elsewhere")
	m := New(next, NewMemoryStore(), "aerovital.example.com")

	req := httptest.NewRequest(http.MethodGet, "/static/font.woff", nil)
	req.Host = "fonts.example.org"

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		m.ServeHTTP(rec, req)
		assert.Equal(t, "elsewhere", rec.Body.String(), "wrong body")
	}
	assert.Equal(t, 2, next.hits["/static/font.woff"], "cross-origin must never be cached")
}

func TestInstallAndActivate(t *testing.T) {
	store := NewMemoryStore()
	// leftovers from a previous version
	err := store.Put(context.Background(), "aerovital-v2.9", "/old", &Entry{Status: http.StatusOK})
	assert.NoError(t, err, "wrong Put")

	next := newCountingHandler(http.StatusOK, "shell")
	m := New(next, store, "")

	m.Install([]string{"/", "/manifest.json"})
	assert.NoError(t, m.Activate(), "wrong Activate")

	_, err = store.Get(context.Background(), PrecacheBucket, "/")
	assert.NoError(t, err, "precached shell must survive activation")

	_, err = store.Get(context.Background(), "aerovital-v2.9", "/old")
	assert.ErrorIs(t, err, ErrCacheMiss, "stale version bucket must be swept")
}
