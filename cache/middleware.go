package cache

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/sirupsen/logrus"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "cache")
}

const apiPrefix = "/api/"

// Middleware applies the offline caching policy in front of the app shell.
// Per request, evaluated in order: cross-origin requests pass through
// untouched; API paths are network-only; navigations are network-first with
// a cached fallback; everything else is cache-first.
type Middleware struct {
	host    string
	rootKey string
	next    http.Handler
	store   Store
}

// New wraps next with the caching policy. host is the origin this service
// considers its own; requests addressed elsewhere are never intercepted.
func New(next http.Handler, store Store, host string) *Middleware {
	return &Middleware{
		host:    host,
		rootKey: "/",
		next:    next,
		store:   store,
	}
}

// Install precaches the configured asset list by serving each path through
// the wrapped handler and storing the result in the versioned bucket.
func (m *Middleware) Install(assets []string) {
	for _, path := range assets {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		entry := m.serveAndRecord(req)
		if entry.Status != http.StatusOK {
			log.WithField("asset", path).Warn("precache asset unavailable")
			continue
		}
		if err := m.store.Put(req.Context(), PrecacheBucket, path, entry); err != nil {
			log.WithError(err).WithField("asset", path).Error("precache store failed")
		}
	}
	log.WithField("assets", len(assets)).Info("precache installed")
}

// Activate sweeps buckets left behind by previous versions. The current
// precache and runtime buckets survive; everything else under the bucket
// prefix is deleted.
func (m *Middleware) Activate() error {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return m.store.Sweep(req.Context(), PrecacheBucket, RuntimeBucket)
}

func (m *Middleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// cross-origin: do not intercept
	if m.host != "" && r.Host != "" && r.Host != m.host {
		m.next.ServeHTTP(w, r)
		return
	}

	path := r.URL.Path

	// API requests: always network, never cached. Freshness over
	// availability.
	if strings.HasPrefix(path, apiPrefix) {
		m.next.ServeHTTP(w, r)
		return
	}

	if isNavigation(r) {
		m.serveNetworkFirst(w, r)
		return
	}

	m.serveCacheFirst(w, r)
}

// serveNetworkFirst tries the live handler, caches a good response, and
// falls back to the cached entry or the root page when the origin fails.
func (m *Middleware) serveNetworkFirst(w http.ResponseWriter, r *http.Request) {
	entry := m.serveAndRecord(r)
	if entry.Status < http.StatusInternalServerError {
		if err := m.store.Put(r.Context(), RuntimeBucket, r.URL.Path, entry); err != nil {
			log.WithError(err).Warn("runtime cache store failed")
		}
		writeEntry(w, entry)
		return
	}

	cached, err := m.lookup(r, r.URL.Path)
	if err != nil {
		cached, err = m.lookup(r, m.rootKey)
	}
	if err != nil {
		writeEntry(w, entry)
		return
	}
	writeEntry(w, cached)
}

// serveCacheFirst serves a cached entry when present; otherwise runs the
// live handler and stores the response only when its status is exactly 200.
func (m *Middleware) serveCacheFirst(w http.ResponseWriter, r *http.Request) {
	if cached, err := m.lookup(r, r.URL.Path); err == nil {
		writeEntry(w, cached)
		return
	}

	entry := m.serveAndRecord(r)
	if entry.Status == http.StatusOK {
		if err := m.store.Put(r.Context(), RuntimeBucket, r.URL.Path, entry); err != nil {
			log.WithError(err).Warn("runtime cache store failed")
		}
	}
	writeEntry(w, entry)
}

// lookup checks the versioned precache bucket first, then the runtime
// bucket.
func (m *Middleware) lookup(r *http.Request, key string) (*Entry, error) {
	if entry, err := m.store.Get(r.Context(), PrecacheBucket, key); err == nil {
		return entry, nil
	}
	return m.store.Get(r.Context(), RuntimeBucket, key)
}

func (m *Middleware) serveAndRecord(r *http.Request) *Entry {
	rec := httptest.NewRecorder()
	m.next.ServeHTTP(rec, r)

	return &Entry{
		Status:      rec.Code,
		ContentType: rec.Header().Get("Content-Type"),
		Body:        rec.Body.Bytes(),
	}
}

func writeEntry(w http.ResponseWriter, entry *Entry) {
	if entry.ContentType != "" {
		w.Header().Set("Content-Type", entry.ContentType)
	}
	w.WriteHeader(entry.Status)
	_, _ = w.Write(entry.Body)
}

// isNavigation mirrors a full-page load: a GET asking for an HTML document.
func isNavigation(r *http.Request) bool {
	return r.Method == http.MethodGet && strings.Contains(r.Header.Get("Accept"), "text/html")
}
