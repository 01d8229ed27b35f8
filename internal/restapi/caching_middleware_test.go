package restapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheControlMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		maxAge   time.Duration
		status   int
		expected string
	}{
		{"live data is never cached", 0, http.StatusOK, "no-cache, no-store, must-revalidate"},
		{"static asset is cacheable", 5 * time.Minute, http.StatusOK, "public, max-age=300"},
		{"revalidated asset stays cacheable", 5 * time.Minute, http.StatusNotModified, "public, max-age=300"},
		{"not found is not cached", 5 * time.Minute, http.StatusNotFound, "no-cache, no-store, must-revalidate"},
		{"rate limited is not cached", time.Minute, http.StatusTooManyRequests, "no-cache, no-store, must-revalidate"},
		{"sub-second max age means no-store", 500 * time.Millisecond, http.StatusOK, "no-cache, no-store, must-revalidate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CacheControlMiddleware(tt.maxAge, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.expected, rec.Header().Get("Cache-Control"))
		})
	}
}

func TestCacheControlMiddleware_ImplicitOK(t *testing.T) {
	handler := CacheControlMiddleware(time.Minute, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("body"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "body", rec.Body.String())
}
