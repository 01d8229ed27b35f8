package restapi

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const uuidPattern = `^[0-9a-f-]{36}$`

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"missing header gets a UUID", "", false},
		{"valid id is propagated", "board-trace:42.a_b", true},
		{"128 characters is accepted", strings.Repeat("a", 128), true},
		{"129 characters is replaced", strings.Repeat("a", 129), false},
		{"markup is replaced", "bad-id-<script>", false},
		{"whitespace is replaced", "two words", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/arrivals", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
			if tt.keep {
				assert.Equal(t, tt.incoming, seen)
			} else {
				assert.Regexp(t, uuidPattern, seen)
			}
		})
	}
}

func TestGetRequestID_EmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetRequestID(req.Context()))
}

func TestRequestLoggingMiddleware(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logBuf, nil))

	var scopedFromContext bool
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scopedFromContext = r.Context().Value(RequestIDKey) != nil
		w.WriteHeader(http.StatusTeapot)
	})
	handler := RequestIDMiddleware(NewRequestLoggingMiddleware(logger)(final))

	req := httptest.NewRequest(http.MethodGet, "/api/arrivals", nil)
	req.Header.Set(RequestIDHeader, "integration-test-id-999")
	req.Header.Set("User-Agent", "board-test")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := logBuf.String()
	assert.True(t, scopedFromContext)
	assert.Contains(t, out, `"request_id":"integration-test-id-999"`)
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"path":"/api/arrivals"`)
	assert.Contains(t, out, `"user_agent":"board-test"`)
	assert.Contains(t, out, `"level":"WARN"`)
}
