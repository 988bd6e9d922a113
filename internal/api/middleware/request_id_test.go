package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/airdash/airdash/internal/api/middleware"
)

func captureRequestID(t *testing.T, incoming string) (fromContext, fromHeader string) {
	t.Helper()
	handler := middleware.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		fromContext = middleware.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	if incoming != "" {
		req.Header.Set("X-Request-Id", incoming)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return fromContext, rec.Header().Get("X-Request-Id")
}

func TestRequestID_Generates(t *testing.T) {
	ctxID, headerID := captureRequestID(t, "")

	assert.True(t, strings.HasPrefix(ctxID, "req_"))
	assert.Len(t, ctxID, 26)
	assert.Equal(t, ctxID, headerID)
}

func TestRequestID_Unique(t *testing.T) {
	a, _ := captureRequestID(t, "")
	b, _ := captureRequestID(t, "")
	assert.NotEqual(t, a, b)
}

func TestRequestID_Propagates(t *testing.T) {
	ctxID, headerID := captureRequestID(t, "upstream-123")
	assert.Equal(t, "upstream-123", ctxID)
	assert.Equal(t, "upstream-123", headerID)
}

func TestRequestID_RejectsUnusableIDs(t *testing.T) {
	for _, incoming := range []string{"has space", "tab\tchar", strings.Repeat("x", 129), "café"} {
		ctxID, _ := captureRequestID(t, incoming)
		assert.True(t, strings.HasPrefix(ctxID, "req_"), incoming)
	}
}

func TestGetRequestID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	assert.Empty(t, middleware.GetRequestID(req.Context()))
}
