package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airdash/airdash/internal/api/middleware"
	"github.com/airdash/airdash/internal/api/models"
)

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	handler := middleware.RequestID(middleware.Recovery(zerolog.New(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("month 13 outside 1-12")
	})))

	req := httptest.NewRequest(http.MethodGet, "/v1/series/monthly", http.NoBody)
	req.Header.Set("X-Request-Id", "req_panic")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var problem models.Problem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&problem))
	assert.Equal(t, "req_panic", problem.TraceID)
	assert.Equal(t, "/v1/series/monthly", problem.Instance)
	assert.NotContains(t, problem.Detail, "month 13")

	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "month 13 outside 1-12")
}

func TestRecovery_AbortHandlerRepanics(t *testing.T) {
	handler := middleware.Recovery(zerolog.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	})
}
