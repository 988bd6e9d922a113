package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airdash/airdash/internal/api/handler"
	"github.com/airdash/airdash/internal/api/models"
	"github.com/airdash/airdash/internal/provider/resilience"
)

func TestOpsHandler_HealthCheck(t *testing.T) {
	h := handler.NewOpsHandler("1.2.3", "2024-01-01T00:00:00Z", nil, nil)

	w := serve(http.HandlerFunc(h.HealthCheck), "/v1/ops/health")
	require.Equal(t, http.StatusOK, w.Code)

	var health models.Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.Equal(t, "1.2.3", health.Details["version"])
}

func TestOpsHandler_ReadinessCheck(t *testing.T) {
	t.Run("dataset loaded", func(t *testing.T) {
		h := handler.NewOpsHandler("test", "", newTestService(t), nil)

		w := serve(http.HandlerFunc(h.ReadinessCheck), "/v1/ops/ready")
		require.Equal(t, http.StatusOK, w.Code)

		var health models.Health
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
		assert.EqualValues(t, 4, health.Details["observations"])
	})

	t.Run("no dataset", func(t *testing.T) {
		h := handler.NewOpsHandler("test", "", nil, nil)

		w := serve(http.HandlerFunc(h.ReadinessCheck), "/v1/ops/ready")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, models.ProblemTypeUnavailable, decodeProblem(t, w.Body.Bytes()).Type)
	})
}

func TestOpsHandler_SystemStatus(t *testing.T) {
	svc := newTestService(t)
	h := handler.NewOpsHandler("test", "", svc, nil)

	w := serve(http.HandlerFunc(h.SystemStatus), "/v1/ops/status")
	require.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, models.HealthStatusOK, status.Status)
	assert.Equal(t, "test", status.Dataset.Source)
	assert.Equal(t, 4, status.Dataset.Observations)
	assert.Equal(t, "2013-03-01", status.Dataset.Bounds.Start.String())
	assert.Equal(t, "2014-01-05", status.Dataset.Bounds.End.String())
	assert.Equal(t, strconv.FormatUint(svc.Dataset().Fingerprint(), 16), status.Dataset.Fingerprint)
	assert.Empty(t, status.Upstreams)
}

func TestOpsHandler_SystemStatusUpstreams(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	registry := resilience.NewRegistry()
	client := resilience.NewClient(resilience.ClientConfig{Name: "prsa", MaxRetries: 1, Registry: registry})

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, upstream.URL, http.NoBody)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	h := handler.NewOpsHandler("test", "", newTestService(t), registry)
	w := serve(http.HandlerFunc(h.SystemStatus), "/v1/ops/status")
	require.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	require.Len(t, status.Upstreams, 1)
	assert.Equal(t, "prsa", status.Upstreams[0].Name)
	assert.Equal(t, models.HealthStatusOK, status.Upstreams[0].Status)
	assert.Equal(t, "closed", status.Upstreams[0].CircuitState)
	assert.NotNil(t, status.Upstreams[0].LastSuccessAt)
	assert.Equal(t, models.HealthStatusOK, status.Status)
}

func TestOpsHandler_SystemStatusOpenCircuit(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	registry := resilience.NewRegistry()
	cb := resilience.DefaultCircuitBreakerConfig("prsa")
	cb.ReadyToTrip = func(counts gobreaker.Counts) bool { return counts.ConsecutiveFailures >= 1 }
	client := resilience.NewClient(resilience.ClientConfig{
		Name:            "prsa",
		MaxRetries:      1,
		InitialInterval: time.Millisecond,
		CircuitBreaker:  &cb,
		Registry:        registry,
	})

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, upstream.URL, http.NoBody)
	require.NoError(t, err)
	_, err = client.Do(req)
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)

	h := handler.NewOpsHandler("test", "", newTestService(t), registry)
	w := serve(http.HandlerFunc(h.SystemStatus), "/v1/ops/status")
	require.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, models.HealthStatusDegraded, status.Status)
	require.Len(t, status.Upstreams, 1)
	assert.Equal(t, models.HealthStatusFail, status.Upstreams[0].Status)
	assert.Equal(t, "open", status.Upstreams[0].CircuitState)
	assert.NotNil(t, status.Upstreams[0].LastFailureAt)
	require.NotNil(t, status.Upstreams[0].Message)
	assert.Contains(t, *status.Upstreams[0].Message, "circuit breaker is open")
}
