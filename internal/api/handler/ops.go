// Package handler provides the HTTP handlers of the dashboard API.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/airdash/airdash/internal/airquality"
	"github.com/airdash/airdash/internal/api/models"
	"github.com/airdash/airdash/internal/api/response"
	"github.com/airdash/airdash/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	service   *airquality.Service
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler. registry may be nil when the
// dataset did not come from a remote upstream.
func NewOpsHandler(version, buildTime string, service *airquality.Service, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		service:   service,
		registry:  registry,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]any{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	})
}

// ReadinessCheck handles GET /v1/ops/ready. The service is ready once the
// dataset is loaded.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		response.ServiceUnavailable(w, r, "dataset not loaded")
		return
	}

	response.JSON(w, r, http.StatusOK, models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]any{
			"observations": h.service.Dataset().Len(),
		},
	})
}

// SystemStatus handles GET /v1/ops/status - dataset and upstream status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		response.ServiceUnavailable(w, r, "dataset not loaded")
		return
	}

	ds := h.service.Dataset()
	status := models.SystemStatus{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Dataset: models.DatasetStatus{
			Source:       ds.Source(),
			Observations: ds.Len(),
			Bounds:       dateRange(ds.Bounds()),
			Fingerprint:  strconv.FormatUint(ds.Fingerprint(), 16),
			LoadedAt:     models.Timestamp(ds.LoadedAt()),
		},
		Upstreams: []models.UpstreamStatus{},
	}

	if h.registry != nil {
		for _, health := range h.registry.GetAllHealth() {
			if !health.IsHealthy() {
				status.Status = models.HealthStatusDegraded
			}
			status.Upstreams = append(status.Upstreams, upstreamStatus(health))
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

func upstreamStatus(h *resilience.UpstreamHealth) models.UpstreamStatus {
	out := models.UpstreamStatus{
		Name:         h.Name,
		Status:       models.HealthStatusOK,
		CircuitState: h.CircuitState.String(),
	}
	switch {
	case h.IsDegraded():
		out.Status = models.HealthStatusDegraded
	case h.IsUnhealthy():
		out.Status = models.HealthStatusFail
	}

	if h.LastSuccessAt != nil {
		ts := models.Timestamp(*h.LastSuccessAt)
		out.LastSuccessAt = &ts
	}
	if h.LastFailureAt != nil {
		ts := models.Timestamp(*h.LastFailureAt)
		out.LastFailureAt = &ts
	}
	if h.LastError != "" {
		msg := h.LastError
		out.Message = &msg
	}
	return out
}
