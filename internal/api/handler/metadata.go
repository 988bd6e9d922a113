package handler

import (
	"net/http"

	"github.com/airdash/airdash/internal/airquality"
	"github.com/airdash/airdash/internal/api/models"
	"github.com/airdash/airdash/internal/api/response"
	"github.com/airdash/airdash/internal/export"
)

// MetadataHandler handles metadata endpoints.
type MetadataHandler struct {
	service *airquality.Service
}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler(service *airquality.Service) *MetadataHandler {
	return &MetadataHandler{service: service}
}

// GetDashboard handles GET /v1/metadata/dashboard - title, observation
// period and tab layout.
func (h *MetadataHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, dashboard(h.service.Overview()))
}

// GetEnums handles GET /v1/metadata/enums - values accepted by query parameters.
func (h *MetadataHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	views := airquality.Views()
	enums := models.Enums{
		Pollutants:    pollutantNames(airquality.Pollutants()),
		Views:         make([]string, len(views)),
		ExportFormats: []string{string(export.FormatCSV), string(export.FormatXLSX)},
	}
	for i, v := range views {
		enums.Views[i] = string(v)
	}
	response.JSON(w, r, http.StatusOK, enums)
}

func dashboard(o airquality.Overview) models.Dashboard {
	tabs := make([]models.Tab, len(o.Tabs))
	for i, t := range o.Tabs {
		tabs[i] = models.Tab{
			View:       string(t.View),
			Label:      t.Label,
			Heading:    t.Heading,
			DateFilter: t.DateFilter,
		}
	}

	return models.Dashboard{
		Title:        o.Title,
		Period:       o.Period,
		Bounds:       dateRange(o.Bounds),
		Observations: o.Observations,
		Source:       o.Source,
		Pollutants:   pollutantNames(o.Pollutants),
		Unit:         airquality.Unit,
		Tabs:         tabs,
	}
}

func pollutantNames(ps []airquality.Pollutant) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}

func dateRange(r airquality.DateRange) models.DateRange {
	return models.DateRange{Start: models.Date(r.Start), End: models.Date(r.End)}
}
