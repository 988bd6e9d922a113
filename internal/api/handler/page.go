package handler

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/airdash/airdash/internal/airquality"
	"github.com/airdash/airdash/internal/api/response"
)

// PageContentSecurityPolicy allows the page's inline script and styles and
// the chart images it loads from this origin.
const PageContentSecurityPolicy = "default-src 'none'; img-src 'self'; style-src 'unsafe-inline'; " +
	"script-src 'unsafe-inline'; connect-src 'self'; frame-ancestors 'none'"

//go:embed static/index.html
var indexHTML string

var pageTemplate = template.Must(template.New("index").Parse(indexHTML))

type pageData struct {
	Title      string
	Period     string
	Pollutants []airquality.Pollutant
	Default    airquality.Pollutant
	Min        string
	Max        string
	Tabs       []airquality.Tab
}

// PageHandler serves the tabbed dashboard page.
type PageHandler struct {
	service *airquality.Service
	logger  zerolog.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(service *airquality.Service, logger zerolog.Logger) *PageHandler {
	return &PageHandler{service: service, logger: logger}
}

// Index handles GET / - the dashboard page.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	o := h.service.Overview()
	data := pageData{
		Title:      o.Title,
		Period:     o.Period,
		Pollutants: o.Pollutants,
		Default:    airquality.PollutantPM25,
		Min:        airquality.DateLabel(o.Bounds.Start),
		Max:        airquality.DateLabel(o.Bounds.End),
		Tabs:       o.Tabs,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error().Err(err).Msg("page rendering failed")
		response.InternalError(w, r, "Failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", PageContentSecurityPolicy)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
