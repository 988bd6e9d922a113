package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/airdash/airdash/internal/airquality"
	"github.com/airdash/airdash/internal/api/models"
	"github.com/airdash/airdash/internal/api/response"
	"github.com/airdash/airdash/internal/chart"
	"github.com/airdash/airdash/internal/export"
)

// Validation error codes.
const (
	CodeInvalidValue = "INVALID_VALUE"
	CodeInvalidDate  = "INVALID_DATE"
	CodeOutOfRange   = "OUT_OF_RANGE"
)

// SeriesHandler serves computed series as JSON, downloads and PNG charts.
type SeriesHandler struct {
	service *airquality.Service
	chart   chart.Options
	logger  zerolog.Logger
}

// NewSeriesHandler creates a new SeriesHandler. chartOpts holds the default
// image size, overridable per request.
func NewSeriesHandler(service *airquality.Service, chartOpts chart.Options, logger zerolog.Logger) *SeriesHandler {
	if chartOpts.Width == 0 {
		chartOpts.Width = chart.DefaultWidth
	}
	if chartOpts.Height == 0 {
		chartOpts.Height = chart.DefaultHeight
	}
	return &SeriesHandler{
		service: service,
		chart:   chartOpts,
		logger:  logger,
	}
}

// GetSeries handles GET /v1/series/{view}.
func (h *SeriesHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}
	etag := h.etag(q, "json")
	if response.NotModified(w, r, etag) {
		return
	}

	s, ok := h.compute(w, r, q)
	if !ok {
		return
	}
	response.Cacheable(w, etag)
	response.JSON(w, r, http.StatusOK, seriesResponse(s))
}

// Export handles GET /v1/series/{view}/export?format=csv|xlsx.
func (h *SeriesHandler) Export(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.BadRequest(w, r, "Invalid query parameters", []models.FieldError{
			{Field: "format", Message: err.Error(), Code: CodeInvalidValue},
		})
		return
	}

	etag := h.etag(q, string(format))
	if response.NotModified(w, r, etag) {
		return
	}

	s, ok := h.compute(w, r, q)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, s, format); err != nil {
		h.logger.Error().Err(err).Str("format", string(format)).Msg("export failed")
		response.InternalError(w, r, "Failed to export series")
		return
	}

	response.Cacheable(w, etag)
	response.Attachment(w, r, format.ContentType(), export.Filename(s, format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// GetChart handles GET /v1/charts/{view} - the series rendered as PNG.
func (h *SeriesHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	opts := h.chart
	var fieldErrors []models.FieldError
	for _, p := range []struct {
		name string
		max  int
		dst  *int
	}{
		{"width", chart.MaxWidth, &opts.Width},
		{"height", chart.MaxHeight, &opts.Height},
	} {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil || n <= 0:
			fieldErrors = append(fieldErrors, models.FieldError{
				Field: p.name, Message: "must be a positive integer", Code: CodeInvalidValue,
			})
		case n > p.max:
			fieldErrors = append(fieldErrors, models.FieldError{
				Field: p.name, Message: "must not exceed " + strconv.Itoa(p.max), Code: CodeOutOfRange,
			})
		default:
			*p.dst = n
		}
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "Invalid query parameters", fieldErrors)
		return
	}

	etag := h.etag(q, "png", strconv.Itoa(opts.Width), strconv.Itoa(opts.Height))
	if response.NotModified(w, r, etag) {
		return
	}

	s, ok := h.compute(w, r, q)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, s, opts); err != nil {
		// Requested sizes are validated above, so a size error means the
		// configured default is bad.
		h.logger.Error().Err(err).Str("view", string(q.View)).Msg("chart rendering failed")
		response.InternalError(w, r, "Failed to render chart")
		return
	}

	response.Cacheable(w, etag)
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// parseQuery reads the view path parameter and the pollutant, start and end
// query parameters. It writes the error response itself and returns false
// when the request is invalid.
func (h *SeriesHandler) parseQuery(w http.ResponseWriter, r *http.Request) (airquality.Query, bool) {
	view, err := airquality.ParseView(chi.URLParam(r, "view"))
	if err != nil {
		response.NotFound(w, r, "Unknown view: "+chi.URLParam(r, "view"))
		return airquality.Query{}, false
	}

	q := airquality.Query{View: view, Pollutant: airquality.PollutantPM25}
	params := r.URL.Query()
	var fieldErrors []models.FieldError

	if name := params.Get("pollutant"); name != "" {
		p, err := airquality.ParsePollutant(name)
		if err != nil {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field: "pollutant", Message: err.Error(), Code: CodeInvalidValue,
			})
		}
		q.Pollutant = p
	}

	bounds := h.service.Dataset().Bounds()
	rawStart, rawEnd := params.Get("start"), params.Get("end")
	if rawStart != "" || rawEnd != "" {
		start, startErr := parseBound(rawStart, "start", bounds.Start, bounds)
		if startErr != nil {
			fieldErrors = append(fieldErrors, *startErr)
		}
		end, endErr := parseBound(rawEnd, "end", bounds.End, bounds)
		if endErr != nil {
			fieldErrors = append(fieldErrors, *endErr)
		}
		rng := airquality.NewDateRange(start, end)
		q.Range = &rng
	}

	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "Invalid query parameters", fieldErrors)
		return airquality.Query{}, false
	}
	return q, true
}

// compute runs the query and maps service errors onto problem responses.
func (h *SeriesHandler) compute(w http.ResponseWriter, r *http.Request, q airquality.Query) (*airquality.Series, bool) {
	s, err := h.service.Compute(r.Context(), q)
	switch {
	case err == nil:
		return s, true
	case errors.Is(err, airquality.ErrUnknownView):
		response.NotFound(w, r, err.Error())
	case errors.Is(err, airquality.ErrUnknownPollutant), errors.Is(err, airquality.ErrRangeOutOfBounds):
		response.BadRequest(w, r, err.Error(), nil)
	default:
		h.logger.Error().Err(err).Str("view", string(q.View)).Msg("series computation failed")
		response.InternalError(w, r, "Failed to compute series")
	}
	return nil, false
}

// etag identifies one representation: the dataset, the canonical query and
// whatever else shapes the body.
func (h *SeriesHandler) etag(q airquality.Query, extra ...string) string {
	parts := []string{
		strconv.FormatUint(h.service.Dataset().Fingerprint(), 16),
		string(q.View),
		string(q.Pollutant),
	}
	if q.Range != nil {
		parts = append(parts, q.Range.String())
	}
	parts = append(parts, extra...)
	return strconv.FormatUint(xxhash.Sum64String(strings.Join(parts, "|")), 16)
}

func parseBound(raw, field string, fallback time.Time, bounds airquality.DateRange) (time.Time, *models.FieldError) {
	if raw == "" {
		return fallback, nil
	}
	t, err := airquality.ParseDate(raw)
	if err != nil {
		return fallback, &models.FieldError{
			Field: field, Message: "must be a date in YYYY-MM-DD format", Code: CodeInvalidDate,
		}
	}
	if !bounds.Contains(t) {
		return fallback, &models.FieldError{
			Field:   field,
			Message: "must be between " + airquality.DateLabel(bounds.Start) + " and " + airquality.DateLabel(bounds.End),
			Code:    CodeOutOfRange,
		}
	}
	return t, nil
}

func seriesResponse(s *airquality.Series) models.Series {
	out := models.Series{
		View:          string(s.View),
		Pollutant:     string(s.Pollutant),
		Title:         s.Title,
		Heading:       s.Heading,
		CategoryLabel: s.CategoryLabel,
		ValueLabel:    s.ValueLabel,
		Unit:          s.Unit,
		Points:        make([]models.Point, len(s.Points)),
		Chart:         chart.SpecFor(s),
	}
	if s.Range != nil {
		rng := dateRange(*s.Range)
		out.Range = &rng
	}
	for i, p := range s.Points {
		out.Points[i] = models.Point{
			Key:   p.Key,
			Label: p.Label,
			Mean:  p.Mean,
			Count: p.Count,
		}
		if !p.Date.IsZero() {
			d := models.Date(p.Date)
			out.Points[i].Date = &d
		}
	}
	return out
}
