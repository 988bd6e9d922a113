package handler_test

import (
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/airdash/airdash/internal/airquality"
	"github.com/airdash/airdash/internal/api/handler"
	"github.com/airdash/airdash/internal/chart"
)

func obs(t *testing.T, year, month, day, hour int, pm25 float64) airquality.Observation {
	t.Helper()
	readings := airquality.MissingReadings()
	if !math.IsNaN(pm25) {
		readings.Set(airquality.PollutantPM25, pm25)
	}
	readings.Set(airquality.PollutantNO2, 2*pm25)
	o, err := airquality.NewObservation(year, month, day, hour, readings)
	require.NoError(t, err)
	return o
}

// newTestService builds a service over three days: 2013-03-01 (10, 20),
// 2013-03-02 (40) and 2014-01-05 (7).
func newTestService(t *testing.T) *airquality.Service {
	t.Helper()
	ds, err := airquality.NewDataset("test", []airquality.Observation{
		obs(t, 2013, 3, 1, 0, 10),
		obs(t, 2013, 3, 1, 1, 20),
		obs(t, 2013, 3, 2, 0, 40),
		obs(t, 2014, 1, 5, 3, 7),
	})
	require.NoError(t, err)
	return airquality.NewService(airquality.ServiceConfig{
		Dataset: ds,
		Logger:  zerolog.New(io.Discard),
	})
}

// newSeriesRouter mounts the series handler the way the API router does.
func newSeriesRouter(t *testing.T) http.Handler {
	t.Helper()
	h := handler.NewSeriesHandler(newTestService(t), chart.Options{Width: 320, Height: 200}, zerolog.New(io.Discard))

	r := chi.NewRouter()
	r.Get("/v1/series/{view}", h.GetSeries)
	r.Get("/v1/series/{view}/export", h.Export)
	r.Get("/v1/charts/{view}", h.GetChart)
	return r
}

func serve(h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
