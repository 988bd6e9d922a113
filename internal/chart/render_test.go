package chart_test

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airdash/airdash/internal/airquality"
	"github.com/airdash/airdash/internal/chart"
)

func series(view airquality.View, points ...airquality.GroupMean) *airquality.Series {
	p := airquality.PollutantPM25
	return &airquality.Series{
		View:          view,
		Pollutant:     p,
		Chart:         view.Chart(),
		Horizontal:    view.Horizontal(),
		Title:         view.Title(p),
		CategoryLabel: view.CategoryLabel(),
		ValueLabel:    airquality.ValueLabel(p),
		Unit:          airquality.Unit,
		Points:        points,
	}
}

func dailyPoints() []airquality.GroupMean {
	start := time.Date(2013, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]airquality.GroupMean, 5)
	for i := range out {
		d := start.AddDate(0, 0, i)
		out[i] = airquality.GroupMean{Key: i, Label: airquality.DateLabel(d), Date: d, Mean: float64(10 + i*3), Count: 24}
	}
	return out
}

func hourlyPoints() []airquality.GroupMean {
	out := make([]airquality.GroupMean, 24)
	for h := range out {
		out[h] = airquality.GroupMean{Key: h, Label: airquality.HourLabel(h), Mean: float64(60 + h), Count: 1461}
	}
	return out
}

func decode(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestRender_Views(t *testing.T) {
	tests := []struct {
		name   string
		series *airquality.Series
	}{
		{"daily line", series(airquality.ViewDaily, dailyPoints()...)},
		{"yearly bars", series(airquality.ViewYearly,
			airquality.GroupMean{Key: 2013, Label: "2013", Mean: 90},
			airquality.GroupMean{Key: 2014, Label: "2014", Mean: 85},
		)},
		{"monthly bars", series(airquality.ViewMonthly,
			airquality.GroupMean{Key: 1, Label: "Jan", Mean: 110},
			airquality.GroupMean{Key: 3, Label: "Mar", Mean: 95},
		)},
		{"hourly horizontal bars", series(airquality.ViewHourly, hourlyPoints()...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, chart.Render(&buf, tt.series, chart.Options{Width: 640, Height: 320}))

			w, h := decode(t, buf.Bytes())
			assert.Equal(t, 640, w)
			assert.Equal(t, 320, h)
		})
	}
}

func TestRender_EmptySeries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, chart.Render(&buf, series(airquality.ViewDaily), chart.Options{}))

	w, h := decode(t, buf.Bytes())
	assert.Equal(t, chart.DefaultWidth, w)
	assert.Equal(t, chart.DefaultHeight, h)
}

func TestRender_InvalidSize(t *testing.T) {
	var buf bytes.Buffer
	err := chart.Render(&buf, series(airquality.ViewYearly), chart.Options{Width: -1})
	assert.ErrorIs(t, err, chart.ErrInvalidSize)

	err = chart.Render(&buf, series(airquality.ViewYearly), chart.Options{Width: chart.MaxWidth + 1})
	assert.ErrorIs(t, err, chart.ErrInvalidSize)
	assert.Zero(t, buf.Len())
}

func TestSpecFor(t *testing.T) {
	spec := chart.SpecFor(series(airquality.ViewDaily, dailyPoints()...))
	assert.Equal(t, "line", spec.Type)
	assert.Equal(t, "vertical", spec.Orientation)
	assert.Equal(t, "#800080", spec.Color)
	assert.Equal(t, "time", spec.X.Kind)
	assert.Equal(t, "Tanggal", spec.X.Label)
	assert.Len(t, spec.Labels, 5)
	assert.Equal(t, []float64{10, 13, 16, 19, 22}, spec.Values)
}

func TestSpecFor_HorizontalSwapsAxes(t *testing.T) {
	spec := chart.SpecFor(series(airquality.ViewHourly, hourlyPoints()...))
	assert.Equal(t, "bar", spec.Type)
	assert.Equal(t, "horizontal", spec.Orientation)
	assert.Equal(t, "#dda0dd", spec.Color)
	assert.Equal(t, "value", spec.X.Kind)
	assert.Equal(t, "category", spec.Y.Kind)
	assert.Equal(t, "Pukul", spec.Y.Label)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ba55d3", chart.Hex(airquality.ViewYearly))
	assert.Equal(t, "#ee82ee", chart.Hex(airquality.ViewMonthly))
}

func TestBarData_HourlyReadsTopDown(t *testing.T) {
	s := series(airquality.ViewHourly,
		airquality.GroupMean{Key: 0, Label: "00.00", Mean: 5},
		airquality.GroupMean{Key: 1, Label: "01.00", Mean: 6},
		airquality.GroupMean{Key: 2, Label: "02.00", Mean: 7},
	)

	values, labels := chart.BarData(s)

	// NominalY places index 0 at the bottom.
	assert.Equal(t, []string{"02.00", "01.00", "00.00"}, labels)
	assert.Equal(t, []float64{7, 6, 5}, []float64(values))
}

func TestBarData_VerticalKeepsOrder(t *testing.T) {
	s := series(airquality.ViewMonthly,
		airquality.GroupMean{Key: 1, Label: "Jan", Mean: 5},
		airquality.GroupMean{Key: 2, Label: "Feb", Mean: 6},
	)

	values, labels := chart.BarData(s)

	assert.Equal(t, []string{"Jan", "Feb"}, labels)
	assert.Equal(t, []float64{5, 6}, []float64(values))
}
