package airquality

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/airdash/airdash/internal/airquality"

// Source loads the observation table.
type Source interface {
	// Name identifies the source in logs and status output.
	Name() string

	// Load reads every observation and returns the dataset handle.
	Load(ctx context.Context) (*Dataset, error)
}

// ServiceConfig holds configuration for the statistics service.
type ServiceConfig struct {
	// Dataset is the loaded observation table. Required.
	Dataset *Dataset

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service computes dashboard series from a read-only dataset. It holds no
// per-request state and is safe for concurrent use.
type Service struct {
	dataset *Dataset
	logger  zerolog.Logger
	tracer  trace.Tracer
}

// NewService creates a new statistics service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Dataset == nil {
		panic("airquality: NewService requires a dataset")
	}

	return &Service{
		dataset: cfg.Dataset,
		logger:  cfg.Logger,
		tracer:  otel.Tracer(tracerName),
	}
}

// Dataset returns the dataset the service computes from.
func (s *Service) Dataset() *Dataset {
	return s.dataset
}

// Query selects one series.
type Query struct {
	View      View
	Pollutant Pollutant

	// Range optionally restricts observations to an inclusive date range.
	Range *DateRange
}

// Series is a labeled result ready for a chart renderer.
type Series struct {
	View       View
	Pollutant  Pollutant
	Chart      ChartKind
	Horizontal bool

	Title         string
	Heading       string
	CategoryLabel string
	ValueLabel    string
	Unit          string

	// Range is the applied date filter, nil when unfiltered.
	Range *DateRange

	Points []GroupMean
}

// Labels returns the point labels in order.
func (s *Series) Labels() []string {
	out := make([]string, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Label
	}
	return out
}

// Values returns the point means in order.
func (s *Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Mean
	}
	return out
}

// Compute filters, groups and averages the dataset for one view and
// pollutant. A reversed range yields a series without points; a range
// reaching outside the dataset bounds returns ErrRangeOutOfBounds.
func (s *Service) Compute(ctx context.Context, q Query) (*Series, error) {
	if !q.View.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, q.View)
	}
	if !q.Pollutant.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPollutant, q.Pollutant)
	}

	_, span := s.tracer.Start(ctx, "airquality.Compute",
		trace.WithAttributes(
			attribute.String("airquality.view", string(q.View)),
			attribute.String("airquality.pollutant", string(q.Pollutant)),
		),
	)
	defer span.End()

	observations := s.dataset.observations
	var applied *DateRange
	if q.Range != nil {
		r := NewDateRange(q.Range.Start, q.Range.End)
		if !r.Within(s.dataset.bounds) {
			err := fmt.Errorf("%w: %s not within %s", ErrRangeOutOfBounds, r, s.dataset.bounds)
			span.RecordError(err)
			return nil, err
		}
		observations = FilterRange(observations, r)
		applied = &r
		span.SetAttributes(attribute.String("airquality.range", r.String()))
	}

	points := GroupedMean(observations, q.View.Grouping(), q.Pollutant)
	span.SetAttributes(attribute.Int("airquality.points", len(points)))

	s.logger.Debug().
		Str("view", string(q.View)).
		Str("pollutant", string(q.Pollutant)).
		Int("observations", len(observations)).
		Int("points", len(points)).
		Msg("series computed")

	return &Series{
		View:          q.View,
		Pollutant:     q.Pollutant,
		Chart:         q.View.Chart(),
		Horizontal:    q.View.Horizontal(),
		Title:         q.View.Title(q.Pollutant),
		Heading:       q.View.Heading(),
		CategoryLabel: q.View.CategoryLabel(),
		ValueLabel:    ValueLabel(q.Pollutant),
		Unit:          Unit,
		Range:         applied,
		Points:        points,
	}, nil
}

// DashboardTitle is the page title of the dashboard.
const DashboardTitle = "Konsentrasi Rata-Rata Polutan Udara di Kota Changping"

// Tab describes one dashboard tab.
type Tab struct {
	View       View
	Label      string
	Heading    string
	DateFilter bool
}

// Overview describes the dashboard: its title, the observation period and
// the selectors each tab offers.
type Overview struct {
	Title        string
	Period       string
	Bounds       DateRange
	Observations int
	Source       string
	Pollutants   []Pollutant
	Tabs         []Tab
}

// Overview returns the dashboard description for the loaded dataset.
func (s *Service) Overview() Overview {
	tabs := make([]Tab, 0, len(views))
	for _, v := range views {
		tabs = append(tabs, Tab{
			View:       v,
			Label:      v.Tab(),
			Heading:    v.Heading(),
			DateFilter: v.DateFilter(),
		})
	}

	return Overview{
		Title:        DashboardTitle,
		Period:       PeriodLabel(s.dataset.bounds),
		Bounds:       s.dataset.bounds,
		Observations: s.dataset.Len(),
		Source:       s.dataset.source,
		Pollutants:   Pollutants(),
		Tabs:         tabs,
	}
}
