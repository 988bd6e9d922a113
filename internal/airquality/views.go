package airquality

import (
	"fmt"
	"strings"
)

// Grouping selects the key observations are grouped by.
type Grouping int

const (
	GroupByDate Grouping = iota + 1
	GroupByYear
	GroupByMonth
	GroupByHour
)

// String returns the grouping name.
func (g Grouping) String() string {
	switch g {
	case GroupByDate:
		return "date"
	case GroupByYear:
		return "year"
	case GroupByMonth:
		return "month"
	case GroupByHour:
		return "hour"
	default:
		return fmt.Sprintf("Grouping(%d)", int(g))
	}
}

// ChartKind is the chart type a view is drawn with.
type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
)

// View is one dashboard tab.
type View string

const (
	ViewDaily   View = "daily"
	ViewYearly  View = "yearly"
	ViewMonthly View = "monthly"
	ViewHourly  View = "hourly"
)

type viewSpec struct {
	grouping      Grouping
	chart         ChartKind
	horizontal    bool
	dateFilter    bool
	tab           string
	heading       string
	categoryLabel string
	titleFormat   string
}

var views = []View{ViewDaily, ViewYearly, ViewMonthly, ViewHourly}

var viewSpecs = map[View]viewSpec{
	ViewDaily: {
		grouping:      GroupByDate,
		chart:         ChartLine,
		dateFilter:    true,
		tab:           "Rata-Rata Harian",
		heading:       "Konsentrasi Rata-Rata Harian",
		categoryLabel: "Tanggal",
		titleFormat:   "Konsentrasi Rata-Rata Harian %s",
	},
	ViewYearly: {
		grouping:      GroupByYear,
		chart:         ChartBar,
		tab:           "Rata-Rata Tahunan",
		heading:       "Konsentrasi Rata-Rata Tahunan",
		categoryLabel: "Tahun",
		titleFormat:   "Konsentrasi Rata-Rata %s per Tahun",
	},
	ViewMonthly: {
		grouping:      GroupByMonth,
		chart:         ChartBar,
		tab:           "Rata-Rata Bulanan",
		heading:       "Konsentrasi Rata-Rata Bulanan",
		categoryLabel: "Bulan",
		titleFormat:   "Konsentrasi Rata-Rata %s per Bulan",
	},
	ViewHourly: {
		grouping:      GroupByHour,
		chart:         ChartBar,
		horizontal:    true,
		tab:           "Rata-Rata Per Jam",
		heading:       "Konsentrasi Rata-Rata per Jam",
		categoryLabel: "Pukul",
		titleFormat:   "Konsentrasi Rata-Rata %s per Jam",
	},
}

// Views returns the dashboard views in tab order.
func Views() []View {
	out := make([]View, len(views))
	copy(out, views)
	return out
}

// ParseView resolves a view name.
func ParseView(name string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := viewSpecs[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	return v, nil
}

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	_, ok := viewSpecs[v]
	return ok
}

func (v View) spec() viewSpec {
	s, ok := viewSpecs[v]
	if !ok {
		panic(fmt.Sprintf("airquality: unknown view %q", string(v)))
	}
	return s
}

// Grouping returns the key the view groups by.
func (v View) Grouping() Grouping { return v.spec().grouping }

// Chart returns the chart kind of the view.
func (v View) Chart() ChartKind { return v.spec().chart }

// Horizontal reports whether bars run along the x axis (categories on y).
func (v View) Horizontal() bool { return v.spec().horizontal }

// DateFilter reports whether the dashboard offers a date range for the view.
func (v View) DateFilter() bool { return v.spec().dateFilter }

// Tab returns the tab caption.
func (v View) Tab() string { return v.spec().tab }

// Heading returns the section heading shown above the chart.
func (v View) Heading() string { return v.spec().heading }

// CategoryLabel returns the axis label of the grouping key.
func (v View) CategoryLabel() string { return v.spec().categoryLabel }

// Title returns the chart title for a pollutant.
func (v View) Title(p Pollutant) string { return fmt.Sprintf(v.spec().titleFormat, p) }

// ValueLabel returns the concentration axis label for a pollutant.
func ValueLabel(p Pollutant) string {
	return fmt.Sprintf("Konsentrasi rata-rata %s (%s)", p, Unit)
}
