// Package airquality provides pollutant concentration statistics over an
// immutable table of hourly observations.
package airquality

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Domain errors.
var (
	ErrUnknownPollutant   = errors.New("unknown pollutant")
	ErrUnknownView        = errors.New("unknown view")
	ErrRangeOutOfBounds   = errors.New("date range outside dataset bounds")
	ErrEmptyDataset       = errors.New("dataset has no observations")
	ErrInvalidObservation = errors.New("invalid observation")
)

// Unit is the concentration unit used for every pollutant in the dataset.
const Unit = "µg/m³"

// Pollutant represents an air quality pollutant column.
type Pollutant string

const (
	PollutantPM25 Pollutant = "PM2.5"
	PollutantPM10 Pollutant = "PM10"
	PollutantSO2  Pollutant = "SO2"
	PollutantNO2  Pollutant = "NO2"
	PollutantCO   Pollutant = "CO"
	PollutantO3   Pollutant = "O3"
)

// pollutants is the fixed selector order.
var pollutants = [...]Pollutant{
	PollutantPM25,
	PollutantPM10,
	PollutantSO2,
	PollutantNO2,
	PollutantCO,
	PollutantO3,
}

// Pollutants returns the six recognized pollutants in display order.
func Pollutants() []Pollutant {
	out := make([]Pollutant, len(pollutants))
	copy(out, pollutants[:])
	return out
}

// ParsePollutant resolves a user-supplied name to a Pollutant.
// Matching is case-insensitive and the dot in "PM2.5" is optional.
func ParsePollutant(name string) (Pollutant, error) {
	norm := strings.ToUpper(strings.TrimSpace(name))
	for _, p := range pollutants {
		if norm == string(p) || norm == strings.ReplaceAll(string(p), ".", "") {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPollutant, name)
}

// Valid reports whether p is one of the six recognized pollutants.
func (p Pollutant) Valid() bool {
	for _, known := range pollutants {
		if p == known {
			return true
		}
	}
	return false
}

// index returns the reading slot of p. Unknown pollutants are a programming
// error and panic.
func (p Pollutant) index() int {
	for i, known := range pollutants {
		if p == known {
			return i
		}
	}
	panic(fmt.Sprintf("airquality: unknown pollutant %q", string(p)))
}

// Readings holds one value per pollutant; NaN marks a missing reading.
type Readings [len(pollutants)]float64

// MissingReadings returns a Readings value with every slot missing.
func MissingReadings() Readings {
	var r Readings
	for i := range r {
		r[i] = math.NaN()
	}
	return r
}

// Get returns the reading for p and whether it is present.
func (r Readings) Get(p Pollutant) (float64, bool) {
	v := r[p.index()]
	return v, !math.IsNaN(v)
}

// Set stores the reading for p. Pass math.NaN() to mark it missing.
func (r *Readings) Set(p Pollutant, v float64) {
	r[p.index()] = v
}

// Observation is one hourly row of the source table.
type Observation struct {
	// Date is the composed calendar date (midnight UTC, no time of day).
	Date time.Time

	Year  int
	Month int
	Day   int
	Hour  int

	Readings Readings
}

// NewObservation validates the calendar fields and derives the date.
func NewObservation(year, month, day, hour int, readings Readings) (Observation, error) {
	if hour < 0 || hour > 23 {
		return Observation{}, fmt.Errorf("%w: hour %d outside 0-23", ErrInvalidObservation, hour)
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return Observation{}, fmt.Errorf("%w: %04d-%02d-%02d is not a calendar date", ErrInvalidObservation, year, month, day)
	}

	return Observation{
		Date:     date,
		Year:     year,
		Month:    month,
		Day:      day,
		Hour:     hour,
		Readings: readings,
	}, nil
}

// Reading returns the observation's reading for p and whether it is present.
func (o Observation) Reading(p Pollutant) (float64, bool) {
	return o.Readings.Get(p)
}
