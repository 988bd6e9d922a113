package airquality

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Dataset is the read-only handle over every loaded observation. It is built
// once at startup and shared by all requests; nothing mutates it afterwards.
type Dataset struct {
	observations []Observation
	bounds       DateRange
	source       string
	fingerprint  uint64
	loadedAt     time.Time
}

// NewDataset takes a private copy of observations and computes the date
// bounds and content fingerprint.
func NewDataset(source string, observations []Observation) (*Dataset, error) {
	if len(observations) == 0 {
		return nil, ErrEmptyDataset
	}

	owned := make([]Observation, len(observations))
	copy(owned, observations)

	bounds := DateRange{Start: owned[0].Date, End: owned[0].Date}
	digest := xxhash.New()
	var buf [8]byte

	for i := range owned {
		o := &owned[i]
		if o.Date.Before(bounds.Start) {
			bounds.Start = o.Date
		}
		if o.Date.After(bounds.End) {
			bounds.End = o.Date
		}

		binary.LittleEndian.PutUint64(buf[:], uint64(o.Date.Unix())) //nolint:gosec // bit pattern only
		_, _ = digest.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(o.Hour)) //nolint:gosec // bit pattern only
		_, _ = digest.Write(buf[:])
		for _, v := range o.Readings {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = digest.Write(buf[:])
		}
	}

	return &Dataset{
		observations: owned,
		bounds:       bounds,
		source:       source,
		fingerprint:  digest.Sum64(),
		loadedAt:     time.Now(),
	}, nil
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	return len(d.observations)
}

// Bounds returns the earliest and latest observed dates.
func (d *Dataset) Bounds() DateRange {
	return d.bounds
}

// Source identifies where the dataset was loaded from.
func (d *Dataset) Source() string {
	return d.source
}

// Fingerprint is a hash of the dataset content; equal content gives equal
// fingerprints regardless of source.
func (d *Dataset) Fingerprint() uint64 {
	return d.fingerprint
}

// LoadedAt returns when the dataset was built.
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}

// Observations returns a copy of the observations.
func (d *Dataset) Observations() []Observation {
	out := make([]Observation, len(d.observations))
	copy(out, d.observations)
	return out
}
