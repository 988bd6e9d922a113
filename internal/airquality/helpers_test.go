package airquality_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/airdash/airdash/internal/airquality"
)

var nan = math.NaN()

func obs(t *testing.T, year, month, day, hour int, pm25 float64) airquality.Observation {
	t.Helper()
	r := airquality.MissingReadings()
	r.Set(airquality.PollutantPM25, pm25)
	o, err := airquality.NewObservation(year, month, day, hour, r)
	require.NoError(t, err)
	return o
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// sampleObservations spans two days in March 2013 and one in January 2014.
func sampleObservations(t *testing.T) []airquality.Observation {
	t.Helper()
	return []airquality.Observation{
		obs(t, 2013, 3, 1, 0, 10),
		obs(t, 2013, 3, 1, 1, 20),
		obs(t, 2013, 3, 1, 2, nan),
		obs(t, 2013, 3, 2, 0, 30),
		obs(t, 2013, 3, 2, 1, 50),
		obs(t, 2014, 1, 5, 0, 7),
		obs(t, 2014, 1, 5, 23, nan),
	}
}
