package airquality_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airdash/airdash/internal/airquality"
)

func TestGroupedMean_ByDate(t *testing.T) {
	got := airquality.GroupedMean(sampleObservations(t), airquality.GroupByDate, airquality.PollutantPM25)

	require.Len(t, got, 3)
	assert.Equal(t, "2013-03-01", got[0].Label)
	assert.Equal(t, date(2013, 3, 1), got[0].Date)
	assert.InDelta(t, 15.0, got[0].Mean, 1e-9)
	assert.Equal(t, 2, got[0].Count)

	assert.Equal(t, "2013-03-02", got[1].Label)
	assert.InDelta(t, 40.0, got[1].Mean, 1e-9)

	assert.Equal(t, "2014-01-05", got[2].Label)
	assert.InDelta(t, 7.0, got[2].Mean, 1e-9)
	assert.Equal(t, 1, got[2].Count)
}

func TestGroupedMean_ByYear(t *testing.T) {
	got := airquality.GroupedMean(sampleObservations(t), airquality.GroupByYear, airquality.PollutantPM25)

	require.Len(t, got, 2)
	assert.Equal(t, 2013, got[0].Key)
	assert.Equal(t, "2013", got[0].Label)
	assert.InDelta(t, 27.5, got[0].Mean, 1e-9)
	assert.Equal(t, "2014", got[1].Label)
	assert.InDelta(t, 7.0, got[1].Mean, 1e-9)
}

func TestGroupedMean_ByMonthSortedNumerically(t *testing.T) {
	got := airquality.GroupedMean(sampleObservations(t), airquality.GroupByMonth, airquality.PollutantPM25)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"Jan", "Mar"}, []string{got[0].Label, got[1].Label})
	assert.InDelta(t, 7.0, got[0].Mean, 1e-9)
	assert.InDelta(t, 27.5, got[1].Mean, 1e-9)
}

func TestGroupedMean_ByHourSkipsAllMissingGroups(t *testing.T) {
	got := airquality.GroupedMean(sampleObservations(t), airquality.GroupByHour, airquality.PollutantPM25)

	require.Len(t, got, 2)
	assert.Equal(t, "00.00", got[0].Label)
	assert.InDelta(t, 47.0/3.0, got[0].Mean, 1e-9)
	assert.Equal(t, 3, got[0].Count)
	assert.Equal(t, "01.00", got[1].Label)
	assert.InDelta(t, 35.0, got[1].Mean, 1e-9)
}

func TestGroupedMean_OtherPollutantAllMissing(t *testing.T) {
	got := airquality.GroupedMean(sampleObservations(t), airquality.GroupByYear, airquality.PollutantO3)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGroupedMean_Empty(t *testing.T) {
	for _, g := range []airquality.Grouping{airquality.GroupByDate, airquality.GroupByYear, airquality.GroupByMonth, airquality.GroupByHour} {
		assert.Empty(t, airquality.GroupedMean(nil, g, airquality.PollutantPM25), g.String())
	}
}

func TestGroupedMean_MeansWithinGroupExtremes(t *testing.T) {
	all := sampleObservations(t)
	for _, g := range []airquality.Grouping{airquality.GroupByDate, airquality.GroupByYear, airquality.GroupByMonth, airquality.GroupByHour} {
		points := airquality.GroupedMean(all, g, airquality.PollutantPM25)

		total := 0
		for i, p := range points {
			assert.GreaterOrEqual(t, p.Mean, 7.0)
			assert.LessOrEqual(t, p.Mean, 50.0)
			total += p.Count
			if i > 0 {
				assert.Less(t, points[i-1].Key, p.Key)
			}
		}
		assert.Equal(t, 5, total, g.String())
	}
}

func TestGroupedMean_InvalidArguments(t *testing.T) {
	all := sampleObservations(t)
	assert.Panics(t, func() { airquality.GroupedMean(all, airquality.Grouping(99), airquality.PollutantPM25) })
	assert.Panics(t, func() { airquality.GroupedMean(all, airquality.GroupByYear, "TEMP") })
}
