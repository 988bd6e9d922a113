package airquality

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// GroupMean is the mean concentration of one group.
type GroupMean struct {
	// Key orders groups: yyyymmdd, year, month (1-12) or hour (0-23).
	Key int

	// Label is the display form of the key.
	Label string

	// Date is set when grouping by date.
	Date time.Time

	// Mean is the arithmetic mean of the valid readings in the group.
	Mean float64

	// Count is the number of valid readings behind Mean.
	Count int
}

type groupAcc struct {
	label string
	date  time.Time
	sum   float64
	count int
}

// GroupedMean groups observations by the given key and returns the mean of
// pollutant per group, sorted by key. Missing readings are skipped and groups
// without any valid reading are left out. An unknown pollutant or grouping
// panics.
func GroupedMean(observations []Observation, grouping Grouping, pollutant Pollutant) []GroupMean {
	idx := pollutant.index()
	keyOf, labelOf := grouping.keyFuncs()

	groups := make(map[int]*groupAcc)
	for i := range observations {
		o := &observations[i]
		v := o.Readings[idx]
		if math.IsNaN(v) {
			continue
		}

		k := keyOf(o)
		acc, ok := groups[k]
		if !ok {
			acc = &groupAcc{label: labelOf(o)}
			if grouping == GroupByDate {
				acc.date = o.Date
			}
			groups[k] = acc
		}
		acc.sum += v
		acc.count++
	}

	out := make([]GroupMean, 0, len(groups))
	for k, acc := range groups {
		out = append(out, GroupMean{
			Key:   k,
			Label: acc.label,
			Date:  acc.date,
			Mean:  acc.sum / float64(acc.count),
			Count: acc.count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	return out
}

func (g Grouping) keyFuncs() (key func(*Observation) int, label func(*Observation) string) {
	switch g {
	case GroupByDate:
		return func(o *Observation) int { return o.Year*10000 + o.Month*100 + o.Day },
			func(o *Observation) string { return DateLabel(o.Date) }
	case GroupByYear:
		return func(o *Observation) int { return o.Year },
			func(o *Observation) string { return fmt.Sprintf("%d", o.Year) }
	case GroupByMonth:
		return func(o *Observation) int { return o.Month },
			func(o *Observation) string { return MonthLabel(o.Month) }
	case GroupByHour:
		return func(o *Observation) int { return o.Hour },
			func(o *Observation) string { return HourLabel(o.Hour) }
	default:
		panic(fmt.Sprintf("airquality: unknown grouping %d", int(g)))
	}
}
