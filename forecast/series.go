package forecast

import (
	"sort"
	"time"
)

// Time-of-day markers on snapshots. A day needs both before it yields a
// demand point.
const (
	TimeOfDayAM  = "AM"
	TimeOfDayEOD = "EOD"
)

// MinDemandDays is the minimum number of days with both an AM and an EOD
// reading required before a series is considered forecastable.
const MinDemandDays = 2

// Observation is one recorded count of one product: a shelf count taken at
// a point in time, tagged AM or EOD. Observations are owned by the storage
// layer; the core only reads them.
type Observation struct {
	Timestamp time.Time
	TimeOfDay string
	Count     int
}

// DemandPoint is one day's consumption: AM count minus EOD count for the
// same calendar day.
type DemandPoint struct {
	Date   time.Time
	Demand float64
}

// dateFloor truncates a timestamp to midnight UTC. All day grouping in the
// core uses UTC so the same observation set always buckets the same way.
func dateFloor(ts time.Time) time.Time {
	t := ts.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BuildDailyDemand pairs AM and EOD observations by calendar day and emits
// one demand point per day that has both readings. Days with only one
// reading are dropped, never imputed as zero.
//
// If the same (day, marker) appears more than once, the last observation in
// input order wins. Callers pass observations ordered by timestamp
// ascending, so in practice the most recent snapshot of a day wins; the
// rule is input order, not timestamp, and is deterministic either way.
//
// Returns an InsufficientHistoryError when fewer than minDays qualifying
// days result. minDays <= 0 falls back to MinDemandDays.
func BuildDailyDemand(observations []Observation, minDays int) ([]DemandPoint, error) {
	if minDays <= 0 {
		minDays = MinDemandDays
	}

	byDay := make(map[time.Time]map[string]int)
	for _, o := range observations {
		d := dateFloor(o.Timestamp)
		if byDay[d] == nil {
			byDay[d] = make(map[string]int)
		}
		byDay[d][o.TimeOfDay] = o.Count // last in input order wins
	}

	series := make([]DemandPoint, 0, len(byDay))
	for d, counts := range byDay {
		am, hasAM := counts[TimeOfDayAM]
		eod, hasEOD := counts[TimeOfDayEOD]
		if !hasAM || !hasEOD {
			continue
		}
		series = append(series, DemandPoint{Date: d, Demand: float64(am - eod)})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

	if len(series) < minDays {
		return nil, &InsufficientHistoryError{Got: len(series), Need: minDays}
	}
	return series, nil
}

// reindexDaily spreads a demand series onto a fully contiguous daily
// calendar over its observed range, filling missing days with zero demand.
// The smoothing model assumes uniform daily spacing, so this runs before
// every fit.
func reindexDaily(series []DemandPoint) []float64 {
	if len(series) == 0 {
		return nil
	}
	first := series[0].Date
	last := series[len(series)-1].Date
	n := int(last.Sub(first).Hours()/24) + 1

	values := make([]float64, n)
	for _, p := range series {
		idx := int(p.Date.Sub(first).Hours() / 24)
		if idx >= 0 && idx < n {
			values[idx] = p.Demand
		}
	}
	return values
}
