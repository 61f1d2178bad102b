package forecast

import (
	"math"
	"sort"
	"time"
)

// Quantile fractions for the restock-date confidence interval. 0.1 and 0.9
// give an 80% interval: wide enough to be honest about short-series
// uncertainty, tight enough to act on for daily restocking.
const (
	RestockQuantileLow  = 0.1
	RestockQuantileHigh = 0.9
)

// RestockEstimate is the distribution over "days until restock needed"
// reduced to a median and an interval, plus how many sample paths actually
// crossed the threshold within the horizon. A low PathsWithinHorizon count
// means the interval leans on the clamp policy and should be read loosely.
type RestockEstimate struct {
	MedianDay float64
	LowDay    float64
	HighDay   float64

	MedianDate time.Time
	LowDate    time.Time
	HighDate   time.Time

	ConfidenceLevel    float64
	PathsWithinHorizon int
}

// restockDayForPath walks one demand path from the current on-hand level
// and returns the first 0-based day index at which running inventory drops
// to the safety stock or below. ok is false when the threshold is never
// reached within the path.
func restockDayForPath(onHand float64, path []float64, safetyStock float64) (day int, ok bool) {
	inv := onHand
	for i, d := range path {
		inv -= d
		if inv <= safetyStock {
			return i, true
		}
	}
	return 0, false
}

// EstimateRestock simulates depletion along every sample path and reduces
// the resulting day indices to a median and a low/high quantile pair, each
// converted to a calendar date from startDate.
//
// Paths that never reach the threshold are counted as restocking exactly at
// the horizon for the quantile arithmetic. That is a deliberate
// conservative policy: it biases the estimate toward "not urgent" instead
// of discarding those paths, which would shrink the interval and overstate
// urgency. PathsWithinHorizon reports how many paths genuinely crossed.
func EstimateRestock(onHand float64, paths [][]float64, startDate time.Time, safetyStock float64) RestockEstimate {
	horizon := 0
	if len(paths) > 0 {
		horizon = len(paths[0])
	}

	days := make([]float64, 0, len(paths))
	within := 0
	for _, path := range paths {
		if day, ok := restockDayForPath(onHand, path, safetyStock); ok {
			days = append(days, float64(day))
			within++
		} else {
			days = append(days, float64(horizon))
		}
	}
	sort.Float64s(days)

	median := quantile(days, 0.5)
	low := quantile(days, RestockQuantileLow)
	high := quantile(days, RestockQuantileHigh)

	return RestockEstimate{
		MedianDay:          median,
		LowDay:             low,
		HighDay:            high,
		MedianDate:         dayToDate(startDate, median, horizon),
		LowDate:            dayToDate(startDate, low, horizon),
		HighDate:           dayToDate(startDate, high, horizon),
		ConfidenceLevel:    RestockQuantileHigh - RestockQuantileLow,
		PathsWithinHorizon: within,
	}
}

// quantile computes the q-th quantile of sorted values using linear
// interpolation between order statistics, matching numpy's default so
// estimates line up with the reference notebooks.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// dayToDate converts a (possibly fractional) day index into a calendar
// date startDate+round(day) days, clamped so no reported date exceeds
// startDate+horizon.
func dayToDate(startDate time.Time, day float64, horizon int) time.Time {
	d := int(math.Round(day))
	if d > horizon {
		d = horizon
	}
	return startDate.AddDate(0, 0, d)
}
