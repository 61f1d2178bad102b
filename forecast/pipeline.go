package forecast

import (
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// Options control one forecast run. Zero values fall back to the package
// defaults, so store/handler callers only set what a request overrides.
type Options struct {
	Horizon     int
	SafetyStock float64
	NumSamples  int
	Seed        int64
	MinDays     int
}

func (o Options) withDefaults() Options {
	if o.Horizon == 0 {
		o.Horizon = DefaultHorizon
	}
	if o.NumSamples == 0 {
		o.NumSamples = DefaultNumSamples
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.MinDays == 0 {
		o.MinDays = MinDemandDays
	}
	return o
}

func (o Options) validate() error {
	if o.Horizon < 1 || o.Horizon > MaxHorizon {
		return &InvalidParameterError{Name: "horizon", Reason: fmt.Sprintf("must be between 1 and %d, got %d", MaxHorizon, o.Horizon)}
	}
	if o.SafetyStock < 0 {
		return &InvalidParameterError{Name: "safety_stock", Reason: fmt.Sprintf("must be >= 0, got %g", o.SafetyStock)}
	}
	if o.NumSamples < 1 {
		return &InvalidParameterError{Name: "num_samples", Reason: fmt.Sprintf("must be >= 1, got %d", o.NumSamples)}
	}
	return nil
}

// Result is the structured outcome of one forecast run, shaped for the
// GET /forecast response.
type Result struct {
	ProductType      string   `json:"product_type,omitempty"`
	StoreName        *string  `json:"store_name,omitempty"`
	CurrentInventory float64  `json:"current_inventory"`
	HorizonDays      int      `json:"horizon_days"`

	PredictedDemandPerDay []float64 `json:"predicted_demand_per_day"`
	PredictedStockNeeded  float64   `json:"predicted_stock_needed"`
	DemandHistoryDays     int       `json:"demand_history_days"`

	RestockDateMedian string   `json:"restock_date_median"`
	RestockDateLow    *string  `json:"restock_date_low,omitempty"`
	RestockDateHigh   *string  `json:"restock_date_high,omitempty"`
	RestockDayMedian  *float64 `json:"restock_day_median,omitempty"`
	RestockDayLow     *float64 `json:"restock_day_low,omitempty"`
	RestockDayHigh    *float64 `json:"restock_day_high,omitempty"`

	// RestockConfidenceLevel is nil in deterministic-only mode (a single
	// path carries no interval).
	RestockConfidenceLevel *float64 `json:"restock_confidence_level"`
	PathsWithinHorizon     int      `json:"paths_within_horizon"`
}

// RunFromSeries runs the full forecasting pipeline from a pre-built demand
// series and current on-hand inventory, with no database involved. It is a
// pure function of its inputs: same series, options and seed always yield
// the same result. The HTTP pipeline delegates here after fetching data;
// tests call it directly.
//
// With NumSamples > 1 the restock date comes with an 80% interval from the
// sample ensemble; with NumSamples == 1 only the deterministic restock
// date is reported and the confidence level is absent.
func RunFromSeries(series []DemandPoint, currentInventory float64, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(series) < opts.MinDays {
		return nil, &InsufficientHistoryError{Got: len(series), Need: opts.MinDays}
	}

	model, err := Fit(series)
	if err != nil {
		return nil, err
	}

	point := model.Predict(opts.Horizon)
	stockNeeded := 0.0
	for _, y := range point {
		stockNeeded += math.Max(0, y)
	}

	startDate := series[len(series)-1].Date.AddDate(0, 0, 1)

	result := &Result{
		CurrentInventory:      currentInventory,
		HorizonDays:           opts.Horizon,
		PredictedDemandPerDay: point,
		PredictedStockNeeded:  math.Round(stockNeeded*100) / 100,
		DemandHistoryDays:     len(series),
	}

	if opts.NumSamples > 1 {
		paths := model.Sample(opts.Horizon, opts.NumSamples, opts.Seed)
		est := EstimateRestock(currentInventory, paths, startDate, opts.SafetyStock)

		result.RestockDateMedian = est.MedianDate.Format(dateLayout)
		result.RestockDateLow = ptr(est.LowDate.Format(dateLayout))
		result.RestockDateHigh = ptr(est.HighDate.Format(dateLayout))
		result.RestockDayMedian = ptr(est.MedianDay)
		result.RestockDayLow = ptr(est.LowDay)
		result.RestockDayHigh = ptr(est.HighDay)
		result.RestockConfidenceLevel = ptr(est.ConfidenceLevel)
		result.PathsWithinHorizon = est.PathsWithinHorizon
		return result, nil
	}

	// Deterministic-only mode: one path, no quantiles, no interval.
	if day, ok := restockDayForPath(currentInventory, point, opts.SafetyStock); ok {
		result.RestockDateMedian = startDate.AddDate(0, 0, day).Format(dateLayout)
		result.PathsWithinHorizon = 1
	} else {
		result.RestockDateMedian = startDate.AddDate(0, 0, opts.Horizon).Format(dateLayout)
	}
	return result, nil
}

// ForecastStartDate is the first forecast day for a series: the day after
// the last observed demand point.
func ForecastStartDate(series []DemandPoint) time.Time {
	if len(series) == 0 {
		return time.Time{}
	}
	return series[len(series)-1].Date.AddDate(0, 0, 1)
}

func ptr[T any](v T) *T { return &v }
