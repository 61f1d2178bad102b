package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeSeries(values ...float64) []DemandPoint {
	series := make([]DemandPoint, len(values))
	for i, v := range values {
		series[i] = DemandPoint{Date: day(i), Demand: v}
	}
	return series
}

func TestFitProducesHorizonLengthForecast(t *testing.T) {
	model, err := Fit(makeSeries(4, 5, 3, 4, 4))
	assert.NoError(t, err)

	pred := model.Predict(14)
	assert.Len(t, pred, 14)
	for _, y := range pred {
		assert.InDelta(t, 4.0, y, 1.5)
	}
}

func TestFitConstantSeries(t *testing.T) {
	model, err := Fit(makeSeries(4, 4, 4, 4))
	assert.NoError(t, err)
	assert.Equal(t, 4.0, model.Level)
	assert.Equal(t, 0.0, model.Sigma)
}

func TestFitTwoPointSeries(t *testing.T) {
	// The shortest series the contract allows must still fit.
	model, err := Fit(makeSeries(4, 6))
	assert.NoError(t, err)
	assert.Len(t, model.Predict(7), 7)
}

func TestFitInsufficientHistory(t *testing.T) {
	_, err := Fit(makeSeries(4))
	assert.ErrorIs(t, err, ErrInsufficientHistory)

	_, err = Fit(nil)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestFitCountsGapDaysAsZeroDemand(t *testing.T) {
	series := []DemandPoint{
		{Date: day(0), Demand: 4},
		{Date: day(2), Demand: 4},
	}

	model, err := Fit(series)
	assert.NoError(t, err)
	// Two observed days spanning three calendar days: the gap day counts
	// as zero demand, which drags the level below 4.
	assert.Equal(t, 3, model.N)
	assert.Less(t, model.Level, 4.0)
}

func TestSampleIsReproducibleForSeed(t *testing.T) {
	model, err := Fit(makeSeries(4, 5, 3, 4, 5, 3, 4))
	assert.NoError(t, err)

	first := model.Sample(14, 50, 42)
	second := model.Sample(14, 50, 42)
	assert.Equal(t, first, second)

	other := model.Sample(14, 50, 43)
	assert.NotEqual(t, first, other)
}

func TestSampleShape(t *testing.T) {
	model, err := Fit(makeSeries(4, 5, 3, 4))
	assert.NoError(t, err)

	paths := model.Sample(10, 25, 42)
	assert.Len(t, paths, 25)
	for _, path := range paths {
		assert.Len(t, path, 10)
	}
}

func TestSampleDegenerateSeriesDoesNotCrash(t *testing.T) {
	// All-identical demand: zero residual variance. Sampling must
	// degenerate to the deterministic path, not fail.
	model, err := Fit(makeSeries(5, 5, 5, 5, 5))
	assert.NoError(t, err)

	paths := model.Sample(14, 10, 42)
	for _, path := range paths {
		for _, y := range path {
			assert.Equal(t, 5.0, y)
		}
	}
}
