package forecast

import (
	"math"
	"math/rand"
)

// Forecast horizon bounds and sampling defaults.
const (
	DefaultHorizon    = 14
	MaxHorizon        = 90
	DefaultNumSamples = 500
	// DefaultSeed makes probabilistic forecasts reproducible for tests and
	// repeated requests. Callers needing fresh randomness override it.
	DefaultSeed int64 = 42
)

// Model is a fitted simple exponential smoothing model: a single smoothed
// level, no trend, no seasonality. Deliberately minimal so it stays stable
// on short, noisy retail series (as few as 2 observed days).
type Model struct {
	Alpha float64 // smoothing factor selected by the fit
	Level float64 // final smoothed level
	Sigma float64 // std of one-step-ahead residuals
	N     int     // number of daily values fitted (after reindexing)
}

// Fit reindexes the series onto a contiguous daily calendar (missing days
// become zero demand) and fits the smoothing level. Alpha is chosen by grid
// search minimizing the in-sample sum of squared one-step errors, which is
// deterministic and does not need an iterative optimizer.
func Fit(series []DemandPoint) (*Model, error) {
	if len(series) < MinDemandDays {
		return nil, &InsufficientHistoryError{Got: len(series), Need: MinDemandDays}
	}
	values := reindexDaily(series)

	bestAlpha, bestSSE := 0.0, math.Inf(1)
	for alpha := 0.05; alpha < 1.0; alpha += 0.05 {
		sse := 0.0
		level := values[0]
		for _, y := range values[1:] {
			e := y - level
			sse += e * e
			level += alpha * e
		}
		if sse < bestSSE {
			bestAlpha, bestSSE = alpha, sse
		}
	}

	level := values[0]
	var residuals []float64
	for _, y := range values[1:] {
		residuals = append(residuals, y-level)
		level += bestAlpha * (y - level)
	}

	sigma := 0.0
	if len(residuals) > 0 {
		var ss float64
		for _, e := range residuals {
			ss += e * e
		}
		sigma = math.Sqrt(ss / float64(len(residuals)))
	}

	if math.IsNaN(level) || math.IsInf(level, 0) || math.IsNaN(sigma) {
		return nil, &ModelFitError{Reason: "non-finite smoothed level on degenerate series"}
	}

	return &Model{Alpha: bestAlpha, Level: level, Sigma: sigma, N: len(values)}, nil
}

// Predict returns the deterministic forecast: the final level repeated for
// each of the next horizon days. Values are not clipped; a negative level
// stays negative and downstream summation clips at zero.
func (m *Model) Predict(horizon int) []float64 {
	pred := make([]float64, horizon)
	for i := range pred {
		pred[i] = m.Level
	}
	return pred
}

// Sample draws numSamples independent future demand trajectories of length
// horizon. Each path runs the smoothing recursion forward with Gaussian
// innovations scaled by the residual std, so the ensemble widens with the
// observed noise. A zero-variance series degenerates to numSamples copies
// of the deterministic path, which is correct rather than an error.
//
// The same seed always produces byte-identical paths.
func (m *Model) Sample(horizon, numSamples int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	paths := make([][]float64, numSamples)
	for s := range paths {
		path := make([]float64, horizon)
		level := m.Level
		for t := range path {
			y := level + rng.NormFloat64()*m.Sigma
			path[t] = y
			level += m.Alpha * (y - level)
		}
		paths[s] = path
	}
	return paths
}
