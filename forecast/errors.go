package forecast

import (
	"errors"
	"fmt"
)

// Sentinel errors for the forecasting core. Callers should match with
// errors.Is; the concrete error types below carry extra context.
var (
	// ErrInsufficientHistory means fewer qualifying demand days exist than
	// the configured minimum. Recoverable: the caller can collect more
	// snapshots and retry.
	ErrInsufficientHistory = errors.New("insufficient demand history")

	// ErrModelFit means the smoothing model could not be fitted on the
	// given series (e.g. a non-finite level on a degenerate input).
	ErrModelFit = errors.New("model fit failed")

	// ErrInvalidParameter means the horizon, sample count or safety stock
	// is outside its configured bounds. Rejected before any computation.
	ErrInvalidParameter = errors.New("invalid forecast parameter")
)

// InsufficientHistoryError reports how many qualifying days were found
// versus how many the model needs.
type InsufficientHistoryError struct {
	Got  int
	Need int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient demand history: need at least %d days of AM+EOD pairs, got %d", e.Need, e.Got)
}

func (e *InsufficientHistoryError) Unwrap() error { return ErrInsufficientHistory }

// ModelFitError reports a numerical failure while fitting.
type ModelFitError struct {
	Reason string
}

func (e *ModelFitError) Error() string {
	return fmt.Sprintf("model fit failed: %s", e.Reason)
}

func (e *ModelFitError) Unwrap() error { return ErrModelFit }

// InvalidParameterError reports which parameter was rejected and why.
type InvalidParameterError struct {
	Name   string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Name, e.Reason)
}

func (e *InvalidParameterError) Unwrap() error { return ErrInvalidParameter }
