// Package store is the data-source boundary for the forecasting core: it
// reads snapshots and counts out of Postgres and hands the pure forecast
// package plain observations. All reads for one forecast run happen inside
// a single read-only transaction that is released before the model fit
// starts.
package store

import (
	"context"
	"fmt"
	"sort"

	"app/database"
	"app/forecast"

	"github.com/jackc/pgx/v5"
)

// FetchObservations returns every recorded count for one product, ordered
// by snapshot timestamp ascending, optionally scoped to one store.
func FetchObservations(ctx context.Context, tx pgx.Tx, productType string, storeName *string) ([]forecast.Observation, error) {
	query := `
        SELECT s.timestamp, s.time_of_day, c.count
        FROM snapshots s
        JOIN inventory_counts c ON c.snapshot_id = s.id
        WHERE c.product_type = $1
    `
	args := []interface{}{productType}
	if storeName != nil {
		query += " AND s.store_name = $2"
		args = append(args, *storeName)
	}
	query += " ORDER BY s.timestamp ASC"

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch observations: %w", err)
	}
	defer rows.Close()

	var observations []forecast.Observation
	for rows.Next() {
		var o forecast.Observation
		if err := rows.Scan(&o.Timestamp, &o.TimeOfDay, &o.Count); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		observations = append(observations, o)
	}
	return observations, rows.Err()
}

// FetchLatestOnHand returns the most recent end-of-day count for one
// product: the on-hand inventory at the forecast's start boundary. ok is
// false when no EOD count exists yet.
func FetchLatestOnHand(ctx context.Context, tx pgx.Tx, productType string, storeName *string) (onHand float64, ok bool, err error) {
	query := `
        SELECT c.count
        FROM inventory_counts c
        JOIN snapshots s ON c.snapshot_id = s.id
        WHERE c.product_type = $1 AND s.time_of_day = 'EOD'
    `
	args := []interface{}{productType}
	if storeName != nil {
		query += " AND s.store_name = $2"
		args = append(args, *storeName)
	}
	query += " ORDER BY s.timestamp DESC LIMIT 1"

	var count int
	err = tx.QueryRow(ctx, query, args...).Scan(&count)
	if err == pgx.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("fetch latest on-hand: %w", err)
	}
	return float64(count), true, nil
}

// RunForecast is the DB-backed pipeline entry: fetch history and on-hand
// for (product, store) in one read-only transaction, release it, then run
// the pure forecasting pipeline. InsufficientHistory propagates to the
// caller untouched; it is never defaulted away.
func RunForecast(ctx context.Context, productType string, storeName *string, opts forecast.Options) (*forecast.Result, error) {
	observations, onHand, err := readForecastInputs(ctx, productType, storeName)
	if err != nil {
		return nil, err
	}

	minDays := opts.MinDays
	if minDays <= 0 {
		minDays = forecast.MinDemandDays
	}
	series, err := forecast.BuildDailyDemand(observations, minDays)
	if err != nil {
		return nil, err
	}

	result, err := forecast.RunFromSeries(series, onHand, opts)
	if err != nil {
		return nil, err
	}
	result.ProductType = productType
	result.StoreName = storeName
	return result, nil
}

// readForecastInputs holds the read transaction only as long as the two
// fetches need it.
func readForecastInputs(ctx context.Context, productType string, storeName *string) ([]forecast.Observation, float64, error) {
	tx, err := database.GetDB().BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, 0, fmt.Errorf("begin read transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	observations, err := FetchObservations(ctx, tx, productType, storeName)
	if err != nil {
		return nil, 0, err
	}
	onHand, found, err := FetchLatestOnHand(ctx, tx, productType, storeName)
	if err != nil {
		return nil, 0, err
	}
	if !found {
		onHand = 0
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("commit read transaction: %w", err)
	}
	return observations, onHand, nil
}

// ForecastableProducts returns the product types that currently have
// enough AM+EOD history to forecast, sorted. It runs the series builder
// per candidate and keeps the ones that succeed.
func ForecastableProducts(ctx context.Context, storeName *string, minDays int) ([]string, error) {
	tx, err := database.GetDB().BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin read transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, "SELECT DISTINCT product_type FROM inventory_counts")
	if err != nil {
		return nil, fmt.Errorf("list product types: %w", err)
	}
	var productTypes []string
	for rows.Next() {
		var pt string
		if err := rows.Scan(&pt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan product type: %w", err)
		}
		productTypes = append(productTypes, pt)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	forecastable := make([]string, 0, len(productTypes))
	for _, pt := range productTypes {
		observations, err := FetchObservations(ctx, tx, pt, storeName)
		if err != nil {
			return nil, err
		}
		if _, err := forecast.BuildDailyDemand(observations, minDays); err == nil {
			forecastable = append(forecastable, pt)
		}
	}
	sort.Strings(forecastable)
	return forecastable, nil
}
