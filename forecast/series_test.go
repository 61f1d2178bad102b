package forecast

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func obs(d int, timeOfDay string, hour, count int) Observation {
	return Observation{
		Timestamp: day(d).Add(time.Duration(hour) * time.Hour),
		TimeOfDay: timeOfDay,
		Count:     count,
	}
}

func TestBuildDailyDemandPairsByDay(t *testing.T) {
	observations := []Observation{
		obs(0, TimeOfDayAM, 8, 40),
		obs(0, TimeOfDayEOD, 18, 36),
		obs(1, TimeOfDayAM, 8, 36),
		obs(1, TimeOfDayEOD, 18, 30),
		obs(2, TimeOfDayAM, 8, 30),
		obs(2, TimeOfDayEOD, 18, 27),
	}

	series, err := BuildDailyDemand(observations, 2)
	assert.NoError(t, err)
	assert.Len(t, series, 3)
	assert.Equal(t, day(0), series[0].Date)
	assert.Equal(t, 4.0, series[0].Demand)
	assert.Equal(t, 6.0, series[1].Demand)
	assert.Equal(t, 3.0, series[2].Demand)
}

func TestBuildDailyDemandDropsSingleMarkerDays(t *testing.T) {
	observations := []Observation{
		obs(0, TimeOfDayAM, 8, 40),
		obs(0, TimeOfDayEOD, 18, 35),
		obs(1, TimeOfDayAM, 8, 35), // no EOD reading this day
		obs(2, TimeOfDayAM, 8, 30),
		obs(2, TimeOfDayEOD, 18, 28),
	}

	series, err := BuildDailyDemand(observations, 2)
	assert.NoError(t, err)
	assert.Len(t, series, 2)
	assert.Equal(t, day(0), series[0].Date)
	assert.Equal(t, day(2), series[1].Date)
}

func TestBuildDailyDemandDuplicateMarkerLastWins(t *testing.T) {
	observations := []Observation{
		obs(0, TimeOfDayAM, 7, 50),
		obs(0, TimeOfDayAM, 9, 40), // re-count later the same morning
		obs(0, TimeOfDayEOD, 18, 35),
		obs(1, TimeOfDayAM, 8, 35),
		obs(1, TimeOfDayEOD, 18, 30),
	}

	series, err := BuildDailyDemand(observations, 2)
	assert.NoError(t, err)
	assert.Equal(t, 5.0, series[0].Demand) // 40 - 35, not 50 - 35
}

func TestBuildDailyDemandInsufficientHistory(t *testing.T) {
	observations := []Observation{
		obs(0, TimeOfDayAM, 8, 40),
		obs(0, TimeOfDayEOD, 18, 35),
	}

	_, err := BuildDailyDemand(observations, 2)
	assert.ErrorIs(t, err, ErrInsufficientHistory)

	var insufficientErr *InsufficientHistoryError
	assert.True(t, errors.As(err, &insufficientErr))
	assert.Equal(t, 1, insufficientErr.Got)
	assert.Equal(t, 2, insufficientErr.Need)
}

func TestBuildDailyDemandEmptyInput(t *testing.T) {
	_, err := BuildDailyDemand(nil, 2)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestBuildDailyDemandFloorsToUTCDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	observations := []Observation{
		{Timestamp: time.Date(2026, 3, 1, 13, 0, 0, 0, loc), TimeOfDay: TimeOfDayAM, Count: 20},
		{Timestamp: time.Date(2026, 3, 1, 23, 0, 0, 0, loc), TimeOfDay: TimeOfDayEOD, Count: 16},
		obs(1, TimeOfDayAM, 8, 16),
		obs(1, TimeOfDayEOD, 18, 12),
	}

	series, err := BuildDailyDemand(observations, 2)
	assert.NoError(t, err)
	assert.Len(t, series, 2)
	assert.Equal(t, day(0), series[0].Date)
}

func TestReindexDailyFillsGapsWithZero(t *testing.T) {
	series := []DemandPoint{
		{Date: day(0), Demand: 4},
		{Date: day(3), Demand: 6},
	}

	values := reindexDaily(series)
	assert.Equal(t, []float64{4, 0, 0, 6}, values)
}
