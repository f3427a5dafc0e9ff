package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-widget/models"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.May, day, hour, minute, 0, 0, time.UTC)
}

func sample(ts time.Time, min, max float64, icon string) models.ForecastSample {
	return models.ForecastSample{Timestamp: ts, MinTemp: min, MaxTemp: max, Icon: icon, Description: "desc " + icon}
}

func TestBuildDailyEmpty(t *testing.T) {
	daily := BuildDaily(nil)
	assert.NotNil(t, daily)
	assert.Empty(t, daily)
}

func TestBuildDailyRoundsMinMax(t *testing.T) {
	daily := BuildDaily([]models.ForecastSample{
		sample(at(1, 9, 0), 10.4, 15.2, "a"),
		sample(at(1, 12, 0), 9.6, 17.5, "b"),
		sample(at(1, 15, 0), 11.0, 16.9, "c"),
	})

	require.Len(t, daily, 1)
	assert.Equal(t, 10, daily[0].MinTemp)
	assert.Equal(t, 18, daily[0].MaxTemp)
	assert.Equal(t, at(1, 0, 0), daily[0].Date)
}

func TestBuildDailyNegativeRounding(t *testing.T) {
	daily := BuildDaily([]models.ForecastSample{
		sample(at(1, 0, 0), -3.5, -1.4, "a"),
	})

	require.Len(t, daily, 1)
	assert.Equal(t, -4, daily[0].MinTemp)
	assert.Equal(t, -1, daily[0].MaxTemp)
}

func TestBuildDailyPicksSampleClosestToNoon(t *testing.T) {
	daily := BuildDaily([]models.ForecastSample{
		sample(at(1, 9, 0), 1, 2, "09d"),
		sample(at(1, 12, 0), 1, 2, "12d"),
		sample(at(1, 15, 0), 1, 2, "15d"),
	})

	require.Len(t, daily, 1)
	assert.Equal(t, "12d", daily[0].Icon)
	assert.Equal(t, "desc 12d", daily[0].Description)
}

func TestBuildDailyNoonTieKeepsFirst(t *testing.T) {
	daily := BuildDaily([]models.ForecastSample{
		sample(at(1, 10, 0), 1, 2, "10d"),
		sample(at(1, 14, 0), 1, 2, "14d"),
	})
	require.Len(t, daily, 1)
	assert.Equal(t, "10d", daily[0].Icon)

	reversed := BuildDaily([]models.ForecastSample{
		sample(at(1, 14, 0), 1, 2, "14d"),
		sample(at(1, 10, 0), 1, 2, "10d"),
	})
	require.Len(t, reversed, 1)
	assert.Equal(t, "14d", reversed[0].Icon)
}

func TestBuildDailyCountsMinutes(t *testing.T) {
	daily := BuildDaily([]models.ForecastSample{
		sample(at(1, 13, 30), 1, 2, "far"),
		sample(at(1, 11, 0), 1, 2, "near"),
	})
	require.Len(t, daily, 1)
	assert.Equal(t, "near", daily[0].Icon)
}

func TestBuildDailyCapsAtFiveSortedDays(t *testing.T) {
	var samples []models.ForecastSample
	for day := 1; day <= 6; day++ {
		for hour := 0; hour < 24; hour += 3 {
			samples = append(samples, sample(at(day, hour, 0), float64(day), float64(day+10), "x"))
		}
	}

	daily := BuildDaily(samples)

	require.Len(t, daily, MaxDays)
	for i, d := range daily {
		assert.Equal(t, at(i+1, 0, 0), d.Date)
		assert.Equal(t, i+1, d.MinTemp)
		assert.Equal(t, i+11, d.MaxTemp)
	}
}

func TestBuildDailySortsOutOfOrderInput(t *testing.T) {
	daily := BuildDaily([]models.ForecastSample{
		sample(at(3, 12, 0), 3, 3, "c"),
		sample(at(1, 12, 0), 1, 1, "a"),
		sample(at(2, 12, 0), 2, 2, "b"),
		sample(at(1, 15, 0), 0, 5, "a2"),
	})

	require.Len(t, daily, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{daily[0].Icon, daily[1].Icon, daily[2].Icon})
	assert.Equal(t, 0, daily[0].MinTemp)
	assert.Equal(t, 5, daily[0].MaxTemp)
}

func TestBuildDailyStrictlyIncreasingDates(t *testing.T) {
	start := time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC)
	var samples []models.ForecastSample
	for i := 0; i < 40; i++ {
		ts := start.Add(time.Duration(i*3) * time.Hour)
		samples = append(samples, sample(ts, float64(i), float64(i+1), "x"))
	}

	daily := BuildDaily(samples)

	require.LessOrEqual(t, len(daily), MaxDays)
	for i := 1; i < len(daily); i++ {
		assert.True(t, daily[i].Date.After(daily[i-1].Date), "day %d not after day %d", i, i-1)
	}
}

func TestBuildDailyUsesEncodedDate(t *testing.T) {
	tz := time.FixedZone("UTC+9", 9*3600)
	daily := BuildDaily([]models.ForecastSample{
		sample(time.Date(2024, time.May, 1, 23, 0, 0, 0, tz), 1, 1, "late"),
		sample(time.Date(2024, time.May, 2, 1, 0, 0, 0, tz), 2, 2, "early"),
	})

	require.Len(t, daily, 2)
	assert.Equal(t, 1, daily[0].Date.Day())
	assert.Equal(t, 2, daily[1].Date.Day())
}
