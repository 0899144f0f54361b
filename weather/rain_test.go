package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func hourlyForecast(base time.Time, precip []float64) Forecast {
	entries := make([]ForecastEntry, len(precip))
	for i, amount := range precip {
		description := "partly cloudy"
		if amount > rainPrecipThreshold {
			description = "moderate rain"
		}
		entries[i] = ForecastEntry{
			Time:          base.Add(time.Duration(i) * time.Hour),
			Temperature:   12,
			Description:   description,
			Precipitation: amount,
		}
	}
	return Forecast{Location: "Berlin", Entries: entries}
}

func TestAnalyzeRainPatternCurrentPeriod(t *testing.T) {
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	forecast := hourlyForecast(base, []float64{0, 0, 0, 1.0, 1.0, 1.0, 0, 0})
	now := base.Add(3 * time.Hour)
	current := Snapshot{Location: "Berlin", Description: "moderate rain", Precipitation: 1.0, Timestamp: now}

	analysis := AnalyzeRainPattern(current, forecast, now)

	require.True(t, analysis.IsCurrentlyRaining)
	require.NotNil(t, analysis.Current)
	require.Equal(t, 3, analysis.Current.DurationHours)
	require.False(t, analysis.Current.Open)
	require.Equal(t, base.Add(6*time.Hour), analysis.Current.End)
	require.Empty(t, analysis.Upcoming)
}

func TestAnalyzeRainPatternUpcoming(t *testing.T) {
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	forecast := hourlyForecast(base, []float64{0, 0, 0, 0, 1.0, 1.0, 0, 0})
	now := base
	current := Snapshot{Location: "Berlin", Description: "partly cloudy", Timestamp: now}

	analysis := AnalyzeRainPattern(current, forecast, now)

	require.False(t, analysis.IsCurrentlyRaining)
	require.Nil(t, analysis.Current)
	require.Len(t, analysis.Upcoming, 1)
	require.Equal(t, base.Add(4*time.Hour), analysis.Upcoming[0].Start)
	require.Equal(t, 2, analysis.Upcoming[0].DurationHours)
}

func TestAnalyzeRainPatternOpenEnded(t *testing.T) {
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	forecast := hourlyForecast(base, []float64{0, 0, 1.0, 1.0})
	now := base.Add(2 * time.Hour)
	current := Snapshot{Location: "Berlin", Description: "moderate rain", Precipitation: 0.8, Timestamp: now}

	analysis := AnalyzeRainPattern(current, forecast, now)

	require.True(t, analysis.IsCurrentlyRaining)
	require.NotNil(t, analysis.Current)
	require.True(t, analysis.Current.Open)
}

func TestFormatRainReportStopsAround(t *testing.T) {
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	forecast := hourlyForecast(base, []float64{0, 0, 0, 1.0, 1.0, 1.0, 0, 0})
	now := base.Add(3 * time.Hour)
	current := Snapshot{Location: "Berlin", Description: "moderate rain", Precipitation: 1.0, Timestamp: now}

	analysis := AnalyzeRainPattern(current, forecast, now)
	report := FormatRainReport("Berlin", analysis, now)

	require.Contains(t, report, "It's raining in Berlin right now.")
	require.Contains(t, report, "3 hours")
	require.Contains(t, report, "14:00")
}

func TestFormatRainReportNoRain(t *testing.T) {
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	forecast := hourlyForecast(base, []float64{0, 0, 0, 0})
	current := Snapshot{Location: "Berlin", Description: "clear sky"}

	analysis := AnalyzeRainPattern(current, forecast, base)
	report := FormatRainReport("Berlin", analysis, base)

	require.Equal(t, "It's not raining in Berlin and no rain is expected in the next 24 hours.", report)
}
