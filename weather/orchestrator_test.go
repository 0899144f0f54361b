package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"turnkit/core"
)

type stubProvider struct {
	current     Snapshot
	currentErr  error
	forecast    Forecast
	forecastErr error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) CurrentWeather(ctx context.Context, location string) (Snapshot, error) {
	if s.currentErr != nil {
		return Snapshot{}, s.currentErr
	}
	snapshot := s.current
	if snapshot.Location == "" {
		snapshot.Location = location
	}
	return snapshot, nil
}

func (s *stubProvider) Forecast(ctx context.Context, location string, hours int) (Forecast, error) {
	if s.forecastErr != nil {
		return Forecast{}, s.forecastErr
	}
	forecast := s.forecast
	if forecast.Location == "" {
		forecast.Location = location
	}
	return forecast, nil
}

func newTestOrchestrator(provider Provider, now time.Time) *Orchestrator {
	o := NewOrchestrator(provider, core.GetLogger())
	o.now = func() time.Time { return now }
	return o
}

func TestProcessQueryCurrentWeather(t *testing.T) {
	provider := &stubProvider{
		current: Snapshot{Temperature: 18, Description: "partly cloudy"},
	}
	o := newTestOrchestrator(provider, time.Date(2024, 3, 10, 11, 0, 0, 0, time.UTC))

	response := o.ProcessQuery(context.Background(), "What's the weather in Berlin now?")
	require.Equal(t, "The weather in Berlin is 18°C with partly cloudy.", response)
}

func TestWeatherForTimeNearestNeighbor(t *testing.T) {
	now := time.Date(2024, 3, 10, 11, 0, 0, 0, time.UTC)
	base := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	entries := make([]ForecastEntry, 48)
	for i := range entries {
		entries[i] = ForecastEntry{
			Time:        base.Add(time.Duration(i) * time.Hour),
			Temperature: i,
			Description: "clear sky",
		}
	}
	provider := &stubProvider{forecast: Forecast{Location: "Berlin", Entries: entries}}
	o := newTestOrchestrator(provider, now)

	// Evening resolves to 18:00; the nearest entry is neither first nor last.
	snapshot, err := o.WeatherForTime(context.Background(), "Berlin", TimeReference{Kind: TimeEvening, Phrase: "evening"})
	require.NoError(t, err)
	require.Equal(t, 18, snapshot.Temperature)
	require.Equal(t, base.Add(18*time.Hour), snapshot.Timestamp)
}

func TestWeatherForTimeForecastErrorPropagates(t *testing.T) {
	provider := &stubProvider{forecastErr: errors.New("upstream down")}
	o := newTestOrchestrator(provider, time.Now())

	_, err := o.WeatherForTime(context.Background(), "Berlin", TimeReference{Kind: TimeTomorrow, Phrase: "tomorrow"})
	require.Error(t, err)
}

func TestProcessQueryUnknownLocation(t *testing.T) {
	provider := &stubProvider{currentErr: &LocationNotFoundError{Location: "Atlantis"}}
	o := newTestOrchestrator(provider, time.Now())

	response := o.ProcessQuery(context.Background(), "What's the weather in Atlantis?")
	require.Equal(t, "I'm sorry, I couldn't find a place called Atlantis.", response)
}

func TestProcessQueryProviderFailureApologizes(t *testing.T) {
	provider := &stubProvider{currentErr: &ProviderError{Provider: "stub", Message: "boom"}}
	o := newTestOrchestrator(provider, time.Now())

	response := o.ProcessQuery(context.Background(), "What's the weather in Berlin?")
	require.Equal(t, apologyResponse, response)
}

func TestProcessQueryRainDuration(t *testing.T) {
	now := time.Date(2024, 3, 10, 11, 0, 0, 0, time.UTC)
	base := now.Add(-3 * time.Hour)
	provider := &stubProvider{
		current:  Snapshot{Location: "Berlin", Description: "moderate rain", Precipitation: 1.2, Timestamp: now},
		forecast: hourlyForecast(base, []float64{0, 0, 0, 1.0, 1.0, 1.0, 0, 0}),
	}
	o := newTestOrchestrator(provider, now)

	response := o.ProcessQuery(context.Background(), "When will the rain stop in Berlin?")
	require.Contains(t, response, "It's raining in Berlin right now.")
	require.Contains(t, response, "around 14:00")
}
