package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"turnkit/core"
)

const apologyResponse = "I'm sorry, I couldn't retrieve the weather information right now."

// forecastHorizonHours is the window fetched when a query targets a future
// instant. 48 hours comfortably covers "tomorrow evening".
const forecastHorizonHours = 48

// rainLookaheadHours is the window scanned when answering rain-duration
// questions.
const rainLookaheadHours = 24

// Orchestrator answers weather questions end to end: it extracts the
// location and time intent from the utterance, fetches from the configured
// provider and renders a spoken-style sentence.
type Orchestrator struct {
	provider Provider
	logger   *core.Logger
	now      func() time.Time
}

func NewOrchestrator(provider Provider, logger *core.Logger) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

// ProcessQuery routes a weather utterance. Rain-duration questions take the
// forecast-scan path, everything else resolves to a single snapshot. Provider
// failures degrade to an apology instead of an error so the turn still
// produces speech.
func (o *Orchestrator) ProcessQuery(ctx context.Context, utterance string) string {
	location := ExtractLocation(utterance)

	if IsRainDurationQuery(utterance) {
		report, err := o.rainReport(ctx, location)
		if err != nil {
			o.logger.Error("rain analysis failed", "location", location, "error", err)
			return failureResponse(err)
		}
		return report
	}

	ref := ParseTimeReference(utterance)
	snapshot, err := o.WeatherForTime(ctx, location, ref)
	if err != nil {
		o.logger.Error("weather lookup failed", "location", location, "error", err)
		return failureResponse(err)
	}
	return FormatResponse(snapshot, ref)
}

// failureResponse distinguishes an unknown place from an upstream failure;
// both degrade to a spoken sentence, never an error.
func failureResponse(err error) string {
	var notFound *LocationNotFoundError
	if errors.As(err, &notFound) {
		return fmt.Sprintf("I'm sorry, I couldn't find a place called %s.", notFound.Location)
	}
	return apologyResponse
}

func (o *Orchestrator) rainReport(ctx context.Context, location string) (string, error) {
	current, err := o.provider.CurrentWeather(ctx, location)
	if err != nil {
		return "", err
	}
	forecast, err := o.provider.Forecast(ctx, location, rainLookaheadHours)
	if err != nil {
		return "", err
	}
	now := o.now()
	analysis := AnalyzeRainPattern(current, forecast, now)
	return FormatRainReport(current.Location, analysis, now), nil
}

// WeatherForTime resolves the time reference to a snapshot. Current-time
// queries hit the current-conditions endpoint directly; future instants pick
// the forecast entry nearest the target, ties going to the earlier entry.
func (o *Orchestrator) WeatherForTime(ctx context.Context, location string, ref TimeReference) (Snapshot, error) {
	target, ok := ref.TargetInstant(o.now())
	if !ok {
		return o.provider.CurrentWeather(ctx, location)
	}

	forecast, err := o.provider.Forecast(ctx, location, forecastHorizonHours)
	if err != nil {
		return Snapshot{}, err
	}
	if len(forecast.Entries) == 0 {
		return o.provider.CurrentWeather(ctx, location)
	}

	best := forecast.Entries[0]
	bestDistance := absDuration(best.Time.Sub(target))
	for _, entry := range forecast.Entries[1:] {
		distance := absDuration(entry.Time.Sub(target))
		if distance < bestDistance {
			best = entry
			bestDistance = distance
		}
	}

	return Snapshot{
		Location:      forecast.Location,
		Country:       forecast.Country,
		Temperature:   best.Temperature,
		FeelsLike:     best.FeelsLike,
		Humidity:      best.Humidity,
		Description:   best.Description,
		WindSpeed:     best.WindSpeed,
		Precipitation: best.Precipitation,
		Timestamp:     best.Time,
	}, nil
}

// FormatResponse renders a snapshot as the standard spoken sentence. The time
// phrase is included only when the query named one.
func FormatResponse(snapshot Snapshot, ref TimeReference) string {
	timePart := ""
	if ref.Kind != TimeCurrent && ref.Phrase != "" {
		timePart = " for " + ref.Phrase
	}
	return fmt.Sprintf(
		"The weather in %s%s is %d°C with %s.",
		snapshot.Location, timePart, snapshot.Temperature, snapshot.Description,
	)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
