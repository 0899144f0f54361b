package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// OpenMeteoProvider is the default provider: completely free, no API key.
// Geocoding is done through Open-Meteo's own search endpoint.
type OpenMeteoProvider struct {
	name         string
	baseURL      string
	geocodingURL string
	client       *http.Client
	backoff      BackoffConfig
	circuit      *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:         "openmeteo",
		baseURL:      "https://api.open-meteo.com/v1",
		geocodingURL: "https://geocoding-api.open-meteo.com/v1/search",
		client:       defaultHTTPClient(client),
		backoff:      defaultBackoff(),
		circuit:      newProviderBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string { return p.name }

// resolveCoordinates geocodes a place name via the Open-Meteo search API.
func (p *OpenMeteoProvider) resolveCoordinates(ctx context.Context, location string) (float64, float64, error) {
	values := url.Values{}
	values.Set("name", location)
	values.Set("count", "1")
	values.Set("language", "en")
	values.Set("format", "json")

	var payload struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := getJSON(ctx, p.client, p.circuit, p.backoff, p.geocodingURL+"?"+values.Encode(), &payload); err != nil {
		return 0, 0, &ProviderError{Provider: p.name, Message: "geocoding failed", Err: err}
	}
	if len(payload.Results) == 0 {
		return 0, 0, &LocationNotFoundError{Location: location}
	}
	return payload.Results[0].Latitude, payload.Results[0].Longitude, nil
}

func (p *OpenMeteoProvider) CurrentWeather(ctx context.Context, location string) (Snapshot, error) {
	lat, lon, err := p.resolveCoordinates(ctx, location)
	if err != nil {
		return Snapshot{}, err
	}

	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,weather_code,wind_speed_10m,pressure_msl,visibility")
	values.Set("timezone", "auto")
	values.Set("forecast_days", "1")

	var payload struct {
		Current struct {
			Time          string  `json:"time"`
			Temperature   float64 `json:"temperature_2m"`
			Humidity      float64 `json:"relative_humidity_2m"`
			FeelsLike     float64 `json:"apparent_temperature"`
			Precipitation float64 `json:"precipitation"`
			WeatherCode   int     `json:"weather_code"`
			WindSpeed     float64 `json:"wind_speed_10m"`
			Pressure      float64 `json:"pressure_msl"`
			Visibility    float64 `json:"visibility"`
		} `json:"current"`
	}
	if err := getJSON(ctx, p.client, p.circuit, p.backoff, p.baseURL+"/forecast?"+values.Encode(), &payload); err != nil {
		return Snapshot{}, &ProviderError{Provider: p.name, Message: "failed to fetch weather data", Err: err}
	}

	return Snapshot{
		Location:      location,
		Temperature:   roundTemp(payload.Current.Temperature),
		FeelsLike:     roundTemp(payload.Current.FeelsLike),
		Humidity:      payload.Current.Humidity,
		Description:   weatherCodeToDescription(payload.Current.WeatherCode),
		WindSpeed:     payload.Current.WindSpeed,
		Pressure:      payload.Current.Pressure,
		Visibility:    payload.Current.Visibility / 1000, // m → km
		Precipitation: payload.Current.Precipitation,
		Timestamp:     parseLocalTime(payload.Current.Time),
	}, nil
}

func (p *OpenMeteoProvider) Forecast(ctx context.Context, location string, hours int) (Forecast, error) {
	lat, lon, err := p.resolveCoordinates(ctx, location)
	if err != nil {
		return Forecast{}, err
	}

	days := hours/24 + 1
	if days < 1 {
		days = 1
	}
	if days > 7 {
		days = 7
	}

	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("hourly", "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,weather_code,wind_speed_10m")
	values.Set("timezone", "auto")
	values.Set("forecast_days", fmt.Sprintf("%d", days))

	var payload struct {
		Hourly struct {
			Time          []string  `json:"time"`
			Temperature   []float64 `json:"temperature_2m"`
			Humidity      []float64 `json:"relative_humidity_2m"`
			FeelsLike     []float64 `json:"apparent_temperature"`
			Precipitation []float64 `json:"precipitation"`
			WeatherCode   []int     `json:"weather_code"`
			WindSpeed     []float64 `json:"wind_speed_10m"`
		} `json:"hourly"`
	}
	if err := getJSON(ctx, p.client, p.circuit, p.backoff, p.baseURL+"/forecast?"+values.Encode(), &payload); err != nil {
		return Forecast{}, &ProviderError{Provider: p.name, Message: "failed to fetch forecast data", Err: err}
	}

	// The hourly series is column-oriented; every data array must cover the
	// time axis or the payload is malformed.
	for _, length := range []int{
		len(payload.Hourly.Temperature),
		len(payload.Hourly.Humidity),
		len(payload.Hourly.FeelsLike),
		len(payload.Hourly.Precipitation),
		len(payload.Hourly.WeatherCode),
		len(payload.Hourly.WindSpeed),
	} {
		if length < len(payload.Hourly.Time) {
			return Forecast{}, &ProviderError{Provider: p.name, Message: "malformed forecast payload"}
		}
	}

	now := time.Now()
	horizon := now.Add(time.Duration(hours) * time.Hour)
	entries := make([]ForecastEntry, 0, len(payload.Hourly.Time))
	for i, ts := range payload.Hourly.Time {
		entryTime := parseLocalTime(ts)
		// Only include forecasts within the requested horizon.
		if entryTime.After(horizon) {
			continue
		}
		entries = append(entries, ForecastEntry{
			Time:          entryTime,
			Temperature:   roundTemp(payload.Hourly.Temperature[i]),
			FeelsLike:     roundTemp(payload.Hourly.FeelsLike[i]),
			Humidity:      payload.Hourly.Humidity[i],
			Description:   weatherCodeToDescription(payload.Hourly.WeatherCode[i]),
			WindSpeed:     payload.Hourly.WindSpeed[i],
			Precipitation: payload.Hourly.Precipitation[i],
		})
	}

	return Forecast{Location: location, Entries: entries}, nil
}

// weatherCodeToDescription maps WMO weather codes to text descriptions.
func weatherCodeToDescription(code int) string {
	descriptions := map[int]string{
		0:  "clear sky",
		1:  "mainly clear",
		2:  "partly cloudy",
		3:  "overcast",
		45: "foggy",
		48: "depositing rime fog",
		51: "light drizzle",
		53: "moderate drizzle",
		55: "dense drizzle",
		56: "light freezing drizzle",
		57: "dense freezing drizzle",
		61: "slight rain",
		63: "moderate rain",
		65: "heavy rain",
		66: "light freezing rain",
		67: "heavy freezing rain",
		71: "slight snow fall",
		73: "moderate snow fall",
		75: "heavy snow fall",
		77: "snow grains",
		80: "slight rain showers",
		81: "moderate rain showers",
		82: "violent rain showers",
		85: "slight snow showers",
		86: "heavy snow showers",
		95: "thunderstorm",
		96: "thunderstorm with slight hail",
		99: "thunderstorm with heavy hail",
	}
	if desc, ok := descriptions[code]; ok {
		return desc
	}
	return "unknown"
}

func roundTemp(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

// parseLocalTime handles the timestamp shapes providers emit: RFC3339 and the
// minute-resolution local form "2006-01-02T15:04".
func parseLocalTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
