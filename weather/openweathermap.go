package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// OpenWeatherMapProvider uses the OpenWeatherMap current-weather and 3-hourly
// forecast endpoints. Requires an API key.
type OpenWeatherMapProvider struct {
	name    string
	baseURL string
	apiKey  string
	client  *http.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherMapProvider(apiKey string, client *http.Client) *OpenWeatherMapProvider {
	return &OpenWeatherMapProvider{
		name:    "openweathermap",
		baseURL: "https://api.openweathermap.org/data/2.5",
		apiKey:  apiKey,
		client:  defaultHTTPClient(client),
		backoff: defaultBackoff(),
		circuit: newProviderBreaker("openweathermap"),
	}
}

func (p *OpenWeatherMapProvider) Name() string { return p.name }

func (p *OpenWeatherMapProvider) CurrentWeather(ctx context.Context, location string) (Snapshot, error) {
	values := url.Values{}
	values.Set("q", location)
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")

	var payload struct {
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
		} `json:"sys"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
			Pressure  float64 `json:"pressure"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Rain struct {
			OneHour float64 `json:"1h"`
		} `json:"rain"`
		Visibility float64 `json:"visibility"`
		Dt         int64   `json:"dt"`
		Cod        any     `json:"cod"`
	}
	if err := getJSON(ctx, p.client, p.circuit, p.backoff, p.baseURL+"/weather?"+values.Encode(), &payload); err != nil {
		return Snapshot{}, &ProviderError{Provider: p.name, Message: "failed to fetch weather data", Err: err}
	}
	if payload.Name == "" {
		return Snapshot{}, &LocationNotFoundError{Location: location}
	}

	description := "unknown"
	if len(payload.Weather) > 0 {
		description = payload.Weather[0].Description
	}

	return Snapshot{
		Location:      payload.Name,
		Country:       payload.Sys.Country,
		Temperature:   roundTemp(payload.Main.Temp),
		FeelsLike:     roundTemp(payload.Main.FeelsLike),
		Humidity:      payload.Main.Humidity,
		Description:   description,
		WindSpeed:     payload.Wind.Speed,
		Pressure:      payload.Main.Pressure,
		Visibility:    payload.Visibility / 1000, // m → km
		Precipitation: payload.Rain.OneHour,
		Timestamp:     time.Unix(payload.Dt, 0),
	}, nil
}

func (p *OpenWeatherMapProvider) Forecast(ctx context.Context, location string, hours int) (Forecast, error) {
	// The free forecast endpoint returns 3-hourly entries, 8 per day.
	count := hours/3 + 1
	if count > 40 {
		count = 40
	}

	values := url.Values{}
	values.Set("q", location)
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	values.Set("cnt", fmt.Sprintf("%d", count))

	var payload struct {
		City struct {
			Name    string `json:"name"`
			Country string `json:"country"`
		} `json:"city"`
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp      float64 `json:"temp"`
				FeelsLike float64 `json:"feels_like"`
				Humidity  float64 `json:"humidity"`
			} `json:"main"`
			Weather []struct {
				Description string `json:"description"`
			} `json:"weather"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
			Rain struct {
				ThreeHours float64 `json:"3h"`
			} `json:"rain"`
		} `json:"list"`
	}
	if err := getJSON(ctx, p.client, p.circuit, p.backoff, p.baseURL+"/forecast?"+values.Encode(), &payload); err != nil {
		return Forecast{}, &ProviderError{Provider: p.name, Message: "failed to fetch forecast data", Err: err}
	}

	entries := make([]ForecastEntry, 0, len(payload.List))
	for _, item := range payload.List {
		description := "unknown"
		if len(item.Weather) > 0 {
			description = item.Weather[0].Description
		}
		entries = append(entries, ForecastEntry{
			Time:          time.Unix(item.Dt, 0),
			Temperature:   roundTemp(item.Main.Temp),
			FeelsLike:     roundTemp(item.Main.FeelsLike),
			Humidity:      item.Main.Humidity,
			Description:   description,
			WindSpeed:     item.Wind.Speed,
			Precipitation: item.Rain.ThreeHours,
		})
	}

	return Forecast{
		Location: payload.City.Name,
		Country:  payload.City.Country,
		Entries:  entries,
	}, nil
}
