package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
)

// WeatherAPIProvider uses WeatherAPI.com. Requires an API key; accepts place
// names directly so no geocoding sub-step is needed.
type WeatherAPIProvider struct {
	name    string
	baseURL string
	apiKey  string
	client  *http.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(apiKey string, client *http.Client) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		baseURL: "https://api.weatherapi.com/v1",
		apiKey:  apiKey,
		client:  defaultHTTPClient(client),
		backoff: defaultBackoff(),
		circuit: newProviderBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string { return p.name }

func (p *WeatherAPIProvider) CurrentWeather(ctx context.Context, location string) (Snapshot, error) {
	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("q", location)
	values.Set("aqi", "no")

	var payload struct {
		Location struct {
			Name    string `json:"name"`
			Country string `json:"country"`
		} `json:"location"`
		Current struct {
			TempC       float64 `json:"temp_c"`
			FeelsLikeC  float64 `json:"feelslike_c"`
			Humidity    float64 `json:"humidity"`
			WindKph     float64 `json:"wind_kph"`
			PressureMb  float64 `json:"pressure_mb"`
			VisKm       float64 `json:"vis_km"`
			PrecipMm    float64 `json:"precip_mm"`
			LastUpdated string  `json:"last_updated"`
			Condition   struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}
	if err := getJSON(ctx, p.client, p.circuit, p.backoff, p.baseURL+"/current.json?"+values.Encode(), &payload); err != nil {
		return Snapshot{}, &ProviderError{Provider: p.name, Message: "failed to fetch weather data", Err: err}
	}

	return Snapshot{
		Location:      payload.Location.Name,
		Country:       payload.Location.Country,
		Temperature:   roundTemp(payload.Current.TempC),
		FeelsLike:     roundTemp(payload.Current.FeelsLikeC),
		Humidity:      payload.Current.Humidity,
		Description:   payload.Current.Condition.Text,
		WindSpeed:     payload.Current.WindKph / 3.6, // kph → m/s
		Pressure:      payload.Current.PressureMb,
		Visibility:    payload.Current.VisKm,
		Precipitation: payload.Current.PrecipMm,
		Timestamp:     parseLocalTime(payload.Current.LastUpdated),
	}, nil
}

func (p *WeatherAPIProvider) Forecast(ctx context.Context, location string, hours int) (Forecast, error) {
	days := hours/24 + 1
	if days < 1 {
		days = 1
	}
	if days > 3 {
		days = 3
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("q", location)
	values.Set("days", fmt.Sprintf("%d", days))
	values.Set("aqi", "no")
	values.Set("alerts", "no")

	var payload struct {
		Location struct {
			Name    string `json:"name"`
			Country string `json:"country"`
		} `json:"location"`
		Forecast struct {
			ForecastDay []struct {
				Hour []struct {
					Time       string  `json:"time"`
					TempC      float64 `json:"temp_c"`
					FeelsLikeC float64 `json:"feelslike_c"`
					Humidity   float64 `json:"humidity"`
					WindKph    float64 `json:"wind_kph"`
					PrecipMm   float64 `json:"precip_mm"`
					Condition  struct {
						Text string `json:"text"`
					} `json:"condition"`
				} `json:"hour"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}
	if err := getJSON(ctx, p.client, p.circuit, p.backoff, p.baseURL+"/forecast.json?"+values.Encode(), &payload); err != nil {
		return Forecast{}, &ProviderError{Provider: p.name, Message: "failed to fetch forecast data", Err: err}
	}

	var entries []ForecastEntry
	for _, day := range payload.Forecast.ForecastDay {
		for _, hour := range day.Hour {
			entries = append(entries, ForecastEntry{
				Time:          parseLocalTime(hour.Time),
				Temperature:   roundTemp(hour.TempC),
				FeelsLike:     roundTemp(hour.FeelsLikeC),
				Humidity:      hour.Humidity,
				Description:   hour.Condition.Text,
				WindSpeed:     hour.WindKph / 3.6,
				Precipitation: hour.PrecipMm,
			})
		}
	}

	return Forecast{
		Location: payload.Location.Name,
		Country:  payload.Location.Country,
		Entries:  entries,
	}, nil
}
