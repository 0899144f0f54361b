package weather

import (
	"context"
	"fmt"
	"net/http"
)

// Provider abstracts a weather data source. Implementations must normalize
// units to the Snapshot/Forecast conventions (°C, m/s, mm, km).
type Provider interface {
	Name() string
	CurrentWeather(ctx context.Context, location string) (Snapshot, error)
	Forecast(ctx context.Context, location string, hours int) (Forecast, error)
}

// ProviderError wraps any upstream failure (network, timeout, malformed
// payload). Formatters recognize it and degrade to an apology sentence; it is
// never surfaced past the orchestrator.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// LocationNotFoundError indicates geocoding or the provider lookup failed for
// the requested place name.
type LocationNotFoundError struct {
	Location string
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("location %q not found", e.Location)
}

// ProviderConfig selects and configures a provider implementation.
type ProviderConfig struct {
	// Tag selects the implementation: "openmeteo", "weatherapi", "openweathermap".
	Tag string `json:"tag"`
	// APIKey is required by the weatherapi and openweathermap providers.
	APIKey string `json:"api_key,omitempty"`
	// Client, when nil, defaults to a client with a strict 10s timeout.
	Client *http.Client `json:"-"`
}

// BuildProvider constructs a Provider from the configuration tag. New
// providers implement the same two-operation contract and register here.
func BuildProvider(cfg ProviderConfig) (Provider, error) {
	switch cfg.Tag {
	case "", "openmeteo":
		return NewOpenMeteoProvider(cfg.Client), nil
	case "weatherapi":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("weather: weatherapi provider requires an API key")
		}
		return NewWeatherAPIProvider(cfg.APIKey, cfg.Client), nil
	case "openweathermap":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("weather: openweathermap provider requires an API key")
		}
		return NewOpenWeatherMapProvider(cfg.APIKey, cfg.Client), nil
	default:
		return nil, fmt.Errorf("weather: unknown provider %q (supported: openmeteo, weatherapi, openweathermap)", cfg.Tag)
	}
}
