package weather

import "time"

// Snapshot is the normalized current-conditions view produced fresh per
// request; it is never cached.
type Snapshot struct {
	Location      string    `json:"location"`
	Country       string    `json:"country,omitempty"`
	Temperature   int       `json:"temperature"` // °C, rounded
	FeelsLike     int       `json:"feels_like"`  // °C, rounded
	Humidity      float64   `json:"humidity"`    // percent
	Description   string    `json:"description"`
	WindSpeed     float64   `json:"wind_speed"` // m/s
	Pressure      float64   `json:"pressure,omitempty"`
	Visibility    float64   `json:"visibility,omitempty"` // km
	Precipitation float64   `json:"precipitation"`        // mm
	Timestamp     time.Time `json:"timestamp"`
}

// ForecastEntry is one hourly point in a forecast series.
type ForecastEntry struct {
	Time          time.Time `json:"time"`
	Temperature   int       `json:"temperature"`
	FeelsLike     int       `json:"feels_like"`
	Humidity      float64   `json:"humidity"`
	Description   string    `json:"description"`
	WindSpeed     float64   `json:"wind_speed"`
	Precipitation float64   `json:"precipitation"`
}

// Forecast is a chronologically ordered forecast series for one location.
type Forecast struct {
	Location string          `json:"location"`
	Country  string          `json:"country,omitempty"`
	Entries  []ForecastEntry `json:"forecast"`
}
