package factories

import (
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// APIKeys carries the upstream credentials. Keys are never read from
// settings.json; they come from the environment only.
type APIKeys struct {
	OpenAI         string
	WeatherAPI     string
	OpenWeatherMap string
}

// APIKeysFromEnv reads upstream credentials from the environment.
func APIKeysFromEnv() APIKeys {
	return APIKeys{
		OpenAI:         os.Getenv("OPENAI_API_KEY"),
		WeatherAPI:     os.Getenv("WEATHERAPI_API_KEY"),
		OpenWeatherMap: os.Getenv("OPENWEATHERMAP_API_KEY"),
	}
}

// SpeechConfig selects the OpenAI models used for the speech legs of a turn.
type SpeechConfig struct {
	STTModel string `json:"stt_model,omitempty"`
	TTSModel string `json:"tts_model,omitempty"`
	TTSVoice string `json:"tts_voice,omitempty"`
}

// WeatherConfig selects and tunes the weather data provider.
type WeatherConfig struct {
	// Provider selects the upstream weather source.
	Provider string `json:"provider" validate:"oneof=openmeteo weatherapi openweathermap"`
}

// MemoryConfig tunes the conversation memory.
type MemoryConfig struct {
	// Capacity bounds the number of turns kept in prompt context.
	Capacity int `json:"capacity" validate:"min=1"`
	// SaveFile is the JSON store the full conversation log persists to.
	SaveFile string `json:"save_file" validate:"required"`
}

// SettingsConfig is the top-level config loaded from settings.json.
type SettingsConfig struct {
	// LLMModel is the chat model used for free-form responses.
	LLMModel string `json:"llm_model,omitempty"`
	// Speech configures transcription and synthesis.
	Speech SpeechConfig `json:"speech"`
	// Weather configures the weather provider.
	Weather WeatherConfig `json:"weather"`
	// Memory configures conversation persistence.
	Memory MemoryConfig `json:"memory"`
	// UpstreamTimeoutSeconds bounds each upstream call within a turn.
	UpstreamTimeoutSeconds int `json:"upstream_timeout_seconds" validate:"min=1"`
	// LogDir is where per-session .jsonl logs are written.
	LogDir string `json:"log_dir,omitempty"`
	// ListenAddr is the address the websocket host binds to.
	ListenAddr string `json:"listen_addr,omitempty"`
}

// DefaultSettingsConfig returns a SettingsConfig pre-filled with defaults.
func DefaultSettingsConfig() SettingsConfig {
	return SettingsConfig{
		Weather: WeatherConfig{Provider: "openmeteo"},
		Memory: MemoryConfig{
			Capacity: 10,
			SaveFile: "data/conversations.json",
		},
		UpstreamTimeoutSeconds: 10,
		LogDir:                 "logs",
		ListenAddr:             ":8080",
	}
}

// SettingsConfigFromJSON parses a JSON blob into a SettingsConfig, applying
// defaults for absent fields and validating the result.
func SettingsConfigFromJSON(data []byte) (SettingsConfig, error) {
	cfg := DefaultSettingsConfig()
	if err := sonic.Unmarshal(data, &cfg); err != nil {
		return DefaultSettingsConfig(), fmt.Errorf("settings: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return DefaultSettingsConfig(), fmt.Errorf("settings: %w", err)
	}
	return cfg, nil
}

// SettingsConfigFromFile reads and parses a SettingsConfig from a JSON file.
func SettingsConfigFromFile(path string) (SettingsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSettingsConfig(), fmt.Errorf("settings: read %q: %w", path, err)
	}
	return SettingsConfigFromJSON(data)
}

// UpstreamTimeout converts the configured timeout to a duration.
func (c SettingsConfig) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}
