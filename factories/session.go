package factories

import (
	"context"
	"fmt"

	"turnkit/core"
	"turnkit/memory"
	"turnkit/orchestrator"
	llmservice "turnkit/services/openai/llm"
	sttservice "turnkit/services/openai/stt"
	ttsservice "turnkit/services/openai/tts"
	"turnkit/weather"
)

// Session bundles the initialized services and the turn orchestrator for one
// conversation. Cleanup must be called when the session ends.
type Session struct {
	Orchestrator *orchestrator.TurnOrchestrator
	Memory       *memory.ConversationMemory

	services []core.IService
}

// BuildSession wires the full pipeline from settings: speech services, the
// weather provider, conversation memory and the turn orchestrator. All
// services are initialized before the session is returned.
func BuildSession(ctx context.Context, cfg SettingsConfig, keys APIKeys, logger *core.Logger) (*Session, error) {
	if keys.OpenAI == "" {
		return nil, fmt.Errorf("session: OPENAI_API_KEY is required")
	}

	stt := sttservice.NewOpenAISTTService(sttservice.Config{
		APIKey: keys.OpenAI,
		Model:  cfg.Speech.STTModel,
	})
	tts := ttsservice.NewOpenAITTSService(ttsservice.Config{
		APIKey: keys.OpenAI,
		Model:  cfg.Speech.TTSModel,
		Voice:  cfg.Speech.TTSVoice,
	})
	llm := llmservice.NewOpenAILLMService(llmservice.Config{
		APIKey: keys.OpenAI,
		Model:  cfg.LLMModel,
	})

	provider, err := weather.BuildProvider(weather.ProviderConfig{
		Tag:    cfg.Weather.Provider,
		APIKey: weatherProviderKey(cfg.Weather.Provider, keys),
	})
	if err != nil {
		return nil, fmt.Errorf("session: weather provider: %w", err)
	}

	session := &Session{
		services: []core.IService{stt, tts, llm},
	}
	for _, service := range session.services {
		if err := service.Init(ctx); err != nil {
			session.Cleanup()
			return nil, fmt.Errorf("session: service init: %w", err)
		}
	}

	mem := memory.New(cfg.Memory.Capacity, cfg.Memory.SaveFile, logger)
	weatherOrch := weather.NewOrchestrator(provider, logger)

	turnCfg := orchestrator.DefaultTurnConfig()
	turnCfg.MemoryCapacity = cfg.Memory.Capacity
	turnCfg.MemoryPath = cfg.Memory.SaveFile
	turnCfg.UpstreamTimeout = cfg.UpstreamTimeout()

	session.Memory = mem
	session.Orchestrator = orchestrator.NewTurnOrchestrator(stt, llm, tts, weatherOrch, mem, turnCfg, logger)
	return session, nil
}

// Cleanup releases every service the session holds. Errors are collected so
// one failing service does not block the rest.
func (s *Session) Cleanup() error {
	var firstErr error
	for _, service := range s.services {
		if err := service.Cleanup(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func weatherProviderKey(provider string, keys APIKeys) string {
	switch provider {
	case "weatherapi":
		return keys.WeatherAPI
	case "openweathermap":
		return keys.OpenWeatherMap
	default:
		return ""
	}
}
