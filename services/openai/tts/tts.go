package tts

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sashabaranov/go-openai"

	"turnkit/core"
)

// ttsSampleRate is the fixed output rate of OpenAI's PCM speech format.
const ttsSampleRate = 24000

// OpenAITTSService implements the ITTSService interface using OpenAI speech
// synthesis. Output is 16-bit mono PCM.
type OpenAITTSService struct {
	client *openai.Client
	apiKey string
	model  string
	voice  string

	isInitialized bool
	mu            sync.RWMutex
}

// Config holds the configuration for the OpenAI TTS service
type Config struct {
	APIKey string
	Model  string
	Voice  string
}

// NewOpenAITTSService creates a new instance of OpenAITTSService
func NewOpenAITTSService(config Config) *OpenAITTSService {
	model := config.Model
	if model == "" {
		model = string(openai.TTSModel1)
	}
	voice := config.Voice
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	return &OpenAITTSService{
		apiKey: config.APIKey,
		model:  model,
		voice:  voice,
	}
}

// Init initializes the OpenAI service
func (s *OpenAITTSService) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.apiKey == "" {
		return fmt.Errorf("OpenAI API key is required")
	}

	s.client = openai.NewClient(s.apiKey)
	s.isInitialized = true
	return nil
}

// Cleanup performs cleanup operations
func (s *OpenAITTSService) Cleanup() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.client = nil
	s.isInitialized = false
	return nil
}

// Synthesize renders text to a single PCM audio chunk.
func (s *OpenAITTSService) Synthesize(ctx context.Context, text string) (*core.AudioChunk, error) {
	s.mu.RLock()
	if !s.isInitialized {
		s.mu.RUnlock()
		return nil, fmt.Errorf("OpenAI service not initialized")
	}
	client := s.client
	s.mu.RUnlock()

	resp, err := client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          openai.SpeechVoice(s.voice),
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesized audio: %w", err)
	}

	return &core.AudioChunk{
		Data:       &data,
		SampleRate: ttsSampleRate,
		Channels:   1,
		Format:     core.PCM,
	}, nil
}
