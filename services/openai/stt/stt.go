package stt

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"

	"turnkit/core"
	"turnkit/utils/audio"
)

// OpenAISTTService implements the ISTTService interface using OpenAI Whisper.
// Incoming G.711 audio is converted to PCM and wrapped in a WAV header before
// upload.
type OpenAISTTService struct {
	client *openai.Client
	apiKey string
	model  string

	isInitialized bool
	mu            sync.RWMutex
}

// Config holds the configuration for the OpenAI STT service
type Config struct {
	APIKey string
	Model  string
}

// NewOpenAISTTService creates a new instance of OpenAISTTService
func NewOpenAISTTService(config Config) *OpenAISTTService {
	model := config.Model
	if model == "" {
		model = openai.Whisper1
	}
	return &OpenAISTTService{
		apiKey: config.APIKey,
		model:  model,
	}
}

// Init initializes the OpenAI service
func (s *OpenAISTTService) Init(ctx context.Context) error {
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
func (s *OpenAISTTService) Cleanup() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.client = nil
	s.isInitialized = false
	return nil
}

// Transcribe sends the utterance to Whisper and returns the transcript.
// Silent or empty audio yields an empty transcript, not an error.
func (s *OpenAISTTService) Transcribe(ctx context.Context, chunk core.AudioChunk) (string, error) {
	s.mu.RLock()
	if !s.isInitialized {
		s.mu.RUnlock()
		return "", fmt.Errorf("OpenAI service not initialized")
	}
	client := s.client
	s.mu.RUnlock()

	if chunk.Data == nil || len(*chunk.Data) == 0 || chunk.IsSilent() {
		return "", nil
	}

	pcm, err := audio.ConvertToPCM(chunk)
	if err != nil {
		return "", fmt.Errorf("failed to convert audio for transcription: %w", err)
	}
	wav := audio.EncodeWAV(*pcm.Data, pcm.SampleRate, pcm.Channels)

	resp, err := client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    s.model,
		FilePath: "utterance.wav",
		Reader:   bytes.NewReader(wav),
	})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}

	return strings.TrimSpace(resp.Text), nil
}
