package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"

	"turnkit/core"
)

// OpenAILLMService implements the ILLMService interface using OpenAI chat
// completions.
type OpenAILLMService struct {
	client *openai.Client
	apiKey string
	model  string

	isInitialized bool
	mu            sync.RWMutex
}

// Config holds the configuration for the OpenAI LLM service
type Config struct {
	APIKey string
	Model  string
}

// NewOpenAILLMService creates a new instance of OpenAILLMService
func NewOpenAILLMService(config Config) *OpenAILLMService {
	model := config.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAILLMService{
		apiKey: config.APIKey,
		model:  model,
	}
}

// Init initializes the OpenAI service
func (s *OpenAILLMService) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.apiKey == "" {
		return fmt.Errorf("OpenAI API key is required")
	}

	s.client = openai.NewClient(s.apiKey)

	// Test the connection
	if _, err := s.client.ListModels(ctx); err != nil {
		return fmt.Errorf("failed to connect to OpenAI: %w", err)
	}

	s.isInitialized = true
	return nil
}

// Cleanup performs cleanup operations
func (s *OpenAILLMService) Cleanup() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.client = nil
	s.isInitialized = false
	return nil
}

// Complete runs a single non-streaming completion for a composed prompt.
// RepetitionPenalty follows the convention where 1.0 is neutral, so it maps
// to OpenAI's frequency penalty by subtracting 1.
func (s *OpenAILLMService) Complete(ctx context.Context, prompt string, params core.DecodingParams) (string, error) {
	s.mu.RLock()
	if !s.isInitialized {
		s.mu.RUnlock()
		return "", fmt.Errorf("OpenAI service not initialized")
	}
	client := s.client
	s.mu.RUnlock()

	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature:      params.Temperature,
		TopP:             params.TopP,
		MaxTokens:        params.MaxTokens,
		Stop:             params.Stop,
		FrequencyPenalty: params.RepetitionPenalty - 1,
	}

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
