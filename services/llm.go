package services

import (
	"context"

	"turnkit/core"
)

// ILLMService completes a composed prompt into assistant text.
type ILLMService interface {
	core.IService
	Complete(ctx context.Context, prompt string, params core.DecodingParams) (string, error)
}
