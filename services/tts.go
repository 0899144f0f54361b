package services

import (
	"context"

	"turnkit/core"
)

// ITTSService renders text to speech as a single audio chunk.
type ITTSService interface {
	core.IService
	Synthesize(ctx context.Context, text string) (*core.AudioChunk, error)
}
