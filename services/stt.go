package services

import (
	"context"

	"turnkit/core"
)

// ISTTService transcribes a complete utterance. An empty transcript with a
// nil error means the audio carried no usable speech.
type ISTTService interface {
	core.IService
	Transcribe(ctx context.Context, audio core.AudioChunk) (string, error)
}
