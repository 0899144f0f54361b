package orchestrator

import (
	"time"

	"turnkit/core"
)

// defaultFailureUtterance is spoken when response generation fails so the
// turn still produces audio.
const defaultFailureUtterance = "I'm sorry, I'm having trouble answering right now."

// TurnConfig carries the per-session tuning of the turn pipeline.
type TurnConfig struct {
	MemoryCapacity   int
	MemoryPath       string
	UpstreamTimeout  time.Duration
	FailureUtterance string
	Decoding         core.DecodingParams
}

// DefaultTurnConfig returns a config suitable for a standard voice session.
func DefaultTurnConfig() TurnConfig {
	return TurnConfig{
		MemoryCapacity:   10,
		MemoryPath:       "data/conversations.json",
		UpstreamTimeout:  10 * time.Second,
		FailureUtterance: defaultFailureUtterance,
		Decoding:         core.DefaultDecodingParams(),
	}
}
