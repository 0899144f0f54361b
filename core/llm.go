package core

// DecodingParams are the fixed sampling parameters applied to every
// completion call. Defaults mirror the assistant's tuned values: low
// temperature for determinism-leaning output, nucleus sampling, a mild
// repetition penalty, and a short bounded reply suitable for speech.
type DecodingParams struct {
	Temperature       float32  `json:"temperature"`
	TopP              float32  `json:"top_p"`
	RepetitionPenalty float32  `json:"repetition_penalty"`
	MaxTokens         int      `json:"max_tokens"`
	Stop              []string `json:"stop,omitempty"`
}

// DefaultDecodingParams returns the standard conversational decoding setup.
func DefaultDecodingParams() DecodingParams {
	return DecodingParams{
		Temperature:       0.2,
		TopP:              0.9,
		RepetitionPenalty: 1.2,
		MaxTokens:         50,
		Stop:              []string{"Q:", "\n", "<|end|>"},
	}
}
