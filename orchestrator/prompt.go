package orchestrator

import (
	"fmt"
	"strings"
)

const systemInstruction = "You are a helpful voice assistant. Keep answers short, conversational and suitable for being spoken aloud."

// promptTemplate is the chat-markup layout the completion model was tuned on.
// The assistant tag is left open so generation continues from it.
const promptTemplate = "<|system|>\n%s\n<|end|>\n<|user|>\n%s\n<|end|>\n<|assistant|>\n"

// PromptComposer renders conversation history and the current utterance into
// a single completion prompt.
type PromptComposer struct {
	instruction string
}

func NewPromptComposer() *PromptComposer {
	return &PromptComposer{instruction: systemInstruction}
}

// BuildPrompt folds prior turns into the system section so the model sees
// history without it being mistaken for the current question.
func (c *PromptComposer) BuildPrompt(history, utterance string) string {
	system := c.instruction
	if strings.TrimSpace(history) != "" {
		system = c.instruction + "\n\nPrevious conversation:\n" + history
	}
	return fmt.Sprintf(promptTemplate, system, utterance)
}
