package orchestrator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPromptWithoutHistory(t *testing.T) {
	composer := NewPromptComposer()
	prompt := composer.BuildPrompt("", "What time is it?")

	require.True(t, strings.HasPrefix(prompt, "<|system|>\n"))
	require.Contains(t, prompt, "<|user|>\nWhat time is it?\n<|end|>")
	require.True(t, strings.HasSuffix(prompt, "<|assistant|>\n"))
	require.NotContains(t, prompt, "Previous conversation:")
}

func TestBuildPromptFoldsHistoryIntoSystem(t *testing.T) {
	composer := NewPromptComposer()
	history := "<|user|>\nHi\n<|end|>\n<|assistant|>\nHello!\n<|end|>"
	prompt := composer.BuildPrompt(history, "What did I just say?")

	require.Contains(t, prompt, "Previous conversation:\n"+history)
	// History lives in the system section, before the current user turn.
	require.Less(t,
		strings.Index(prompt, "Previous conversation:"),
		strings.Index(prompt, "What did I just say?"),
	)
}
