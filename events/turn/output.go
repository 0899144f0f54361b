package turn

import "turnkit/core"

// TurnUserTextEvent carries the transcribed user utterance. It is always the
// first event surfaced for a turn, before any assistant output.
type TurnUserTextEvent struct {
	Text string
}

func (e *TurnUserTextEvent) GetId() string {
	return "turn.user_text"
}

// TurnAssistantTextEvent carries the assistant's reply text. Emitted after
// the user text event and before audio synthesis completes.
type TurnAssistantTextEvent struct {
	Text string
}

func (e *TurnAssistantTextEvent) GetId() string {
	return "turn.assistant_text"
}

// TurnAudioOutputEvent carries the synthesized reply audio. AudioChunk is nil
// for a silent turn or when synthesis failed.
type TurnAudioOutputEvent struct {
	AudioChunk *core.AudioChunk
}

func (e *TurnAudioOutputEvent) GetId() string {
	return "turn.audio_output"
}
