package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"turnkit/core"
	"turnkit/events/turn"
	"turnkit/memory"
	"turnkit/services"
	"turnkit/weather"
)

// State tracks where a turn currently is in the pipeline.
type State int

const (
	StateIdle State = iota
	StateTranscribing
	StateClassifying
	StateResponding
	StateSynthesizing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTranscribing:
		return "transcribing"
	case StateClassifying:
		return "classifying"
	case StateResponding:
		return "responding"
	case StateSynthesizing:
		return "synthesizing"
	default:
		return "unknown"
	}
}

// EmitFunc delivers pipeline events to the hosting transport.
type EmitFunc func(packet *core.EventPacket)

// relayerName identifies turn pipeline events in session logs.
const relayerName = "turn_orchestrator"

// TurnOrchestrator drives one utterance through the full pipeline:
// transcription, intent routing, response generation, memory persistence and
// speech synthesis. Turns run synchronously; a session processes one
// utterance at a time.
type TurnOrchestrator struct {
	stt      services.ISTTService
	llm      services.ILLMService
	tts      services.ITTSService
	weather  *weather.Orchestrator
	memory   *memory.ConversationMemory
	composer *PromptComposer
	config   TurnConfig
	logger   *core.Logger
	state    State
}

func NewTurnOrchestrator(
	stt services.ISTTService,
	llm services.ILLMService,
	tts services.ITTSService,
	weatherOrch *weather.Orchestrator,
	mem *memory.ConversationMemory,
	config TurnConfig,
	logger *core.Logger,
) *TurnOrchestrator {
	if config.FailureUtterance == "" {
		config.FailureUtterance = defaultFailureUtterance
	}
	if config.UpstreamTimeout <= 0 {
		config.UpstreamTimeout = 10 * time.Second
	}
	return &TurnOrchestrator{
		stt:      stt,
		llm:      llm,
		tts:      tts,
		weather:  weatherOrch,
		memory:   mem,
		composer: NewPromptComposer(),
		config:   config,
		logger:   logger,
	}
}

// State returns the pipeline state of the in-flight turn.
func (o *TurnOrchestrator) State() State {
	return o.state
}

// ProcessTurn runs a complete turn for one utterance. Events are emitted in
// order: user text, assistant text, audio output. A silent utterance
// short-circuits after transcription with a nil audio chunk and leaves the
// conversation memory untouched.
func (o *TurnOrchestrator) ProcessTurn(ctx context.Context, audio core.AudioChunk, emit EmitFunc) error {
	defer func() { o.state = StateIdle }()

	o.logger.Debug("processing utterance", "duration_s", audio.GetDurationInSeconds())

	o.state = StateTranscribing
	transcript, err := o.transcribe(ctx, audio)
	if err != nil {
		o.state = StateIdle
		return fmt.Errorf("transcription failed: %w", err)
	}
	// Collaborators are not required to pre-trim; a whitespace-only
	// transcript is a silent turn.
	transcript = strings.TrimSpace(transcript)

	emit(core.NewEventPacket(
		&turn.TurnUserTextEvent{Text: transcript},
		core.EventRelayDestinationHost,
		relayerName,
	))

	if transcript == "" {
		o.logger.Debug("empty transcript, skipping turn")
		emit(core.NewEventPacket(
			&turn.TurnAudioOutputEvent{AudioChunk: nil},
			core.EventRelayDestinationHost,
			relayerName,
		))
		return nil
	}

	o.state = StateClassifying
	response := o.respond(ctx, transcript)

	o.memory.AddConversation(transcript, response)

	emit(core.NewEventPacket(
		&turn.TurnAssistantTextEvent{Text: response},
		core.EventRelayDestinationHost,
		relayerName,
	))

	o.state = StateSynthesizing
	chunk := o.synthesize(ctx, response)
	if chunk == nil {
		emit(core.NewEventPacket(
			&core.WarningEvent{Error: "speech synthesis failed, turn completes without audio"},
			core.EventRelayDestinationInternal,
			relayerName,
		))
	}
	emit(core.NewEventPacket(
		&turn.TurnAudioOutputEvent{AudioChunk: chunk},
		core.EventRelayDestinationHost,
		relayerName,
	))

	return nil
}

func (o *TurnOrchestrator) transcribe(ctx context.Context, audio core.AudioChunk) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.config.UpstreamTimeout)
	defer cancel()
	return o.stt.Transcribe(callCtx, audio)
}

// respond routes the transcript by intent. Rain-duration questions outrank
// general weather questions, which outrank free-form chat. Generation
// failures degrade to the configured failure utterance so the turn still
// completes and is remembered.
func (o *TurnOrchestrator) respond(ctx context.Context, transcript string) string {
	callCtx, cancel := context.WithTimeout(ctx, o.config.UpstreamTimeout)
	defer cancel()

	if weather.IsWeatherQuery(transcript) {
		o.logger.Debug("routing to weather", "rain_duration", weather.IsRainDurationQuery(transcript))
		o.state = StateResponding
		return o.weather.ProcessQuery(callCtx, transcript)
	}

	o.state = StateResponding
	prompt := o.composer.BuildPrompt(o.memory.Context(), transcript)
	response, err := o.llm.Complete(callCtx, prompt, o.config.Decoding)
	if err != nil || response == "" {
		o.logger.Error("response generation failed", "error", err)
		return o.config.FailureUtterance
	}
	return response
}

// synthesize renders speech, returning nil on failure so the host still
// receives a terminal audio event.
func (o *TurnOrchestrator) synthesize(ctx context.Context, text string) *core.AudioChunk {
	callCtx, cancel := context.WithTimeout(ctx, o.config.UpstreamTimeout)
	defer cancel()

	chunk, err := o.tts.Synthesize(callCtx, text)
	if err != nil {
		o.logger.Error("speech synthesis failed", "error", err)
		return nil
	}
	return chunk
}
