package websocket

import (
	"context"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"turnkit/core"
	"turnkit/events/turn"
	"turnkit/orchestrator"
	audioutil "turnkit/utils/audio"
)

// audioHeader is the JSON frame that precedes a binary audio payload in both
// directions. Size 0 with no following binary frame marks a silent or failed
// synthesis.
type audioHeader struct {
	Type       string `json:"type"`
	SampleRate int    `json:"sampleRate"`
	Channels   int    `json:"channels"`
	Format     string `json:"format"`
	Size       int    `json:"size"`
}

// textEnvelope is the JSON frame used for transcript and reply text.
type textEnvelope struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// Session drives the turn pipeline over a single websocket connection. The
// client sends each utterance as a JSON audio header followed by one binary
// frame; the session answers with user text, assistant text, then audio.
// Replies are transcoded to the encoding the client last sent, so G.711
// clients hear G.711 back.
type Session struct {
	conn   *websocket.Conn
	turns  *orchestrator.TurnOrchestrator
	logger *core.Logger

	clientFormat core.AudioEncodingFormat

	mu sync.Mutex // protects writes
}

func NewSession(conn *websocket.Conn, turns *orchestrator.TurnOrchestrator, logger *core.Logger) *Session {
	return &Session{
		conn:   conn,
		turns:  turns,
		logger: logger,
	}
}

// Run reads utterances until the connection closes or the context ends. Each
// utterance is processed as one synchronous turn. When the context carries a
// per-session logger, transport logging follows it into the session log file.
func (s *Session) Run(ctx context.Context) error {
	if sessionLogger := core.SessionLoggerFromContext(ctx); sessionLogger != nil {
		s.logger = sessionLogger
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		chunk, err := s.readUtterance()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		if err := s.turns.ProcessTurn(ctx, chunk, s.emit); err != nil {
			s.logger.Error("turn failed", "error", err)
			s.emit(core.NewEventPacket(
				&core.CriticalErrorEvent{Error: "turn processing failed"},
				core.EventRelayDestinationHost,
				"websocket_session",
			))
		}
	}
}

// readUtterance consumes one header frame and its binary payload.
func (s *Session) readUtterance() (core.AudioChunk, error) {
	messageType, msg, err := s.conn.ReadMessage()
	if err != nil {
		return core.AudioChunk{}, err
	}
	if messageType != websocket.TextMessage {
		return core.AudioChunk{}, fmt.Errorf("websocket: expected audio header, got binary frame")
	}

	var header audioHeader
	if err := sonic.Unmarshal(msg, &header); err != nil {
		return core.AudioChunk{}, fmt.Errorf("websocket: malformed audio header: %w", err)
	}
	if header.Type != "audio" {
		return core.AudioChunk{}, fmt.Errorf("websocket: unexpected frame type %q", header.Type)
	}

	messageType, payload, err := s.conn.ReadMessage()
	if err != nil {
		return core.AudioChunk{}, err
	}
	if messageType != websocket.BinaryMessage {
		return core.AudioChunk{}, fmt.Errorf("websocket: expected binary audio payload")
	}

	s.clientFormat = parseFormat(header.Format)
	return core.AudioChunk{
		Data:       &payload,
		SampleRate: defaultInt(header.SampleRate, 8000),
		Channels:   defaultInt(header.Channels, 1),
		Format:     s.clientFormat,
	}, nil
}

// emit relays pipeline events back to the client.
func (s *Session) emit(packet *core.EventPacket) {
	if packet.Destination != core.EventRelayDestinationHost {
		return
	}

	switch event := packet.Event.(type) {
	case *turn.TurnUserTextEvent:
		s.sendText("user_text", event.Text)
	case *turn.TurnAssistantTextEvent:
		s.sendText("assistant_text", event.Text)
	case *turn.TurnAudioOutputEvent:
		s.sendAudio(event.AudioChunk)
	case *core.CriticalErrorEvent:
		s.sendText("error", event.Error)
	default:
		s.logger.Debug("unhandled event", "id", packet.Event.GetId())
	}
}

func (s *Session) sendText(frameType, text string) {
	data, err := sonic.Marshal(textEnvelope{Type: frameType, Data: text})
	if err != nil {
		s.logger.Error("failed to encode text frame", "error", err)
		return
	}
	s.write(websocket.TextMessage, data)
}

// sendAudio writes a header frame and, when the chunk is non-nil, the binary
// payload. A nil chunk still produces a header so the client sees the turn end.
// PCM synthesis output is transcoded to the client's G.711 encoding when that
// is what the client sent.
func (s *Session) sendAudio(chunk *core.AudioChunk) {
	if chunk != nil && chunk.Data != nil && chunk.Format == core.PCM && s.clientFormat != core.PCM {
		converted, err := audioutil.ConvertFromPCM(*chunk, s.clientFormat)
		if err != nil {
			s.logger.Error("failed to transcode reply audio", "error", err)
		} else {
			chunk = &converted
		}
	}

	header := audioHeader{Type: "audio"}
	if chunk != nil && chunk.Data != nil {
		header.SampleRate = chunk.SampleRate
		header.Channels = chunk.Channels
		header.Format = formatString(chunk.Format)
		header.Size = len(*chunk.Data)
	}

	data, err := sonic.Marshal(header)
	if err != nil {
		s.logger.Error("failed to encode audio header", "error", err)
		return
	}
	s.write(websocket.TextMessage, data)

	if header.Size > 0 {
		s.write(websocket.BinaryMessage, *chunk.Data)
	}
}

func (s *Session) write(messageType int, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.WriteMessage(messageType, data); err != nil {
		s.logger.Error("websocket write failed", "error", err)
	}
}

func parseFormat(format string) core.AudioEncodingFormat {
	switch format {
	case "alaw":
		return core.ALAW
	case "pcm":
		return core.PCM
	default:
		return core.ULAW
	}
}

func formatString(format core.AudioEncodingFormat) string {
	switch format {
	case core.ALAW:
		return "alaw"
	case core.PCM:
		return "pcm"
	default:
		return "ulaw"
	}
}

func defaultInt(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
