package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"turnkit/core"
	"turnkit/memory"
	"turnkit/orchestrator"
	"turnkit/weather"
)

type echoSTT struct{}

func (s *echoSTT) Init(ctx context.Context) error { return nil }
func (s *echoSTT) Cleanup() error                 { return nil }
func (s *echoSTT) Transcribe(ctx context.Context, audio core.AudioChunk) (string, error) {
	return "Tell me a joke", nil
}

type cannedLLM struct{}

func (s *cannedLLM) Init(ctx context.Context) error { return nil }
func (s *cannedLLM) Cleanup() error                 { return nil }
func (s *cannedLLM) Complete(ctx context.Context, prompt string, params core.DecodingParams) (string, error) {
	return "Why did the gopher cross the road?", nil
}

type cannedTTS struct{}

func (s *cannedTTS) Init(ctx context.Context) error { return nil }
func (s *cannedTTS) Cleanup() error                 { return nil }
func (s *cannedTTS) Synthesize(ctx context.Context, text string) (*core.AudioChunk, error) {
	data := []byte{1, 2, 3, 4}
	return &core.AudioChunk{Data: &data, SampleRate: 24000, Channels: 1, Format: core.PCM}, nil
}

type noopProvider struct{}

func (p *noopProvider) Name() string { return "noop" }
func (p *noopProvider) CurrentWeather(ctx context.Context, location string) (weather.Snapshot, error) {
	return weather.Snapshot{Location: location}, nil
}
func (p *noopProvider) Forecast(ctx context.Context, location string, hours int) (weather.Forecast, error) {
	return weather.Forecast{Location: location}, nil
}

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func TestSessionTurnRoundTrip(t *testing.T) {
	logger := core.GetLogger()
	mem := memory.New(5, filepath.Join(t.TempDir(), "conversations.json"), logger)
	turns := orchestrator.NewTurnOrchestrator(
		&echoSTT{}, &cannedLLM{}, &cannedTTS{},
		weather.NewOrchestrator(&noopProvider{}, logger),
		mem, orchestrator.DefaultTurnConfig(), logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		NewSession(conn, turns, logger).Run(ctx)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/"
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	header, err := sonic.Marshal(audioHeader{Type: "audio", SampleRate: 8000, Channels: 1, Format: "ulaw"})
	require.NoError(t, err)
	require.NoError(t, client.WriteMessage(websocket.TextMessage, header))
	require.NoError(t, client.WriteMessage(websocket.BinaryMessage, []byte{10, 20, 30, 40}))

	readText := func() textEnvelope {
		t.Helper()
		messageType, msg, err := client.ReadMessage()
		require.NoError(t, err)
		require.Equal(t, websocket.TextMessage, messageType)
		var envelope textEnvelope
		require.NoError(t, sonic.Unmarshal(msg, &envelope))
		return envelope
	}

	userText := readText()
	require.Equal(t, "user_text", userText.Type)
	require.Equal(t, "Tell me a joke", userText.Data)

	assistantText := readText()
	require.Equal(t, "assistant_text", assistantText.Type)
	require.Equal(t, "Why did the gopher cross the road?", assistantText.Data)

	messageType, msg, err := client.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.TextMessage, messageType)
	var outHeader audioHeader
	require.NoError(t, sonic.Unmarshal(msg, &outHeader))
	require.Equal(t, "audio", outHeader.Type)
	// The 4-byte PCM reply (2 samples) comes back transcoded to the client's
	// µ-law encoding, one byte per sample.
	require.Equal(t, "ulaw", outHeader.Format)
	require.Equal(t, 2, outHeader.Size)

	messageType, payload, err := client.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.BinaryMessage, messageType)
	require.Len(t, payload, 2)
}
