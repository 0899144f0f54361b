package core

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
)

func TestSessionLoggerContextRoundTrip(t *testing.T) {
	require.Nil(t, SessionLoggerFromContext(context.Background()))

	logger := GetLogger().With(map[string]any{"session_id": "abc"})
	ctx := ContextWithSessionLogger(context.Background(), logger)
	require.Same(t, logger, SessionLoggerFromContext(ctx))
}

func TestSessionLogWriterWritesJSONLines(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewSessionLogWriter(dir, "session-1")
	require.NoError(t, err)

	writer.Write("INFO", "turn complete", map[string]interface{}{"turns": 1})
	writer.Close()

	// The .active marker is removed on close.
	_, err = os.Stat(filepath.Join(dir, "session-1.active"))
	require.True(t, os.IsNotExist(err))

	f, err := os.Open(filepath.Join(dir, "session-1.jsonl"))
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())
	var meta SessionMetadata
	require.NoError(t, sonic.Unmarshal(scanner.Bytes(), &meta))
	require.Equal(t, "session-1", meta.SessionID)

	require.True(t, scanner.Scan())
	var entry LogEntry
	require.NoError(t, sonic.Unmarshal(scanner.Bytes(), &entry))
	require.Equal(t, "turn complete", entry.Message)
	require.Equal(t, "INFO", entry.Level)
}
