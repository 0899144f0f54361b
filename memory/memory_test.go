package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestMemory(t *testing.T, capacity int) (*ConversationMemory, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conversation_memory.json")
	return New(capacity, path, nil), path
}

func TestWindowIsSuffixOfFullLog(t *testing.T) {
	const capacity = 3
	m, _ := newTestMemory(t, capacity)

	for i := 0; i < 7; i++ {
		m.AddConversation(fmt.Sprintf("question %d", i), fmt.Sprintf("answer %d", i))

		all := m.All()
		require.Len(t, all, i+1)

		info := m.Info()
		expectedWindow := i + 1
		if expectedWindow > capacity {
			expectedWindow = capacity
		}
		require.Equal(t, expectedWindow, info.ContextConversations)
	}

	// The window must be exactly the last `capacity` turns, in order.
	m.mu.Lock()
	window := append([]Turn(nil), m.window...)
	m.mu.Unlock()
	all := m.All()
	require.Equal(t, all[len(all)-capacity:], window)
}

func TestReloadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversation_memory.json")

	first := New(4, path, nil)
	for i := 0; i < 6; i++ {
		first.AddConversation(fmt.Sprintf("u%d", i), fmt.Sprintf("a%d", i))
	}

	second := New(4, path, nil)
	require.Equal(t, first.All(), second.All())

	info := second.Info()
	require.Equal(t, 6, info.TotalConversations)
	require.Equal(t, 4, info.ContextConversations)
	require.True(t, info.FileExists)
	require.Equal(t, first.Context(), second.Context())
}

func TestContextIdempotent(t *testing.T) {
	m, _ := newTestMemory(t, 5)
	require.Empty(t, m.Context())

	m.AddConversation("hello", "hi there")
	m.AddConversation("how are you", "doing well")

	first := m.Context()
	second := m.Context()
	require.Equal(t, first, second)
	require.Contains(t, first, "<|user|>\nhello\n<|end|>")
	require.Contains(t, first, "<|assistant|>\ndoing well\n<|end|>")
}

func TestCorruptStoreStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversation_memory.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	m := New(3, path, nil)
	require.Empty(t, m.All())
	require.Empty(t, m.Context())

	// The store must be writable again after a corrupt load.
	m.AddConversation("u", "a")
	reloaded := New(3, path, nil)
	require.Len(t, reloaded.All(), 1)
}

func TestMissingStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	path := filepath.Join(dir, "conversation_memory.json")

	m := New(3, path, nil)
	require.Empty(t, m.All())

	_, err := os.Stat(dir)
	require.NoError(t, err)
}
