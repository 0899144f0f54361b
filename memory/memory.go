package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"turnkit/core"

	"github.com/bytedance/sonic"
)

// Turn is one user/assistant exchange. Immutable once created.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// Info reports the current memory state for diagnostics.
type Info struct {
	TotalConversations   int    `json:"total_conversations"`
	ContextConversations int    `json:"context_conversations"`
	MaxConversations     int    `json:"max_conversations"`
	SaveFile             string `json:"save_file"`
	FileExists           bool   `json:"file_exists"`
}

// persistedState is the on-disk layout: the full log only. The retention
// window is recomputed from capacity on load.
type persistedState struct {
	Conversations []Turn `json:"conversations"`
}

// ConversationMemory keeps two views of the conversation history: a bounded
// retention window exposed to the response generator as context, and the
// unbounded full log persisted to disk on every addition. The window is
// always the suffix of the full log of length min(capacity, len(log)).
//
// All mutating calls are serialized; the window/log/file update is not
// atomic across the two sequences otherwise.
type ConversationMemory struct {
	mu       sync.Mutex
	capacity int
	window   []Turn
	all      []Turn
	saveFile string
	logger   *core.Logger
}

// New creates a ConversationMemory backed by saveFile and hydrates it from
// any existing store. A corrupt or unreadable store is logged and discarded;
// memory loss is recoverable, a failed load is not fatal.
func New(capacity int, saveFile string, logger *core.Logger) *ConversationMemory {
	if capacity < 1 {
		capacity = 1
	}
	if logger == nil {
		logger = core.GetLogger()
	}
	m := &ConversationMemory{
		capacity: capacity,
		saveFile: saveFile,
		logger:   logger.With(map[string]any{"component": "memory"}),
	}
	m.load()
	return m
}

// AddConversation appends a turn to the window and the full log, evicting the
// oldest window entry on overflow, then persists the entire log synchronously.
// Persistence failures are logged and swallowed: a memory-write failure must
// never abort the conversational turn.
func (m *ConversationMemory) AddConversation(user, assistant string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	turn := Turn{User: user, Assistant: assistant}
	m.all = append(m.all, turn)
	m.window = append(m.window, turn)
	if len(m.window) > m.capacity {
		m.window = m.window[len(m.window)-m.capacity:]
	}

	if err := m.save(); err != nil {
		m.logger.Errorf("failed to persist conversation memory: %v", err)
	}
}

// Context renders the retention window as role-tagged blocks for inclusion in
// a generation prompt. Returns the empty string when the window is empty.
func (m *ConversationMemory) Context() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.window) == 0 {
		return ""
	}

	out := ""
	for i, turn := range m.window {
		if i > 0 {
			out += "\n"
		}
		out += fmt.Sprintf("<|user|>\n%s\n<|end|>\n<|assistant|>\n%s\n<|end|>", turn.User, turn.Assistant)
	}
	return out
}

// Info returns counts for total vs. in-context turns and capacity.
func (m *ConversationMemory) Info() Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, statErr := os.Stat(m.saveFile)
	return Info{
		TotalConversations:   len(m.all),
		ContextConversations: len(m.window),
		MaxConversations:     m.capacity,
		SaveFile:             m.saveFile,
		FileExists:           statErr == nil,
	}
}

// All returns a copy of the full conversation log.
func (m *ConversationMemory) All() []Turn {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Turn, len(m.all))
	copy(out, m.all)
	return out
}

func (m *ConversationMemory) save() error {
	data, err := sonic.MarshalIndent(persistedState{Conversations: m.all}, "", "  ")
	if err != nil {
		return fmt.Errorf("memory: marshal: %w", err)
	}
	if err := os.WriteFile(m.saveFile, data, 0644); err != nil {
		return fmt.Errorf("memory: write %q: %w", m.saveFile, err)
	}
	return nil
}

func (m *ConversationMemory) load() {
	if dir := filepath.Dir(m.saveFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			m.logger.Warnf("failed to create memory directory %q: %v", dir, err)
		}
	}

	data, err := os.ReadFile(m.saveFile)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warnf("failed to read conversation memory %q: %v", m.saveFile, err)
		}
		return
	}

	var state persistedState
	if err := sonic.Unmarshal(data, &state); err != nil {
		// Fail soft: continue with an empty log rather than abort startup.
		m.logger.Errorf("corrupt conversation memory %q, starting empty: %v", m.saveFile, err)
		return
	}

	m.all = state.Conversations
	start := 0
	if len(m.all) > m.capacity {
		start = len(m.all) - m.capacity
	}
	m.window = append(m.window, m.all[start:]...)
	m.logger.Infof("loaded %d total conversations, using last %d for context", len(m.all), len(m.window))
}
