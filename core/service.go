package core

import "context"

// IService is the lifecycle contract shared by all external collaborator
// services (STT, TTS, LLM). Init must be called before first use.
type IService interface {
	Init(ctx context.Context) error
	Cleanup() error
}
