package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetDurationInSeconds(t *testing.T) {
	pcm := make([]byte, 16000) // one second of 16-bit mono at 8kHz
	chunk := AudioChunk{Data: &pcm, SampleRate: 8000, Channels: 1, Format: PCM}
	require.InDelta(t, 1.0, chunk.GetDurationInSeconds(), 0.001)

	ulaw := make([]byte, 8000) // one second of G.711 at 8kHz
	chunk = AudioChunk{Data: &ulaw, SampleRate: 8000, Channels: 1, Format: ULAW}
	require.InDelta(t, 1.0, chunk.GetDurationInSeconds(), 0.001)

	empty := AudioChunk{}
	require.Zero(t, empty.GetDurationInSeconds())
	require.True(t, empty.IsSilent())
}
