package audio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"turnkit/core"
)

func TestConvertToPCMDecodesULaw(t *testing.T) {
	data := []byte{0x7f, 0xff, 0x00, 0x80}
	chunk := core.AudioChunk{Data: &data, SampleRate: 8000, Channels: 1, Format: core.ULAW}

	pcm, err := ConvertToPCM(chunk)
	require.NoError(t, err)
	require.Equal(t, core.PCM, pcm.Format)
	require.Equal(t, 8000, pcm.SampleRate)
	require.Len(t, *pcm.Data, len(data)*2)
}

func TestConvertToPCMPassesThroughPCM(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	chunk := core.AudioChunk{Data: &data, SampleRate: 16000, Channels: 1, Format: core.PCM}

	pcm, err := ConvertToPCM(chunk)
	require.NoError(t, err)
	require.Equal(t, &data, pcm.Data)
}

func TestConvertFromPCMEncodesULaw(t *testing.T) {
	data := []byte{0x00, 0x10, 0xff, 0xef, 0x00, 0x00, 0x34, 0x12}
	chunk := core.AudioChunk{Data: &data, SampleRate: 8000, Channels: 1, Format: core.PCM}

	ulaw, err := ConvertFromPCM(chunk, core.ULAW)
	require.NoError(t, err)
	require.Equal(t, core.ULAW, ulaw.Format)
	require.Len(t, *ulaw.Data, len(data)/2)

	// Decoding back yields PCM of the original size.
	roundTrip, err := ConvertToPCM(ulaw)
	require.NoError(t, err)
	require.Len(t, *roundTrip.Data, len(data))
}

func TestConvertFromPCMRejectsOddLength(t *testing.T) {
	data := []byte{1, 2, 3}
	chunk := core.AudioChunk{Data: &data, SampleRate: 8000, Channels: 1, Format: core.PCM}

	_, err := ConvertFromPCM(chunk, core.ULAW)
	require.Error(t, err)
}

func TestEncodeWAVHeader(t *testing.T) {
	pcm := make([]byte, 320)
	wav := EncodeWAV(pcm, 8000, 1)

	require.Len(t, wav, 44+len(pcm))
	require.Equal(t, "RIFF", string(wav[0:4]))
	require.Equal(t, "WAVE", string(wav[8:12]))
	require.Equal(t, uint32(8000), binary.LittleEndian.Uint32(wav[24:28]))
	require.Equal(t, uint32(len(pcm)), binary.LittleEndian.Uint32(wav[40:44]))
}
