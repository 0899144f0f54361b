package audio

import (
	"bytes"
	"encoding/binary"
	"errors"

	"turnkit/core"

	"github.com/zaf/g711"
)

// PCMBytesToULaw converts PCM bytes to µ-law
func PCMBytesToULaw(pcm []byte) ([]byte, error) {
	if len(pcm)%2 != 0 {
		return nil, errors.New("PCM byte slice length must be even (16-bit samples)")
	}
	return g711.EncodeUlaw(pcm), nil
}

// ULawBytesToPCM converts µ-law bytes to PCM bytes
func ULawBytesToPCM(uBytes []byte) []byte {
	return g711.DecodeUlaw(uBytes)
}

// PCMBytesToALaw converts PCM bytes to A-law
func PCMBytesToALaw(pcm []byte) ([]byte, error) {
	if len(pcm)%2 != 0 {
		return nil, errors.New("PCM byte slice length must be even (16-bit samples)")
	}
	return g711.EncodeAlaw(pcm), nil
}

// ALawBytesToPCM converts A-law bytes to PCM bytes
func ALawBytesToPCM(aBytes []byte) []byte {
	return g711.DecodeAlaw(aBytes)
}

// ConvertToPCM normalizes an audio chunk to 16-bit PCM, decoding G.711
// payloads when needed. The sample rate and channel count are preserved.
func ConvertToPCM(input core.AudioChunk) (core.AudioChunk, error) {
	if input.Data == nil {
		return core.AudioChunk{}, errors.New("audio chunk has no data")
	}
	switch input.Format {
	case core.PCM:
		return input, nil
	case core.ULAW:
		pcm := ULawBytesToPCM(*input.Data)
		return core.AudioChunk{Data: &pcm, SampleRate: input.SampleRate, Channels: input.Channels, Format: core.PCM}, nil
	case core.ALAW:
		pcm := ALawBytesToPCM(*input.Data)
		return core.AudioChunk{Data: &pcm, SampleRate: input.SampleRate, Channels: input.Channels, Format: core.PCM}, nil
	default:
		return core.AudioChunk{}, errors.New("unsupported format for PCM conversion")
	}
}

// ConvertFromPCM transcodes a 16-bit PCM chunk to the target encoding, used
// to answer G.711 clients in the encoding they speak. The sample rate and
// channel count are preserved; no resampling happens here.
func ConvertFromPCM(input core.AudioChunk, target core.AudioEncodingFormat) (core.AudioChunk, error) {
	if input.Data == nil {
		return core.AudioChunk{}, errors.New("audio chunk has no data")
	}
	if input.Format != core.PCM {
		return core.AudioChunk{}, errors.New("input must be PCM")
	}
	if target == core.PCM {
		return input, nil
	}

	var encoded []byte
	var err error
	switch target {
	case core.ULAW:
		encoded, err = PCMBytesToULaw(*input.Data)
	case core.ALAW:
		encoded, err = PCMBytesToALaw(*input.Data)
	default:
		return core.AudioChunk{}, errors.New("unsupported target format")
	}
	if err != nil {
		return core.AudioChunk{}, err
	}
	return core.AudioChunk{Data: &encoded, SampleRate: input.SampleRate, Channels: input.Channels, Format: target}, nil
}

// EncodeWAV wraps 16-bit PCM data in a minimal RIFF/WAVE container. Speech
// recognition endpoints accept file uploads, not bare sample buffers.
func EncodeWAV(pcm []byte, sampleRate, channels int) []byte {
	var buf bytes.Buffer
	dataLen := uint32(len(pcm))
	byteRate := uint32(sampleRate * channels * 2)
	blockAlign := uint16(channels * 2)

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, byteRate)
	binary.Write(&buf, binary.LittleEndian, blockAlign)
	binary.Write(&buf, binary.LittleEndian, uint16(16)) // bits per sample
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataLen)
	buf.Write(pcm)
	return buf.Bytes()
}
