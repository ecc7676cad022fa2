package soxfx

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// readWAV decodes a 16-bit PCM WAV stream into an Int16 buffer and returns
// its frame rate.
func readWAV(r io.Reader) (*Buffer, int, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, 0, fmt.Errorf("reading wav data: %w", err)
		}
		rs = newBytesReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: not a wav file", ErrInvalidFormat)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decoding wav: %w", err)
	}

	if dec.WavAudioFormat != wavFormatPCM || dec.BitDepth != 16 {
		return nil, 0, fmt.Errorf("%w: only 16-bit PCM wav is supported (format %d, %d bits)",
			ErrInvalidFormat, dec.WavAudioFormat, dec.BitDepth)
	}

	b := &Buffer{
		Encoding: Int16,
		Channels: int(dec.NumChans),
		Data:     make([]float64, len(pcm.Data)),
	}
	for i, v := range pcm.Data {
		b.Data[i] = float64(v)
	}

	return b, int(dec.SampleRate), nil
}

// writeWAV encodes an Int16 buffer as a 16-bit PCM WAV stream.
func writeWAV(w io.Writer, b *Buffer, sampleRate int) error {
	ws, inPlace := w.(io.WriteSeeker)
	if inPlace {
		inPlace = atEmptyStart(ws)
	}
	var staged *bytesWriter
	if !inPlace {
		staged = &bytesWriter{}
		ws = staged
	}

	pcm := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: b.Channels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(b.Data)),
		SourceBitDepth: 16,
	}
	for i, v := range b.Data {
		pcm.Data[i] = int(clampInt16(v))
	}

	enc := wav.NewEncoder(ws, sampleRate, 16, b.Channels, wavFormatPCM)
	if err := enc.Write(pcm); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	if staged != nil {
		if _, err := w.Write(staged.Bytes()); err != nil {
			return fmt.Errorf("writing wav: %w", err)
		}
	}

	return nil
}

// atEmptyStart reports whether ws is positioned at offset 0 with nothing
// after it. The encoder patches the RIFF header at absolute offsets, which
// would clobber anything the caller wrote before.
func atEmptyStart(ws io.WriteSeeker) bool {
	pos, err := ws.Seek(0, io.SeekCurrent)
	if err != nil || pos != 0 {
		return false
	}
	end, err := ws.Seek(0, io.SeekEnd)
	if err != nil {
		return false
	}
	if _, err := ws.Seek(0, io.SeekStart); err != nil {
		return false
	}
	return end == 0
}
