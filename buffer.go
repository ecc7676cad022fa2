package soxfx

import (
	"encoding/binary"
	"fmt"
	"math"

	dsptime "github.com/cwbudde/algo-dsp/stats/time"
)

// Buffer holds decoded audio samples.
//
// Data is interleaved: the sample for channel c of frame f lives at
// Data[f*Channels+c]. This is the byte order sox reads and writes on raw
// pipes, and the column-major order of a (channels, frames) matrix. Int16
// buffers keep integer scale; float buffers are nominally in [-1, 1].
type Buffer struct {
	Encoding Encoding
	Channels int
	Data     []float64
}

// NewBuffer allocates a silent buffer.
func NewBuffer(enc Encoding, channels, frames int) *Buffer {
	return &Buffer{
		Encoding: enc,
		Channels: channels,
		Data:     make([]float64, channels*frames),
	}
}

// FromChannels interleaves one slice per channel into a Buffer. All channels
// must have the same length.
func FromChannels(enc Encoding, channels ...[]float64) (*Buffer, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("buffer: %w: no channels", ErrInvalidParameter)
	}

	frames := len(channels[0])
	for i, ch := range channels {
		if len(ch) != frames {
			return nil, fmt.Errorf("buffer: %w: channel %d has %d frames, want %d",
				ErrInvalidParameter, i, len(ch), frames)
		}
	}

	b := NewBuffer(enc, len(channels), frames)
	for c, ch := range channels {
		for f, v := range ch {
			b.Data[f*b.Channels+c] = v
		}
	}

	return b, nil
}

// Frames returns the number of frames (samples per channel).
func (b *Buffer) Frames() int {
	if b == nil || b.Channels <= 0 {
		return 0
	}
	return len(b.Data) / b.Channels
}

// Channel returns a copy of one channel's samples.
func (b *Buffer) Channel(c int) []float64 {
	if c < 0 || c >= b.Channels {
		return nil
	}

	out := make([]float64, b.Frames())
	for f := range out {
		out[f] = b.Data[f*b.Channels+c]
	}

	return out
}

// Peak returns the largest absolute sample value across all channels.
func (b *Buffer) Peak() float64 {
	return dsptime.Peak(b.Data)
}

// RMS returns the root-mean-square of all samples.
func (b *Buffer) RMS() float64 {
	return dsptime.RMS(b.Data)
}

// Bytes serializes the buffer to raw native-endian samples as sox expects on
// a raw pipe.
func (b *Buffer) Bytes() ([]byte, error) {
	width := b.Encoding.BytesPerSample()
	if width == 0 {
		return nil, fmt.Errorf("%w: cannot serialize %s samples", ErrInvalidFormat, b.Encoding)
	}

	out := make([]byte, len(b.Data)*width)
	for i, v := range b.Data {
		p := out[i*width : (i+1)*width]
		switch b.Encoding {
		case Int16:
			binary.NativeEndian.PutUint16(p, uint16(clampInt16(v)))
		case Float32:
			binary.NativeEndian.PutUint32(p, math.Float32bits(float32(v)))
		case Float64:
			binary.NativeEndian.PutUint64(p, math.Float64bits(v))
		}
	}

	return out, nil
}

// DecodeBuffer parses raw native-endian samples into a Buffer with the given
// channel count.
func DecodeBuffer(data []byte, enc Encoding, channels int) (*Buffer, error) {
	width := enc.BytesPerSample()
	if width == 0 {
		return nil, fmt.Errorf("%w: cannot decode %s samples", ErrInvalidFormat, enc)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: channel count %d", ErrFormatMismatch, channels)
	}
	if len(data)%width != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d-byte %s samples",
			ErrFormatMismatch, len(data), width, enc)
	}

	samples := len(data) / width
	if samples%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples cannot be split into %d channels",
			ErrFormatMismatch, samples, channels)
	}

	b := &Buffer{Encoding: enc, Channels: channels, Data: make([]float64, samples)}
	for i := range b.Data {
		p := data[i*width : (i+1)*width]
		switch enc {
		case Int16:
			b.Data[i] = float64(int16(binary.NativeEndian.Uint16(p)))
		case Float32:
			b.Data[i] = float64(math.Float32frombits(binary.NativeEndian.Uint32(p)))
		case Float64:
			b.Data[i] = math.Float64frombits(binary.NativeEndian.Uint64(p))
		}
	}

	return b, nil
}

func clampInt16(v float64) int16 {
	v = math.Round(v)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
