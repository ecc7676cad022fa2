package soxfx

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// PipeMarker tells sox to read from stdin or write to stdout.
	PipeMarker = "-"

	// DeviceFlag selects the default audio device.
	DeviceFlag = "-d"

	// DefaultSampleRate is assumed for in-memory input when the caller does not
	// pass one.
	DefaultSampleRate = 44100
)

// Encoding is the sample type of a Buffer and of raw sox pipes.
type Encoding int

const (
	// EncodingDefault lets the adapter pick an encoding from the source.
	EncodingDefault Encoding = iota
	Int16
	Float32
	Float64
)

// String returns the sox raw file type for the encoding.
func (e Encoding) String() string {
	switch e {
	case Int16:
		return "s16"
	case Float32:
		return "f32"
	case Float64:
		return "f64"
	case EncodingDefault:
		return "default"
	}
	return "encoding(" + strconv.Itoa(int(e)) + ")"
}

// BytesPerSample returns the width of one sample on the wire, or 0 for an
// unknown encoding.
func (e Encoding) BytesPerSample() int {
	switch e {
	case Int16:
		return 2
	case Float32:
		return 4
	case Float64:
		return 8
	}
	return 0
}

func (e Encoding) valid() bool {
	return e.BytesPerSample() > 0
}

// ParseEncoding accepts the sox raw type names and the Go numeric type names.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s16", "int16":
		return Int16, nil
	case "f32", "float32":
		return Float32, nil
	case "f64", "float64":
		return Float64, nil
	case "":
		return EncodingDefault, nil
	}
	return EncodingDefault, fmt.Errorf("%w: unknown encoding %q", ErrInvalidFormat, s)
}

// AudioFormat is the resolved descriptor for one side of an invocation: the
// format flags sox expects in front of a file argument, and the argument.
type AudioFormat struct {
	Type       string // -t value, the raw sample type for pipes
	SampleRate int    // -r in Hz
	Channels   int    // -c
	Target     string // file path, PipeMarker, or "" for the default device
}

// IsDevice reports whether the format addresses the default audio device.
func (f *AudioFormat) IsDevice() bool {
	return f.Target == ""
}

// BuildArgs converts the descriptor to sox command-line arguments.
func (f *AudioFormat) BuildArgs() []string {
	if f.IsDevice() {
		return []string{DeviceFlag}
	}

	var args []string

	if f.Type != "" {
		args = append(args, "-t", f.Type)
	}

	if f.SampleRate > 0 {
		args = append(args, "-r", strconv.Itoa(f.SampleRate))
	}

	if f.Channels > 0 {
		args = append(args, "-c", strconv.Itoa(f.Channels))
	}

	return append(args, f.Target)
}

// Validate checks that a pipe descriptor is fully specified; sox cannot guess
// the layout of headerless data.
func (f *AudioFormat) Validate() error {
	if f.SampleRate < 0 || f.Channels < 0 {
		return fmt.Errorf("%w: negative rate or channel count", ErrInvalidFormat)
	}

	if f.Target != PipeMarker {
		return nil
	}

	if f.Type == "" {
		return fmt.Errorf("%w: pipe requires a sample type", ErrInvalidFormat)
	}
	if f.SampleRate == 0 {
		return fmt.Errorf("%w: pipe requires a sample rate", ErrInvalidFormat)
	}
	if f.Channels == 0 {
		return fmt.Errorf("%w: pipe requires a channel count", ErrInvalidFormat)
	}

	return nil
}
