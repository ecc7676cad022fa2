package soxfx

import "io"

// Source is where a Chain reads audio from. The set of sources is closed:
// PathSource, BufferSource, HandleSource and DeviceSource. A nil Source
// means the default device.
type Source interface {
	isSource()
}

// PathSource lets sox open a file directly. Its channel count, and unless
// SampleRateIn is given its sample rate, are probed with sox --i.
type PathSource struct {
	Path string
}

// BufferSource pipes in-memory samples to sox.
type BufferSource struct {
	Buffer *Buffer
}

// HandleSource reads a 16-bit PCM WAV stream, such as an open *os.File.
// The handle is not closed.
type HandleSource struct {
	Reader io.Reader
}

// DeviceSource records from the default audio device.
type DeviceSource struct{}

func (PathSource) isSource()   {}
func (BufferSource) isSource() {}
func (HandleSource) isSource() {}
func (DeviceSource) isSource() {}

// Destination is where a Chain writes audio to. The set of destinations is
// closed: PathDestination, BufferDestination, HandleDestination and
// DeviceDestination. A nil Destination means BufferDestination.
type Destination interface {
	isDestination()
}

// PathDestination lets sox write a file; the format follows the extension.
type PathDestination struct {
	Path string
}

// BufferDestination returns the processed samples from Apply.
type BufferDestination struct{}

// HandleDestination writes a 16-bit PCM WAV stream at the writer's current
// position. An empty io.WriteSeeker at offset 0 gets the header patched in
// place; any other writer receives the whole file in one write. The handle
// is not closed.
type HandleDestination struct {
	Writer io.Writer
}

// DeviceDestination plays through the default audio device.
type DeviceDestination struct{}

func (PathDestination) isDestination()   {}
func (BufferDestination) isDestination() {}
func (HandleDestination) isDestination() {}
func (DeviceDestination) isDestination() {}
