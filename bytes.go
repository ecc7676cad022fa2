package soxfx

import (
	"errors"
	"io"
)

var errInvalidSeek = errors.New("invalid seek")

// bytesReader wraps []byte to implement io.ReadSeeker for WAV decoding of
// handles that cannot seek.
type bytesReader struct {
	data []byte
	pos  int64
}

func newBytesReader(data []byte) *bytesReader {
	return &bytesReader{data: data}
}

func (r *bytesReader) Read(p []byte) (int, error) {
	if r.pos >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += int64(n)
	return n, nil
}

func (r *bytesReader) Seek(offset int64, whence int) (int64, error) {
	abs, err := seekTarget(r.pos, int64(len(r.data)), offset, whence)
	if err != nil {
		return 0, err
	}
	r.pos = abs
	return abs, nil
}

// bytesWriter is an in-memory io.WriteSeeker. The WAV encoder patches its
// header after the payload, so writers that cannot seek are staged here.
type bytesWriter struct {
	data []byte
	pos  int64
}

func (w *bytesWriter) Write(p []byte) (int, error) {
	end := w.pos + int64(len(p))
	if end > int64(len(w.data)) {
		grown := make([]byte, end)
		copy(grown, w.data)
		w.data = grown
	}
	copy(w.data[w.pos:], p)
	w.pos = end
	return len(p), nil
}

func (w *bytesWriter) Seek(offset int64, whence int) (int64, error) {
	abs, err := seekTarget(w.pos, int64(len(w.data)), offset, whence)
	if err != nil {
		return 0, err
	}
	w.pos = abs
	return abs, nil
}

func (w *bytesWriter) Bytes() []byte {
	return w.data
}

func seekTarget(pos, size, offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = pos + offset
	case io.SeekEnd:
		abs = size + offset
	default:
		return 0, errInvalidSeek
	}
	if abs < 0 {
		return 0, errInvalidSeek
	}
	return abs, nil
}
