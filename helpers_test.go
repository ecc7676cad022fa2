package soxfx

import (
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/signal"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

// recordedCall is one invocation seen by fakeRunner.
type recordedCall struct {
	argv  []string
	stdin []byte
}

// fakeRunner records every run and answers with handle, or an empty Result.
type fakeRunner struct {
	mu     sync.Mutex
	calls  []recordedCall
	handle func(argv []string, stdin []byte) (Result, error)
}

func (f *fakeRunner) Run(_ context.Context, argv []string, stdin []byte) (Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{argv: slices.Clone(argv), stdin: slices.Clone(stdin)})
	handle := f.handle
	f.mu.Unlock()

	if handle == nil {
		return Result{}, nil
	}
	return handle(argv, stdin)
}

func (f *fakeRunner) Calls() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// echoRunner plays sox with an identity chain: stdout repeats stdin.
func echoRunner() *fakeRunner {
	return &fakeRunner{handle: func(_ []string, stdin []byte) (Result, error) {
		return Result{Stdout: slices.Clone(stdin)}, nil
	}}
}

// probingRunner answers sox --i queries and passes everything else to main.
func probingRunner(channels, rate string, main func(argv []string, stdin []byte) (Result, error)) *fakeRunner {
	return &fakeRunner{handle: func(argv []string, stdin []byte) (Result, error) {
		if len(argv) > 2 && argv[1] == "--i" {
			switch argv[2] {
			case "-c":
				return Result{Stdout: []byte(channels + "\n")}, nil
			case "-r":
				return Result{Stdout: []byte(rate + "\n")}, nil
			}
		}
		if main == nil {
			return Result{}, nil
		}
		return main(argv, stdin)
	}}
}

// testChain returns a chain wired to r with an isolated monitor.
func testChain(t *testing.T, r Runner) *Chain {
	t.Helper()

	m, err := NewMonitor(noop.NewMeterProvider())
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Runner = r
	opts.Monitor = m
	return New().WithOptions(opts)
}

// sineBuffer generates a mono tone.
func sineBuffer(t *testing.T, enc Encoding, rate int, freq, amplitude float64, frames int) *Buffer {
	t.Helper()

	gen := signal.NewGenerator(core.WithSampleRate(float64(rate)))
	tone, err := gen.Sine(freq, amplitude, frames)
	require.NoError(t, err)

	return &Buffer{Encoding: enc, Channels: 1, Data: tone}
}
