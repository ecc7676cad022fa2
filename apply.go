package soxfx

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// input is the resolved input clause of one invocation.
type input struct {
	format   AudioFormat
	stdin    []byte
	encoding Encoding // sample type of in-memory sources, EncodingDefault otherwise
	channels int      // 0 when unknown (device)
}

// output is the resolved output clause of one invocation.
type output struct {
	format   AudioFormat
	encoding Encoding
}

// Apply runs the chain once from src to dst. Only a BufferDestination (or a
// nil dst) yields a non-nil Buffer.
func (c *Chain) Apply(src Source, dst Destination, opts ...CallOption) (*Buffer, error) {
	return c.ApplyWithContext(context.Background(), src, dst, opts...)
}

// ApplyWithContext is Apply with a context bounding the sox process.
func (c *Chain) ApplyWithContext(ctx context.Context, src Source, dst Destination, opts ...CallOption) (*Buffer, error) {
	if c.err != nil {
		return nil, c.err
	}
	if dst == nil {
		dst = BufferDestination{}
	}

	cfg := newCallConfig(opts...)

	in, err := c.resolveInput(ctx, src, &cfg)
	if err != nil {
		return nil, err
	}

	out, err := resolveOutput(dst, in, &cfg)
	if err != nil {
		return nil, err
	}

	args := c.buildCommandArgs(in, out, &cfg)

	stdout, err := c.run(ctx, args, in.stdin)
	if err != nil {
		return nil, err
	}

	switch d := dst.(type) {
	case BufferDestination:
		return DecodeBuffer(stdout, out.encoding, out.format.Channels)
	case HandleDestination:
		b, err := DecodeBuffer(stdout, out.encoding, out.format.Channels)
		if err != nil {
			return nil, err
		}
		if err := writeWAV(d.Writer, b, out.format.SampleRate); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

// buildCommandArgs constructs the complete argv: binary, global flags,
// input clause, output clause, then effects.
func (c *Chain) buildCommandArgs(in input, out output, cfg *callConfig) []string {
	args := []string{c.Options.soxPath()}

	// Global options
	args = append(args, cfg.buildGlobalArgs()...)

	// Input and output clauses
	args = append(args, in.format.BuildArgs()...)
	args = append(args, out.format.BuildArgs()...)

	// Effects, copied so the chain can keep growing after this call
	return append(args, slices.Clone(c.tokens)...)
}

// run spawns sox once. Any diagnostic output fails the invocation, even when
// sox also produced samples.
func (c *Chain) run(ctx context.Context, args []string, stdin []byte) ([]byte, error) {
	logger := c.Options.logger()
	logger.DebugContext(ctx, "running sox", "args", args, "stdin_bytes", len(stdin))

	done := c.Options.monitor().begin(ctx)
	start := time.Now()

	res, err := c.Options.runner().Run(ctx, args, stdin)

	var failure error
	if err != nil || len(res.Stderr) > 0 || res.ExitCode != 0 {
		failure = processError(ctx, args, res, err)
	}
	done(failure)

	if failure != nil {
		logger.DebugContext(ctx, "sox failed", "err", failure, "duration", time.Since(start))
		return nil, failure
	}

	logger.DebugContext(ctx, "sox finished", "stdout_bytes", len(res.Stdout), "duration", time.Since(start))
	return res.Stdout, nil
}

func (c *Chain) resolveInput(ctx context.Context, src Source, cfg *callConfig) (input, error) {
	if src == nil {
		src = DeviceSource{}
	}

	switch s := src.(type) {
	case PathSource:
		return c.resolvePathInput(ctx, s, cfg)

	case BufferSource:
		if s.Buffer == nil {
			return input{}, fmt.Errorf("buffer source: %w: nil buffer", ErrInvalidParameter)
		}
		return resolveBufferInput(s.Buffer, cfg.sampleRateIn)

	case HandleSource:
		if s.Reader == nil {
			return input{}, fmt.Errorf("handle source: %w: nil reader", ErrInvalidParameter)
		}
		b, rate, err := readWAV(s.Reader)
		if err != nil {
			return input{}, err
		}
		// The WAV header is authoritative for handle input.
		cfg.sampleRateIn = rate
		return resolveBufferInput(b, rate)

	case DeviceSource:
		return input{format: AudioFormat{}}, nil
	}

	return input{}, fmt.Errorf("%w: unsupported source %T", ErrInvalidParameter, src)
}

func (c *Chain) resolvePathInput(ctx context.Context, s PathSource, cfg *callConfig) (input, error) {
	if s.Path == "" {
		return input{}, fmt.Errorf("path source: %w: empty path", ErrInvalidParameter)
	}

	runner, soxPath := c.Options.runner(), c.Options.soxPath()

	channels, err := ProbeChannels(ctx, runner, soxPath, s.Path)
	if err != nil {
		return input{}, fmt.Errorf("probing %s: %w", s.Path, err)
	}

	if !cfg.sampleRateInSet {
		rate, err := ProbeSampleRate(ctx, runner, soxPath, s.Path)
		if err != nil {
			return input{}, fmt.Errorf("probing %s: %w", s.Path, err)
		}
		cfg.sampleRateIn = rate
	}

	// sox reads the header itself, so the clause is just the path.
	return input{
		format:   AudioFormat{Target: s.Path},
		channels: channels,
	}, nil
}

func resolveBufferInput(b *Buffer, rate int) (input, error) {
	if !b.Encoding.valid() {
		return input{}, fmt.Errorf("%w: buffer encoding %s", ErrInvalidFormat, b.Encoding)
	}
	if b.Channels <= 0 {
		return input{}, fmt.Errorf("%w: buffer has %d channels", ErrInvalidFormat, b.Channels)
	}
	if len(b.Data)%b.Channels != 0 {
		return input{}, fmt.Errorf("%w: %d samples cannot be split into %d channels",
			ErrFormatMismatch, len(b.Data), b.Channels)
	}

	stdin, err := b.Bytes()
	if err != nil {
		return input{}, err
	}

	in := input{
		format: AudioFormat{
			Type:       b.Encoding.String(),
			SampleRate: rate,
			Channels:   b.Channels,
			Target:     PipeMarker,
		},
		stdin:    stdin,
		encoding: b.Encoding,
		channels: b.Channels,
	}
	if err := in.format.Validate(); err != nil {
		return input{}, err
	}

	return in, nil
}

func resolveOutput(dst Destination, in input, cfg *callConfig) (output, error) {
	channels := cfg.channelsOut
	if channels == 0 {
		channels = in.channels
	}

	rate := cfg.sampleRateOut
	if rate == 0 {
		rate = cfg.sampleRateIn
	}

	switch d := dst.(type) {
	case PathDestination:
		if d.Path == "" {
			return output{}, fmt.Errorf("path destination: %w: empty path", ErrInvalidParameter)
		}
		return output{format: AudioFormat{SampleRate: rate, Channels: channels, Target: d.Path}}, nil

	case BufferDestination:
		enc := cfg.encodingOut
		if enc == EncodingDefault {
			enc = in.encoding
		}
		if enc == EncodingDefault {
			enc = Float32
		}
		return pipeOutput(enc, rate, channels)

	case HandleDestination:
		if d.Writer == nil {
			return output{}, fmt.Errorf("handle destination: %w: nil writer", ErrInvalidParameter)
		}
		return pipeOutput(Int16, rate, channels)

	case DeviceDestination:
		return output{format: AudioFormat{}}, nil
	}

	return output{}, fmt.Errorf("%w: unsupported destination %T", ErrInvalidParameter, dst)
}

func pipeOutput(enc Encoding, rate, channels int) (output, error) {
	if !enc.valid() {
		return output{}, fmt.Errorf("%w: output encoding %s", ErrInvalidFormat, enc)
	}
	if channels == 0 {
		return output{}, fmt.Errorf("%w: output channel count is unknown, set ChannelsOut", ErrInvalidParameter)
	}

	out := output{
		format: AudioFormat{
			Type:       enc.String(),
			SampleRate: rate,
			Channels:   channels,
			Target:     PipeMarker,
		},
		encoding: enc,
	}
	if err := out.format.Validate(); err != nil {
		return output{}, err
	}

	return out, nil
}
