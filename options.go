package soxfx

import "log/slog"

// Options configures how a Chain runs sox.
type Options struct {
	// SoxPath specifies the path to the sox binary (defaults to "sox")
	SoxPath string

	// Runner spawns the process (defaults to ExecRunner)
	Runner Runner

	// Logger receives a debug record per invocation (defaults to slog.Default())
	Logger *slog.Logger

	// Monitor records invocation metrics (defaults to GetMonitor())
	Monitor *Monitor
}

// DefaultOptions returns Options with sensible defaults
func DefaultOptions() Options {
	return Options{
		SoxPath: "sox",
		Runner:  ExecRunner{},
	}
}

func (o *Options) soxPath() string {
	if o.SoxPath == "" {
		return "sox"
	}
	return o.SoxPath
}

func (o *Options) runner() Runner {
	if o.Runner == nil {
		return ExecRunner{}
	}
	return o.Runner
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o *Options) monitor() *Monitor {
	if o.Monitor == nil {
		return GetMonitor()
	}
	return o.Monitor
}

// CallOption adjusts a single invocation of a Chain.
type CallOption func(*callConfig)

type callConfig struct {
	sampleRateIn    int
	sampleRateInSet bool
	sampleRateOut   int
	encodingOut     Encoding
	channelsOut     int
	allowClipping   bool
}

func newCallConfig(opts ...CallOption) callConfig {
	cfg := callConfig{
		sampleRateIn:  DefaultSampleRate,
		allowClipping: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// SampleRateIn sets the rate of an in-memory source. For path sources it
// overrides the probed rate.
func SampleRateIn(hz int) CallOption {
	return func(cfg *callConfig) {
		if hz > 0 {
			cfg.sampleRateIn = hz
			cfg.sampleRateInSet = true
		}
	}
}

// SampleRateOut resamples the output; it defaults to the input rate.
func SampleRateOut(hz int) CallOption {
	return func(cfg *callConfig) {
		if hz > 0 {
			cfg.sampleRateOut = hz
		}
	}
}

// EncodingOut sets the sample type of a buffer destination. It defaults to
// the source buffer's encoding, or Float32 for files and devices.
func EncodingOut(enc Encoding) CallOption {
	return func(cfg *callConfig) {
		cfg.encodingOut = enc
	}
}

// ChannelsOut remixes the output; it defaults to the input channel count.
func ChannelsOut(n int) CallOption {
	return func(cfg *callConfig) {
		if n > 0 {
			cfg.channelsOut = n
		}
	}
}

// AllowClipping picks sox's verbosity: when false, clipping warnings are
// emitted (-V2) and therefore fail the invocation.
func AllowClipping(allow bool) CallOption {
	return func(cfg *callConfig) {
		cfg.allowClipping = allow
	}
}

// buildGlobalArgs returns the flags preceding the input clause
func (cfg *callConfig) buildGlobalArgs() []string {
	verbosity := "-V1"
	if !cfg.allowClipping {
		verbosity = "-V2"
	}
	return []string{"-N", verbosity}
}
