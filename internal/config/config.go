// Package config loads the YAML configuration of the soxfx command.
package config

import (
	"log/slog"
	"strings"

	soxfx "github.com/thadeu/go-soxfx"
)

// LogLevel is the minimum level written by the command's logger.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is one of the known levels.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the top-level configuration.
type Config struct {
	// SoxPath is the sox binary; empty means "sox" from PATH.
	SoxPath string `yaml:"sox_path"`

	LogLevel LogLevel `yaml:"log_level"`

	// MaxWorkers caps concurrent sox processes; 0 defers to SOX_MAX_WORKERS.
	MaxWorkers int `yaml:"max_workers"`

	SampleRateIn  int    `yaml:"sample_rate_in"`
	SampleRateOut int    `yaml:"sample_rate_out"`
	ChannelsOut   int    `yaml:"channels_out"`
	EncodingOut   string `yaml:"encoding_out"`

	// AllowClipping defaults to true when omitted.
	AllowClipping *bool `yaml:"allow_clipping"`

	// Effects are raw sox effect strings applied in order, e.g. "gain -3".
	Effects []string `yaml:"effects"`
}

// Chain builds an effect chain from the configured effects.
func (c *Config) Chain(opts soxfx.Options) *soxfx.Chain {
	chain := soxfx.New().WithOptions(opts)
	for _, effect := range c.Effects {
		chain.Custom(effect)
	}
	return chain
}

// CallOptions translates the per-invocation settings.
func (c *Config) CallOptions() ([]soxfx.CallOption, error) {
	enc, err := soxfx.ParseEncoding(c.EncodingOut)
	if err != nil {
		return nil, err
	}

	opts := []soxfx.CallOption{
		soxfx.SampleRateIn(c.SampleRateIn),
		soxfx.SampleRateOut(c.SampleRateOut),
		soxfx.ChannelsOut(c.ChannelsOut),
		soxfx.EncodingOut(enc),
	}
	if c.AllowClipping != nil {
		opts = append(opts, soxfx.AllowClipping(*c.AllowClipping))
	}

	return opts, nil
}

// Pool returns the worker pool bounding concurrent sox processes.
func (c *Config) Pool() *soxfx.Pool {
	if c.MaxWorkers > 0 {
		return soxfx.NewPoolWithLimit(c.MaxWorkers)
	}
	return soxfx.NewPool()
}

// Options returns chain options running sox through pool.
func (c *Config) Options(logger *slog.Logger, pool *soxfx.Pool) soxfx.Options {
	opts := soxfx.DefaultOptions()
	opts.SoxPath = c.soxPath()
	opts.Logger = logger
	opts.Runner = pool.Runner(soxfx.ExecRunner{})
	return opts
}

func (c *Config) soxPath() string {
	if strings.TrimSpace(c.SoxPath) == "" {
		return "sox"
	}
	return c.SoxPath
}
