package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	soxfx "github.com/thadeu/go-soxfx"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// An empty document yields the zero configuration.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if cfg.MaxWorkers < 0 {
		errs = append(errs, fmt.Errorf("max_workers %d must not be negative", cfg.MaxWorkers))
	}
	if cfg.SampleRateIn < 0 {
		errs = append(errs, fmt.Errorf("sample_rate_in %d must not be negative", cfg.SampleRateIn))
	}
	if cfg.SampleRateOut < 0 {
		errs = append(errs, fmt.Errorf("sample_rate_out %d must not be negative", cfg.SampleRateOut))
	}
	if cfg.ChannelsOut < 0 {
		errs = append(errs, fmt.Errorf("channels_out %d must not be negative", cfg.ChannelsOut))
	}
	if _, err := soxfx.ParseEncoding(cfg.EncodingOut); err != nil {
		errs = append(errs, fmt.Errorf("encoding_out: %w", err))
	}
	for i, effect := range cfg.Effects {
		if strings.TrimSpace(effect) == "" {
			errs = append(errs, fmt.Errorf("effects[%d] is empty", i))
		}
	}

	return errors.Join(errs...)
}
