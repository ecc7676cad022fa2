// Command soxfx applies a sox effect chain to an audio file or device.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	soxfx "github.com/thadeu/go-soxfx"
	"github.com/thadeu/go-soxfx/internal/config"
)

// effectFlags collects repeated -effect flags.
type effectFlags []string

func (e *effectFlags) String() string { return strings.Join(*e, "; ") }

func (e *effectFlags) Set(v string) error {
	*e = append(*e, v)
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	inPath := flag.String("in", "", "input audio file (default device when empty)")
	outPath := flag.String("out", "", "output audio file (default device when empty)")
	var effects effectFlags
	flag.Var(&effects, "effect", "sox effect appended after configured effects, e.g. \"reverb 50\" (repeatable)")
	flag.Parse()

	cfg := &config.Config{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "soxfx: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	cfg.Effects = append(cfg.Effects, effects...)

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if err := soxfx.CheckSoxInstalled(cfg.SoxPath); err != nil {
		slog.Error("sox is not available", "err", err)
		return 1
	}

	callOpts, err := cfg.CallOptions()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		return 1
	}

	chain := cfg.Chain(cfg.Options(logger, cfg.Pool()))
	if err := chain.Err(); err != nil {
		slog.Error("invalid effect chain", "err", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var src soxfx.Source = soxfx.DeviceSource{}
	if *inPath != "" {
		src = soxfx.PathSource{Path: *inPath}
	}
	var dst soxfx.Destination = soxfx.DeviceDestination{}
	if *outPath != "" {
		dst = soxfx.PathDestination{Path: *outPath}
	}

	slog.Info("applying effects", "in", *inPath, "out", *outPath, "effects", chain.String())

	if _, err := chain.ApplyWithContext(ctx, src, dst, callOpts...); err != nil {
		var perr *soxfx.ProcessError
		if errors.As(err, &perr) {
			slog.Error("sox failed", "exit_code", perr.ExitCode, "stderr", perr.Stderr, "args", perr.Args)
		} else {
			slog.Error("apply failed", "err", err)
		}
		return 1
	}

	stats := soxfx.GetMonitor().GetStats()
	slog.Debug("done", "invocations", stats.TotalInvocations, "failed", stats.FailedInvocations)
	return 0
}

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
