package soxfx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// Result is the captured outcome of one process run.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner runs argv to completion, feeding stdin and capturing both output
// streams. A non-zero exit status is reported in Result, not as an error;
// the error is reserved for processes that could not be run at all.
type Runner interface {
	Run(ctx context.Context, argv []string, stdin []byte) (Result, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, argv []string, stdin []byte) (Result, error)

func (f RunnerFunc) Run(ctx context.Context, argv []string, stdin []byte) (Result, error) {
	return f(ctx, argv, stdin)
}

// DefaultWaitDelay bounds how long ExecRunner waits for output pipes to close
// after the process was killed by its context.
const DefaultWaitDelay = time.Second

// ExecRunner runs processes with os/exec.
type ExecRunner struct {
	// WaitDelay overrides DefaultWaitDelay when positive. A killed sox can
	// leave children holding its pipes open; after this delay they are closed.
	WaitDelay time.Duration
}

// Run starts argv, feeds stdin while waiting for the process to exit, and
// returns once both output streams are drained.
func (r ExecRunner) Run(ctx context.Context, argv []string, stdin []byte) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("empty command")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = DefaultWaitDelay
	if r.WaitDelay > 0 {
		cmd.WaitDelay = r.WaitDelay
	}

	var stdinPipe io.WriteCloser
	if stdin != nil {
		var err error
		if stdinPipe, err = cmd.StdinPipe(); err != nil {
			return Result{}, fmt.Errorf("failed to create stdin pipe: %w", err)
		}
	}

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("failed to start sox: %w", err)
	}

	// Stdin is written while Wait runs, so a process that stops reading
	// early cannot block the writer forever.
	var waitErr error
	var g errgroup.Group
	if stdinPipe != nil {
		g.Go(func() error {
			defer stdinPipe.Close()
			_, err := stdinPipe.Write(stdin)
			if errors.Is(err, syscall.EPIPE) || errors.Is(err, os.ErrClosed) {
				// sox exited before reading everything; its status says why
				return nil
			}
			return err
		})
	}
	g.Go(func() error {
		waitErr = cmd.Wait()
		return nil
	})
	writeErr := g.Wait()

	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	switch {
	case errors.As(waitErr, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	case waitErr != nil:
		return res, fmt.Errorf("sox did not complete: %w", waitErr)
	case writeErr != nil:
		return res, fmt.Errorf("failed to write sox input: %w", writeErr)
	}

	return res, nil
}

// processError builds the failure for one run. A done context is always part
// of the cause, so callers can tell a timeout from a sox error.
func processError(ctx context.Context, argv []string, res Result, err error) *ProcessError {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		if err == nil {
			err = ctxErr
		} else {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
	}
	return &ProcessError{Args: argv, Stderr: string(res.Stderr), ExitCode: res.ExitCode, Err: err}
}

// CheckSoxInstalled verifies that SoX is installed and accessible
func CheckSoxInstalled(soxPath string) error {
	if soxPath == "" {
		soxPath = "sox"
	}

	cmd := exec.Command(soxPath, "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("sox not found or not executable: %w", err)
	}

	return nil
}

// Info is what sox --i reports about an audio file.
type Info struct {
	Channels   int
	SampleRate int
}

// Probe queries the channel count and sample rate of the file at path.
func Probe(ctx context.Context, r Runner, soxPath, path string) (Info, error) {
	channels, err := ProbeChannels(ctx, r, soxPath, path)
	if err != nil {
		return Info{}, err
	}

	rate, err := ProbeSampleRate(ctx, r, soxPath, path)
	if err != nil {
		return Info{}, err
	}

	return Info{Channels: channels, SampleRate: rate}, nil
}

// ProbeChannels runs sox --i -c on path.
func ProbeChannels(ctx context.Context, r Runner, soxPath, path string) (int, error) {
	argv, out, err := probe(ctx, r, soxPath, "-c", path)
	if err != nil {
		return 0, err
	}

	channels, err := strconv.Atoi(out)
	if err != nil || channels <= 0 {
		return 0, badProbeOutput(argv, out)
	}
	return channels, nil
}

// ProbeSampleRate runs sox --i -r on path. Fractional rates are rounded.
func ProbeSampleRate(ctx context.Context, r Runner, soxPath, path string) (int, error) {
	argv, out, err := probe(ctx, r, soxPath, "-r", path)
	if err != nil {
		return 0, err
	}

	rate, err := strconv.ParseFloat(out, 64)
	if err != nil || rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
		return 0, badProbeOutput(argv, out)
	}
	return int(math.Round(rate)), nil
}

// probe runs one info query and returns its trimmed stdout. Diagnostic
// output is ignored here; only the exit status and stdout matter.
func probe(ctx context.Context, r Runner, soxPath, flag, path string) ([]string, string, error) {
	if soxPath == "" {
		soxPath = "sox"
	}
	argv := []string{soxPath, "--i", flag, path}

	res, err := r.Run(ctx, argv, nil)
	if err != nil || res.ExitCode != 0 {
		return argv, "", processError(ctx, argv, res, err)
	}

	return argv, strings.TrimSpace(string(res.Stdout)), nil
}

func badProbeOutput(argv []string, out string) *ProcessError {
	return &ProcessError{Args: argv, Err: fmt.Errorf("unexpected probe output %q", out)}
}
