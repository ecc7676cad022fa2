package soxfx

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidParameter is recorded when an effect receives a parameter
	// combination sox would reject, such as mutually exclusive options.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrProcessFailure marks every failure of the sox process itself.
	ErrProcessFailure = errors.New("sox process failed")

	// ErrFormatMismatch is returned when decoded output does not split evenly
	// into samples and channels.
	ErrFormatMismatch = errors.New("output does not match the expected sample layout")

	ErrInvalidFormat = errors.New("invalid audio format")
)

// ProcessError describes a sox invocation that could not be started, exited
// with a non-zero status or wrote anything to its diagnostic stream.
type ProcessError struct {
	Args     []string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *ProcessError) Error() string {
	var b strings.Builder
	b.WriteString(ErrProcessFailure.Error())
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.ExitCode != 0 {
		fmt.Fprintf(&b, " (exit status %d)", e.ExitCode)
	}
	fmt.Fprintf(&b, "\ncommand: %s", strings.Join(e.Args, " "))
	if e.Stderr != "" {
		fmt.Fprintf(&b, "\nstderr: %s", e.Stderr)
	}
	return b.String()
}

// Unwrap exposes both ErrProcessFailure and the underlying cause.
func (e *ProcessError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrProcessFailure}
	}
	return []error{ErrProcessFailure, e.Err}
}

func invalidParameter(effect, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", effect, ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func unsupportedEffect(effect string) error {
	return fmt.Errorf("%s: %w", effect, errors.ErrUnsupported)
}
