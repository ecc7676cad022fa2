package soxfx

import (
	"slices"
	"strconv"
	"strings"
)

// Chain accumulates sox effects in the order they are applied.
//
// Effect methods return the receiver so calls can be chained. A rejected
// parameter combination is recorded at the call site and reported by Err;
// once an error is recorded further effect calls are ignored and every
// invocation fails with that error before sox is started.
//
// A Chain can be applied any number of times. It must not be modified while
// an invocation is in flight on another goroutine.
type Chain struct {
	tokens  []string
	err     error
	Options Options
}

// New creates an empty Chain with DefaultOptions.
func New() *Chain {
	return &Chain{Options: DefaultOptions()}
}

// WithOptions sets the options used when the chain is applied.
func (c *Chain) WithOptions(opts Options) *Chain {
	c.Options = opts
	return c
}

// Err returns the first parameter error recorded by an effect call.
func (c *Chain) Err() error {
	return c.err
}

// Tokens returns a copy of the effect arguments accumulated so far.
func (c *Chain) Tokens() []string {
	return slices.Clone(c.tokens)
}

// Clone returns an independent copy of the chain, including a recorded error.
func (c *Chain) Clone() *Chain {
	return &Chain{
		tokens:  slices.Clone(c.tokens),
		err:     c.err,
		Options: c.Options,
	}
}

func (c *Chain) String() string {
	return strings.Join(c.tokens, " ")
}

// Custom appends raw sox effect arguments, split on whitespace, for effects
// the chain does not model.
func (c *Chain) Custom(command string) *Chain {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return c.fail(invalidParameter("custom", "empty effect"))
	}
	return c.add(fields[0], fields[1:]...)
}

func (c *Chain) add(name string, params ...string) *Chain {
	if c.err != nil {
		return c
	}
	c.tokens = append(c.tokens, name)
	c.tokens = append(c.tokens, params...)
	return c
}

func (c *Chain) fail(err error) *Chain {
	if c.err == nil {
		c.err = err
	}
	return c
}

// num renders a number the way sox parses it: no exponent, no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func nums(vs ...float64) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = num(v)
	}
	return out
}

// Float returns a pointer to v, for the optional fields of SincParams.
func Float(v float64) *float64 {
	return &v
}
