package soxfx

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
)

// DefaultMaxWorkers bounds concurrent sox processes when SOX_MAX_WORKERS is
// not set.
const DefaultMaxWorkers = 500

// Pool limits the number of sox processes running at once when several
// goroutines apply chains concurrently.
type Pool struct {
	maxWorkers int
	semaphore  chan struct{}
	active     int
	mu         sync.Mutex
}

// NewPool creates a pool sized from the SOX_MAX_WORKERS environment variable,
// falling back to DefaultMaxWorkers.
func NewPool() *Pool {
	maxWorkers := DefaultMaxWorkers

	if envMax := os.Getenv("SOX_MAX_WORKERS"); envMax != "" {
		if parsed, err := strconv.Atoi(envMax); err == nil && parsed > 0 {
			maxWorkers = parsed
		}
	}

	return NewPoolWithLimit(maxWorkers)
}

// NewPoolWithLimit creates a pool with specific max workers
func NewPoolWithLimit(maxWorkers int) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}

	return &Pool{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
	}
}

// Acquire blocks until a worker slot is available
func (p *Pool) Acquire(ctx context.Context) error {
	select {
	case p.semaphore <- struct{}{}:
		p.mu.Lock()
		p.active++
		p.mu.Unlock()
		return nil
	case <-ctx.Done():
		return fmt.Errorf("pool acquire cancelled: %w", ctx.Err())
	}
}

// Release frees a worker slot
func (p *Pool) Release() {
	p.mu.Lock()
	p.active--
	p.mu.Unlock()
	<-p.semaphore
}

// ActiveWorkers returns the number of processes holding a slot
func (p *Pool) ActiveWorkers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// MaxWorkers returns the maximum concurrent processes allowed
func (p *Pool) MaxWorkers() int {
	return p.maxWorkers
}

// AvailableSlots returns the number of available worker slots
func (p *Pool) AvailableSlots() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxWorkers - p.active
}

// Runner wraps r so every run holds a pool slot for its whole duration.
func (p *Pool) Runner(r Runner) Runner {
	if r == nil {
		r = ExecRunner{}
	}
	return &pooledRunner{runner: r, pool: p}
}

type pooledRunner struct {
	runner Runner
	pool   *Pool
}

func (pr *pooledRunner) Run(ctx context.Context, argv []string, stdin []byte) (Result, error) {
	if err := pr.pool.Acquire(ctx); err != nil {
		return Result{}, fmt.Errorf("failed to acquire worker slot: %w", err)
	}
	defer pr.pool.Release()

	return pr.runner.Run(ctx, argv, stdin)
}
