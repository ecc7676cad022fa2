package soxfx

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// meterName is the instrumentation scope for all soxfx metrics.
const meterName = "github.com/thadeu/go-soxfx"

// Monitor tracks sox invocations. Counts are kept in process for GetStats
// and exported through OpenTelemetry instruments.
type Monitor struct {
	invocations metric.Int64Counter
	failures    metric.Int64Counter
	active      metric.Int64UpDownCounter
	duration    metric.Float64Histogram

	mu                sync.RWMutex
	nextID            uint64
	activeProcesses   map[uint64]time.Time // invocation ID -> start time
	totalInvocations  int64
	failedInvocations int64
}

var (
	monitorInstance *Monitor
	monitorOnce     sync.Once
)

// durationBuckets are in seconds; short effect chains finish in
// milliseconds, long files take minutes.
var durationBuckets = []float64{
	0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
}

// GetMonitor returns the package-level monitor, bound to the global
// OpenTelemetry meter provider on first use.
func GetMonitor() *Monitor {
	monitorOnce.Do(func() {
		m, err := NewMonitor(otel.GetMeterProvider())
		if err != nil {
			m, _ = NewMonitor(noop.NewMeterProvider())
		}
		monitorInstance = m
	})
	return monitorInstance
}

// NewMonitor creates a Monitor recording into mp. Tests should use their
// own provider to avoid sharing the global one.
func NewMonitor(mp metric.MeterProvider) (*Monitor, error) {
	meter := mp.Meter(meterName)
	m := &Monitor{activeProcesses: make(map[uint64]time.Time)}

	var err error
	if m.invocations, err = meter.Int64Counter("soxfx.invocations",
		metric.WithDescription("Number of sox processes started."),
	); err != nil {
		return nil, err
	}
	if m.failures, err = meter.Int64Counter("soxfx.failures",
		metric.WithDescription("Number of sox invocations that failed."),
	); err != nil {
		return nil, err
	}
	if m.active, err = meter.Int64UpDownCounter("soxfx.active",
		metric.WithDescription("Number of sox processes currently running."),
	); err != nil {
		return nil, err
	}
	if m.duration, err = meter.Float64Histogram("soxfx.duration",
		metric.WithDescription("Wall time of a sox invocation."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// begin registers an invocation and returns the function that completes it.
func (m *Monitor) begin(ctx context.Context) func(err error) {
	start := time.Now()

	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.activeProcesses[id] = start
	m.totalInvocations++
	m.mu.Unlock()

	m.invocations.Add(ctx, 1)
	m.active.Add(ctx, 1)

	return func(err error) {
		status := "ok"
		if err != nil {
			status = "error"
		}

		m.mu.Lock()
		delete(m.activeProcesses, id)
		if err != nil {
			m.failedInvocations++
		}
		m.mu.Unlock()

		m.active.Add(ctx, -1)
		if err != nil {
			m.failures.Add(ctx, 1)
		}
		m.duration.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("status", status)))
	}
}

// ActiveProcesses returns the number of currently running sox processes
func (m *Monitor) ActiveProcesses() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.activeProcesses)
}

// TotalInvocations returns the number of invocations attempted
func (m *Monitor) TotalInvocations() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalInvocations
}

// FailedInvocations returns the number of failed invocations
func (m *Monitor) FailedInvocations() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.failedInvocations
}

// SuccessRate returns the success rate as a percentage
func (m *Monitor) SuccessRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.successRateLocked()
}

func (m *Monitor) successRateLocked() float64 {
	if m.totalInvocations == 0 {
		return 100.0
	}
	successful := m.totalInvocations - m.failedInvocations
	return float64(successful) / float64(m.totalInvocations) * 100.0
}

// OldestProcess returns the age of the oldest running process
func (m *Monitor) OldestProcess() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.oldestLocked()
}

func (m *Monitor) oldestLocked() time.Duration {
	if len(m.activeProcesses) == 0 {
		return 0
	}

	oldest := time.Now()
	for _, startTime := range m.activeProcesses {
		if startTime.Before(oldest) {
			oldest = startTime
		}
	}

	return time.Since(oldest)
}

// MonitorStats is a snapshot of a Monitor.
type MonitorStats struct {
	ActiveProcesses   int
	TotalInvocations  int64
	FailedInvocations int64
	SuccessRate       float64
	OldestProcessAge  time.Duration
}

// GetStats returns current monitoring statistics
func (m *Monitor) GetStats() MonitorStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MonitorStats{
		ActiveProcesses:   len(m.activeProcesses),
		TotalInvocations:  m.totalInvocations,
		FailedInvocations: m.failedInvocations,
		SuccessRate:       m.successRateLocked(),
		OldestProcessAge:  m.oldestLocked(),
	}
}

// Reset clears the in-process statistics. Exported metrics are cumulative
// and are not affected.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.activeProcesses = make(map[uint64]time.Time)
	m.totalInvocations = 0
	m.failedInvocations = 0
}
