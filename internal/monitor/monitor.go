// Package monitor polls the backend health endpoint and exposes a tri-state
// availability status to the rest of the client.
package monitor

import (
	"context"
	"sync"
	"time"
)

// Status reflects backend reachability.
type Status int

const (
	StatusChecking Status = iota
	StatusOnline
	StatusOffline
)

func (s Status) String() string {
	switch s {
	case StatusOnline:
		return "online"
	case StatusOffline:
		return "offline"
	default:
		return "checking"
	}
}

// Pinger is the slice of the backend client the monitor needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor owns the poll loop. It is the only writer of the status value;
// any number of goroutines may read it.
type Monitor struct {
	pinger   Pinger
	interval time.Duration
	timeout  time.Duration

	mu       sync.RWMutex
	status   Status
	checking bool

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a monitor. interval is the poll cadence, timeout bounds each
// individual health check.
func New(pinger Pinger, interval, timeout time.Duration) *Monitor {
	return &Monitor{
		pinger:   pinger,
		interval: interval,
		timeout:  timeout,
		status:   StatusChecking,
		stop:     make(chan struct{}),
	}
}

// Start runs an immediate check and then polls on the configured interval
// until Stop is called or ctx is canceled. The ticker is always released.
func (m *Monitor) Start(ctx context.Context) {
	go func() {
		m.check(ctx)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.check(ctx)
			case <-m.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop tears down the poll loop. Safe to call more than once.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// Status returns the most recently observed backend status.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Checking reports whether a manually triggered check is still in flight.
func (m *Monitor) Checking() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.checking
}

// Retry runs a health check immediately, outside the regular cadence.
// Overlapping checks are tolerated; the last completion wins.
func (m *Monitor) Retry(ctx context.Context) Status {
	m.mu.Lock()
	m.checking = true
	m.mu.Unlock()

	m.check(ctx)

	m.mu.Lock()
	m.checking = false
	status := m.status
	m.mu.Unlock()
	return status
}

func (m *Monitor) check(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	status := StatusOnline
	if err := m.pinger.Ping(checkCtx); err != nil {
		status = StatusOffline
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}
