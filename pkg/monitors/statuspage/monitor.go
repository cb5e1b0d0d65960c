package statuspage

import (
	"context"
	"sync"
	"time"

	"github.com/redhat-appstudio/statuspage-mirror/pkg/logger"
)

// Monitor runs incident checks periodically.
// It performs a check as soon as it starts, then one per interval, until stopped.
type Monitor struct {
	incidents *Incidents
	interval  time.Duration
	ctx       context.Context
	cancel    context.CancelFunc

	mu   sync.Mutex
	done chan struct{}
}

// NewMonitor creates a monitor around an incidents reconciler.
// A non-positive interval falls back to DefaultCheckInterval.
// Returns nil if incidents is nil.
func NewMonitor(incidents *Incidents, interval time.Duration) *Monitor {
	if incidents == nil {
		logger.Warnf(" %s (incidents)", ErrMissingConfig)
		return nil
	}

	if interval <= 0 {
		interval = DefaultCheckInterval
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Monitor{
		incidents: incidents,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start begins incident monitoring.
// It runs an initial check immediately, then continues checking at the configured interval.
// This method blocks until the monitor is stopped.
func (m *Monitor) Start() {
	if m == nil || m.incidents == nil || m.ctx == nil {
		return
	}

	m.mu.Lock()
	if m.ctx.Err() != nil {
		m.mu.Unlock()
		return
	}
	done := make(chan struct{})
	m.done = done
	m.mu.Unlock()
	defer close(done)

	logger.Infof("Starting status page incident monitoring - interval: %v", m.interval)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// Run initial check
	if err := m.incidents.Check(m.ctx); err != nil {
		logger.Errorf("Incident check failed: %v", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := m.incidents.Check(m.ctx); err != nil {
				logger.Errorf("Incident check failed: %v", err)
			}
		case <-m.ctx.Done():
			logger.Infof("Status page incident monitoring stopped")
			return
		}
	}
}

// Stop cancels monitoring and waits for the loop and any dispatched
// reconciliation to finish. In-flight reconciliations run to completion or
// until their own timeout.
func (m *Monitor) Stop() {
	if m == nil || m.cancel == nil {
		return
	}

	m.cancel()

	m.mu.Lock()
	done := m.done
	m.mu.Unlock()

	if done != nil {
		<-done
	}
	if m.incidents != nil {
		m.incidents.Wait()
	}
}
