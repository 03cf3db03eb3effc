package database

import (
	"context"
	"database/sql"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
)

// PoolStats is a snapshot of the connection pool
type PoolStats struct {
	OpenConnections    int
	IdleConnections    int
	MaxOpenConnections int
	InUse              int
	WaitCount          int64
	WaitDuration       time.Duration
}

// statsSource is satisfied by *sql.DB
type statsSource interface {
	Stats() sql.DBStats
}

// PoolMonitor samples pool statistics and warns when the pool runs dry
type PoolMonitor struct {
	source statsSource
	logger coreport.Logger

	mu      sync.RWMutex
	last    PoolStats
	started bool
	stop    chan struct{}
	done    chan struct{}
	closed  sync.Once
}

// NewPoolMonitor creates a monitor for the given pool
func NewPoolMonitor(source statsSource, logger coreport.Logger) *PoolMonitor {
	return &PoolMonitor{
		source: source,
		logger: logger,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start samples once and then every interval until Stop or ctx ends
func (m *PoolMonitor) Start(ctx context.Context, interval time.Duration) {
	m.collect()
	m.mu.Lock()
	m.started = true
	m.mu.Unlock()

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.collect()
			case <-m.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends sampling and waits for the goroutine
func (m *PoolMonitor) Stop() {
	m.closed.Do(func() {
		close(m.stop)
		m.mu.RLock()
		started := m.started
		m.mu.RUnlock()
		if started {
			<-m.done
		}
	})
}

// Stats returns the latest snapshot
func (m *PoolMonitor) Stats() PoolStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

func (m *PoolMonitor) collect() PoolStats {
	s := m.source.Stats()
	stats := PoolStats{
		OpenConnections:    s.OpenConnections,
		IdleConnections:    s.Idle,
		MaxOpenConnections: s.MaxOpenConnections,
		InUse:              s.InUse,
		WaitCount:          s.WaitCount,
		WaitDuration:       s.WaitDuration,
	}

	m.mu.Lock()
	m.last = stats
	m.mu.Unlock()

	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > 0.8*float64(stats.MaxOpenConnections) {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.IdleConnections,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}
	return stats
}
