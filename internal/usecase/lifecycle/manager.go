// Package lifecycle manages collection provisioning at startup. The service
// starts serving immediately; until provisioning succeeds, search requests are
// rejected as not ready rather than crashing the process.
package lifecycle

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Provisioner creates the collection schema.
type Provisioner interface {
	Ping(ctx context.Context) error
	Ensure(ctx context.Context) error
}

// Manager tracks whether the movie collection is provisioned and usable.
type Manager struct {
	provisioner Provisioner
	maxAttempts int
	retryDelay  time.Duration
	logger      *zap.Logger

	ready atomic.Bool

	// sleep is swappable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewManager creates a lifecycle manager.
func NewManager(p Provisioner, maxAttempts int, retryDelay time.Duration, logger *zap.Logger) *Manager {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}
	return &Manager{
		provisioner: p,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		logger:      logger,
		sleep:       sleepCtx,
	}
}

// Ready reports whether the collection is provisioned.
func (m *Manager) Ready() bool {
	return m.ready.Load()
}

// EnsureReady provisions the collection, retrying on a fixed cadence. It is
// idempotent: once ready, subsequent calls return immediately. Exhausting the
// attempts leaves the service degraded, not dead, so it returns nil either
// way; only context cancellation surfaces.
func (m *Manager) EnsureReady(ctx context.Context) error {
	if m.ready.Load() {
		return nil
	}

	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		err := m.provision(ctx)
		if err == nil {
			m.ready.Store(true)
			m.logger.Info("Collection ready", zap.Int("attempt", attempt))
			return nil
		}

		m.logger.Warn("Collection provisioning failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", m.maxAttempts),
			zap.Error(err))

		if attempt == m.maxAttempts {
			break
		}
		if err := m.sleep(ctx, m.retryDelay); err != nil {
			return err
		}
	}

	m.logger.Error("Collection provisioning exhausted retries, serving degraded",
		zap.Int("attempts", m.maxAttempts))
	return nil
}

func (m *Manager) provision(ctx context.Context) error {
	if err := m.provisioner.Ping(ctx); err != nil {
		return err
	}
	return m.provisioner.Ensure(ctx)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
