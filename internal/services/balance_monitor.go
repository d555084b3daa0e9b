package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	applog "fintrack/internal/log"
)

// DefaultCheckInterval matches the period of the background balance check.
const DefaultCheckInterval = 15 * time.Minute

// BalanceMonitor runs a BalanceChecker on a fixed interval.
type BalanceMonitor struct {
	checker  *BalanceChecker
	interval time.Duration
	logger   *applog.Logger

	// Lifecycle management
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewBalanceMonitor(checker *BalanceChecker, interval time.Duration, logger *applog.Logger) *BalanceMonitor {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	if logger == nil {
		logger = applog.FromSlog(nil, applog.ComponentWorker)
	}
	return &BalanceMonitor{
		checker:  checker,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the check loop. Returns an error if already running.
func (m *BalanceMonitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return fmt.Errorf("balance monitor is already running")
	}
	m.running = true
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	stopCh, doneCh := m.stopCh, m.doneCh
	m.mu.Unlock()

	go m.runLoop(ctx, stopCh, doneCh)

	m.logger.InfoContext(ctx, "Balance monitor started", "interval", m.interval)
	return nil
}

// Stop signals the loop and waits for it to finish or for ctx to expire.
func (m *BalanceMonitor) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	stopCh, doneCh := m.stopCh, m.doneCh
	m.running = false
	m.mu.Unlock()

	close(stopCh)

	select {
	case <-doneCh:
		m.logger.InfoContext(ctx, "Balance monitor stopped gracefully")
		return nil
	case <-ctx.Done():
		m.logger.WarnContext(ctx, "Balance monitor stop timed out")
		return ctx.Err()
	}
}

// Done is closed when the current loop exits. It is nil before Start.
func (m *BalanceMonitor) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doneCh
}

func (m *BalanceMonitor) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *BalanceMonitor) runLoop(ctx context.Context, stopCh <-chan struct{}, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// Check immediately on startup
	m.checkOnce(ctx)

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.checkOnce(ctx)
		}
	}
}

func (m *BalanceMonitor) checkOnce(ctx context.Context) {
	status, err := m.checker.Check(ctx)
	if err != nil {
		m.logger.ErrorContext(ctx, "Balance check failed",
			applog.FieldOperation, applog.OpCheck,
			applog.FieldError, err)
		return
	}
	if status.Notified {
		m.logger.InfoContext(ctx, "Low balance alert sent",
			applog.FieldBalance, status.Balance.String(),
			applog.FieldThreshold, status.Threshold.String())
	}
}
