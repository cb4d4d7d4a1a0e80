// Package scheduler owns the periodic liveness sweeps: one replaceable
// timer per subscriber plus the always-on default sweep.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/manybotts/PingerB/internal/domain"
	"github.com/manybotts/PingerB/internal/notify"
	"github.com/manybotts/PingerB/internal/registry"
	"github.com/manybotts/PingerB/internal/sweep"
)

type Manager struct {
	log      *zap.Logger
	reg      *registry.Registry
	exec     *sweep.Executor
	notifier notify.Notifier

	mu        sync.Mutex
	schedules map[domain.SubscriberID]*schedule
}

// schedule is one live per-subscriber timer. done is closed by the loop
// goroutine on exit, which is what makes cancellation synchronous.
type schedule struct {
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewManager(log *zap.Logger, reg *registry.Registry, exec *sweep.Executor, notifier notify.Notifier) *Manager {
	return &Manager{
		log:       log,
		reg:       reg,
		exec:      exec,
		notifier:  notifier,
		schedules: make(map[domain.SubscriberID]*schedule),
	}
}

// Schedule installs a periodic sweep for the subscriber, replacing any
// existing one. The previous timer is cancelled and joined before the new
// one starts, so two timers for the same subscriber never run
// concurrently, not even transiently.
func (m *Manager) Schedule(sub domain.SubscriberID, interval time.Duration) error {
	if interval <= 0 {
		return domain.ErrInvalidInterval
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.schedules[sub]; ok {
		old.cancel()
		<-old.done
		m.log.Info("schedule_replaced",
			zap.String("subscriber", string(sub)),
			zap.Duration("old_interval", old.interval),
			zap.Duration("interval", interval),
		)
	} else {
		m.log.Info("schedule_installed",
			zap.String("subscriber", string(sub)),
			zap.Duration("interval", interval),
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &schedule{interval: interval, cancel: cancel, done: make(chan struct{})}
	m.schedules[sub] = s
	go m.run(ctx, sub, s)
	return nil
}

// Cancel stops the subscriber's schedule and waits until its loop has
// fully exited.
func (m *Manager) Cancel(sub domain.SubscriberID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.schedules[sub]
	if !ok {
		return domain.ErrNotFound
	}
	s.cancel()
	<-s.done
	delete(m.schedules, sub)
	m.log.Info("schedule_cancelled", zap.String("subscriber", string(sub)))
	return nil
}

// Shutdown cancels and joins every active schedule.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for sub, s := range m.schedules {
		s.cancel()
		<-s.done
		delete(m.schedules, sub)
	}
	m.log.Info("scheduler_shutdown")
}

// Active reports whether the subscriber currently has a schedule, and its
// interval when it does.
func (m *Manager) Active(sub domain.SubscriberID) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.schedules[sub]
	if !ok {
		return 0, false
	}
	return s.interval, true
}

// run is one subscriber's tick loop: sweep immediately, then sleep the
// full interval after each tick, so the effective period is interval plus
// the tick's own duration. A failed tick never ends the loop.
func (m *Manager) run(ctx context.Context, sub domain.SubscriberID, s *schedule) {
	defer close(s.done)

	m.tick(ctx, sub)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			m.log.Info("schedule_stopped", zap.String("subscriber", string(sub)))
			return
		case <-timer.C:
			m.tick(ctx, sub)
			timer.Reset(s.interval)
		}
	}
}

func (m *Manager) tick(ctx context.Context, sub domain.SubscriberID) {
	urls := m.reg.List(ctx)
	results := m.exec.Run(ctx, urls)
	for _, r := range results {
		if err := m.notifier.Send(ctx, string(sub), FormatResult(r)); err != nil {
			m.log.Warn("delivery_error",
				zap.String("subscriber", string(sub)),
				zap.String("url", r.URL),
				zap.Error(err),
			)
		}
	}
	m.log.Info("sweep_done",
		zap.String("subscriber", string(sub)),
		zap.Int("targets", len(urls)),
	)
}

// RunDefault is the unconditional background sweep: fixed interval, no
// subscriber, results logged only. It blocks until ctx is done and is not
// reachable through Schedule or Cancel.
func (m *Manager) RunDefault(ctx context.Context, interval time.Duration) {
	m.log.Info("default_sweep_started", zap.Duration("interval", interval))

	m.defaultTick(ctx)

	timer := time.NewTimer(interval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			m.log.Info("default_sweep_stopped")
			return
		case <-timer.C:
			m.defaultTick(ctx)
			timer.Reset(interval)
		}
	}
}

func (m *Manager) defaultTick(ctx context.Context) {
	urls := m.reg.List(ctx)
	for _, r := range m.exec.Run(ctx, urls) {
		if r.Up {
			m.log.Info("pinged",
				zap.String("url", r.URL),
				zap.Int("status", r.StatusCode),
				zap.Float64("latency_ms", r.LatencyMS),
			)
		} else {
			m.log.Warn("ping_failed",
				zap.String("url", r.URL),
				zap.String("reason", r.Reason),
			)
		}
	}
}

// FormatResult renders one notification line: an UP line with the status
// code or a DOWN line with the reason.
func FormatResult(r domain.CheckResult) string {
	if r.Up {
		return fmt.Sprintf("UP %s (%d)", r.URL, r.StatusCode)
	}
	if r.Reason != "" {
		return fmt.Sprintf("DOWN %s: %s", r.URL, r.Reason)
	}
	return fmt.Sprintf("DOWN %s", r.URL)
}
