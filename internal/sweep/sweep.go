// Package sweep runs one pass of probing every registered target.
package sweep

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/manybotts/PingerB/internal/domain"
	"github.com/manybotts/PingerB/internal/probe"
)

// Executor fans a probe out over a list of URLs. Fan-out is unbounded: one
// goroutine per target, each bounded only by the probe timeout, so a
// hanging target cannot stall its siblings.
type Executor struct {
	Logger  *zap.Logger
	Checker probe.Checker
	Timeout time.Duration
}

func NewExecutor(logger *zap.Logger, checker probe.Checker, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = probe.DefaultTimeout
	}
	return &Executor{Logger: logger, Checker: checker, Timeout: timeout}
}

// Run probes every URL concurrently and returns one result per input, in
// completion order. A failed probe is a result, never an error; Run itself
// cannot fail.
func (e *Executor) Run(ctx context.Context, urls []string) []domain.CheckResult {
	if len(urls) == 0 {
		return nil
	}

	results := make(chan domain.CheckResult, len(urls))
	var wg sync.WaitGroup

	for _, url := range urls {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, e.Timeout)
			defer cancel()
			results <- e.Checker.Check(cctx, url)
		}(url)
	}
	wg.Wait()
	close(results)

	out := make([]domain.CheckResult, 0, len(urls))
	for r := range results {
		out = append(out, r)
		e.Logger.Debug("probe_done",
			zap.String("url", r.URL),
			zap.Bool("up", r.Up),
			zap.Int("status", r.StatusCode),
			zap.Float64("latency_ms", r.LatencyMS),
			zap.String("reason", r.Reason),
		)
	}
	return out
}
