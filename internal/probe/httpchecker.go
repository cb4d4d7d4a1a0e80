package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/manybotts/PingerB/internal/domain"
)

const DefaultTimeout = 10 * time.Second

type HTTPChecker struct {
	Client *http.Client
}

func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPChecker{
		Client: &http.Client{Timeout: timeout},
	}
}

func (h *HTTPChecker) Check(ctx context.Context, url string) domain.CheckResult {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.CheckResult{URL: url, Up: false, Reason: err.Error()}
	}

	resp, err := h.Client.Do(req)
	latency := time.Since(start).Seconds() * 1000 // ms
	if err != nil {
		return domain.CheckResult{URL: url, Up: false, LatencyMS: latency, Reason: err.Error()}
	}
	defer resp.Body.Close()

	// A 4xx/5xx counts as down, same as a transport failure.
	if resp.StatusCode >= 400 {
		return domain.CheckResult{
			URL:        url,
			Up:         false,
			StatusCode: resp.StatusCode,
			LatencyMS:  latency,
			Reason:     resp.Status,
		}
	}
	return domain.CheckResult{
		URL:        url,
		Up:         true,
		StatusCode: resp.StatusCode,
		LatencyMS:  latency,
	}
}
