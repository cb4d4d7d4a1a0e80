package domain

import "time"

// SubscriberID identifies the owner of a schedule. Chat transports use the
// stringified chat id; the API process uses a fixed operator id.
type SubscriberID string

// Target is a monitored URL. The normalized URL is the key; there is no
// separate identity field.
type Target struct {
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// CheckResult is the outcome of probing one target once. It lives for one
// sweep and is never persisted.
type CheckResult struct {
	URL        string  `json:"url"`
	Up         bool    `json:"up"`
	StatusCode int     `json:"status_code,omitempty"` // 0 when no response was received
	LatencyMS  float64 `json:"latency_ms"`
	Reason     string  `json:"reason,omitempty"`
}
