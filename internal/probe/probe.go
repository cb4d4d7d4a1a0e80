package probe

import (
	"context"

	"github.com/manybotts/PingerB/internal/domain"
)

// Checker performs a single liveness check for a target URL. Every failure
// mode (timeout, connection error, DNS failure, error status) is captured
// in the result; Check never returns an error.
type Checker interface {
	Check(ctx context.Context, url string) domain.CheckResult
}
