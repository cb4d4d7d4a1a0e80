package notify

import (
	"context"

	"go.uber.org/multierr"
)

// Notifier delivers one line of text to one destination, best effort.
// Callers log failures; nothing here retries.
type Notifier interface {
	Send(ctx context.Context, destination, text string) error
}

type Multi []Notifier

func (m Multi) Send(ctx context.Context, destination, text string) error {
	var errs error
	for _, n := range m {
		if n == nil {
			continue
		}
		errs = multierr.Append(errs, n.Send(ctx, destination, text))
	}
	return errs
}
