package registry

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/manybotts/PingerB/internal/domain"
	"github.com/manybotts/PingerB/internal/repo"
)

// Registry owns the set of monitored URLs. It normalizes URLs before they
// reach the store and is the only state shared between the management
// transports and the sweeps.
type Registry struct {
	log   *zap.Logger
	store repo.TargetStore
}

func New(log *zap.Logger, store repo.TargetStore) *Registry {
	return &Registry{log: log, store: store}
}

// Normalize prepends https:// when the raw URL carries no http scheme.
// That is the only validation the registry performs.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "http") {
		return "https://" + raw
	}
	return raw
}

// Add stores the normalized URL and returns it. A duplicate is
// domain.ErrAlreadyExists and leaves the set unchanged.
func (r *Registry) Add(ctx context.Context, raw string) (string, error) {
	url := Normalize(raw)
	t := &domain.Target{URL: url, CreatedAt: time.Now().UTC()}
	if err := r.store.Add(ctx, t); err != nil {
		return url, err
	}
	r.log.Info("app_added", zap.String("url", url))
	return url, nil
}

// Remove deletes by exact match on the normalized URL; an absent URL is
// domain.ErrNotFound.
func (r *Registry) Remove(ctx context.Context, raw string) error {
	url := Normalize(raw)
	if err := r.store.Remove(ctx, url); err != nil {
		return err
	}
	r.log.Info("app_removed", zap.String("url", url))
	return nil
}

// List returns the current URL set. A store failure degrades to an empty
// set so a sweep proceeds with zero targets instead of aborting. Known
// risk: a store outage is indistinguishable from "no apps registered" on
// this path; callers see only the log line.
func (r *Registry) List(ctx context.Context) []string {
	ts, err := r.store.List(ctx)
	if err != nil {
		r.log.Warn("registry_list_error", zap.Error(err))
		return nil
	}
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.URL)
	}
	return out
}
