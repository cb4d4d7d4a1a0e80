package repo

import (
	"context"

	"github.com/manybotts/PingerB/internal/domain"
)

// TargetStore is the persistence port; swap in any adapter that can keep a
// unique set of URLs. Uniqueness is the store's job (a constraint, not an
// in-process lock), so concurrent adds from the API path and sweeps stay
// safe without coordination here.
type TargetStore interface {
	// Add inserts a target; a duplicate URL is domain.ErrAlreadyExists.
	Add(ctx context.Context, t *domain.Target) error
	// Remove deletes by exact URL; an absent URL is domain.ErrNotFound.
	Remove(ctx context.Context, url string) error
	List(ctx context.Context) ([]domain.Target, error)
}
