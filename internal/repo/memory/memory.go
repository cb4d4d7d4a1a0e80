package memory

import (
	"context"
	"sync"
	"time"

	"github.com/manybotts/PingerB/internal/domain"
	"github.com/manybotts/PingerB/internal/repo"
)

var _ repo.TargetStore = (*Store)(nil)

type Store struct {
	mu      sync.RWMutex
	targets map[string]*domain.Target // keyed by URL
}

func New() *Store {
	return &Store{targets: make(map[string]*domain.Target)}
}

func (m *Store) Add(ctx context.Context, t *domain.Target) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.targets[t.URL]; ok {
		return domain.ErrAlreadyExists
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	cp := *t
	m.targets[t.URL] = &cp
	return nil
}

func (m *Store) Remove(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.targets[url]; !ok {
		return domain.ErrNotFound
	}
	delete(m.targets, url)
	return nil
}

func (m *Store) List(ctx context.Context) ([]domain.Target, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Target, 0, len(m.targets))
	for _, t := range m.targets {
		out = append(out, *t)
	}
	return out, nil
}
