package memory

import (
	"context"
	"sync"

	"github.com/kasoma/sokocart/internal/cart/app"
	"github.com/kasoma/sokocart/internal/cart/domain"
)

// SnapshotStore keeps the snapshot in process memory. It gives a session
// with no durable backend the same store semantics, and loses the cart at
// process exit.
type SnapshotStore struct {
	mu    sync.Mutex
	items []domain.SnapshotItem
	set   bool
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) Load(_ context.Context) ([]domain.SnapshotItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.set {
		return nil, app.ErrNoSnapshot
	}
	out := make([]domain.SnapshotItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *SnapshotStore) Save(_ context.Context, items []domain.SnapshotItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]domain.SnapshotItem, len(items))
	copy(s.items, items)
	s.set = true
	return nil
}

func (s *SnapshotStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.set = false
	return nil
}
