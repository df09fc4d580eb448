package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kasoma/sokocart/internal/cart/app"
	"github.com/kasoma/sokocart/internal/cart/domain"
)

// SnapshotStore keeps the serialized cart item list under a single redis
// key. A malformed value reads as "no snapshot" so a bad write can never
// wedge the cart.
type SnapshotStore struct {
	rdb *goredis.Client
	key string
}

func NewSnapshotStore(addr, key string) *SnapshotStore {
	rdb := goredis.NewClient(&goredis.Options{
		Addr: addr,
	})
	return &SnapshotStore{rdb: rdb, key: key}
}

// NewSnapshotStoreWithClient wires an existing client, for callers that
// share one connection pool across stores.
func NewSnapshotStoreWithClient(rdb *goredis.Client, key string) *SnapshotStore {
	return &SnapshotStore{rdb: rdb, key: key}
}

func (s *SnapshotStore) Load(ctx context.Context) ([]domain.SnapshotItem, error) {
	raw, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, app.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}

	var items []domain.SnapshotItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, app.ErrNoSnapshot
	}
	return items, nil
}

func (s *SnapshotStore) Save(ctx context.Context, items []domain.SnapshotItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}

	if err := s.rdb.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *SnapshotStore) Delete(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", s.key, err)
	}
	return nil
}

func (s *SnapshotStore) Close() error {
	return s.rdb.Close()
}
