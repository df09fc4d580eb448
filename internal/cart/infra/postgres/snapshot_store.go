package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasoma/sokocart/internal/cart/app"
	"github.com/kasoma/sokocart/internal/cart/domain"
)

// SnapshotStore keeps the serialized cart item list in a single row of the
// cart_snapshots table, upserted by cart key:
//
//	CREATE TABLE cart_snapshots (
//	    cart_key   text PRIMARY KEY,
//	    items      jsonb NOT NULL,
//	    updated_at timestamptz NOT NULL DEFAULT now()
//	);
type SnapshotStore struct {
	db  *pgxpool.Pool
	key string
}

func NewSnapshotStore(db *pgxpool.Pool, key string) *SnapshotStore {
	return &SnapshotStore{db: db, key: key}
}

// Connect builds a pgx pool from a database URL with settings sized for a
// session-scoped cart store.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns = 4
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func (s *SnapshotStore) Load(ctx context.Context) ([]domain.SnapshotItem, error) {
	var raw []byte
	err := s.db.QueryRow(ctx,
		`SELECT items FROM cart_snapshots WHERE cart_key = $1`,
		s.key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, app.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load cart snapshot: %w", err)
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

	_, err = s.db.Exec(ctx, `
		INSERT INTO cart_snapshots (cart_key, items, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (cart_key)
		DO UPDATE SET items = EXCLUDED.items, updated_at = now()
	`, s.key, raw)
	if err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotStore) Delete(ctx context.Context) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM cart_snapshots WHERE cart_key = $1`, s.key)
	if err != nil {
		return fmt.Errorf("delete cart snapshot: %w", err)
	}
	return nil
}
