package app

import (
	"context"
	"errors"

	"github.com/kasoma/sokocart/internal/cart/domain"
)

// ErrNoSnapshot is returned by Load when nothing is stored under the cart
// key. Callers treat it as an empty cart, not a failure.
var ErrNoSnapshot = errors.New("no cart snapshot")

// SnapshotStore is the durable key/value home of the serialized cart item
// list. One key per store instance; implementations live in infra.
type SnapshotStore interface {
	Load(ctx context.Context) ([]domain.SnapshotItem, error)
	Save(ctx context.Context, items []domain.SnapshotItem) error
	Delete(ctx context.Context) error
}
