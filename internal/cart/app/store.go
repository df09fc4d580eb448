package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/kasoma/sokocart/internal/cart/domain"
)

const persistTimeout = 5 * time.Second

// Store owns the authoritative in-memory cart for the session. Mutations
// recompute the derived totals before releasing the lock, so observers
// never see an item list and totals that disagree. Persistence is best
// effort: saves run on their own goroutine and failures are logged, never
// surfaced.
type Store struct {
	mu    sync.Mutex
	state domain.CartState
	gen   uint64

	snaps SnapshotStore
	log   *slog.Logger

	// persistMu serializes snapshot writes so the backend never sees
	// two in flight at once; persistedGen tracks the newest snapshot
	// that reached it.
	persistMu    sync.Mutex
	persistedGen uint64
	pending      sync.WaitGroup
}

// NewStore builds a store and installs the persisted snapshot if one
// exists. A missing or unreadable snapshot starts the store empty; that is
// the "no cart found" case, not an error.
func NewStore(ctx context.Context, snaps SnapshotStore, log *slog.Logger) *Store {
	s := &Store{snaps: snaps, log: log}

	items, err := snaps.Load(ctx)
	switch {
	case err == nil:
		s.state = domain.FromSnapshot(items)
	case errors.Is(err, ErrNoSnapshot):
		// start empty
	default:
		log.Warn("cart snapshot load failed, starting empty", slog.Any("err", err))
	}

	return s
}

// AddItem increments the quantity of an existing line for the product, or
// appends a new one. Quantities below 1 are treated as 1. Stock ceilings
// are not enforced here.
func (s *Store) AddItem(product domain.Product, quantity int32, seller domain.Seller) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	if i := s.state.IndexOf(product.ID); i >= 0 {
		s.state.Items[i].Quantity += quantity
	} else {
		s.state.Items = append(s.state.Items, domain.CartItem{
			Product:  product,
			Quantity: quantity,
			Seller:   seller,
		})
	}
	s.state.Recompute()
	s.gen++
	gen, snap := s.gen, s.state.Snapshot()
	s.mu.Unlock()

	s.persistAsync(gen, snap)
}

// RemoveItem drops the line holding productID. Removing an absent product
// is a no-op.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	i := s.state.IndexOf(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.state.Items = append(s.state.Items[:i], s.state.Items[i+1:]...)
	s.state.Recompute()
	s.gen++
	gen, snap := s.gen, s.state.Snapshot()
	s.mu.Unlock()

	s.persistAsync(gen, snap)
}

// UpdateQuantity replaces the quantity for productID in place. A quantity
// of zero or less removes the line.
func (s *Store) UpdateQuantity(productID string, quantity int32) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}

	s.mu.Lock()
	i := s.state.IndexOf(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.state.Items[i].Quantity = quantity
	s.state.Recompute()
	s.gen++
	gen, snap := s.gen, s.state.Snapshot()
	s.mu.Unlock()

	s.persistAsync(gen, snap)
}

// Clear resets the cart and deletes the persisted snapshot. The in-memory
// reset happens regardless of whether the delete succeeds.
func (s *Store) Clear() {
	s.mu.Lock()
	s.state = domain.CartState{}
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	s.persistAsync(gen, nil)
}

// GetQuantity returns the committed quantity for productID, 0 when absent.
func (s *Store) GetQuantity(productID string) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.state.IndexOf(productID); i >= 0 {
		return s.state.Items[i].Quantity
	}
	return 0
}

// IsInCart reports whether the product has a line in the cart.
func (s *Store) IsInCart(productID string) bool {
	return s.GetQuantity(productID) > 0
}

// State returns a copy of the current cart state.
func (s *Store) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := s.state
	cp.Items = make([]domain.CartItem, len(s.state.Items))
	copy(cp.Items, s.state.Items)
	return cp
}

// Subtotal returns the derived subtotal in UGX.
func (s *Store) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Subtotal
}

// TotalItems returns the derived item count.
func (s *Store) TotalItems() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalItems
}

// GroupBySeller partitions the current items by seller in first-seen
// order, each group carrying its own subtotal.
func (s *Store) GroupBySeller() []domain.SellerGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.GroupBySeller()
}

// Flush blocks until every persistence task queued so far has finished.
// Only tests and shutdown paths need it.
func (s *Store) Flush() {
	s.pending.Wait()
}

// persistAsync writes the snapshot in the background. An empty snapshot
// deletes the key rather than storing an empty list. Writes are
// serialized through persistMu and tagged with the mutation generation:
// a snapshot older than one that already reached the backend is dropped,
// so a slow early save can never overwrite a later save or delete.
func (s *Store) persistAsync(gen uint64, snap []domain.SnapshotItem) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		s.persistMu.Lock()
		defer s.persistMu.Unlock()

		if gen <= s.persistedGen {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		var err error
		if len(snap) == 0 {
			err = s.snaps.Delete(ctx)
		} else {
			err = s.snaps.Save(ctx, snap)
		}
		if err != nil {
			s.log.Warn("cart snapshot persist failed", slog.Any("err", err))
			return
		}
		s.persistedGen = gen
	}()
}
