package adapter

import (
	cartapp "github.com/kasoma/sokocart/internal/cart/app"
	cartdomain "github.com/kasoma/sokocart/internal/cart/domain"
)

// StoreCartSource exposes a cart store to the checkout machine through
// the narrow CartSource port.
type StoreCartSource struct {
	store *cartapp.Store
}

func NewStoreCartSource(store *cartapp.Store) *StoreCartSource {
	return &StoreCartSource{store: store}
}

func (s *StoreCartSource) Items() []cartdomain.CartItem {
	return s.store.State().Items
}

func (s *StoreCartSource) Subtotal() int64 {
	return s.store.Subtotal()
}

func (s *StoreCartSource) Clear() {
	s.store.Clear()
}
