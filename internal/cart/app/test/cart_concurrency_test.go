package app_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kasoma/sokocart/internal/cart/app"
	"github.com/kasoma/sokocart/internal/cart/domain"
	"github.com/kasoma/sokocart/internal/cart/infra/memory"
)

func newTestStore(t *testing.T) *app.Store {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	return app.NewStore(context.Background(), memory.NewSnapshotStore(), log)
}

func TestCart_ConcurrentAddItemIncrement(t *testing.T) {
	s := newTestStore(t)

	p := domain.Product{
		ID:     uuid.NewString(),
		Name:   "Keyboard",
		Price:  45000,
		Seller: domain.Seller{ID: uuid.NewString()},
	}

	const N = 100
	var g errgroup.Group
	for i := 0; i < N; i++ {
		g.Go(func() error {
			s.AddItem(p, 1, domain.Seller{})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent AddItem failed: %v", err)
	}
	s.Flush()

	if got := s.GetQuantity(p.ID); got != N {
		t.Fatalf("expected quantity=%d, got=%d", N, got)
	}
	if n := len(s.State().Items); n != 1 {
		t.Fatalf("expected exactly 1 line, got %d", n)
	}
}

func TestCart_ConcurrentMixedMutationsKeepTotalsConsistent(t *testing.T) {
	s := newTestStore(t)

	products := make([]domain.Product, 10)
	for i := range products {
		products[i] = domain.Product{
			ID:     uuid.NewString(),
			Price:  int64(1000 * (i + 1)),
			Seller: domain.Seller{ID: uuid.NewString()},
		}
	}

	var g errgroup.Group
	for i := 0; i < 200; i++ {
		p := products[i%len(products)]
		switch i % 4 {
		case 0, 1:
			g.Go(func() error {
				s.AddItem(p, 2, domain.Seller{})
				return nil
			})
		case 2:
			g.Go(func() error {
				s.UpdateQuantity(p.ID, 3)
				return nil
			})
		default:
			g.Go(func() error {
				s.RemoveItem(p.ID)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent mutations failed: %v", err)
	}
	s.Flush()

	st := s.State()
	var count int32
	var subtotal int64
	for _, it := range st.Items {
		count += it.Quantity
		subtotal += it.Product.Price * int64(it.Quantity)
	}
	if st.TotalItems != count || st.Subtotal != subtotal {
		t.Fatalf("derived totals drifted: state=%+v recomputed count=%d subtotal=%d", st, count, subtotal)
	}
}
