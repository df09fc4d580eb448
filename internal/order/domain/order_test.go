package domain

import (
	"testing"

	cartdomain "github.com/kasoma/sokocart/internal/cart/domain"
	checkoutdomain "github.com/kasoma/sokocart/internal/checkout/domain"
)

func line(id string, price int64, qty int32) cartdomain.CartItem {
	return cartdomain.CartItem{
		Product: cartdomain.Product{
			ID:     id,
			Price:  price,
			Seller: cartdomain.Seller{ID: "s1"},
		},
		Quantity: qty,
	}
}

func TestAssemble(t *testing.T) {
	addr := checkoutdomain.Address{
		FullName: "Auma Stella",
		Phone:    "0751234567",
		District: "Lira",
		Area:     "Adyel",
	}

	t.Run("totals come from the line snapshots", func(t *testing.T) {
		order, err := Assemble(
			[]cartdomain.CartItem{line("p1", 10000, 2), line("p2", 2500, 4)},
			addr, "faras", 8000, "cod", "")
		if err != nil {
			t.Fatal(err)
		}

		if order.SubTotalAmount != 30000 {
			t.Fatalf("expected subtotal 30000, got %d", order.SubTotalAmount)
		}
		if order.TotalAmount != 38000 {
			t.Fatalf("expected total 38000, got %d", order.TotalAmount)
		}
		if order.Currency != Currency {
			t.Fatalf("expected %s, got %s", Currency, order.Currency)
		}
		if order.Items[0].LineTotalAmount != 20000 {
			t.Fatalf("expected line total 20000, got %d", order.Items[0].LineTotalAmount)
		}
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		if _, err := Assemble(nil, addr, "faras", 8000, "cod", ""); err == nil {
			t.Fatal("expected error for empty order")
		}
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		if _, err := Assemble([]cartdomain.CartItem{line("p1", 100, 0)}, addr, "faras", 8000, "cod", ""); err == nil {
			t.Fatal("expected error for zero quantity")
		}
	})

	t.Run("negative fee is rejected", func(t *testing.T) {
		if _, err := Assemble([]cartdomain.CartItem{line("p1", 100, 1)}, addr, "faras", -1, "cod", ""); err == nil {
			t.Fatal("expected error for negative fee")
		}
	})
}
