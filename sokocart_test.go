package sokocart

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	cartdomain "github.com/kasoma/sokocart/internal/cart/domain"
	catalogdomain "github.com/kasoma/sokocart/internal/catalog/domain"
	checkoutapp "github.com/kasoma/sokocart/internal/checkout/app"
	checkoutdomain "github.com/kasoma/sokocart/internal/checkout/domain"
	orderdomain "github.com/kasoma/sokocart/internal/order/domain"
	"github.com/kasoma/sokocart/pkg/config"
)

func TestCheckoutFlow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/checkout/complete":
			json.NewEncoder(w).Encode(orderdomain.OrderRef{OrderID: "o-1", Reference: "SOKO-100", Status: "pending"})
		default:
			// catalog endpoints are down; the core falls back to the
			// static catalogs
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := config.Config{
		APIBaseURL:  srv.URL,
		HTTPTimeout: time.Second,
		CartKey:     "test:cart",
	}

	core, err := New(context.Background(), cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}

	core.Cart.AddItem(cartdomain.Product{
		ID:     "p1",
		Name:   "Solar Lamp",
		Price:  10000,
		Seller: cartdomain.Seller{ID: "s1"},
	}, 2, cartdomain.Seller{})

	if got := core.Cart.Subtotal(); got != 20000 {
		t.Fatalf("expected subtotal 20000, got %d", got)
	}

	m := core.BeginCheckout(context.Background())

	if err := m.SubmitAddress(checkoutdomain.Address{
		FullName: "Namutebi Joan",
		Phone:    "0771234567",
		District: "Kampala",
		Area:     "Kawempe",
	}); err != nil {
		t.Fatal(err)
	}
	if err := m.ChooseDelivery(catalogdomain.DeliveryFaras); err != nil {
		t.Fatal(err)
	}
	if m.Total() != 28000 {
		t.Fatalf("expected total 28000, got %d", m.Total())
	}
	if err := m.ChoosePayment(catalogdomain.PayCashOnDelivery, ""); err != nil {
		t.Fatal(err)
	}

	ref, err := m.Submit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if ref.Reference != "SOKO-100" {
		t.Fatalf("expected order reference, got %+v", ref)
	}
	if m.Step() != checkoutapp.StepCompleted {
		t.Fatalf("expected completed checkout, got %s", m.Step())
	}

	core.Cart.Flush()
	if got := core.Cart.TotalItems(); got != 0 {
		t.Fatalf("expected empty cart after completion, got %d items", got)
	}
}
