// Package sokocart is the cart aggregation and checkout orchestration
// core of the marketplace app. The surrounding application wires it once
// per session via New and drives it from UI events; it owns no screens
// and no process entry point.
package sokocart

import (
	"context"
	"fmt"
	"log/slog"

	cartapp "github.com/kasoma/sokocart/internal/cart/app"
	"github.com/kasoma/sokocart/internal/cart/infra/memory"
	cartpg "github.com/kasoma/sokocart/internal/cart/infra/postgres"
	cartredis "github.com/kasoma/sokocart/internal/cart/infra/redis"
	catalogapp "github.com/kasoma/sokocart/internal/catalog/app"
	checkoutapp "github.com/kasoma/sokocart/internal/checkout/app"
	"github.com/kasoma/sokocart/internal/checkout/infra/adapter"
	"github.com/kasoma/sokocart/internal/order/infra/httpapi"
	"github.com/kasoma/sokocart/pkg/config"
)

// Core bundles the session-scoped pieces: the cart store, the catalog
// service and the API gateway client.
type Core struct {
	Cart    *cartapp.Store
	Catalog *catalogapp.Service

	gateway *httpapi.Client
	log     *slog.Logger
}

// New wires a Core from config. The snapshot backend is picked by what is
// configured: redis when REDIS_ADDR is set, postgres when DATABASE_URL is
// set, otherwise in-memory only. The persisted cart, if any, is loaded
// here.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*Core, error) {
	var snaps cartapp.SnapshotStore
	switch {
	case cfg.RedisAddr != "":
		snaps = cartredis.NewSnapshotStore(cfg.RedisAddr, cfg.CartKey)
	case cfg.DatabaseURL != "":
		pool, err := cartpg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect snapshot store: %w", err)
		}
		snaps = cartpg.NewSnapshotStore(pool, cfg.CartKey)
	default:
		snaps = memory.NewSnapshotStore()
	}

	gateway := httpapi.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)

	return &Core{
		Cart:    cartapp.NewStore(ctx, snaps, log),
		Catalog: catalogapp.NewService(gateway, log),
		gateway: gateway,
		log:     log,
	}, nil
}

// BeginCheckout starts a fresh checkout attempt over the current cart.
// The delivery catalog is resolved now (remote with static fallback) so
// every fee the machine quotes comes from one catalog for the whole
// attempt. Only one attempt should be live at a time; the previous
// machine must have reached a terminal step or been discarded.
func (c *Core) BeginCheckout(ctx context.Context) *checkoutapp.Machine {
	options := c.Catalog.DeliveryOptions(ctx)
	return checkoutapp.NewMachine(adapter.NewStoreCartSource(c.Cart), c.gateway, options, c.log)
}
