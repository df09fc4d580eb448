package app

import (
	"context"

	cartdomain "github.com/kasoma/sokocart/internal/cart/domain"
	orderdomain "github.com/kasoma/sokocart/internal/order/domain"
)

// CartSource is the slice of the cart store a checkout attempt needs:
// the lines to snapshot into the order, the subtotal to display, and a
// way to clear the cart once the order lands.
type CartSource interface {
	Items() []cartdomain.CartItem
	Subtotal() int64
	Clear()
}

// OrderGateway submits the finished order. Implementations must return
// errors whose Error() string is already safe to show the buyer; the
// machine carries it verbatim into the Failed state.
type OrderGateway interface {
	SubmitOrder(ctx context.Context, order orderdomain.Order) (orderdomain.OrderRef, error)
}
