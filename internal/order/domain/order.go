package domain

import (
	"fmt"

	cartdomain "github.com/kasoma/sokocart/internal/cart/domain"
	checkoutdomain "github.com/kasoma/sokocart/internal/checkout/domain"
)

const Currency = "UGX"

// OrderItem is a price-and-quantity snapshot of one cart line at
// submission time. Later catalog price changes do not touch it.
type OrderItem struct {
	ProductID       string `json:"product_id"`
	Name            string `json:"name"`
	UnitAmount      int64  `json:"unit_amount"`
	Quantity        int32  `json:"quantity"`
	LineTotalAmount int64  `json:"line_total_amount"`
	SellerID        string `json:"seller_id,omitempty"`
}

// Order is the payload POSTed to /api/checkout/complete.
type Order struct {
	Currency       string                 `json:"currency"`
	Items          []OrderItem            `json:"items"`
	Address        checkoutdomain.Address `json:"address"`
	DeliveryMethod string                 `json:"delivery_method"`
	DeliveryFee    int64                  `json:"delivery_fee"`
	PaymentMethod  string                 `json:"payment_method"`
	MobileNumber   string                 `json:"mobile_number,omitempty"`
	SubTotalAmount int64                  `json:"subtotal_amount"`
	TotalAmount    int64                  `json:"total_amount"`
}

// OrderRef is what a successful submission returns.
type OrderRef struct {
	OrderID   string `json:"order_id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// Assemble builds the submission payload from the cart lines and the
// accumulated checkout selections, recomputing the subtotal from the line
// snapshots so the total can never drift from the items.
func Assemble(items []cartdomain.CartItem, addr checkoutdomain.Address, deliveryMethod string, deliveryFee int64, paymentMethod, mobileNumber string) (Order, error) {
	if len(items) == 0 {
		return Order{}, fmt.Errorf("order has no items")
	}
	if deliveryFee < 0 {
		return Order{}, fmt.Errorf("delivery fee cannot be negative, got %d", deliveryFee)
	}

	orderItems := make([]OrderItem, 0, len(items))
	var subTotal int64

	for i, it := range items {
		if it.Quantity <= 0 {
			return Order{}, fmt.Errorf("item %d: quantity must be positive, got %d", i, it.Quantity)
		}
		if it.Product.Price < 0 {
			return Order{}, fmt.Errorf("item %d: unit amount cannot be negative, got %d", i, it.Product.Price)
		}

		lineTotal := it.Product.Price * int64(it.Quantity)
		orderItems = append(orderItems, OrderItem{
			ProductID:       it.Product.ID,
			Name:            it.Product.Name,
			UnitAmount:      it.Product.Price,
			Quantity:        it.Quantity,
			LineTotalAmount: lineTotal,
			SellerID:        it.SellerID(),
		})
		subTotal += lineTotal
	}

	return Order{
		Currency:       Currency,
		Items:          orderItems,
		Address:        addr,
		DeliveryMethod: deliveryMethod,
		DeliveryFee:    deliveryFee,
		PaymentMethod:  paymentMethod,
		MobileNumber:   mobileNumber,
		SubTotalAmount: subTotal,
		TotalAmount:    subTotal + deliveryFee,
	}, nil
}
