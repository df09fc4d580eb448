package domain

// Seller identifies the business that owns a product. The zero ID maps to
// the UnknownSellerID bucket when grouping.
type Seller struct {
	ID   string
	Name string
}

// Product is the catalog view of an item the buyer can add to the cart.
// Price is a whole-shilling UGX amount.
type Product struct {
	ID     string
	Name   string
	Price  int64
	Stock  int32
	Seller Seller
}

// CartItem pairs a product with a quantity. Seller overrides the product's
// own seller reference when set. Quantity is always >= 1 for a committed
// item.
type CartItem struct {
	Product  Product
	Quantity int32
	Seller   Seller
}

// SellerID returns the seller the item belongs to for grouping purposes.
func (it CartItem) SellerID() string {
	if it.Seller.ID != "" {
		return it.Seller.ID
	}
	if it.Product.Seller.ID != "" {
		return it.Product.Seller.ID
	}
	return UnknownSellerID
}

func (it CartItem) lineTotal() int64 {
	return it.Product.Price * int64(it.Quantity)
}

// UnknownSellerID is the grouping bucket for items with no seller reference
// at all.
const UnknownSellerID = "unknown"

// CartState is the cart item list plus totals derived from it. TotalItems
// and Subtotal are never set directly; Recompute is the only writer.
type CartState struct {
	Items      []CartItem
	TotalItems int32
	Subtotal   int64
}

// Recompute rederives TotalItems and Subtotal from Items. Every item-list
// mutation must be followed by a Recompute before the state is observable.
func (c *CartState) Recompute() {
	var count int32
	var subtotal int64
	for _, it := range c.Items {
		count += it.Quantity
		subtotal += it.lineTotal()
	}
	c.TotalItems = count
	c.Subtotal = subtotal
}

// IndexOf returns the position of the item holding productID, or -1.
func (c *CartState) IndexOf(productID string) int {
	for i, it := range c.Items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}

// SellerGroup is a per-seller slice of the cart, derived on demand and
// never persisted.
type SellerGroup struct {
	Seller   Seller
	Items    []CartItem
	Subtotal int64
}

// GroupBySeller partitions the items by seller, in first-seen order.
func (c *CartState) GroupBySeller() []SellerGroup {
	order := make([]string, 0, len(c.Items))
	byID := make(map[string]*SellerGroup)

	for _, it := range c.Items {
		id := it.SellerID()
		g, ok := byID[id]
		if !ok {
			seller := it.Seller
			if seller.ID == "" {
				seller = it.Product.Seller
			}
			if seller.ID == "" {
				seller = Seller{ID: UnknownSellerID}
			}
			g = &SellerGroup{Seller: seller}
			byID[id] = g
			order = append(order, id)
		}
		g.Items = append(g.Items, it)
		g.Subtotal += it.lineTotal()
	}

	groups := make([]SellerGroup, 0, len(order))
	for _, id := range order {
		groups = append(groups, *byID[id])
	}
	return groups
}

// SnapshotItem is the persisted form of a CartItem: just enough to rebuild
// the item list. Totals are recomputed on load, never stored.
type SnapshotItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int32  `json:"quantity"`
	SellerID    string `json:"seller_id,omitempty"`
	SellerName  string `json:"seller_name,omitempty"`
}

// Snapshot flattens the item list for persistence.
func (c *CartState) Snapshot() []SnapshotItem {
	out := make([]SnapshotItem, 0, len(c.Items))
	for _, it := range c.Items {
		sellerID := it.Seller.ID
		sellerName := it.Seller.Name
		if sellerID == "" {
			sellerID = it.Product.Seller.ID
			sellerName = it.Product.Seller.Name
		}
		out = append(out, SnapshotItem{
			ProductID:   it.Product.ID,
			ProductName: it.Product.Name,
			UnitPrice:   it.Product.Price,
			Quantity:    it.Quantity,
			SellerID:    sellerID,
			SellerName:  sellerName,
		})
	}
	return out
}

// FromSnapshot rebuilds a CartState from persisted items, dropping entries
// with a non-positive quantity, and recomputes totals.
func FromSnapshot(items []SnapshotItem) CartState {
	var c CartState
	for _, s := range items {
		if s.Quantity <= 0 {
			continue
		}
		c.Items = append(c.Items, CartItem{
			Product: Product{
				ID:    s.ProductID,
				Name:  s.ProductName,
				Price: s.UnitPrice,
				Seller: Seller{
					ID:   s.SellerID,
					Name: s.SellerName,
				},
			},
			Quantity: s.Quantity,
		})
	}
	c.Recompute()
	return c
}
