package domain

import "github.com/shopspring/decimal"

// ShoppingCartItem is one line of a user's cart. Price and discount are
// snapshotted into the order line item at checkout, so later catalog price
// changes never rewrite order history.
type ShoppingCartItem struct {
	Product         Product         `json:"product"`
	Quantity        int             `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// LineTotal is price × quantity × (1 − discount).
func (i ShoppingCartItem) LineTotal() decimal.Decimal {
	qty := decimal.NewFromInt(int64(i.Quantity))
	factor := decimal.NewFromInt(1).Sub(i.DiscountPercent)
	return i.Product.Price.Mul(qty).Mul(factor)
}

// ShoppingCart holds one line per product for a single user.
type ShoppingCart struct {
	Items map[int64]ShoppingCartItem `json:"items"`
}

func NewShoppingCart() *ShoppingCart {
	return &ShoppingCart{Items: make(map[int64]ShoppingCartItem)}
}

// Add inserts the item keyed by product id, replacing any existing line.
func (c *ShoppingCart) Add(item ShoppingCartItem) {
	if c.Items == nil {
		c.Items = make(map[int64]ShoppingCartItem)
	}
	c.Items[item.Product.ProductID] = item
}

func (c *ShoppingCart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total sums every line total. An empty cart totals zero.
func (c *ShoppingCart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}
