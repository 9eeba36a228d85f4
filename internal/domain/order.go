package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is immutable once created; only the generated id is populated
// after the insert.
type Order struct {
	OrderID        int64           `json:"order_id"`
	UserID         int64           `json:"user_id"`
	Date           time.Time       `json:"date"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	Zip            string          `json:"zip"`
	ShippingAmount decimal.Decimal `json:"shipping_amount"`
	LineItems      []OrderLineItem `json:"line_items,omitempty"`
}

type OrderLineItem struct {
	OrderLineItemID int64           `json:"order_line_item_id"`
	OrderID         int64           `json:"order_id"`
	ProductID       int64           `json:"product_id"`
	SalesPrice      decimal.Decimal `json:"sales_price"`
	Quantity        int             `json:"quantity"`
	Discount        decimal.Decimal `json:"discount"`
}

// OrderPlacedEvent is the outbox payload written in the same transaction
// as the order itself.
type OrderPlacedEvent struct {
	OrderID     int64           `json:"order_id"`
	UserID      int64           `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	LineCount   int             `json:"line_count"`
	PlacedAt    time.Time       `json:"placed_at"`
}

const EventTypeOrderPlaced = "order.placed"
