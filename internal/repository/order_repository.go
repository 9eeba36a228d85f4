package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
)

type PostgresOrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// CreateOrder writes the order header, all line items and the order-placed
// outbox row in one transaction. Either everything commits or nothing does,
// so an order can never be observed with a subset of its line items.
func (r *PostgresOrderRepository) CreateOrder(ctx context.Context, order *domain.Order, lines []domain.OrderLineItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `INSERT INTO orders (user_id, date, address, city, state, zip, shipping_amount)
	               VALUES ($1, $2, $3, $4, $5, $6, $7)
	               RETURNING order_id`

	if err := tx.QueryRowContext(ctx, orderQuery,
		order.UserID,
		order.Date,
		order.Address,
		order.City,
		order.State,
		order.Zip,
		order.ShippingAmount,
	).Scan(&order.OrderID); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	lineQuery := `INSERT INTO order_line_items (order_id, product_id, sales_price, quantity, discount)
	              VALUES ($1, $2, $3, $4, $5)
	              RETURNING order_line_item_id`

	for i := range lines {
		lines[i].OrderID = order.OrderID
		if err := tx.QueryRowContext(ctx, lineQuery,
			lines[i].OrderID,
			lines[i].ProductID,
			lines[i].SalesPrice,
			lines[i].Quantity,
			lines[i].Discount,
		).Scan(&lines[i].OrderLineItemID); err != nil {
			return fmt.Errorf("insert order line item: %w", err)
		}
	}

	event := domain.OrderPlacedEvent{
		OrderID:     order.OrderID,
		UserID:      order.UserID,
		TotalAmount: order.ShippingAmount,
		LineCount:   len(lines),
		PlacedAt:    order.Date,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order placed event: %w", err)
	}

	outboxQuery := `INSERT INTO order_outbox (id, aggregate_id, event_type, payload, processed, created_at)
	                VALUES ($1, $2, $3, $4, FALSE, $5)`

	if _, err := tx.ExecContext(ctx, outboxQuery,
		uuid.New(),
		fmt.Sprint(order.OrderID),
		domain.EventTypeOrderPlaced,
		payload,
		time.Now(),
	); err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}

	order.LineItems = lines
	return nil
}

func (r *PostgresOrderRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Order, error) {
	query := `SELECT order_id, user_id, date, address, city, state, zip, shipping_amount
	          FROM orders WHERE user_id = $1 ORDER BY date DESC, order_id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders by user id: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	byID := make(map[int64]*domain.Order)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.OrderID,
			&order.UserID,
			&order.Date,
			&order.Address,
			&order.City,
			&order.State,
			&order.Zip,
			&order.ShippingAmount,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &order)
		byID[order.OrderID] = &order
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	lineQuery := `SELECT oli.order_line_item_id, oli.order_id, oli.product_id, oli.sales_price, oli.quantity, oli.discount
	              FROM order_line_items oli
	              JOIN orders o ON o.order_id = oli.order_id
	              WHERE o.user_id = $1`

	lineRows, err := r.db.QueryContext(ctx, lineQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("query order line items: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var line domain.OrderLineItem
		if err := lineRows.Scan(
			&line.OrderLineItemID,
			&line.OrderID,
			&line.ProductID,
			&line.SalesPrice,
			&line.Quantity,
			&line.Discount,
		); err != nil {
			return nil, fmt.Errorf("scan order line item row: %w", err)
		}
		if order, ok := byID[line.OrderID]; ok {
			order.LineItems = append(order.LineItems, line)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for _, order := range orders {
		sort.Slice(order.LineItems, func(i, j int) bool {
			return order.LineItems[i].OrderLineItemID < order.LineItems[j].OrderLineItemID
		})
	}

	return orders, nil
}

func (r *PostgresOrderRepository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	query := `SELECT id, aggregate_id, event_type, payload, processed, created_at
	          FROM order_outbox
	          WHERE processed = FALSE
	          ORDER BY created_at
	          LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox events: %w", err)
	}
	defer rows.Close()

	var events []*OutboxEvent
	for rows.Next() {
		var event OutboxEvent
		if err := rows.Scan(
			&event.ID,
			&event.AggregateID,
			&event.EventType,
			&event.Payload,
			&event.Processed,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan outbox event row: %w", err)
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return events, nil
}

func (r *PostgresOrderRepository) MarkEventAsProcessed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE order_outbox SET processed = TRUE WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("mark outbox event processed: %w", err)
	}
	return nil
}
