package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
	"github.com/shopspring/decimal"
)

type PostgresCartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *PostgresCartRepository {
	return &PostgresCartRepository{db: db}
}

func (r *PostgresCartRepository) GetCart(ctx context.Context, userID int64) (*domain.ShoppingCart, error) {
	query := `SELECT p.product_id, p.name, p.price, p.category_id, p.description, p.subcategory,
	                 p.stock, p.featured, p.image_url, sc.quantity, sc.discount
	          FROM shopping_cart sc
	          JOIN products p ON p.product_id = sc.product_id
	          WHERE sc.user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}
	defer rows.Close()

	cart := domain.NewShoppingCart()
	for rows.Next() {
		var item domain.ShoppingCartItem
		if err := rows.Scan(
			&item.Product.ProductID,
			&item.Product.Name,
			&item.Product.Price,
			&item.Product.CategoryID,
			&item.Product.Description,
			&item.Product.Subcategory,
			&item.Product.Stock,
			&item.Product.Featured,
			&item.Product.ImageURL,
			&item.Quantity,
			&item.DiscountPercent,
		); err != nil {
			return nil, fmt.Errorf("scan cart row: %w", err)
		}
		cart.Add(item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return cart, nil
}

// AddItem inserts a new cart line with quantity 1, or bumps the quantity
// when the user already has that product in the cart.
func (r *PostgresCartRepository) AddItem(ctx context.Context, userID, productID int64) error {
	query := `INSERT INTO shopping_cart (user_id, product_id, quantity)
	          VALUES ($1, $2, 1)
	          ON CONFLICT (user_id, product_id)
	          DO UPDATE SET quantity = shopping_cart.quantity + 1`

	if _, err := r.db.ExecContext(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

func (r *PostgresCartRepository) UpdateItem(ctx context.Context, userID, productID int64, quantity int, discount *decimal.Decimal) error {
	var res sql.Result
	var err error
	if discount != nil {
		query := `UPDATE shopping_cart SET quantity = $1, discount = $2
		          WHERE user_id = $3 AND product_id = $4`
		res, err = r.db.ExecContext(ctx, query, quantity, *discount, userID, productID)
	} else {
		query := `UPDATE shopping_cart SET quantity = $1
		          WHERE user_id = $2 AND product_id = $3`
		res, err = r.db.ExecContext(ctx, query, quantity, userID, productID)
	}
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// DeleteCart removes every line for the user. Deleting an empty cart is a
// no-op, not an error.
func (r *PostgresCartRepository) DeleteCart(ctx context.Context, userID int64) error {
	query := `DELETE FROM shopping_cart WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
