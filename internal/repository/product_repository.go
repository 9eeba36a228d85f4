package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
)

type PostgresProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `product_id, name, price, category_id, description, subcategory, stock, featured, image_url`

func scanProduct(row interface{ Scan(...any) error }, p *domain.Product) error {
	return row.Scan(
		&p.ProductID,
		&p.Name,
		&p.Price,
		&p.CategoryID,
		&p.Description,
		&p.Subcategory,
		&p.Stock,
		&p.Featured,
		&p.ImageURL,
	)
}

func (r *PostgresProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	var conditions []string
	var args []any

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}
	if filter.Subcategory != nil {
		args = append(args, *filter.Subcategory)
		conditions = append(conditions, fmt.Sprintf("subcategory = $%d", len(args)))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY product_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, productID int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`

	var p domain.Product
	err := scanProduct(r.db.QueryRowContext(ctx, query, productID), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product by id: %w", err)
	}
	return &p, nil
}

func (r *PostgresProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `INSERT INTO products (name, price, category_id, description, subcategory, stock, featured, image_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING product_id`

	err := r.db.QueryRowContext(ctx, query,
		product.Name,
		product.Price,
		product.CategoryID,
		product.Description,
		product.Subcategory,
		product.Stock,
		product.Featured,
		product.ImageURL,
	).Scan(&product.ProductID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *PostgresProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `UPDATE products
	          SET name = $1, price = $2, category_id = $3, description = $4,
	              subcategory = $5, stock = $6, featured = $7, image_url = $8
	          WHERE product_id = $9`

	res, err := r.db.ExecContext(ctx, query,
		product.Name,
		product.Price,
		product.CategoryID,
		product.Description,
		product.Subcategory,
		product.Stock,
		product.Featured,
		product.ImageURL,
		product.ProductID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) Delete(ctx context.Context, productID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
