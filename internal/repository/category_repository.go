package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
)

type PostgresCategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (r *PostgresCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT category_id, name, description FROM categories ORDER BY category_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return categories, nil
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	query := `SELECT category_id, name, description FROM categories WHERE category_id = $1`

	var c domain.Category
	err := r.db.QueryRowContext(ctx, query, categoryID).Scan(&c.CategoryID, &c.Name, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query category by id: %w", err)
	}
	return &c, nil
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING category_id`

	if err := r.db.QueryRowContext(ctx, query, category.Name, category.Description).Scan(&category.CategoryID); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `UPDATE categories SET name = $1, description = $2 WHERE category_id = $3`

	res, err := r.db.ExecContext(ctx, query, category.Name, category.Description, category.CategoryID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, categoryID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE category_id = $1`, categoryID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
