package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT user_id, username, role FROM users WHERE username = $1`

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.UserID, &u.Username, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by username: %w", err)
	}
	return &u, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT user_id, username, role FROM users WHERE user_id = $1`

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&u.UserID, &u.Username, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return &u, nil
}
