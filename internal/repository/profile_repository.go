package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
)

type PostgresProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	query := `SELECT user_id, address, city, state, zip FROM profiles WHERE user_id = $1`

	var p domain.Profile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.Address, &p.City, &p.State, &p.Zip)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile by user id: %w", err)
	}
	return &p, nil
}

func (r *PostgresProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `UPDATE profiles SET address = $1, city = $2, state = $3, zip = $4 WHERE user_id = $5`

	res, err := r.db.ExecContext(ctx, query,
		profile.Address,
		profile.City,
		profile.State,
		profile.Zip,
		profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
