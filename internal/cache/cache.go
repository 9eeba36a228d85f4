package cache

import (
	"context"
	"errors"

	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
)

type CartCache interface {
	Get(ctx context.Context, userID int64) (*domain.ShoppingCart, error)
	Set(ctx context.Context, userID int64, cart *domain.ShoppingCart) error
	Delete(ctx context.Context, userID int64) error
}

var ErrCacheMiss = errors.New("cache miss")
