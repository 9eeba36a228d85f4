package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/jason-li-codes/capstone-api-starter/internal/cache"
	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
	"github.com/jason-li-codes/capstone-api-starter/internal/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	cache    cache.CartCache
	locks    *UserLocks
	sfg      singleflight.Group // Prevents cache stampede
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, cartCache cache.CartCache, locks *UserLocks) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		cache:    cartCache,
		locks:    locks,
	}
}

func (s *CartService) GetCart(ctx context.Context, userID int64) (*domain.ShoppingCart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(sfgKey(userID), func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		cart, errGet := s.carts.GetCart(ctx, userID)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			errSet := s.cache.Set(context.Background(), userID, cart)
			if errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.ShoppingCart), nil
}

// AddItem puts one unit of the product into the user's cart, incrementing
// the quantity when a line for that product already exists. The refreshed
// cart is returned.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64) (*domain.ShoppingCart, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.carts.AddItem(ctx, userID, productID); err != nil {
		log.Printf("repo add item error: %v", err)
		return nil, err
	}

	s.invalidateCache(userID)
	return s.carts.GetCart(ctx, userID)
}

// UpdateItem overwrites the quantity, and the discount when supplied, of an
// existing cart line.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID int64, quantity int, discount *decimal.Decimal) (*domain.ShoppingCart, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.carts.UpdateItem(ctx, userID, productID, quantity, discount); err != nil {
		if !errors.Is(err, repository.ErrItemNotFound) {
			log.Printf("repo update item error: %v", err)
		}
		return nil, err
	}

	s.invalidateCache(userID)
	return s.carts.GetCart(ctx, userID)
}

// Clear removes every line from the user's cart. Clearing an already-empty
// cart is a no-op.
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.carts.DeleteCart(ctx, userID); err != nil {
		log.Printf("repo delete cart error: %v", err)
		return err
	}

	s.invalidateCache(userID)
	return nil
}

func (s *CartService) invalidateCache(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}

func sfgKey(userID int64) string {
	return "cart:" + strconv.FormatInt(userID, 10)
}
