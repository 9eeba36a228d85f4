package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/jason-li-codes/capstone-api-starter/internal/cache"
	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
	"github.com/jason-li-codes/capstone-api-starter/internal/repository"
)

// CheckoutService converts a user's mutable cart into an immutable order
// plus its line items. The order header, every line item and the
// order-placed outbox row commit in one transaction; the cart is cleared
// afterwards as a separate idempotent step.
type CheckoutService struct {
	profiles repository.ProfileRepository
	carts    repository.CartRepository
	orders   repository.OrderRepository
	cache    cache.CartCache
	locks    *UserLocks
	now      func() time.Time
}

func NewCheckoutService(
	profiles repository.ProfileRepository,
	carts repository.CartRepository,
	orders repository.OrderRepository,
	cartCache cache.CartCache,
	locks *UserLocks,
) *CheckoutService {
	return &CheckoutService{
		profiles: profiles,
		carts:    carts,
		orders:   orders,
		cache:    cartCache,
		locks:    locks,
		now:      time.Now,
	}
}

// Checkout runs the full workflow for one user:
//
//  1. resolve the shipping profile (precondition)
//  2. load and validate the cart (precondition)
//  3. persist order + line items + outbox row in one transaction
//  4. clear the cart
//
// The per-user lock keeps a concurrent AddItem/UpdateItem from slipping an
// item between the cart read and the cart clear: the order always bills
// exactly the snapshot it deletes.
func (s *CheckoutService) Checkout(ctx context.Context, userID int64) (*domain.Order, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("resolve profile: %w", err)
	}

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		UserID:         userID,
		Date:           s.now(),
		Address:        profile.Address,
		City:           profile.City,
		State:          profile.State,
		Zip:            profile.Zip,
		ShippingAmount: cart.Total(),
	}

	lines := make([]domain.OrderLineItem, 0, len(cart.Items))
	for productID, item := range cart.Items {
		lines = append(lines, domain.OrderLineItem{
			ProductID:  productID,
			SalesPrice: item.Product.Price,
			Quantity:   item.Quantity,
			Discount:   item.DiscountPercent,
		})
	}
	// Cart lines come out of a map; keep the insert order stable.
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

	if err := s.orders.CreateOrder(ctx, order, lines); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// The order is durable from here on. A failed clear leaves a stale cart,
	// which is a display problem and not a financial one, so it is retried
	// once and then only logged.
	s.clearCart(userID)

	return order, nil
}

func (s *CheckoutService) clearCart(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.carts.DeleteCart(ctx, userID)
	if err != nil {
		err = s.carts.DeleteCart(ctx, userID)
	}
	if err != nil {
		log.Printf("cart clear after checkout failed for user %d: %v", userID, err)
		return
	}

	if err := s.cache.Delete(ctx, userID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
