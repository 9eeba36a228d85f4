package http

import (
	"context"
	"net/http"
	"time"

	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
)

// Checkouter runs the cart-to-order conversion for the acting user.
type Checkouter interface {
	Checkout(ctx context.Context, userID int64) (*domain.Order, error)
}

// OrderLister returns the acting user's order history.
type OrderLister interface {
	ListByUserID(ctx context.Context, userID int64) ([]*domain.Order, error)
}

type OrdersHandler struct {
	checkout Checkouter
	orders   OrderLister
	timeout  time.Duration
}

func NewOrdersHandler(checkout Checkouter, orders OrderLister, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{checkout: checkout, orders: orders, timeout: timeout}
}

// Checkout converts the user's cart into an order. 201 with the created
// order on success; 400 when the profile is missing or the cart is empty.
func (h *OrdersHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user := userFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	order, err := h.checkout.Checkout(ctx, user.UserID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user := userFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.orders.ListByUserID(ctx, user.UserID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}

	respondJSON(w, http.StatusOK, orders)
}
