package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
	"github.com/shopspring/decimal"
)

// CartService is what the cart endpoints need from the service layer.
type CartService interface {
	GetCart(ctx context.Context, userID int64) (*domain.ShoppingCart, error)
	AddItem(ctx context.Context, userID, productID int64) (*domain.ShoppingCart, error)
	UpdateItem(ctx context.Context, userID, productID int64, quantity int, discount *decimal.Decimal) (*domain.ShoppingCart, error)
	Clear(ctx context.Context, userID int64) error
}

type CartHandler struct {
	cart    CartService
	timeout time.Duration
}

func NewCartHandler(cart CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{cart: cart, timeout: timeout}
}

type UpdateItemRequestDTO struct {
	Quantity int              `json:"quantity"`
	Discount *decimal.Decimal `json:"discount,omitempty"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user := userFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	cart, err := h.cart.GetCart(ctx, user.UserID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user := userFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	cart, err := h.cart.AddItem(ctx, user.UserID, productID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, cart)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user := userFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		return
	}
	if req.Discount != nil && (req.Discount.IsNegative() || req.Discount.GreaterThan(decimal.NewFromInt(1))) {
		respondError(w, http.StatusBadRequest, "invalid_discount", "discount must be between 0 and 1")
		return
	}

	cart, err := h.cart.UpdateItem(ctx, user.UserID, productID, req.Quantity, req.Discount)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user := userFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	if err := h.cart.Clear(ctx, user.UserID); err != nil {
		handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	return idParam(w, r, "productID")
}
