package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
	"github.com/jason-li-codes/capstone-api-starter/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutMock struct {
	order *domain.Order
	err   error
}

func (m checkoutMock) Checkout(context.Context, int64) (*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

type orderListerMock struct {
	orders []*domain.Order
	err    error
}

func (m orderListerMock) ListByUserID(context.Context, int64) ([]*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func authedRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	user := &domain.User{UserID: 1, Username: "alice", Role: domain.RoleUser}
	return r.WithContext(context.WithValue(r.Context(), userContextKey, user))
}

func TestCheckout_Created(t *testing.T) {
	order := &domain.Order{
		OrderID:        10,
		UserID:         1,
		Date:           time.Now(),
		Address:        "1 Main St",
		ShippingAmount: decimal.RequireFromString("25.00"),
		LineItems: []domain.OrderLineItem{
			{OrderID: 10, ProductID: 1, Quantity: 2, SalesPrice: decimal.RequireFromString("10.00")},
			{OrderID: 10, ProductID: 2, Quantity: 1, SalesPrice: decimal.RequireFromString("5.00")},
		},
	}
	handler := NewOrdersHandler(checkoutMock{order: order}, orderListerMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.Checkout(recorder, authedRequest("POST", "/orders"))

	require.Equal(t, http.StatusCreated, recorder.Code)

	var got domain.Order
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
	assert.Equal(t, int64(10), got.OrderID)
	assert.Equal(t, "1 Main St", got.Address)
	assert.Len(t, got.LineItems, 2)
	assert.True(t, got.ShippingAmount.Equal(decimal.RequireFromString("25.00")))
}

func TestCheckout_EmptyCartIsBadRequest(t *testing.T) {
	handler := NewOrdersHandler(checkoutMock{err: service.ErrEmptyCart}, orderListerMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.Checkout(recorder, authedRequest("POST", "/orders"))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "cart_empty", resp.Code)
}

func TestCheckout_MissingProfileIsBadRequest(t *testing.T) {
	handler := NewOrdersHandler(checkoutMock{err: service.ErrProfileNotFound}, orderListerMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.Checkout(recorder, authedRequest("POST", "/orders"))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCheckout_StorageFailureIsServerError(t *testing.T) {
	handler := NewOrdersHandler(checkoutMock{err: assert.AnError}, orderListerMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.Checkout(recorder, authedRequest("POST", "/orders"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestCheckout_Unauthenticated(t *testing.T) {
	handler := NewOrdersHandler(checkoutMock{}, orderListerMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.Checkout(recorder, httptest.NewRequest("POST", "/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestListOrders_EmptyIsEmptyArray(t *testing.T) {
	handler := NewOrdersHandler(checkoutMock{}, orderListerMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.List(recorder, authedRequest("GET", "/orders"))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, "[]", recorder.Body.String())
}

func TestListOrders_ReturnsOrders(t *testing.T) {
	lister := orderListerMock{orders: []*domain.Order{
		{OrderID: 1, UserID: 1, ShippingAmount: decimal.RequireFromString("5.00")},
		{OrderID: 2, UserID: 1, ShippingAmount: decimal.RequireFromString("7.50")},
	}}
	handler := NewOrdersHandler(checkoutMock{}, lister, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.List(recorder, authedRequest("GET", "/orders"))

	require.Equal(t, http.StatusOK, recorder.Code)

	var got []domain.Order
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
	assert.Len(t, got, 2)
}
