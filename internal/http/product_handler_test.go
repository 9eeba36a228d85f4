package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
	"github.com/jason-li-codes/capstone-api-starter/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productRepoMock struct {
	products []*domain.Product
	err      error

	gotFilter domain.ProductFilter
}

func (m *productRepoMock) List(_ context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.gotFilter = filter
	return m.products, nil
}

func (m *productRepoMock) GetByID(_ context.Context, productID int64) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.products {
		if p.ProductID == productID {
			return p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *productRepoMock) Create(_ context.Context, p *domain.Product) error {
	if m.err != nil {
		return m.err
	}
	p.ProductID = 100
	m.products = append(m.products, p)
	return nil
}

func (m *productRepoMock) Update(context.Context, *domain.Product) error { return m.err }

func (m *productRepoMock) Delete(context.Context, int64) error { return m.err }

func catalogMock() *productRepoMock {
	return &productRepoMock{products: []*domain.Product{
		{ProductID: 1, Name: "Laptop", Price: decimal.RequireFromString("1299.99")},
		{ProductID: 2, Name: "Mouse", Price: decimal.RequireFromString("29.99")},
	}}
}

func TestListProducts_Success(t *testing.T) {
	handler := NewProductHandler(catalogMock(), 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/products", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var got []domain.Product
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
	assert.Len(t, got, 2)
}

func TestListProducts_ParsesFilters(t *testing.T) {
	mock := catalogMock()
	handler := NewProductHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/products?cat=3&minPrice=5.00&maxPrice=100&subcategory=audio", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, mock.gotFilter.CategoryID)
	assert.Equal(t, int64(3), *mock.gotFilter.CategoryID)
	require.NotNil(t, mock.gotFilter.MinPrice)
	assert.True(t, mock.gotFilter.MinPrice.Equal(decimal.RequireFromString("5.00")))
	require.NotNil(t, mock.gotFilter.Subcategory)
	assert.Equal(t, "audio", *mock.gotFilter.Subcategory)
}

func TestListProducts_BadFilter(t *testing.T) {
	handler := NewProductHandler(catalogMock(), 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/products?cat=electronics", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetProduct_NotFound(t *testing.T) {
	handler := NewProductHandler(catalogMock(), 5*time.Second)

	r := withURLParam(httptest.NewRequest("GET", "/products/42", nil), "productID", "42")
	recorder := httptest.NewRecorder()
	handler.Get(recorder, r)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCreateProduct_RejectsNegativePrice(t *testing.T) {
	handler := NewProductHandler(catalogMock(), 5*time.Second)

	body := `{"name": "Gadget", "price": "-1.00", "category_id": 1}`
	r := httptest.NewRequest("POST", "/products", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.Create(recorder, r)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateProduct_Created(t *testing.T) {
	handler := NewProductHandler(catalogMock(), 5*time.Second)

	body := `{"name": "Gadget", "price": "9.99", "category_id": 1}`
	r := httptest.NewRequest("POST", "/products", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.Create(recorder, r)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var got domain.Product
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
	assert.Equal(t, int64(100), got.ProductID)
}
