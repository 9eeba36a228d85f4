package service

import (
	"context"
	"sync"

	"github.com/jason-li-codes/capstone-api-starter/internal/cache"
	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
	"github.com/jason-li-codes/capstone-api-starter/internal/repository"
	"github.com/shopspring/decimal"
)

type mockProfileRepo struct {
	profiles map[int64]*domain.Profile
	err      error
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID int64) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	return profile, nil
}

func (m *mockProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.profiles[profile.UserID]; !ok {
		return repository.ErrProfileNotFound
	}
	m.profiles[profile.UserID] = profile
	return nil
}

type mockCartRepo struct {
	mu        sync.Mutex
	carts     map[int64]*domain.ShoppingCart
	products  map[int64]domain.Product
	getErr    error
	addErr    error
	deleteErr error
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{
		carts:    make(map[int64]*domain.ShoppingCart),
		products: make(map[int64]domain.Product),
	}
}

func (m *mockCartRepo) GetCart(_ context.Context, userID int64) (*domain.ShoppingCart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	cart, ok := m.carts[userID]
	if !ok {
		return domain.NewShoppingCart(), nil
	}
	// Hand back a copy so callers cannot mutate the stored cart
	copied := domain.NewShoppingCart()
	for _, item := range cart.Items {
		copied.Add(item)
	}
	return copied, nil
}

func (m *mockCartRepo) AddItem(_ context.Context, userID, productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.addErr != nil {
		return m.addErr
	}
	cart, ok := m.carts[userID]
	if !ok {
		cart = domain.NewShoppingCart()
		m.carts[userID] = cart
	}
	if line, ok := cart.Items[productID]; ok {
		line.Quantity++
		cart.Items[productID] = line
		return nil
	}
	cart.Add(domain.ShoppingCartItem{Product: m.products[productID], Quantity: 1})
	return nil
}

func (m *mockCartRepo) UpdateItem(_ context.Context, userID, productID int64, quantity int, discount *decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[userID]
	if !ok {
		return repository.ErrItemNotFound
	}
	line, ok := cart.Items[productID]
	if !ok {
		return repository.ErrItemNotFound
	}
	line.Quantity = quantity
	if discount != nil {
		line.DiscountPercent = *discount
	}
	cart.Items[productID] = line
	return nil
}

func (m *mockCartRepo) DeleteCart(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.carts, userID)
	return nil
}

func (m *mockCartRepo) seed(userID int64, items ...domain.ShoppingCartItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart := domain.NewShoppingCart()
	for _, item := range items {
		cart.Add(item)
		m.products[item.Product.ProductID] = item.Product
	}
	m.carts[userID] = cart
}

type mockOrderRepo struct {
	mu        sync.Mutex
	createErr error
	orders    []*domain.Order
	lines     [][]domain.OrderLineItem
	nextID    int64
}

func (m *mockOrderRepo) CreateOrder(_ context.Context, order *domain.Order, lines []domain.OrderLineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	order.OrderID = m.nextID
	for i := range lines {
		lines[i].OrderID = order.OrderID
		lines[i].OrderLineItemID = int64(i + 1)
	}
	order.LineItems = lines
	m.orders = append(m.orders, order)
	m.lines = append(m.lines, lines)
	return nil
}

func (m *mockOrderRepo) ListByUserID(_ context.Context, userID int64) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

type mockProductRepo struct {
	products map[int64]*domain.Product
}

func (m *mockProductRepo) List(context.Context, domain.ProductFilter) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, productID int64) (*domain.Product, error) {
	p, ok := m.products[productID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (m *mockProductRepo) Create(_ context.Context, p *domain.Product) error {
	m.products[p.ProductID] = p
	return nil
}

func (m *mockProductRepo) Update(_ context.Context, p *domain.Product) error {
	m.products[p.ProductID] = p
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, productID int64) error {
	delete(m.products, productID)
	return nil
}

type mockCache struct {
	mu      sync.Mutex
	entries map[int64]*domain.ShoppingCart
	deletes int
	sets    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[int64]*domain.ShoppingCart)}
}

func (m *mockCache) Get(_ context.Context, userID int64) (*domain.ShoppingCart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.entries[userID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return cart, nil
}

func (m *mockCache) Set(_ context.Context, userID int64, cart *domain.ShoppingCart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.entries[userID] = cart
	return nil
}

func (m *mockCache) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	delete(m.entries, userID)
	return nil
}
