package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrItemNotFound     = errors.New("item not found in cart")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, userID int64) (*domain.User, error)
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	GetByID(ctx context.Context, productID int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, productID int64) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]*domain.Category, error)
	GetByID(ctx context.Context, categoryID int64) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, categoryID int64) error
}

// CartRepository persists one row per (user, product) pair. GetCart returns
// an empty cart, not an error, when the user has no rows.
type CartRepository interface {
	GetCart(ctx context.Context, userID int64) (*domain.ShoppingCart, error)
	AddItem(ctx context.Context, userID, productID int64) error
	UpdateItem(ctx context.Context, userID, productID int64, quantity int, discount *decimal.Decimal) error
	DeleteCart(ctx context.Context, userID int64) error
}

// OrderRepository materializes orders. CreateOrder writes the order header,
// every line item and the order-placed outbox row in a single transaction,
// populating the generated ids on its arguments.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order, lines []domain.OrderLineItem) error
	ListByUserID(ctx context.Context, userID int64) ([]*domain.Order, error)
}

type OutboxEvent struct {
	ID          uuid.UUID
	AggregateID string
	EventType   string
	Payload     []byte
	Processed   bool
	CreatedAt   time.Time
}

// OutboxRepository is consumed by the event publisher.
type OutboxRepository interface {
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id uuid.UUID) error
}
