// Package identity maps an authenticated principal onto a store user.
// Token issuance and signature validation happen outside this service; the
// HTTP layer hands over a verified username and gets back the numeric user
// id and role every downstream call is keyed by.
package identity

import (
	"context"
	"errors"

	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
	"github.com/jason-li-codes/capstone-api-starter/internal/repository"
)

var ErrUnknownPrincipal = errors.New("unknown principal")

type Resolver interface {
	Resolve(ctx context.Context, username string) (*domain.User, error)
}

// StoreResolver resolves principals against the users table.
type StoreResolver struct {
	users repository.UserRepository
}

func NewStoreResolver(users repository.UserRepository) *StoreResolver {
	return &StoreResolver{users: users}
}

func (r *StoreResolver) Resolve(ctx context.Context, username string) (*domain.User, error) {
	user, err := r.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUnknownPrincipal
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
