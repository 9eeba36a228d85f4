package identity

import (
	"context"
	"testing"

	"github.com/jason-li-codes/capstone-api-starter/internal/domain"
	"github.com/jason-li-codes/capstone-api-starter/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoMock struct {
	users map[string]*domain.User
	err   error
}

func (m userRepoMock) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m userRepoMock) GetByID(context.Context, int64) (*domain.User, error) {
	return nil, repository.ErrUserNotFound
}

func TestResolve_KnownUser(t *testing.T) {
	resolver := NewStoreResolver(userRepoMock{users: map[string]*domain.User{
		"alice": {UserID: 5, Username: "alice", Role: domain.RoleUser},
	}})

	user, err := resolver.Resolve(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.UserID)
}

func TestResolve_UnknownUser(t *testing.T) {
	resolver := NewStoreResolver(userRepoMock{users: map[string]*domain.User{}})

	user, err := resolver.Resolve(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUnknownPrincipal)
	assert.Nil(t, user)
}

func TestResolve_StorageFailurePassesThrough(t *testing.T) {
	resolver := NewStoreResolver(userRepoMock{err: assert.AnError})

	user, err := resolver.Resolve(context.Background(), "alice")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, user)
}
