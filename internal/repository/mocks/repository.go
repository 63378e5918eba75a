package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/entrygroup/gallery/internal/domain"
)

// GroupRepository is a mock implementation of repository.GroupRepository
type GroupRepository struct {
	mock.Mock
}

// SaveGroup persists a group record under its code
func (m *GroupRepository) SaveGroup(ctx context.Context, code string, record *domain.GroupRecord) error {
	args := m.Called(ctx, code, record)
	return args.Error(0)
}

// GetGroup retrieves a group record by code
func (m *GroupRepository) GetGroup(ctx context.Context, code string) (*domain.GroupRecord, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupRecord), args.Error(1)
}

// SaveSession persists a token set under a session key with an expiration TTL
func (m *GroupRepository) SaveSession(ctx context.Context, key string, tokens domain.TokenSet, ttl time.Duration) error {
	args := m.Called(ctx, key, tokens, ttl)
	return args.Error(0)
}

// GetSession retrieves a live session token set
func (m *GroupRepository) GetSession(ctx context.Context, key string) (*domain.TokenSet, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.TokenSet), args.Bool(1), args.Error(2)
}

// DeleteSession removes a session record
func (m *GroupRepository) DeleteSession(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// Close closes the repository connection
func (m *GroupRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
