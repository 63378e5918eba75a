package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/entrygroup/gallery/internal/domain"
)

// GroupService is a mock implementation of service.GroupService
type GroupService struct {
	mock.Mock
}

// CreateGroup parses submitted text and persists a new group
func (m *GroupService) CreateGroup(ctx context.Context, urlsText string) (*domain.CreateGroupResponse, error) {
	args := m.Called(ctx, urlsText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreateGroupResponse), args.Error(1)
}

// GetGroup retrieves a stored group record by its code
func (m *GroupService) GetGroup(ctx context.Context, code string) (*domain.GroupRecord, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupRecord), args.Error(1)
}

// ResolveGroup resolves every item of a group
func (m *GroupService) ResolveGroup(ctx context.Context, record *domain.GroupRecord) []domain.ResolutionResult {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ResolutionResult)
}
