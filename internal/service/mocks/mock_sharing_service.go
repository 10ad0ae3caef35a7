package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skystash/internal/model"
	"skystash/internal/service"
)

type MockSharingService struct {
	mock.Mock
}

var _ service.SharingService = (*MockSharingService)(nil)

func shareResult(args mock.Arguments) (*model.Share, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Share), args.Error(1)
}

func linkResult(args mock.Arguments) (*model.LinkShare, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LinkShare), args.Error(1)
}

func (m *MockSharingService) Grant(ctx context.Context, owner, resourceID, granteeID string, role model.Role) (*model.Share, error) {
	return shareResult(m.Called(ctx, owner, resourceID, granteeID, role))
}

func (m *MockSharingService) GrantByEmail(ctx context.Context, owner, resourceID, email string, role model.Role) (*model.Share, error) {
	return shareResult(m.Called(ctx, owner, resourceID, email, role))
}

func (m *MockSharingService) Revoke(ctx context.Context, owner, shareID string) error {
	return m.Called(ctx, owner, shareID).Error(0)
}

func (m *MockSharingService) ListGrantees(ctx context.Context, owner, resourceID string) ([]model.Grantee, error) {
	args := m.Called(ctx, owner, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Grantee), args.Error(1)
}

func (m *MockSharingService) CreateLink(ctx context.Context, owner, resourceID string) (*model.LinkShare, error) {
	return linkResult(m.Called(ctx, owner, resourceID))
}

func (m *MockSharingService) GetLink(ctx context.Context, owner, resourceID string) (*model.LinkShare, error) {
	return linkResult(m.Called(ctx, owner, resourceID))
}

func (m *MockSharingService) DeleteLink(ctx context.Context, owner, linkID string) error {
	return m.Called(ctx, owner, linkID).Error(0)
}

func (m *MockSharingService) ResolveLink(ctx context.Context, token string) (*model.LinkTarget, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LinkTarget), args.Error(1)
}
