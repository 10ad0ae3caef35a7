package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"skystash/internal/model"
	"skystash/internal/repository"
)

type MockStarRepository struct {
	mock.Mock
}

var _ repository.StarRepository = (*MockStarRepository)(nil)

func (m *MockStarRepository) Add(ctx context.Context, userID, nodeID string, at time.Time) error {
	args := m.Called(ctx, userID, nodeID, at)
	return args.Error(0)
}

func (m *MockStarRepository) Remove(ctx context.Context, userID, nodeID string) error {
	args := m.Called(ctx, userID, nodeID)
	return args.Error(0)
}

func (m *MockStarRepository) ListNodes(ctx context.Context, userID string) ([]model.NodeView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NodeView), args.Error(1)
}

type MockShareRepository struct {
	mock.Mock
}

var _ repository.ShareRepository = (*MockShareRepository)(nil)

func (m *MockShareRepository) Upsert(ctx context.Context, s *model.Share) (*model.Share, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Share), args.Error(1)
}

func (m *MockShareRepository) Delete(ctx context.Context, createdBy, id string) error {
	args := m.Called(ctx, createdBy, id)
	return args.Error(0)
}

func (m *MockShareRepository) ListByResource(ctx context.Context, createdBy, resourceID string) ([]model.Share, error) {
	args := m.Called(ctx, createdBy, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Share), args.Error(1)
}

type MockLinkRepository struct {
	mock.Mock
}

var _ repository.LinkRepository = (*MockLinkRepository)(nil)

func (m *MockLinkRepository) link(args mock.Arguments) (*model.LinkShare, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LinkShare), args.Error(1)
}

func (m *MockLinkRepository) Create(ctx context.Context, l *model.LinkShare) (*model.LinkShare, error) {
	return m.link(m.Called(ctx, l))
}

func (m *MockLinkRepository) FindByResource(ctx context.Context, createdBy, resourceID string) (*model.LinkShare, error) {
	return m.link(m.Called(ctx, createdBy, resourceID))
}

func (m *MockLinkRepository) FindByToken(ctx context.Context, token string) (*model.LinkShare, error) {
	return m.link(m.Called(ctx, token))
}

func (m *MockLinkRepository) Delete(ctx context.Context, createdBy, id string) error {
	args := m.Called(ctx, createdBy, id)
	return args.Error(0)
}
