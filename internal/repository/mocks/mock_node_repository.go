package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"skystash/internal/model"
	"skystash/internal/repository"
)

type MockNodeRepository struct {
	mock.Mock
}

var _ repository.NodeRepository = (*MockNodeRepository)(nil)

func (m *MockNodeRepository) node(args mock.Arguments) (*model.Node, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Node), args.Error(1)
}

func (m *MockNodeRepository) views(args mock.Arguments) ([]model.NodeView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NodeView), args.Error(1)
}

func (m *MockNodeRepository) Create(ctx context.Context, n *model.Node) (*model.Node, error) {
	return m.node(m.Called(ctx, n))
}

func (m *MockNodeRepository) FindByID(ctx context.Context, ownerID, id string) (*model.Node, error) {
	return m.node(m.Called(ctx, ownerID, id))
}

func (m *MockNodeRepository) FindVisible(ctx context.Context, ownerID, id string) (*model.Node, error) {
	return m.node(m.Called(ctx, ownerID, id))
}

func (m *MockNodeRepository) Rename(ctx context.Context, ownerID, id, name string, at time.Time) (*model.Node, error) {
	return m.node(m.Called(ctx, ownerID, id, name, at))
}

func (m *MockNodeRepository) Move(ctx context.Context, ownerID, id string, parentID *string, at time.Time) (*model.Node, error) {
	return m.node(m.Called(ctx, ownerID, id, parentID, at))
}

func (m *MockNodeRepository) SetTrashed(ctx context.Context, ownerID, id string, trashed bool, at time.Time) (*model.Node, error) {
	return m.node(m.Called(ctx, ownerID, id, trashed, at))
}

func (m *MockNodeRepository) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockNodeRepository) ListChildren(ctx context.Context, ownerID string, parentID *string, sort repository.Sort) ([]model.NodeView, error) {
	return m.views(m.Called(ctx, ownerID, parentID, sort))
}

func (m *MockNodeRepository) ListTrashed(ctx context.Context, ownerID string) ([]model.NodeView, error) {
	return m.views(m.Called(ctx, ownerID))
}

func (m *MockNodeRepository) Search(ctx context.Context, ownerID, query string) ([]model.NodeView, error) {
	return m.views(m.Called(ctx, ownerID, query))
}

func (m *MockNodeRepository) ListRecent(ctx context.Context, ownerID string, limit int) ([]model.NodeView, error) {
	return m.views(m.Called(ctx, ownerID, limit))
}
