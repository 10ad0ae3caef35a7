package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skystash/internal/model"
	"skystash/internal/service"
)

func nodeResult(args mock.Arguments) (*model.Node, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Node), args.Error(1)
}

func viewResult(args mock.Arguments) ([]model.NodeView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NodeView), args.Error(1)
}

type MockNodeService struct {
	mock.Mock
}

var _ service.NodeService = (*MockNodeService)(nil)

func (m *MockNodeService) CreateFolder(ctx context.Context, owner, name string, parentID *string) (*model.Node, error) {
	return nodeResult(m.Called(ctx, owner, name, parentID))
}

func (m *MockNodeService) CommitFileMetadata(ctx context.Context, owner string, in service.FileMetadata) (*model.Node, error) {
	return nodeResult(m.Called(ctx, owner, in))
}

func (m *MockNodeService) Rename(ctx context.Context, owner, id, name string) (*model.Node, error) {
	return nodeResult(m.Called(ctx, owner, id, name))
}

func (m *MockNodeService) Move(ctx context.Context, owner, id string, newParentID *string) (*model.Node, error) {
	return nodeResult(m.Called(ctx, owner, id, newParentID))
}

func (m *MockNodeService) Trash(ctx context.Context, owner, id string) (*model.Node, error) {
	return nodeResult(m.Called(ctx, owner, id))
}

func (m *MockNodeService) Restore(ctx context.Context, owner, id string) (*model.Node, error) {
	return nodeResult(m.Called(ctx, owner, id))
}

func (m *MockNodeService) HardDelete(ctx context.Context, owner, id string) error {
	return m.Called(ctx, owner, id).Error(0)
}

type MockQueryService struct {
	mock.Mock
}

var _ service.QueryService = (*MockQueryService)(nil)

func (m *MockQueryService) List(ctx context.Context, owner string, q service.ListQuery) ([]model.NodeView, error) {
	return viewResult(m.Called(ctx, owner, q))
}

func (m *MockQueryService) Search(ctx context.Context, owner, query string) ([]model.NodeView, error) {
	return viewResult(m.Called(ctx, owner, query))
}

func (m *MockQueryService) Recent(ctx context.Context, owner string) ([]model.NodeView, error) {
	return viewResult(m.Called(ctx, owner))
}

func (m *MockQueryService) Starred(ctx context.Context, owner string) ([]model.NodeView, error) {
	return viewResult(m.Called(ctx, owner))
}

type MockFavoriteService struct {
	mock.Mock
}

var _ service.FavoriteService = (*MockFavoriteService)(nil)

func (m *MockFavoriteService) Star(ctx context.Context, owner, nodeID string) error {
	return m.Called(ctx, owner, nodeID).Error(0)
}

func (m *MockFavoriteService) Unstar(ctx context.Context, owner, nodeID string) error {
	return m.Called(ctx, owner, nodeID).Error(0)
}

type MockUploadService struct {
	mock.Mock
}

var _ service.UploadService = (*MockUploadService)(nil)

func (m *MockUploadService) RequestUploadSlot(ctx context.Context, owner, fileName, contentType string) (*service.UploadSlot, error) {
	args := m.Called(ctx, owner, fileName, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadSlot), args.Error(1)
}

func (m *MockUploadService) RequestDownloadURL(ctx context.Context, owner, nodeID string) (string, error) {
	args := m.Called(ctx, owner, nodeID)
	return args.String(0), args.Error(1)
}
