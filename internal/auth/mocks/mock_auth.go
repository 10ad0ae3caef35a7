package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skystash/internal/auth"
	"skystash/internal/model"
)

type MockVerifier struct {
	mock.Mock
}

var _ auth.Verifier = (*MockVerifier)(nil)

func (m *MockVerifier) Verify(ctx context.Context, credential string) (string, error) {
	args := m.Called(ctx, credential)
	return args.String(0), args.Error(1)
}

type MockDirectory struct {
	mock.Mock
}

var _ auth.Directory = (*MockDirectory)(nil)

func (m *MockDirectory) LookupByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockDirectory) LookupByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
