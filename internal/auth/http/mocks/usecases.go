// Package mocks provides mock use case implementations for handler and command tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	authService "github.com/paservices/auth-service/internal/auth/service"
)

// MockTokenUseCase is a mock implementation of TokenUseCase for testing.
type MockTokenUseCase struct {
	mock.Mock
}

// Issue mocks the Issue method of TokenUseCase.
func (m *MockTokenUseCase) Issue(
	ctx context.Context,
	input *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssueTokenOutput), args.Error(1)
}

// Verify mocks the Verify method of TokenUseCase.
func (m *MockTokenUseCase) Verify(ctx context.Context, token string) (*authService.AccessTokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authService.AccessTokenClaims), args.Error(1)
}

// MockClientUseCase is a mock implementation of ClientUseCase for testing.
type MockClientUseCase struct {
	mock.Mock
}

// Create mocks the Create method of ClientUseCase.
func (m *MockClientUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateClientInput,
) (*authDomain.CreateClientOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.CreateClientOutput), args.Error(1)
}

// Update mocks the Update method of ClientUseCase.
func (m *MockClientUseCase) Update(
	ctx context.Context,
	clientID uuid.UUID,
	input *authDomain.UpdateClientInput,
) error {
	args := m.Called(ctx, clientID, input)
	return args.Error(0)
}

// Get mocks the Get method of ClientUseCase.
func (m *MockClientUseCase) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Client), args.Error(1)
}

// List mocks the List method of ClientUseCase.
func (m *MockClientUseCase) List(ctx context.Context, offset, limit int) ([]*authDomain.Client, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Client), args.Error(1)
}

// AssignRole mocks the AssignRole method of ClientUseCase.
func (m *MockClientUseCase) AssignRole(ctx context.Context, clientID uuid.UUID, roleName string) error {
	args := m.Called(ctx, clientID, roleName)
	return args.Error(0)
}

// MockAccessUseCase is a mock implementation of AccessUseCase for testing.
type MockAccessUseCase struct {
	mock.Mock
}

// Resolve mocks the Resolve method of AccessUseCase.
func (m *MockAccessUseCase) Resolve(ctx context.Context, clientID uuid.UUID) (*authDomain.Access, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Access), args.Error(1)
}

// ListRoles mocks the ListRoles method of AccessUseCase.
func (m *MockAccessUseCase) ListRoles(ctx context.Context, offset, limit int) ([]*authDomain.Role, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Role), args.Error(1)
}

// ListPermissions mocks the ListPermissions method of AccessUseCase.
func (m *MockAccessUseCase) ListPermissions(ctx context.Context, offset, limit int) ([]*authDomain.Permission, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Permission), args.Error(1)
}
