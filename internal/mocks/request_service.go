package mocks

import (
	"context"

	"github.com/Sakebul-islam/kola-server-side/internal/domain"
	"github.com/Sakebul-islam/kola-server-side/internal/service"
	"github.com/Sakebul-islam/kola-server-side/internal/store"
)

// MockRequestService implements service.RequestService for testing
type MockRequestService struct {
	ListFn         func(ctx context.Context, identity, userEmail, foodID string) ([]domain.Request, error)
	CreateFn       func(ctx context.Context, identity string, request *domain.Request) (store.InsertResult, error)
	UpdateStatusFn func(ctx context.Context, identity, id, status string) (store.UpdateResult, error)
	DeleteFn       func(ctx context.Context, identity, id string) (store.DeleteResult, error)

	// DefaultError is returned by methods without a function set
	DefaultError error
}

var _ service.RequestService = (*MockRequestService)(nil)

// List implements the RequestService.List method
func (m *MockRequestService) List(
	ctx context.Context,
	identity, userEmail, foodID string,
) ([]domain.Request, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, identity, userEmail, foodID)
	}
	return []domain.Request{}, m.DefaultError
}

// Create implements the RequestService.Create method
func (m *MockRequestService) Create(
	ctx context.Context,
	identity string,
	request *domain.Request,
) (store.InsertResult, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, identity, request)
	}
	return store.InsertResult{}, m.DefaultError
}

// UpdateStatus implements the RequestService.UpdateStatus method
func (m *MockRequestService) UpdateStatus(
	ctx context.Context,
	identity, id, status string,
) (store.UpdateResult, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, identity, id, status)
	}
	return store.UpdateResult{}, m.DefaultError
}

// Delete implements the RequestService.Delete method
func (m *MockRequestService) Delete(ctx context.Context, identity, id string) (store.DeleteResult, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, identity, id)
	}
	return store.DeleteResult{}, m.DefaultError
}
