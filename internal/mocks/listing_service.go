package mocks

import (
	"context"

	"github.com/Sakebul-islam/kola-server-side/internal/domain"
	"github.com/Sakebul-islam/kola-server-side/internal/service"
	"github.com/Sakebul-islam/kola-server-side/internal/service/query"
	"github.com/Sakebul-islam/kola-server-side/internal/store"
)

// MockListingService implements service.ListingService for testing
type MockListingService struct {
	ListFn   func(ctx context.Context, q query.ListingQuery) ([]domain.Listing, error)
	GetFn    func(ctx context.Context, id string) (*domain.Listing, error)
	CreateFn func(ctx context.Context, listing *domain.Listing) (store.InsertResult, error)
	UpdateFn func(ctx context.Context, identity, id string, patch map[string]any) (store.UpdateResult, error)
	DeleteFn func(ctx context.Context, id string) (store.DeleteResult, error)

	// DefaultError is returned by methods without a function set
	DefaultError error
}

var _ service.ListingService = (*MockListingService)(nil)

// List implements the ListingService.List method
func (m *MockListingService) List(ctx context.Context, q query.ListingQuery) ([]domain.Listing, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}
	return []domain.Listing{}, m.DefaultError
}

// Get implements the ListingService.Get method
func (m *MockListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, m.DefaultError
}

// Create implements the ListingService.Create method
func (m *MockListingService) Create(ctx context.Context, listing *domain.Listing) (store.InsertResult, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, listing)
	}
	return store.InsertResult{}, m.DefaultError
}

// Update implements the ListingService.Update method
func (m *MockListingService) Update(
	ctx context.Context,
	identity, id string,
	patch map[string]any,
) (store.UpdateResult, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, identity, id, patch)
	}
	return store.UpdateResult{}, m.DefaultError
}

// Delete implements the ListingService.Delete method
func (m *MockListingService) Delete(ctx context.Context, id string) (store.DeleteResult, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return store.DeleteResult{}, m.DefaultError
}
