package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Sakebul-islam/kola-server-side/internal/domain"
	"github.com/Sakebul-islam/kola-server-side/internal/platform/logger"
	"github.com/Sakebul-islam/kola-server-side/internal/service/authz"
	"github.com/Sakebul-islam/kola-server-side/internal/service/query"
	"github.com/Sakebul-islam/kola-server-side/internal/store"
)

// ListingService provides listing operations.
type ListingService interface {
	// List returns the listings selected by q, never nil.
	List(ctx context.Context, q query.ListingQuery) ([]domain.Listing, error)

	// Get returns one listing by its hex identifier.
	Get(ctx context.Context, id string) (*domain.Listing, error)

	// Create stores a new listing as supplied.
	Create(ctx context.Context, listing *domain.Listing) (store.InsertResult, error)

	// Update overwrites the patched fields of a listing owned by identity.
	Update(ctx context.Context, identity, id string, patch map[string]any) (store.UpdateResult, error)

	// Delete removes a listing. Requests that reference it are kept.
	Delete(ctx context.Context, id string) (store.DeleteResult, error)
}

const listingService = "listing"

type listingServiceImpl struct {
	listings store.Collection
	logger   *slog.Logger
}

// NewListingService creates a ListingService over the listings collection of
// ds. It returns an error if ds is nil.
func NewListingService(ds store.DocumentStore, logger *slog.Logger) (ListingService, error) {
	if ds == nil {
		return nil, NewServiceError(listingService, "create_service", errors.New("document store cannot be nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &listingServiceImpl{
		listings: ds.Collection(store.ListingsCollection),
		logger:   logger.With("component", "listing_service"),
	}, nil
}

func (s *listingServiceImpl) List(ctx context.Context, q query.ListingQuery) ([]domain.Listing, error) {
	var listings []domain.Listing
	if err := s.listings.Find(ctx, q.Query, &listings); err != nil {
		return nil, NewServiceError(listingService, "list", err)
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	return q.Apply(listings), nil
}

func (s *listingServiceImpl) Get(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, oid)
}

func (s *listingServiceImpl) load(ctx context.Context, id store.ObjectID) (*domain.Listing, error) {
	var listing domain.Listing
	if err := s.listings.FindOne(ctx, store.ByID(id), &listing); err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrListingNotFound, id.Hex())
		}
		return nil, NewServiceError(listingService, "get", err)
	}
	return &listing, nil
}

func (s *listingServiceImpl) Create(ctx context.Context, listing *domain.Listing) (store.InsertResult, error) {
	if err := listing.Validate(); err != nil {
		return store.InsertResult{}, err
	}
	listing.ID = store.NilObjectID
	res, err := s.listings.InsertOne(ctx, listing)
	if err != nil {
		return store.InsertResult{}, NewServiceError(listingService, "create", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("listing created",
		slog.String("listing_id", res.InsertedID))
	return res, nil
}

// Update loads the listing, checks ownership and then applies the patch. The
// write is additionally filtered on the owner so a concurrent ownership
// change cannot slip in between check and write.
func (s *listingServiceImpl) Update(
	ctx context.Context,
	identity, id string,
	patch map[string]any,
) (store.UpdateResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := store.ParseID(id)
	if err != nil {
		return store.UpdateResult{}, err
	}

	listing, err := s.load(ctx, oid)
	if err != nil {
		return store.UpdateResult{}, err
	}

	if err := authz.Authorize(identity, authz.ListingUpdate, authz.ForListing(listing)); err != nil {
		log.Warn("listing update denied", slog.String("listing_id", id))
		return store.UpdateResult{}, err
	}

	set, err := domain.NormalizeListingPatch(patch)
	if err != nil {
		return store.UpdateResult{}, err
	}

	filter := store.ByID(oid).Eq(domain.FieldDonatorEmail, listing.DonatorEmail)
	res, err := s.listings.UpdateOne(ctx, filter, set)
	if err != nil {
		return store.UpdateResult{}, NewServiceError(listingService, "update", err)
	}
	if res.MatchedCount == 0 {
		return store.UpdateResult{}, fmt.Errorf("%w: %s", store.ErrListingNotFound, id)
	}

	log.Info("listing updated",
		slog.String("listing_id", id),
		slog.Int64("modified", res.ModifiedCount))
	return res, nil
}

func (s *listingServiceImpl) Delete(ctx context.Context, id string) (store.DeleteResult, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return store.DeleteResult{}, err
	}
	res, err := s.listings.DeleteOne(ctx, store.ByID(oid))
	if err != nil {
		return store.DeleteResult{}, NewServiceError(listingService, "delete", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("listing delete",
		slog.String("listing_id", id),
		slog.Int64("deleted", res.DeletedCount))
	return res, nil
}
