package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Sakebul-islam/kola-server-side/internal/domain"
	"github.com/Sakebul-islam/kola-server-side/internal/platform/logger"
	"github.com/Sakebul-islam/kola-server-side/internal/service/authz"
	"github.com/Sakebul-islam/kola-server-side/internal/store"
)

// RequestService provides operations on food requests. Every method acts on
// behalf of identity, the email of the authenticated caller.
type RequestService interface {
	// List returns the requests filed by userEmail or, when userEmail is
	// empty, the requests against the listing foodID.
	List(ctx context.Context, identity, userEmail, foodID string) ([]domain.Request, error)

	// Create files a new request in the caller's name.
	Create(ctx context.Context, identity string, request *domain.Request) (store.InsertResult, error)

	// UpdateStatus sets the status of a request made against one of the
	// caller's listings.
	UpdateStatus(ctx context.Context, identity, id, status string) (store.UpdateResult, error)

	// Delete withdraws one of the caller's requests.
	Delete(ctx context.Context, identity, id string) (store.DeleteResult, error)
}

const requestService = "request"

type requestServiceImpl struct {
	requests store.Collection
	listings store.Collection
	logger   *slog.Logger
}

// NewRequestService creates a RequestService over ds. It returns an error if
// ds is nil.
func NewRequestService(ds store.DocumentStore, logger *slog.Logger) (RequestService, error) {
	if ds == nil {
		return nil, NewServiceError(requestService, "create_service", errors.New("document store cannot be nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &requestServiceImpl{
		requests: ds.Collection(store.RequestsCollection),
		listings: ds.Collection(store.ListingsCollection),
		logger:   logger.With("component", "request_service"),
	}, nil
}

func (s *requestServiceImpl) List(
	ctx context.Context,
	identity, userEmail, foodID string,
) ([]domain.Request, error) {
	var filter store.Filter

	switch {
	case userEmail != "":
		if err := authz.Authorize(identity, authz.RequestListByUser, authz.ForEmail(userEmail)); err != nil {
			return nil, err
		}
		filter = store.Filter{}.Eq(domain.FieldRequestPersonEmail, userEmail)

	case foodID != "":
		filter = store.Filter{}.Eq(domain.FieldFoodID, foodID)

		var sample *domain.Request
		var found domain.Request
		switch err := s.requests.FindOne(ctx, filter, &found); {
		case err == nil:
			sample = &found
		case !store.IsNotFoundError(err):
			return nil, NewServiceError(requestService, "list", err)
		}
		if err := authz.Authorize(identity, authz.RequestListByFood, authz.ForRequest(sample)); err != nil {
			return nil, err
		}

	default:
		return nil, domain.NewValidationError("query", "userEmail or foodId is required", ErrMissingRequestFilter)
	}

	var requests []domain.Request
	if err := s.requests.Find(ctx, store.NewQuery(filter), &requests); err != nil {
		return nil, NewServiceError(requestService, "list", err)
	}
	if requests == nil {
		requests = []domain.Request{}
	}
	return requests, nil
}

// Create validates the request, checks it is filed in the caller's name and
// stores it. The donator is taken from the referenced listing when that
// listing exists, so status changes are gated on the real owner.
func (s *requestServiceImpl) Create(
	ctx context.Context,
	identity string,
	request *domain.Request,
) (store.InsertResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := request.Validate(); err != nil {
		return store.InsertResult{}, err
	}
	if err := authz.Authorize(identity, authz.RequestCreate, authz.ForEmail(request.RequestPersonEmail)); err != nil {
		log.Warn("request create denied", slog.String("food_id", request.FoodID))
		return store.InsertResult{}, err
	}

	if oid, err := store.ParseID(request.FoodID); err == nil {
		var listing domain.Listing
		switch err := s.listings.FindOne(ctx, store.ByID(oid), &listing); {
		case err == nil:
			request.DonatorEmail = listing.DonatorEmail
		case !store.IsNotFoundError(err):
			return store.InsertResult{}, NewServiceError(requestService, "create", err)
		}
	}

	if request.FoodStatus == "" {
		request.FoodStatus = domain.StatusPending
	}
	request.ID = store.NilObjectID

	res, err := s.requests.InsertOne(ctx, request)
	if err != nil {
		return store.InsertResult{}, NewServiceError(requestService, "create", err)
	}
	log.Info("request created",
		slog.String("request_id", res.InsertedID),
		slog.String("food_id", request.FoodID))
	return res, nil
}

func (s *requestServiceImpl) UpdateStatus(
	ctx context.Context,
	identity, id, status string,
) (store.UpdateResult, error) {
	if strings.TrimSpace(status) == "" {
		return store.UpdateResult{}, domain.NewValidationError(domain.FieldFoodStatus, "is required", ErrMissingStatus)
	}

	oid, err := store.ParseID(id)
	if err != nil {
		return store.UpdateResult{}, err
	}

	request, err := s.load(ctx, oid)
	if err != nil {
		return store.UpdateResult{}, err
	}
	if err := authz.Authorize(identity, authz.RequestUpdateStatus, authz.ForRequest(request)); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("request status update denied",
			slog.String("request_id", id))
		return store.UpdateResult{}, err
	}

	filter := store.ByID(oid).Eq(domain.FieldDonatorEmail, request.DonatorEmail)
	res, err := s.requests.UpdateOne(ctx, filter, map[string]any{domain.FieldFoodStatus: status})
	if err != nil {
		return store.UpdateResult{}, NewServiceError(requestService, "update_status", err)
	}
	if res.MatchedCount == 0 {
		return store.UpdateResult{}, fmt.Errorf("%w: %s", store.ErrRequestNotFound, id)
	}
	return res, nil
}

func (s *requestServiceImpl) Delete(ctx context.Context, identity, id string) (store.DeleteResult, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return store.DeleteResult{}, err
	}

	request, err := s.load(ctx, oid)
	if err != nil {
		return store.DeleteResult{}, err
	}
	if err := authz.Authorize(identity, authz.RequestDelete, authz.ForRequest(request)); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("request delete denied",
			slog.String("request_id", id))
		return store.DeleteResult{}, err
	}

	filter := store.ByID(oid).Eq(domain.FieldRequestPersonEmail, request.RequestPersonEmail)
	res, err := s.requests.DeleteOne(ctx, filter)
	if err != nil {
		return store.DeleteResult{}, NewServiceError(requestService, "delete", err)
	}
	if res.DeletedCount == 0 {
		return store.DeleteResult{}, fmt.Errorf("%w: %s", store.ErrRequestNotFound, id)
	}
	return res, nil
}

func (s *requestServiceImpl) load(ctx context.Context, id store.ObjectID) (*domain.Request, error) {
	var request domain.Request
	if err := s.requests.FindOne(ctx, store.ByID(id), &request); err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrRequestNotFound, id.Hex())
		}
		return nil, NewServiceError(requestService, "get", err)
	}
	return &request, nil
}
