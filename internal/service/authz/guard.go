// Package authz decides whether an authenticated identity may act on a
// record. Every rule compares the caller's email against the one field of
// the record that anchors ownership for that action; the rules live in a
// single table so the anchor for each endpoint is stated exactly once.
package authz

import (
	"errors"
	"fmt"

	"github.com/Sakebul-islam/kola-server-side/internal/domain"
)

// ErrForbidden is returned when the identity does not own the record.
var ErrForbidden = errors.New("identity does not own the resource")

// Action names a guarded operation.
type Action string

const (
	// ListingUpdate: only the listing's donator may edit it.
	ListingUpdate Action = "listing:update"
	// RequestCreate: requests may only be filed in the caller's own name.
	RequestCreate Action = "request:create"
	// RequestUpdateStatus: only the donator decides a request's status.
	RequestUpdateStatus Action = "request:update_status"
	// RequestDelete: only the requester may withdraw a request.
	RequestDelete Action = "request:delete"
	// RequestListByUser: users may only list their own requests.
	RequestListByUser Action = "request:list_by_user"
	// RequestListByFood: only the donator may list requests for a listing.
	RequestListByFood Action = "request:list_by_food"
)

// Resource is the record an action targets. Exactly the field named by the
// action's policy is consulted.
type Resource struct {
	Listing *domain.Listing
	Request *domain.Request
	// Email is a caller-supplied email the identity must match, such as the
	// userEmail query parameter or a new request's requestPersonEmail.
	Email string
}

// ForListing wraps a listing.
func ForListing(l *domain.Listing) Resource { return Resource{Listing: l} }

// ForRequest wraps a request. A nil request is a valid resource for
// RequestListByFood and means no request exists yet.
func ForRequest(r *domain.Request) Resource { return Resource{Request: r} }

// ForEmail wraps a caller-supplied email.
func ForEmail(email string) Resource { return Resource{Email: email} }

// policy extracts the owner email of a resource. allowMissing permits the
// action when the resource is absent.
type policy struct {
	owner        func(Resource) (string, bool)
	allowMissing bool
}

func listingDonator(r Resource) (string, bool) {
	if r.Listing == nil {
		return "", false
	}
	return r.Listing.DonatorEmail, true
}

func requestDonator(r Resource) (string, bool) {
	if r.Request == nil {
		return "", false
	}
	return r.Request.DonatorEmail, true
}

func requestRequester(r Resource) (string, bool) {
	if r.Request == nil {
		return "", false
	}
	return r.Request.RequestPersonEmail, true
}

func suppliedEmail(r Resource) (string, bool) {
	return r.Email, true
}

var policies = map[Action]policy{
	ListingUpdate:       {owner: listingDonator},
	RequestCreate:       {owner: suppliedEmail},
	RequestUpdateStatus: {owner: requestDonator},
	RequestDelete:       {owner: requestRequester},
	RequestListByUser:   {owner: suppliedEmail},
	// A listing nobody has claimed yet has no requests; listing them reveals
	// nothing, so the check passes.
	RequestListByFood: {owner: requestDonator, allowMissing: true},
}

// Authorize returns nil when identityEmail may perform action on res, and an
// error wrapping ErrForbidden otherwise. An empty identity never matches.
// Authorize has no side effects and must run before the guarded write or
// scoped read.
func Authorize(identityEmail string, action Action, res Resource) error {
	p, ok := policies[action]
	if !ok {
		return fmt.Errorf("%w: unknown action %q", ErrForbidden, action)
	}

	owner, present := p.owner(res)
	if !present {
		if p.allowMissing {
			return nil
		}
		return fmt.Errorf("%w: %s on missing resource", ErrForbidden, action)
	}

	if identityEmail == "" || owner != identityEmail {
		return fmt.Errorf("%w: %s", ErrForbidden, action)
	}
	return nil
}
