package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sakebul-islam/kola-server-side/internal/domain"
)

func TestAuthorize(t *testing.T) {
	listing := &domain.Listing{DonatorEmail: "donor@x.com"}
	request := &domain.Request{DonatorEmail: "donor@x.com", RequestPersonEmail: "asker@x.com"}

	tests := []struct {
		name     string
		identity string
		action   Action
		resource Resource
		allowed  bool
	}{
		{"listing update by donator", "donor@x.com", ListingUpdate, ForListing(listing), true},
		{"listing update by stranger", "other@x.com", ListingUpdate, ForListing(listing), false},
		{"listing update on missing listing", "donor@x.com", ListingUpdate, ForListing(nil), false},

		{"status update by donator", "donor@x.com", RequestUpdateStatus, ForRequest(request), true},
		{"status update by requester", "asker@x.com", RequestUpdateStatus, ForRequest(request), false},

		{"delete by requester", "asker@x.com", RequestDelete, ForRequest(request), true},
		{"delete by donator", "donor@x.com", RequestDelete, ForRequest(request), false},
		{"delete on missing request", "asker@x.com", RequestDelete, ForRequest(nil), false},

		{"list own requests", "asker@x.com", RequestListByUser, ForEmail("asker@x.com"), true},
		{"list someone else's requests", "asker@x.com", RequestListByUser, ForEmail("donor@x.com"), false},

		{"list by food as donator", "donor@x.com", RequestListByFood, ForRequest(request), true},
		{"list by food as stranger", "other@x.com", RequestListByFood, ForRequest(request), false},
		{"list by food with no requests yet", "other@x.com", RequestListByFood, ForRequest(nil), true},

		{"create in own name", "asker@x.com", RequestCreate, ForEmail("asker@x.com"), true},
		{"create in another name", "b@x.com", RequestCreate, ForEmail("a@x.com"), false},

		{"empty identity never matches empty owner", "", ListingUpdate, ForListing(&domain.Listing{}), false},
		{"unknown action", "donor@x.com", Action("listing:delete"), ForListing(listing), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.identity, tc.action, tc.resource)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestAuthorizeIsCaseSensitive(t *testing.T) {
	listing := &domain.Listing{DonatorEmail: "Donor@x.com"}
	assert.ErrorIs(t, Authorize("donor@x.com", ListingUpdate, ForListing(listing)), ErrForbidden)
}
