// Package query turns listing search parameters into a store query.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/Sakebul-islam/kola-server-side/internal/domain"
	"github.com/Sakebul-islam/kola-server-side/internal/store"
)

// Query parameter names accepted by Build.
const (
	ParamFoodName  = "foodName"
	ParamUserEmail = "userEmail"
	ParamPage      = "page"
	ParamLimit     = "limit"
	ParamSortField = "sortField"
	ParamSortOrder = "sortOrder"
	ParamQuantity  = "quantity"
)

// ListingQuery is a store query plus an optional cap on the number of
// results, applied after the store has sorted and paginated.
type ListingQuery struct {
	Query store.Query
	Cap   *int
}

// Build translates listing search parameters. It never fails: unusable
// pagination values fall back to their unbounded defaults, and a present
// quantity always yields a cap (see parseCap).
func Build(params url.Values) ListingQuery {
	filter := store.Filter{}
	if name := params.Get(ParamFoodName); name != "" {
		filter = filter.ContainsFold(domain.FieldFoodName, name)
	}
	if email := params.Get(ParamUserEmail); email != "" {
		filter = filter.Eq(domain.FieldDonatorEmail, email)
	}

	page := parseInt(params.Get(ParamPage))
	limit := parseInt(params.Get(ParamLimit))

	q := store.NewQuery(filter).
		WithSkip(skip(page, limit)).
		WithLimit(limit)

	if params.Get(ParamSortField) == domain.FieldExpiredDateTime {
		dir := store.Ascending
		if params.Get(ParamSortOrder) == "desc" {
			dir = store.Descending
		}
		q = q.SortBy(domain.FieldExpiredDateTime, dir)
	} else {
		q = q.SortBy(domain.FieldFoodQuantity, store.Descending)
	}

	lq := ListingQuery{Query: q}
	if raw := params.Get(ParamQuantity); raw != "" {
		n := parseCap(raw)
		lq.Cap = &n
	}
	return lq
}

// skip returns (page-1)*limit, saturating at math.MaxInt64 so a huge page
// number selects an empty page rather than wrapping around.
func skip(page, limit int64) int64 {
	if page <= 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return (page - 1) * limit
}

// parseCap reads the leading decimal integer of raw, so "5abc" caps at 5.
// Input without leading digits caps at zero, as does a negative number.
func parseCap(raw string) int {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "-") {
		return 0
	}
	s = strings.TrimPrefix(s, "+")

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Only overflow is possible here: no cap is needed at that size.
		return math.MaxInt
	}
	return n
}

// Apply truncates listings to the cap, if any.
func (lq ListingQuery) Apply(listings []domain.Listing) []domain.Listing {
	if lq.Cap == nil || len(listings) <= *lq.Cap {
		return listings
	}
	return listings[:*lq.Cap]
}

// parseInt reads a non-negative integer, returning 0 for anything else.
func parseInt(raw string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
