package ports

import (
	"context"

	"github.com/importwise/landedcost/internal/core/domain"
)

// ListQuotesFilter carries all query parameters for listing stored quotes.
// BuyerID is always enforced by the service layer (RBAC).
type ListQuotesFilter struct {
	BuyerID            string // empty = no filter (admin); non-empty = scoped to buyer
	DestinationCountry string // optional: ISO country code
	ShippingMethod     string // optional: sea_fcl, sea_lcl, air, express
	Search             string // optional: partial match on product_name or hs_code
	Page               int    // 1-based
	Limit              int    // max rows per page (capped at 100 by service)
}

// QuoteRepository defines persistence operations for stored quotes.
type QuoteRepository interface {
	Create(ctx context.Context, q *domain.Quote) error
	// FindByID retrieves a quote by id. When buyerID is non-empty, the query
	// is additionally filtered by buyer_id (for RBAC).
	FindByID(ctx context.Context, id string, buyerID string) (*domain.Quote, error)
	// List returns a page of quotes matching filter and the total count.
	List(ctx context.Context, filter ListQuotesFilter) ([]*domain.Quote, int64, error)
}
