package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/importwise/landedcost/internal/core/domain"
)

// SaveQuoteInput carries one shipment scenario to calculate and persist.
type SaveQuoteInput struct {
	Shipment domain.ShipmentInput
	BuyerID  string
}

// SaveQuoteResult is returned after a quote has been calculated and stored.
type SaveQuoteResult struct {
	QuoteID   string
	CreatedAt time.Time
	Result    *domain.LandedCostResult
}

// GetQuoteInput identifies a stored quote. Role and BuyerID enforce RBAC:
// the buyer role only sees its own quotes.
type GetQuoteInput struct {
	QuoteID string
	Role    string
	BuyerID string
}

// QuoteDetail is the full stored-quote view: summary columns plus the result
// exactly as frozen at calculation time.
type QuoteDetail struct {
	Quote  domain.Quote
	Result json.RawMessage
}

// ListQuotesInput carries all parameters for the list endpoint.
type ListQuotesInput struct {
	Role               string
	BuyerID            string
	DestinationCountry string
	ShippingMethod     string
	Search             string
	Page               int
	Limit              int
}

// ListQuotesResult is a page of quote summaries.
type ListQuotesResult struct {
	Items      []domain.Quote
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// QuoteService defines the use-case operations around the calculation engine:
// stateless calculation, multi-scenario comparison, and saved quotes.
type QuoteService interface {
	// Calculate runs the engine once without persisting anything.
	Calculate(ctx context.Context, input domain.ShipmentInput) (*domain.LandedCostResult, error)
	// Compare calculates several scenarios concurrently, preserving order.
	Compare(ctx context.Context, scenarios []domain.ShipmentInput) ([]*domain.LandedCostResult, error)
	// SaveQuote resolves benchmark rates, calculates, and stores the result.
	SaveQuote(ctx context.Context, input SaveQuoteInput) (*SaveQuoteResult, error)
	GetQuote(ctx context.Context, input GetQuoteInput) (*QuoteDetail, error)
	ListQuotes(ctx context.Context, input ListQuotesInput) (*ListQuotesResult, error)
}
