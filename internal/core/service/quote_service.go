package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/importwise/landedcost/internal/core/domain"
	"github.com/importwise/landedcost/internal/core/ports"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100

	// maxCompareScenarios bounds one comparison request.
	maxCompareScenarios = 10
	compareConcurrency  = 4
)

// QuoteService implements the use-cases around the calculation engine. The
// engine itself stays pure; everything with I/O (benchmark rate resolution,
// persistence) lives here.
type QuoteService struct {
	calc   ports.LandedCostCalculator
	repo   ports.QuoteRepository
	rates  ports.FreightRateSource
	logger zerolog.Logger
}

func NewQuoteService(calc ports.LandedCostCalculator, repo ports.QuoteRepository, rates ports.FreightRateSource, logger zerolog.Logger) *QuoteService {
	return &QuoteService{calc: calc, repo: repo, rates: rates, logger: logger}
}

// Calculate runs the engine once without persisting anything.
func (s *QuoteService) Calculate(_ context.Context, input domain.ShipmentInput) (*domain.LandedCostResult, error) {
	return s.calc.Calculate(input)
}

// Compare calculates up to maxCompareScenarios scenarios concurrently and
// returns results in input order. The engine is stateless and side-effect
// free, so concurrent calls need no synchronization. Any invalid scenario
// fails the whole comparison, naming its index.
func (s *QuoteService) Compare(ctx context.Context, scenarios []domain.ShipmentInput) ([]*domain.LandedCostResult, error) {
	if len(scenarios) == 0 {
		return nil, &domain.MissingFieldError{Field: "scenarios", Message: "At least one scenario is required"}
	}
	if len(scenarios) > maxCompareScenarios {
		return nil, &domain.InvalidRangeError{
			Field:   "scenarios",
			Message: fmt.Sprintf("At most %d scenarios can be compared at once", maxCompareScenarios),
		}
	}

	results := make([]*domain.LandedCostResult, len(scenarios))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(compareConcurrency)

	for i, in := range scenarios {
		i, in := i, in
		g.Go(func() error {
			res, err := s.calc.Calculate(in)
			if err != nil {
				return fmt.Errorf("scenario %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SaveQuote resolves benchmark freight rates for the lane (when the caller
// did not supply overrides), runs the engine, and persists the frozen result.
func (s *QuoteService) SaveQuote(ctx context.Context, input ports.SaveQuoteInput) (*ports.SaveQuoteResult, error) {
	shipment := input.Shipment

	if shipment.FreightOverrides == nil && s.rates != nil {
		overrides, err := s.rates.Rates(ctx, shipment.OriginCountry, shipment.DestinationCountry, shipment.ShippingMethod)
		if err != nil {
			// Benchmark rates are an enrichment; fall back to defaults.
			s.logger.Warn().Err(err).
				Str("origin", shipment.OriginCountry).
				Str("destination", shipment.DestinationCountry).
				Msg("benchmark rate lookup failed, using default rates")
		} else {
			shipment.FreightOverrides = overrides
		}
	}

	result, err := s.calc.Calculate(shipment)
	if err != nil {
		return nil, err
	}

	inputJSON, err := json.Marshal(shipment)
	if err != nil {
		return nil, fmt.Errorf("save quote: encode input: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("save quote: encode result: %w", err)
	}

	quote := &domain.Quote{
		ID:                 generateQuoteID(),
		BuyerID:            input.BuyerID,
		ProductName:        shipment.ProductName,
		HSCode:             shipment.HSCode,
		OriginCountry:      shipment.OriginCountry,
		DestinationCountry: shipment.DestinationCountry,
		ShippingMethod:     shipment.ShippingMethod,
		Incoterm:           shipment.Incoterm,
		Quantity:           shipment.Quantity,
		Currency:           shipment.Currency,
		TotalLandedCost:    result.Totals.TotalLandedCost,
		CostPerUnit:        result.Totals.CostPerUnit,
		CalculationVersion: result.CalculationVersion,
		CreatedAt:          time.Now().UTC(),
		Input:              inputJSON,
		Result:             resultJSON,
	}

	if err := s.repo.Create(ctx, quote); err != nil {
		s.logger.Error().Err(err).Msg("failed to store quote")
		return nil, err
	}

	s.logger.Info().
		Str("quote_id", quote.ID).
		Str("buyer_id", input.BuyerID).
		Float64("total", quote.TotalLandedCost).
		Msg("quote saved")

	return &ports.SaveQuoteResult{
		QuoteID:   quote.ID,
		CreatedAt: quote.CreatedAt,
		Result:    result,
	}, nil
}

// GetQuote retrieves a stored quote. Buyers only see their own quotes; the
// repository enforces the filter so an unauthorized id reads as not found.
func (s *QuoteService) GetQuote(ctx context.Context, input ports.GetQuoteInput) (*ports.QuoteDetail, error) {
	buyerFilter := ""
	if input.Role != domain.RoleAdmin {
		buyerFilter = input.BuyerID
	}

	quote, err := s.repo.FindByID(ctx, input.QuoteID, buyerFilter)
	if err != nil {
		return nil, err
	}

	return &ports.QuoteDetail{
		Quote:  *quote,
		Result: json.RawMessage(quote.Result),
	}, nil
}

// ListQuotes returns a page of quote summaries, scoped to the caller's buyer
// id unless the caller is an admin.
func (s *QuoteService) ListQuotes(ctx context.Context, input ports.ListQuotesInput) (*ports.ListQuotesResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	buyerFilter := ""
	if input.Role != domain.RoleAdmin {
		buyerFilter = input.BuyerID
	}

	items, total, err := s.repo.List(ctx, ports.ListQuotesFilter{
		BuyerID:            buyerFilter,
		DestinationCountry: input.DestinationCountry,
		ShippingMethod:     input.ShippingMethod,
		Search:             input.Search,
		Page:               page,
		Limit:              limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	result := &ports.ListQuotesResult{
		Items:      make([]domain.Quote, 0, len(items)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
	for _, q := range items {
		result.Items = append(result.Items, *q)
	}
	return result, nil
}

// generateQuoteID returns a unique quote id in the format LCQ-XXXXXXXXXXXX.
func generateQuoteID() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("LCQ-%012X", time.Now().UnixNano())
	}
	return fmt.Sprintf("LCQ-%012X", b)
}
