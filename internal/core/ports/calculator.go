package ports

import (
	"context"

	"github.com/importwise/landedcost/internal/core/domain"
)

// LandedCostCalculator turns one shipment description into a full cost result.
// Implementations must be pure: no I/O, no shared mutable state, safe for
// concurrent use. Externally-fetched data (benchmark rates) is resolved by the
// caller and passed in as plain input fields, which is why Calculate takes no
// context: nothing inside can block.
type LandedCostCalculator interface {
	Calculate(input domain.ShipmentInput) (*domain.LandedCostResult, error)
}

// CountryDutySource resolves a destination country's fee schedule. The static
// in-process table satisfies this today; a real duty-rate service keyed by ISO
// country code can replace it without touching calculation logic.
type CountryDutySource interface {
	// Lookup returns the fee schedule for the country code, falling back to a
	// default schedule for unknown countries. It never fails.
	Lookup(countryCode string) domain.CountryDutyConfig
}

// TariffResolver resolves the import duty rate for a classified good. The
// current implementation returns a flat placeholder rate; a production
// resolver would key on all three arguments.
type TariffResolver interface {
	Rate(hsCode, originCountry, destinationCountry string) float64
}

// FreightRateSource supplies benchmark freight rates from an external service.
// It is consumed at the boundary only: the quote service resolves overrides
// before invoking the calculator, keeping the engine free of I/O.
type FreightRateSource interface {
	// Rates returns benchmark overrides for the lane, or nil when the source
	// is not configured or has no data for the lane.
	Rates(ctx context.Context, originCountry, destinationCountry string, method domain.ShippingMethod) (*domain.FreightOverrides, error)
}
