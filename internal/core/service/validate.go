package service

import (
	"strings"

	"github.com/importwise/landedcost/internal/core/domain"
)

// validateShipment fails fast on the first offending field, in a fixed
// priority order. It is atomic and side-effect-free: no downstream stage runs
// until every check passes.
func validateShipment(in domain.ShipmentInput) error {
	if in.BaseCost <= 0 {
		return &domain.InvalidRangeError{Field: "baseCost", Message: "Base cost must be greater than 0"}
	}
	if in.Quantity <= 0 {
		return &domain.InvalidRangeError{Field: "quantity", Message: "Quantity must be greater than 0"}
	}
	if strings.TrimSpace(in.Currency) == "" {
		return &domain.MissingFieldError{Field: "currency", Message: "Currency is required"}
	}
	if !in.Incoterm.Valid() {
		allowed := make([]string, len(domain.Incoterms))
		for i, t := range domain.Incoterms {
			allowed[i] = string(t)
		}
		return &domain.InvalidEnumError{Field: "incoterm", Value: string(in.Incoterm), Allowed: allowed}
	}
	if strings.TrimSpace(in.OriginCountry) == "" {
		return &domain.MissingFieldError{Field: "originCountry", Message: "Origin country is required"}
	}
	if strings.TrimSpace(in.DestinationCountry) == "" {
		return &domain.MissingFieldError{Field: "destinationCountry", Message: "Destination country is required"}
	}
	if strings.TrimSpace(in.HSCode) == "" {
		return &domain.MissingFieldError{Field: "hsCode", Message: "HS code is required"}
	}
	return nil
}
