// Package duty provides the in-process implementations of the country duty
// schedule lookup and the tariff resolver. Both are placeholders for real
// data services and are swappable behind their ports without touching the
// calculation engine.
package duty

import (
	"strings"

	"github.com/importwise/landedcost/internal/core/domain"
)

// defaultVATRate applies to countries missing from the table.
const defaultVATRate = 0.15

// countryTable is immutable lookup data, loaded once and never mutated.
var countryTable = map[string]domain.CountryDutyConfig{
	"US": {
		CountryCode: "US",
		VATRate:     0,
		MPF:         &domain.FeeBand{Rate: 0.003464, Min: 27.75, Max: 538.40},
		HMF:         &domain.FlatFee{Rate: 0.00125},
	},
	"GB": {CountryCode: "GB", VATRate: 0.20},
	"UK": {CountryCode: "UK", VATRate: 0.20},
	"DE": {CountryCode: "DE", VATRate: 0.19},
	"FR": {CountryCode: "FR", VATRate: 0.20},
}

// StaticSource serves country fee schedules from the built-in table.
type StaticSource struct{}

func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

// Lookup returns the fee schedule for the country code. Unknown countries get
// the default VAT rate with no MPF/HMF.
func (s *StaticSource) Lookup(countryCode string) domain.CountryDutyConfig {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if cfg, ok := countryTable[code]; ok {
		return cfg
	}
	return domain.CountryDutyConfig{CountryCode: code, VATRate: defaultVATRate}
}

// FlatTariffResolver returns the same duty rate for every good. It stands in
// until a resolver keyed by HS code, origin and destination is supplied.
type FlatTariffResolver struct {
	rate float64
}

// NewFlatTariffResolver builds a resolver with the given ad-valorem rate.
// Rate 0 falls back to the standard 5% placeholder.
func NewFlatTariffResolver(rate float64) *FlatTariffResolver {
	if rate <= 0 {
		rate = 0.05
	}
	return &FlatTariffResolver{rate: rate}
}

func (r *FlatTariffResolver) Rate(_, _, _ string) float64 {
	return r.rate
}
