package domain

// FeeBand is a percentage fee clamped to a min/max amount, e.g. the US
// merchandise processing fee.
type FeeBand struct {
	Rate float64 `json:"rate"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// FlatFee is an unbounded percentage fee, e.g. the US harbor maintenance fee.
type FlatFee struct {
	Rate float64 `json:"rate"`
}

// CountryDutyConfig is the destination country's fee schedule. Instances are
// immutable lookup data shared across calculations; never mutated at runtime.
type CountryDutyConfig struct {
	CountryCode string   `json:"countryCode"`
	VATRate     float64  `json:"vatRate"`
	MPF         *FeeBand `json:"mpf,omitempty"`
	HMF         *FlatFee `json:"hmf,omitempty"`
}
