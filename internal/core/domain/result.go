package domain

import (
	"encoding/json"
	"time"
)

// NoteCategory tags an audit note with how much weight the reader should give it.
type NoteCategory string

const (
	NoteInfo       NoteCategory = "info"
	NoteWarning    NoteCategory = "warning"
	NoteAssumption NoteCategory = "assumption"
	NoteEstimate   NoteCategory = "estimate"
	NoteActual     NoteCategory = "actual"
)

// Note is one entry in the calculation's audit trail.
type Note struct {
	Category NoteCategory `json:"category"`
	Text     string       `json:"text"`
}

// RateSource records where a unit rate came from.
const (
	RateSourceDefault   = "default"
	RateSourceBenchmark = "benchmark"
	RateSourceOverride  = "override"
)

// BaseCostDetail carries the buyer-supplied cost through unchanged. All three
// cost fields are identical; the incoterm affects provenance notes only.
type BaseCostDetail struct {
	FOBCost        float64  `json:"fobCost"`
	EXWCost        float64  `json:"exwCost"`
	NormalizedCost float64  `json:"normalizedCost"`
	Currency       string   `json:"currency"`
	Incoterm       Incoterm `json:"incoterm"`
	Notes          []Note   `json:"notes"`
}

// FreightDetail is the method-specific freight breakdown. Exactly one concrete
// shape exists per quote; the closed interface makes "two details populated at
// once" unrepresentable.
type FreightDetail interface {
	Method() ShippingMethod
	isFreightDetail()
}

// OceanFCLDetail prices a full container at a flat per-container rate.
type OceanFCLDetail struct {
	ContainerType ContainerType `json:"containerType"`
	Rate          float64       `json:"rate"`
	RateSource    string        `json:"rateSource"`
}

func (OceanFCLDetail) Method() ShippingMethod { return MethodSeaFCL }
func (OceanFCLDetail) isFreightDetail()       {}

// OceanLCLDetail prices loose cargo by volume.
type OceanLCLDetail struct {
	VolumeCBM  float64 `json:"volumeCbm"`
	PerCBMRate float64 `json:"perCbmRate"`
	RateSource string  `json:"rateSource"`
}

func (OceanLCLDetail) Method() ShippingMethod { return MethodSeaLCL }
func (OceanLCLDetail) isFreightDetail()       {}

// AirFreightDetail prices by chargeable weight: the greater of actual and
// volumetric weight (volume x 167).
type AirFreightDetail struct {
	ActualWeightKg     float64 `json:"actualWeightKg"`
	VolumetricWeightKg float64 `json:"volumetricWeightKg"`
	ChargeableWeightKg float64 `json:"chargeableWeightKg"`
	PerKgRate          float64 `json:"perKgRate"`
	RateSource         string  `json:"rateSource"`
}

func (AirFreightDetail) Method() ShippingMethod { return MethodAir }
func (AirFreightDetail) isFreightDetail()       {}

// ExpressDetail prices courier freight by actual weight.
type ExpressDetail struct {
	ActualWeightKg float64 `json:"actualWeightKg"`
	PerKgRate      float64 `json:"perKgRate"`
	RateSource     string  `json:"rateSource"`
}

func (ExpressDetail) Method() ShippingMethod { return MethodExpress }
func (ExpressDetail) isFreightDetail()       {}

// FreightQuote is the freight stage output: the selected cost plus exactly one
// method-specific detail.
type FreightQuote struct {
	SelectedCost float64
	Detail       FreightDetail
	Notes        []Note
}

// MarshalJSON renders the quote with a method discriminator and a single
// detail object keyed by method; the other detail keys are absent entirely.
func (q FreightQuote) MarshalJSON() ([]byte, error) {
	out := struct {
		Method       ShippingMethod    `json:"method"`
		SelectedCost float64           `json:"selectedCost"`
		OceanFCL     *OceanFCLDetail   `json:"oceanFCL,omitempty"`
		OceanLCL     *OceanLCLDetail   `json:"oceanLCL,omitempty"`
		AirFreight   *AirFreightDetail `json:"airFreight,omitempty"`
		Express      *ExpressDetail    `json:"express,omitempty"`
		Notes        []Note            `json:"notes"`
	}{
		SelectedCost: q.SelectedCost,
		Notes:        q.Notes,
	}
	switch d := q.Detail.(type) {
	case OceanFCLDetail:
		out.Method, out.OceanFCL = d.Method(), &d
	case OceanLCLDetail:
		out.Method, out.OceanLCL = d.Method(), &d
	case AirFreightDetail:
		out.Method, out.AirFreight = d.Method(), &d
	case ExpressDetail:
		out.Method, out.Express = d.Method(), &d
	}
	return json.Marshal(out)
}

// ImportDutyDetail is the ad-valorem duty line.
type ImportDutyDetail struct {
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// VATDetail is the VAT/GST line. BaseValue = cifFinal + import duty.
type VATDetail struct {
	Rate      float64 `json:"rate"`
	BaseValue float64 `json:"baseValue"`
	Amount    float64 `json:"amount"`
}

// MPFDetail is the merchandise processing fee line, clamped to [Min, Max].
type MPFDetail struct {
	Rate    float64 `json:"rate"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Amount  float64 `json:"amount"`
	Clamped bool    `json:"clamped"`
}

// HMFDetail is the harbor maintenance fee line.
type HMFDetail struct {
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// CustomsDetail aggregates every customs line. CIFValue is the
// insurance-inclusive CIF the fees were computed from.
type CustomsDetail struct {
	CIFValue         float64          `json:"cifValue"`
	ImportDuty       ImportDutyDetail `json:"importDuty"`
	VAT              VATDetail        `json:"vat"`
	MPF              *MPFDetail       `json:"mpf,omitempty"`
	HMF              *HMFDetail       `json:"hmf,omitempty"`
	TotalCustomsFees float64          `json:"totalCustomsFees"`
	Notes            []Note           `json:"notes"`
}

// InsuranceDetail is the insurance stage output. CIFValue is the provisional
// CIF (base + freight, insurance excluded) the premium was computed from.
type InsuranceDetail struct {
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
	CIFValue float64 `json:"cifValue"`
	Notes    []Note  `json:"notes"`
}

// InlandLeg is one trucking leg with its cost provenance.
type InlandLeg struct {
	Cost   float64 `json:"cost"`
	Source string  `json:"source"`
	Note   Note    `json:"note"`
}

// InlandTransportDetail covers origin and destination trucking.
type InlandTransportDetail struct {
	Origin      InlandLeg `json:"origin"`
	Destination InlandLeg `json:"destination"`
	Total       float64   `json:"total"`
}

// Totals is the grand total and per-unit cost.
type Totals struct {
	TotalLandedCost float64 `json:"totalLandedCost"`
	CostPerUnit     float64 `json:"costPerUnit"`
	Currency        string  `json:"currency"`
}

// BreakdownItem is one row of the itemized breakdown. Cumulative columns are
// running sums in breakdown order; the final row equals the totals.
type BreakdownItem struct {
	Label                string  `json:"label"`
	Amount               float64 `json:"amount"`
	Percentage           float64 `json:"percentage"`
	CumulativeAmount     float64 `json:"cumulativeAmount"`
	CumulativePercentage float64 `json:"cumulativePercentage"`
}

// LandedCostResult is the complete calculation output. It is a value, not a
// record: the engine never persists it.
type LandedCostResult struct {
	CalculationVersion    string    `json:"calculationVersion"`
	DataSnapshotTimestamp time.Time `json:"dataSnapshotTimestamp"`
	CalculationTimestamp  time.Time `json:"calculationTimestamp"`

	BaseCost        BaseCostDetail        `json:"baseCost"`
	Freight         FreightQuote          `json:"freight"`
	Customs         CustomsDetail         `json:"customs"`
	InlandTransport InlandTransportDetail `json:"inlandTransport"`
	Insurance       InsuranceDetail       `json:"insurance"`
	Totals          Totals                `json:"totals"`
	Breakdown       []BreakdownItem       `json:"breakdown"`
	Notes           []Note                `json:"notes"`
}
