package domain

// Incoterm identifies which party bears which costs up to which point in the
// shipment's journey. The engine does not adjust cost scope by incoterm; it
// only records provenance (see BaseCostDetail notes).
type Incoterm string

const (
	IncotermFOB Incoterm = "FOB"
	IncotermEXW Incoterm = "EXW"
	IncotermCIF Incoterm = "CIF"
	IncotermDDP Incoterm = "DDP"
)

// Incoterms lists every accepted value, in the order used for error messages.
var Incoterms = []Incoterm{IncotermFOB, IncotermEXW, IncotermCIF, IncotermDDP}

// Valid reports whether the incoterm is one of the accepted values.
func (i Incoterm) Valid() bool {
	for _, v := range Incoterms {
		if i == v {
			return true
		}
	}
	return false
}

// ShippingMethod selects exactly one freight pricing branch.
type ShippingMethod string

const (
	MethodSeaFCL  ShippingMethod = "sea_fcl"
	MethodSeaLCL  ShippingMethod = "sea_lcl"
	MethodAir     ShippingMethod = "air"
	MethodExpress ShippingMethod = "express"
)

// ContainerType is the FCL container size. Only meaningful for sea_fcl.
type ContainerType string

const (
	Container20ft ContainerType = "20ft"
	Container40ft ContainerType = "40ft"
)

// Dimensions is the package size in centimeters.
type Dimensions struct {
	LengthCm float64 `json:"lengthCm"`
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`
}

// CBM converts the dimensions to cubic meters.
func (d Dimensions) CBM() float64 {
	return d.LengthCm * d.WidthCm * d.HeightCm / 1_000_000
}

// FreightOverrides carries per-method unit rates supplied by an external
// freight benchmark service. Nil fields fall back to the default rate tables.
// The engine never fetches these itself; the caller resolves them up front.
type FreightOverrides struct {
	Container20ft *float64 `json:"container20ft,omitempty"`
	Container40ft *float64 `json:"container40ft,omitempty"`
	PerCBM        *float64 `json:"perCbm,omitempty"`
	AirPerKg      *float64 `json:"airPerKg,omitempty"`
	ExpressPerKg  *float64 `json:"expressPerKg,omitempty"`
}

// InlandOverrides carries caller-supplied trucking costs for either leg.
type InlandOverrides struct {
	OriginCost      *float64 `json:"originCost,omitempty"`
	DestinationCost *float64 `json:"destinationCost,omitempty"`
}

// ShipmentInput is the full description of one sourcing scenario. It is built
// once per request by the caller and never mutated by the engine.
type ShipmentInput struct {
	ProductName        string         `json:"productName"`
	HSCode             string         `json:"hsCode"`
	Category           string         `json:"category,omitempty"`
	BaseCost           float64        `json:"baseCost"`
	Incoterm           Incoterm       `json:"incoterm"`
	Quantity           int            `json:"quantity"`
	Currency           string         `json:"currency"`
	OriginCountry      string         `json:"originCountry"`
	DestinationCountry string         `json:"destinationCountry"`
	OriginPort         string         `json:"originPort,omitempty"`
	DestinationPort    string         `json:"destinationPort,omitempty"`
	ShippingMethod     ShippingMethod `json:"shippingMethod"`
	ContainerType      ContainerType  `json:"containerType,omitempty"`
	WeightKg           float64        `json:"weightKg,omitempty"`
	VolumeCBM          float64        `json:"volumeCbm,omitempty"`
	Dimensions         *Dimensions    `json:"dimensions,omitempty"`

	InsuranceRate    *float64          `json:"insuranceRate,omitempty"`
	Inland           *InlandOverrides  `json:"inlandOverrides,omitempty"`
	FreightOverrides *FreightOverrides `json:"freightOverrides,omitempty"`
}

// EffectiveVolumeCBM returns the shipment volume: the explicit CBM value when
// set, otherwise the volume derived from dimensions, otherwise 0.
func (in ShipmentInput) EffectiveVolumeCBM() float64 {
	if in.VolumeCBM > 0 {
		return in.VolumeCBM
	}
	if in.Dimensions != nil {
		return in.Dimensions.CBM()
	}
	return 0
}
