package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/importwise/landedcost/internal/core/domain"
	"github.com/importwise/landedcost/internal/core/ports"
)

// CalculationVersion tags every result; bump whenever calculation logic changes.
const CalculationVersion = "v1.0.0"

// volumetricFactor converts CBM to volumetric kilograms for air freight.
const volumetricFactor = 167.0

// DefaultRates is the built-in rate table used when the caller supplies no
// benchmark overrides. All amounts are per unit in the shipment currency.
type DefaultRates struct {
	Container20ft     float64
	Container40ft     float64
	SeaLCLPerCBM      float64
	AirPerKg          float64
	ExpressPerKg      float64
	InsuranceRate     float64
	InlandOriginEXW   float64
	InlandDestination float64
}

// StandardRates returns the default rate table.
func StandardRates() DefaultRates {
	return DefaultRates{
		Container20ft:     1500,
		Container40ft:     2500,
		SeaLCLPerCBM:      45,
		AirPerKg:          5,
		ExpressPerKg:      9,
		InsuranceRate:     0.005,
		InlandOriginEXW:   200,
		InlandDestination: 300,
	}
}

// EngineConfig is the immutable configuration injected into a Calculator.
// DataSnapshot records when the rate tables were considered current; it is
// taken when the config is built (per config reload), not at process start,
// so long-running processes can refresh it.
type EngineConfig struct {
	Version      string
	DataSnapshot time.Time
	Rates        DefaultRates
}

// DefaultEngineConfig builds a config with the standard rate table and a
// snapshot timestamp of now.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Version:      CalculationVersion,
		DataSnapshot: time.Now().UTC(),
		Rates:        StandardRates(),
	}
}

// Calculator is the landed cost calculation engine: a deterministic pipeline
// from ShipmentInput to LandedCostResult. It holds only immutable data and
// stateless collaborators, so a single instance is safe for concurrent use.
type Calculator struct {
	cfg     EngineConfig
	duties  ports.CountryDutySource
	tariffs ports.TariffResolver
	logger  zerolog.Logger
}

func NewCalculator(cfg EngineConfig, duties ports.CountryDutySource, tariffs ports.TariffResolver, logger zerolog.Logger) *Calculator {
	if cfg.Version == "" {
		cfg.Version = CalculationVersion
	}
	if cfg.DataSnapshot.IsZero() {
		cfg.DataSnapshot = time.Now().UTC()
	}
	return &Calculator{cfg: cfg, duties: duties, tariffs: tariffs, logger: logger}
}

// Calculate runs the full pipeline. Validation failures and unsupported
// shipping methods abort immediately; no partial result is ever returned.
func (c *Calculator) Calculate(in domain.ShipmentInput) (*domain.LandedCostResult, error) {
	if err := validateShipment(in); err != nil {
		return nil, err
	}

	base := baseCostStage(in)

	freight, err := c.freightStage(in)
	if err != nil {
		return nil, err
	}

	// Two-pass CIF: insurance is priced on the provisional CIF (base +
	// freight), customs on the final CIF which includes the insurance
	// premium. Keep both values named; collapsing them changes every
	// downstream fee.
	cifProvisional := base.NormalizedCost + freight.SelectedCost
	insurance := c.insuranceStage(in, cifProvisional)
	cifFinal := cifProvisional + insurance.Amount

	dutyCfg := c.duties.Lookup(in.DestinationCountry)
	tariffRate := c.tariffs.Rate(in.HSCode, in.OriginCountry, in.DestinationCountry)
	customs := customsStage(cifFinal, dutyCfg, tariffRate)

	inland := c.inlandStage(in)

	result := c.assembleResult(in, base, freight, insurance, customs, inland)

	c.logger.Debug().
		Str("destination", in.DestinationCountry).
		Str("method", string(in.ShippingMethod)).
		Float64("total", result.Totals.TotalLandedCost).
		Msg("landed cost calculated")

	return result, nil
}

// baseCostStage passes the buyer-supplied cost through unchanged. The
// incoterm is recorded as provenance only; no cost scope adjustment happens
// here (under DDP the engine still adds duties and freight on top).
func baseCostStage(in domain.ShipmentInput) domain.BaseCostDetail {
	return domain.BaseCostDetail{
		FOBCost:        in.BaseCost,
		EXWCost:        in.BaseCost,
		NormalizedCost: in.BaseCost,
		Currency:       in.Currency,
		Incoterm:       in.Incoterm,
		Notes: []domain.Note{
			{Category: domain.NoteInfo, Text: "Base cost provided as " + string(in.Incoterm)},
		},
	}
}

// insuranceStage prices insurance on the provisional CIF (insurance excluded
// from its own base).
func (c *Calculator) insuranceStage(in domain.ShipmentInput, cifProvisional float64) domain.InsuranceDetail {
	rate := c.cfg.Rates.InsuranceRate
	note := domain.Note{
		Category: domain.NoteAssumption,
		Text:     "Insurance estimated at " + formatPercent(rate) + " of CIF value",
	}
	if in.InsuranceRate != nil {
		rate = *in.InsuranceRate
		note = domain.Note{
			Category: domain.NoteActual,
			Text:     "Insurance rate of " + formatPercent(rate) + " supplied by caller",
		}
	}
	return domain.InsuranceDetail{
		Rate:     rate,
		Amount:   cifProvisional * rate,
		CIFValue: cifProvisional,
		Notes:    []domain.Note{note},
	}
}

// inlandStage estimates trucking for both legs. Origin defaults to 200 under
// EXW (pickup at the seller's premises) and 0 otherwise (seller delivers to
// port); destination defaults to 300. Caller overrides win on both legs.
func (c *Calculator) inlandStage(in domain.ShipmentInput) domain.InlandTransportDetail {
	var originOverride, destOverride *float64
	if in.Inland != nil {
		originOverride = in.Inland.OriginCost
		destOverride = in.Inland.DestinationCost
	}

	var origin domain.InlandLeg
	switch {
	case originOverride != nil:
		origin = domain.InlandLeg{
			Cost:   *originOverride,
			Source: domain.RateSourceOverride,
			Note:   domain.Note{Category: domain.NoteActual, Text: "Origin inland transport cost supplied by caller"},
		}
	case in.Incoterm == domain.IncotermEXW:
		origin = domain.InlandLeg{
			Cost:   c.cfg.Rates.InlandOriginEXW,
			Source: domain.RateSourceDefault,
			Note:   domain.Note{Category: domain.NoteEstimate, Text: "Origin inland transport estimated for EXW pickup at seller's premises"},
		}
	default:
		origin = domain.InlandLeg{
			Cost:   0,
			Source: domain.RateSourceDefault,
			Note:   domain.Note{Category: domain.NoteInfo, Text: "Seller delivers to origin port under " + string(in.Incoterm) + "; no origin inland transport cost"},
		}
	}

	var dest domain.InlandLeg
	if destOverride != nil {
		dest = domain.InlandLeg{
			Cost:   *destOverride,
			Source: domain.RateSourceOverride,
			Note:   domain.Note{Category: domain.NoteActual, Text: "Destination inland transport cost supplied by caller"},
		}
	} else {
		dest = domain.InlandLeg{
			Cost:   c.cfg.Rates.InlandDestination,
			Source: domain.RateSourceDefault,
			Note:   domain.Note{Category: domain.NoteEstimate, Text: "Destination inland transport estimated from port to final delivery"},
		}
	}

	return domain.InlandTransportDetail{
		Origin:      origin,
		Destination: dest,
		Total:       origin.Cost + dest.Cost,
	}
}
