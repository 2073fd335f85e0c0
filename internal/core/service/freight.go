package service

import (
	"fmt"

	"github.com/importwise/landedcost/internal/core/domain"
)

// freightStage computes shipping cost via exactly one of the four methods.
// Benchmark overrides, when supplied by the caller, win over the default rate
// table. Any other method value aborts the pipeline.
func (c *Calculator) freightStage(in domain.ShipmentInput) (domain.FreightQuote, error) {
	switch in.ShippingMethod {
	case domain.MethodSeaFCL:
		return c.oceanFCL(in), nil
	case domain.MethodSeaLCL:
		return c.oceanLCL(in), nil
	case domain.MethodAir:
		return c.airFreight(in), nil
	case domain.MethodExpress:
		return c.express(in), nil
	default:
		return domain.FreightQuote{}, &domain.UnsupportedShippingMethodError{Method: string(in.ShippingMethod)}
	}
}

func (c *Calculator) oceanFCL(in domain.ShipmentInput) domain.FreightQuote {
	ct := in.ContainerType
	notes := []domain.Note{}
	if ct != domain.Container20ft && ct != domain.Container40ft {
		ct = domain.Container40ft
		notes = append(notes, domain.Note{
			Category: domain.NoteAssumption,
			Text:     "Container type not specified; assumed 40ft",
		})
	}

	rate := c.cfg.Rates.Container40ft
	override := overrideFor(in.FreightOverrides, domain.Container40ft)
	if ct == domain.Container20ft {
		rate = c.cfg.Rates.Container20ft
		override = overrideFor(in.FreightOverrides, domain.Container20ft)
	}

	source := domain.RateSourceDefault
	category := domain.NoteEstimate
	if override != nil {
		rate = *override
		source = domain.RateSourceBenchmark
		category = domain.NoteActual
	}

	notes = append(notes, domain.Note{
		Category: category,
		Text:     fmt.Sprintf("Ocean FCL %s container at %.2f (%s rate)", ct, rate, source),
	})

	return domain.FreightQuote{
		SelectedCost: rate,
		Detail:       domain.OceanFCLDetail{ContainerType: ct, Rate: rate, RateSource: source},
		Notes:        notes,
	}
}

func (c *Calculator) oceanLCL(in domain.ShipmentInput) domain.FreightQuote {
	vol := in.EffectiveVolumeCBM()
	notes := []domain.Note{}
	if vol <= 0 {
		vol = 1
		notes = append(notes, domain.Note{
			Category: domain.NoteAssumption,
			Text:     "Volume not specified; assumed 1 CBM",
		})
	}

	rate := c.cfg.Rates.SeaLCLPerCBM
	source := domain.RateSourceDefault
	category := domain.NoteEstimate
	if in.FreightOverrides != nil && in.FreightOverrides.PerCBM != nil {
		rate = *in.FreightOverrides.PerCBM
		source = domain.RateSourceBenchmark
		category = domain.NoteActual
	}

	notes = append(notes, domain.Note{
		Category: category,
		Text:     fmt.Sprintf("Ocean LCL %.2f CBM at %.2f per CBM (%s rate)", vol, rate, source),
	})

	return domain.FreightQuote{
		SelectedCost: vol * rate,
		Detail:       domain.OceanLCLDetail{VolumeCBM: vol, PerCBMRate: rate, RateSource: source},
		Notes:        notes,
	}
}

func (c *Calculator) airFreight(in domain.ShipmentInput) domain.FreightQuote {
	volumetric := in.EffectiveVolumeCBM() * volumetricFactor
	chargeable := in.WeightKg
	if volumetric > chargeable {
		chargeable = volumetric
	}

	rate := c.cfg.Rates.AirPerKg
	source := domain.RateSourceDefault
	category := domain.NoteEstimate
	if in.FreightOverrides != nil && in.FreightOverrides.AirPerKg != nil {
		rate = *in.FreightOverrides.AirPerKg
		source = domain.RateSourceBenchmark
		category = domain.NoteActual
	}

	notes := []domain.Note{{
		Category: category,
		Text:     fmt.Sprintf("Air freight chargeable weight %.2f kg at %.2f per kg (%s rate)", chargeable, rate, source),
	}}
	if volumetric > in.WeightKg {
		notes = append(notes, domain.Note{
			Category: domain.NoteInfo,
			Text:     fmt.Sprintf("Volumetric weight %.2f kg exceeds actual weight %.2f kg", volumetric, in.WeightKg),
		})
	}

	return domain.FreightQuote{
		SelectedCost: chargeable * rate,
		Detail: domain.AirFreightDetail{
			ActualWeightKg:     in.WeightKg,
			VolumetricWeightKg: volumetric,
			ChargeableWeightKg: chargeable,
			PerKgRate:          rate,
			RateSource:         source,
		},
		Notes: notes,
	}
}

func (c *Calculator) express(in domain.ShipmentInput) domain.FreightQuote {
	rate := c.cfg.Rates.ExpressPerKg
	source := domain.RateSourceDefault
	category := domain.NoteEstimate
	if in.FreightOverrides != nil && in.FreightOverrides.ExpressPerKg != nil {
		rate = *in.FreightOverrides.ExpressPerKg
		source = domain.RateSourceBenchmark
		category = domain.NoteActual
	}

	return domain.FreightQuote{
		SelectedCost: in.WeightKg * rate,
		Detail:       domain.ExpressDetail{ActualWeightKg: in.WeightKg, PerKgRate: rate, RateSource: source},
		Notes: []domain.Note{{
			Category: category,
			Text:     fmt.Sprintf("Express courier %.2f kg at %.2f per kg (%s rate)", in.WeightKg, rate, source),
		}},
	}
}

func overrideFor(o *domain.FreightOverrides, ct domain.ContainerType) *float64 {
	if o == nil {
		return nil
	}
	if ct == domain.Container20ft {
		return o.Container20ft
	}
	return o.Container40ft
}
