package service

import (
	"time"

	"github.com/importwise/landedcost/internal/core/domain"
)

const disclaimer = "All rates are estimates based on snapshot rate tables; confirm with your freight forwarder and customs broker before committing"

// assembleResult sums every component, builds the ordered percentage-annotated
// breakdown, and aggregates the audit notes from all stages.
func (c *Calculator) assembleResult(
	in domain.ShipmentInput,
	base domain.BaseCostDetail,
	freight domain.FreightQuote,
	insurance domain.InsuranceDetail,
	customs domain.CustomsDetail,
	inland domain.InlandTransportDetail,
) *domain.LandedCostResult {
	total := base.NormalizedCost + freight.SelectedCost + customs.TotalCustomsFees + inland.Total + insurance.Amount

	type line struct {
		label       string
		amount      float64
		conditional bool
	}
	lines := []line{
		{label: "Base Cost", amount: base.NormalizedCost},
		{label: "Freight", amount: freight.SelectedCost},
		{label: "Insurance", amount: insurance.Amount},
		{label: "Import Duty", amount: customs.ImportDuty.Amount},
		{label: "VAT/GST", amount: customs.VAT.Amount},
	}
	if customs.MPF != nil {
		lines = append(lines, line{label: "MPF", amount: customs.MPF.Amount, conditional: true})
	}
	if customs.HMF != nil {
		lines = append(lines, line{label: "HMF", amount: customs.HMF.Amount, conditional: true})
	}
	lines = append(lines,
		line{label: "Inland (Origin)", amount: inland.Origin.Cost, conditional: true},
		line{label: "Inland (Destination)", amount: inland.Destination.Cost, conditional: true},
	)

	breakdown := make([]domain.BreakdownItem, 0, len(lines))
	var cumulative float64
	for _, l := range lines {
		if l.conditional && l.amount == 0 {
			continue
		}
		cumulative += l.amount
		breakdown = append(breakdown, domain.BreakdownItem{
			Label:                l.label,
			Amount:               l.amount,
			Percentage:           l.amount / total * 100,
			CumulativeAmount:     cumulative,
			CumulativePercentage: cumulative / total * 100,
		})
	}

	notes := make([]domain.Note, 0, 12)
	notes = append(notes, base.Notes...)
	notes = append(notes, freight.Notes...)
	notes = append(notes, insurance.Notes...)
	notes = append(notes, customs.Notes...)
	notes = append(notes, inland.Origin.Note, inland.Destination.Note)
	notes = append(notes, domain.Note{Category: domain.NoteWarning, Text: disclaimer})

	return &domain.LandedCostResult{
		CalculationVersion:    c.cfg.Version,
		DataSnapshotTimestamp: c.cfg.DataSnapshot,
		CalculationTimestamp:  time.Now().UTC(),
		BaseCost:              base,
		Freight:               freight,
		Customs:               customs,
		InlandTransport:       inland,
		Insurance:             insurance,
		Totals: domain.Totals{
			TotalLandedCost: total,
			CostPerUnit:     total / float64(in.Quantity),
			Currency:        in.Currency,
		},
		Breakdown: breakdown,
		Notes:     notes,
	}
}
