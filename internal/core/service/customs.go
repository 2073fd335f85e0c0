package service

import (
	"fmt"

	"github.com/importwise/landedcost/internal/core/domain"
)

// customsStage computes import duty, VAT and any country-specific tiered fees.
// cifFinal must be the insurance-inclusive CIF: base + freight + insurance.
func customsStage(cifFinal float64, cfg domain.CountryDutyConfig, tariffRate float64) domain.CustomsDetail {
	duty := domain.ImportDutyDetail{
		Rate:   tariffRate,
		Amount: cifFinal * tariffRate,
	}

	vatBase := cifFinal + duty.Amount
	vat := domain.VATDetail{
		Rate:      cfg.VATRate,
		BaseValue: vatBase,
		Amount:    vatBase * cfg.VATRate,
	}

	notes := []domain.Note{
		{Category: domain.NoteInfo, Text: "Import duty applied at " + formatPercent(tariffRate)},
		{Category: domain.NoteInfo, Text: "VAT/GST applied at " + formatPercent(cfg.VATRate) + " for " + cfg.CountryCode},
	}

	detail := domain.CustomsDetail{
		CIFValue:   cifFinal,
		ImportDuty: duty,
		VAT:        vat,
	}
	total := duty.Amount + vat.Amount

	if cfg.MPF != nil {
		raw := cifFinal * cfg.MPF.Rate
		amount, clamped := clamp(raw, cfg.MPF.Min, cfg.MPF.Max)
		detail.MPF = &domain.MPFDetail{
			Rate:    cfg.MPF.Rate,
			Min:     cfg.MPF.Min,
			Max:     cfg.MPF.Max,
			Amount:  amount,
			Clamped: clamped,
		}
		total += amount
		text := "MPF applied"
		if clamped {
			text = fmt.Sprintf("MPF applied (clamped to the %.2f..%.2f band)", cfg.MPF.Min, cfg.MPF.Max)
		}
		notes = append(notes, domain.Note{Category: domain.NoteInfo, Text: text})
	}

	if cfg.HMF != nil {
		detail.HMF = &domain.HMFDetail{
			Rate:   cfg.HMF.Rate,
			Amount: cifFinal * cfg.HMF.Rate,
		}
		total += detail.HMF.Amount
		notes = append(notes, domain.Note{Category: domain.NoteInfo, Text: "HMF applied at " + formatPercent(cfg.HMF.Rate)})
	}

	detail.TotalCustomsFees = total
	detail.Notes = notes
	return detail
}

// clamp bounds v to [min, max] and reports whether clamping occurred.
func clamp(v, min, max float64) (float64, bool) {
	if v < min {
		return min, true
	}
	if v > max {
		return max, true
	}
	return v, false
}

func formatPercent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}
