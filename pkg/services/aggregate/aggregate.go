package aggregate

import (
	"github.com/LumpsRGood/tablet-use-app/pkg/models/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summarize groups normalized records by staff label in first-encounter
// order and sums the monetary totals per channel. Unknown-channel amounts
// count toward neither total, but the staff member still gets a row.
func Summarize(records []domain.SalesRecord) []domain.StaffSummary {
	index := make(map[string]int, len(records))
	summaries := make([]domain.StaffSummary, 0, len(records))

	for _, rec := range records {
		i, ok := index[rec.Staff]
		if !ok {
			i = len(summaries)
			index[rec.Staff] = i
			summaries = append(summaries, domain.StaffSummary{Staff: rec.Staff})
		}
		switch rec.Channel {
		case domain.ChannelHandheld:
			summaries[i].Handheld = summaries[i].Handheld.Add(rec.Amount)
		case domain.ChannelPOS:
			summaries[i].POS = summaries[i].POS.Add(rec.Amount)
		}
	}

	for i := range summaries {
		summaries[i].Percentage = Percentage(summaries[i].Handheld, summaries[i].POS)
	}
	return summaries
}

// Overall recomputes the report-wide summary from the summed channel totals,
// not from the per-staff percentages.
func Overall(summaries []domain.StaffSummary) domain.StaffSummary {
	total := domain.StaffSummary{Staff: domain.OverallStaffLabel}
	for _, s := range summaries {
		total.Handheld = total.Handheld.Add(s.Handheld)
		total.POS = total.POS.Add(s.POS)
	}
	total.Percentage = Percentage(total.Handheld, total.POS)
	return total
}

// Percentage is the handheld share of the combined channel totals, rounded
// to two decimal places half away from zero and clamped to [0, 100]. A zero
// denominator yields zero rather than an error.
func Percentage(handheld, pos decimal.Decimal) decimal.Decimal {
	sum := handheld.Add(pos)
	if sum.IsZero() {
		return decimal.Zero
	}

	pct := handheld.Mul(hundred).DivRound(sum, 2)
	switch {
	case pct.IsNegative():
		return decimal.Zero
	case pct.GreaterThan(hundred):
		return hundred
	default:
		return pct
	}
}
