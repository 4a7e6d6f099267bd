package report

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/LumpsRGood/tablet-use-app/pkg/models/domain"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/aggregate"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/normalize"
)

// Export column labels. Ingesting a file that carries these labels round-trips
// the numeric totals, so they double as a recognized input schema.
const (
	ColumnStaff      = "Staff Customer"
	ColumnHandheld   = "Handheld Total"
	ColumnPOS        = "POS Total"
	ColumnPercentage = "Percentage Handheld Use"
)

// Settings contains the tier thresholds applied to report rows
type Settings struct {
	// HighThreshold is the minimum percentage for the high tier (default: 70)
	HighThreshold decimal.Decimal
	// MidThreshold is the minimum percentage for the mid tier (default: 50)
	MidThreshold decimal.Decimal
}

// DefaultSettings returns the default tier thresholds
func DefaultSettings() Settings {
	return Settings{
		HighThreshold: decimal.NewFromInt(70),
		MidThreshold:  decimal.NewFromInt(50),
	}
}

// TierFor bands a percentage. The summary tier is never returned here; it is
// reserved for the overall row and assigned during composition.
func (s Settings) TierFor(pct decimal.Decimal) domain.Tier {
	switch {
	case pct.GreaterThanOrEqual(s.HighThreshold):
		return domain.TierHigh
	case pct.GreaterThanOrEqual(s.MidThreshold):
		return domain.TierMid
	default:
		return domain.TierLow
	}
}

// Processor runs the whole pipeline: normalization, aggregation and
// composition of the display report plus its flat export.
type Processor interface {
	Process(raws []domain.RawRecord) (domain.Report, domain.ExportTable)
}

type processor struct {
	settings Settings
}

func NewProcessor(settings Settings) Processor {
	return &processor{settings: settings}
}

func (p *processor) Process(raws []domain.RawRecord) (domain.Report, domain.ExportTable) {
	records := normalize.Records(raws)
	summaries := aggregate.Summarize(records)
	rep := p.compose(summaries, aggregate.Overall(summaries))
	return rep, Export(rep)
}

// compose orders staff rows by percentage descending, stable on input order,
// tags each with its tier and appends the overall summary row last. The
// summary row never takes part in the sort.
func (p *processor) compose(summaries []domain.StaffSummary, overall domain.StaffSummary) domain.Report {
	rows := make([]domain.ReportRow, 0, len(summaries)+1)
	for _, s := range summaries {
		rows = append(rows, domain.ReportRow{StaffSummary: s, Tier: p.settings.TierFor(s.Percentage)})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Percentage.GreaterThan(rows[j].Percentage)
	})

	rows = append(rows, domain.ReportRow{StaffSummary: overall, Tier: domain.TierSummary})
	return domain.Report{Rows: rows}
}

// Export flattens a report into display-formatted cells, summary row last.
func Export(rep domain.Report) domain.ExportTable {
	table := domain.ExportTable{
		Headers: []string{ColumnStaff, ColumnHandheld, ColumnPOS, ColumnPercentage},
		Rows:    make([][]string, 0, len(rep.Rows)),
	}
	for _, row := range rep.Rows {
		table.Rows = append(table.Rows, []string{
			row.Staff,
			FormatMoney(row.Handheld),
			FormatMoney(row.POS),
			FormatPercent(row.Percentage),
		})
	}
	return table
}

// EncodeCSV writes the export table as RFC 4180 CSV, headers first.
func EncodeCSV(w io.Writer, table domain.ExportTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Headers); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatMoney renders a monetary total with thousands separators and exactly
// two decimal places, e.g. "1,234.50". Rounding happens on the decimal before
// the float conversion, so the conversion is exact at report magnitudes.
func FormatMoney(d decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", d.Round(2).InexactFloat64())
}

// FormatPercent renders a percentage with exactly two decimal places and a
// trailing percent sign, e.g. "66.67%".
func FormatPercent(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2) + "%"
}
