package domain

import "github.com/shopspring/decimal"

// OverallStaffLabel is the sentinel staff identifier of the summary row.
const OverallStaffLabel = "Overall Total"

// Tier is the qualitative band a report row falls into. The overall summary
// row is always TierSummary, whatever its percentage.
type Tier string

const (
	TierHigh    Tier = "high"    // percentage >= 70
	TierMid     Tier = "mid"     // 50 <= percentage < 70
	TierLow     Tier = "low"     // percentage < 50
	TierSummary Tier = "summary" // overall total row
)

// StaffSummary aggregates one staff member's sales by device channel.
// Percentage is 100*Handheld/(Handheld+POS) rounded to two decimal places,
// zero when both totals are zero, and clamped to [0,100].
type StaffSummary struct {
	Staff      string
	Handheld   decimal.Decimal
	POS        decimal.Decimal
	Percentage decimal.Decimal
}

// ReportRow is a StaffSummary (or the overall summary) tagged for display.
type ReportRow struct {
	StaffSummary
	Tier Tier
}

// Report is the ordered display output: staff rows sorted by Percentage
// descending, the overall summary row last.
type Report struct {
	Rows []ReportRow
}

// StaffRows returns the per-staff rows, excluding the trailing summary row.
func (r Report) StaffRows() []ReportRow {
	if n := len(r.Rows); n > 0 && r.Rows[n-1].Tier == TierSummary {
		return r.Rows[:n-1]
	}
	return r.Rows
}

// Overall returns the summary row and whether the report carries one.
func (r Report) Overall() (ReportRow, bool) {
	if n := len(r.Rows); n > 0 && r.Rows[n-1].Tier == TierSummary {
		return r.Rows[n-1], true
	}
	return ReportRow{}, false
}

// ExportTable is the flat machine-readable rendition of a Report. Cells are
// display-formatted strings; the numeric values stay on the Report rows.
type ExportTable struct {
	Headers []string
	Rows    [][]string
}
