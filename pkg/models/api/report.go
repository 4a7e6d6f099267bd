package api

type Tier string

const (
	TierHigh    Tier = "high"
	TierMid     Tier = "mid"
	TierLow     Tier = "low"
	TierSummary Tier = "summary"
)

// ReportRow carries the machine-usable numbers plus the display strings, so
// clients never have to re-derive formatting or parse it back.
type ReportRow struct {
	Staff             string  `json:"staff"`
	Handheld          float64 `json:"handheld"`
	POS               float64 `json:"pos"`
	Percentage        float64 `json:"percentage"`
	HandheldDisplay   string  `json:"handheld_display"`
	POSDisplay        string  `json:"pos_display"`
	PercentageDisplay string  `json:"percentage_display"`
	Tier              Tier    `json:"tier"`
}

type Report struct {
	ID      string      `json:"id"`
	Rows    []ReportRow `json:"rows"`
	Overall ReportRow   `json:"overall"`
}

type Profiles struct {
	Profiles []string `json:"profiles"`
}
