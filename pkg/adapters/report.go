package adapters

import (
	"github.com/LumpsRGood/tablet-use-app/pkg/models/api"
	"github.com/LumpsRGood/tablet-use-app/pkg/models/domain"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/report"
)

func MapReportDomainToApi(id string, rep domain.Report) api.Report {
	out := api.Report{
		ID:   id,
		Rows: []api.ReportRow{},
	}
	for _, row := range rep.StaffRows() {
		out.Rows = append(out.Rows, MapReportRowDomainToApi(row))
	}
	if overall, ok := rep.Overall(); ok {
		out.Overall = MapReportRowDomainToApi(overall)
	}
	return out
}

func MapReportRowDomainToApi(row domain.ReportRow) api.ReportRow {
	return api.ReportRow{
		Staff:             row.Staff,
		Handheld:          row.Handheld.Round(2).InexactFloat64(),
		POS:               row.POS.Round(2).InexactFloat64(),
		Percentage:        row.Percentage.InexactFloat64(),
		HandheldDisplay:   report.FormatMoney(row.Handheld),
		POSDisplay:        report.FormatMoney(row.POS),
		PercentageDisplay: report.FormatPercent(row.Percentage),
		Tier:              api.Tier(row.Tier),
	}
}
