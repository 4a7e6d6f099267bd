package report

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LumpsRGood/tablet-use-app/pkg/models/domain"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestProcessGoldenScenario(t *testing.T) {
	p := NewProcessor(DefaultSettings())

	rep, table := p.Process([]domain.RawRecord{
		{Staff: "Alice", Device: "handheld 2", Base: "10.00"},
		{Staff: "Alice", Device: "POS Terminal", Base: "5.00"},
		{Staff: "Bob", Device: "hand held", Base: "0"},
	})

	require.Len(t, rep.Rows, 3)

	alice := rep.Rows[0]
	assert.Equal(t, "Alice", alice.Staff)
	assert.True(t, alice.Handheld.Equal(dec(t, "10.00")))
	assert.True(t, alice.POS.Equal(dec(t, "5.00")))
	assert.True(t, alice.Percentage.Equal(dec(t, "66.67")))
	assert.Equal(t, domain.TierMid, alice.Tier)

	bob := rep.Rows[1]
	assert.Equal(t, "Bob", bob.Staff)
	assert.True(t, bob.Handheld.IsZero())
	assert.True(t, bob.POS.IsZero())
	assert.True(t, bob.Percentage.IsZero())
	assert.Equal(t, domain.TierLow, bob.Tier)

	overall, ok := rep.Overall()
	require.True(t, ok)
	assert.Equal(t, domain.OverallStaffLabel, overall.Staff)
	assert.True(t, overall.Handheld.Equal(dec(t, "10.00")))
	assert.True(t, overall.POS.Equal(dec(t, "5.00")))
	assert.True(t, overall.Percentage.Equal(dec(t, "66.67")))
	assert.Equal(t, domain.TierSummary, overall.Tier)

	assert.Equal(t, []string{"Staff Customer", "Handheld Total", "POS Total", "Percentage Handheld Use"}, table.Headers)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"Alice", "10.00", "5.00", "66.67%"}, table.Rows[0])
	assert.Equal(t, []string{"Bob", "0.00", "0.00", "0.00%"}, table.Rows[1])
	assert.Equal(t, []string{"Overall Total", "10.00", "5.00", "66.67%"}, table.Rows[2])
}

func TestProcessSortsDescendingWithStableTies(t *testing.T) {
	p := NewProcessor(DefaultSettings())

	rep, _ := p.Process([]domain.RawRecord{
		{Staff: "Ben", Device: "handheld", Base: "1.00"},
		{Staff: "Ben", Device: "pos", Base: "1.00"},
		{Staff: "Amy", Device: "handheld", Base: "2.00"},
		{Staff: "Amy", Device: "pos", Base: "2.00"},
		{Staff: "Cal", Device: "handheld", Base: "3.00"},
		{Staff: "Cal", Device: "pos", Base: "1.00"},
	})

	staff := make([]string, 0, len(rep.Rows))
	for _, row := range rep.Rows {
		staff = append(staff, row.Staff)
	}
	// Cal leads at 75%; Ben and Amy tie at 50% and keep input order.
	assert.Equal(t, []string{"Cal", "Ben", "Amy", domain.OverallStaffLabel}, staff)

	rows := rep.StaffRows()
	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i-1].Percentage.GreaterThanOrEqual(rows[i].Percentage))
	}
}

func TestProcessOverallIsNotMeanOfRows(t *testing.T) {
	p := NewProcessor(DefaultSettings())

	rep, _ := p.Process([]domain.RawRecord{
		{Staff: "Alice", Device: "handheld", Base: "10.00"},
		{Staff: "Bob", Device: "pos", Base: "30.00"},
	})

	overall, ok := rep.Overall()
	require.True(t, ok)
	// 100*10/40, not the 50 a mean of the 100% and 0% rows would give.
	assert.True(t, overall.Percentage.Equal(dec(t, "25")))
}

func TestProcessEmptyInput(t *testing.T) {
	p := NewProcessor(DefaultSettings())

	rep, table := p.Process(nil)

	require.Len(t, rep.Rows, 1)
	overall, ok := rep.Overall()
	require.True(t, ok)
	assert.True(t, overall.Percentage.IsZero())
	assert.Empty(t, rep.StaffRows())

	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"Overall Total", "0.00", "0.00", "0.00%"}, table.Rows[0])
}

func TestProcessRoundTripsOwnExport(t *testing.T) {
	p := NewProcessor(DefaultSettings())

	_, table := p.Process([]domain.RawRecord{
		{Staff: "Ana", Device: "Handheld 1", Base: "1234.50"},
		{Staff: "Ana", Device: "POS 2", Base: "765.50"},
		{Staff: "Luc", Device: "handheld", Base: "10.00"},
	})

	// Feed the export back: the column labels classify as their own channels
	// and the formatted totals must re-parse.
	var again []domain.RawRecord
	for _, row := range table.Rows[:len(table.Rows)-1] {
		again = append(again,
			domain.RawRecord{Staff: row[0], Device: ColumnHandheld, Base: row[1]},
			domain.RawRecord{Staff: row[0], Device: ColumnPOS, Base: row[2]},
		)
	}

	_, table2 := p.Process(again)
	assert.Equal(t, table, table2)
}

func TestSettingsTierFor(t *testing.T) {
	s := DefaultSettings()

	tests := []struct {
		pct  string
		want domain.Tier
	}{
		{pct: "100", want: domain.TierHigh},
		{pct: "70", want: domain.TierHigh},
		{pct: "69.99", want: domain.TierMid},
		{pct: "50", want: domain.TierMid},
		{pct: "49.99", want: domain.TierLow},
		{pct: "0", want: domain.TierLow},
	}

	for _, tt := range tests {
		t.Run(tt.pct, func(t *testing.T) {
			assert.Equal(t, tt.want, s.TierFor(dec(t, tt.pct)))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0.00"},
		{in: "10", want: "10.00"},
		{in: "5.5", want: "5.50"},
		{in: "1234.5", want: "1,234.50"},
		{in: "1234567.891", want: "1,234,567.89"},
		{in: "-1234.5", want: "-1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(dec(t, tt.in)))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "66.67%", FormatPercent(dec(t, "66.67")))
	assert.Equal(t, "0.00%", FormatPercent(dec(t, "0")))
	assert.Equal(t, "100.00%", FormatPercent(dec(t, "100")))
}

func TestEncodeCSV(t *testing.T) {
	table := domain.ExportTable{
		Headers: []string{ColumnStaff, ColumnHandheld, ColumnPOS, ColumnPercentage},
		Rows: [][]string{
			{"Ana", "1,234.50", "765.50", "61.73%"},
			{"Overall Total", "1,234.50", "765.50", "61.73%"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, table))

	want := "Staff Customer,Handheld Total,POS Total,Percentage Handheld Use\n" +
		"Ana,\"1,234.50\",765.50,61.73%\n" +
		"Overall Total,\"1,234.50\",765.50,61.73%\n"
	assert.Equal(t, want, buf.String())
}
