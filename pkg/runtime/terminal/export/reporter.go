// Package export renders processed reports for the terminal.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LumpsRGood/tablet-use-app/pkg/models/domain"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/report"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	dividerStyle = lipgloss.NewStyle().Faint(true)

	tierStyles = map[domain.Tier]lipgloss.Style{
		domain.TierHigh:    lipgloss.NewStyle().Background(lipgloss.Color("2")).Foreground(lipgloss.Color("15")),
		domain.TierMid:     lipgloss.NewStyle().Background(lipgloss.Color("3")).Foreground(lipgloss.Color("0")),
		domain.TierLow:     lipgloss.NewStyle().Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15")),
		domain.TierSummary: lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15")).Bold(true),
	}
)

// TierStyle returns the style a report row of the given tier is painted with.
// Unrecognized tiers render unstyled.
func TierStyle(tier domain.Tier) lipgloss.Style {
	if style, ok := tierStyles[tier]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Reporter renders a report as a tier-colored table.
type Reporter struct {
	writer  io.Writer
	noColor bool
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

// DisableColor drops the tier styling; the table layout is unchanged.
func (c *Reporter) DisableColor() {
	c.noColor = true
}

func (c *Reporter) Handle(rep domain.Report) error {
	headers := []string{report.ColumnStaff, report.ColumnHandheld, report.ColumnPOS, report.ColumnPercentage}

	rows := make([][]string, 0, len(rep.Rows))
	tiers := make([]domain.Tier, 0, len(rep.Rows))
	for _, row := range rep.Rows {
		rows = append(rows, []string{
			row.Staff,
			report.FormatMoney(row.Handheld),
			report.FormatMoney(row.POS),
			report.FormatPercent(row.Percentage),
		})
		tiers = append(tiers, row.Tier)
	}

	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}
	// Account for the one-cell padding on each side.
	for i := range colWidths {
		colWidths[i] += 2
	}

	header := headerStyle
	divider := dividerStyle
	styleFor := TierStyle
	if c.noColor {
		plain := lipgloss.NewStyle()
		header = plain
		divider = plain
		styleFor = func(domain.Tier) lipgloss.Style { return plain }
	}

	var sb strings.Builder

	for i, h := range headers {
		sb.WriteString(header.Padding(0, 1).Width(colWidths[i]).Align(alignFor(i)).Render(h))
		if i < len(headers)-1 {
			sb.WriteString(divider.Render("|"))
		}
	}
	sb.WriteString("\n")

	totalWidth := len(headers) - 1
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(divider.Render(strings.Repeat("-", totalWidth)))
	sb.WriteString("\n")

	for r, row := range rows {
		style := styleFor(tiers[r])
		for i, cell := range row {
			sb.WriteString(style.Padding(0, 1).Width(colWidths[i]).Align(alignFor(i)).Render(cell))
			if i < len(row)-1 {
				sb.WriteString(divider.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	_, err := fmt.Fprint(c.writer, sb.String())
	return err
}

// alignFor right-aligns every numeric column; only the staff column is text.
func alignFor(col int) lipgloss.Position {
	if col == 0 {
		return lipgloss.Left
	}
	return lipgloss.Right
}
