package normalize

import (
	"strings"

	"github.com/LumpsRGood/tablet-use-app/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Device label aliases that carry no recognizable keyword on their own.
// Matched against the whole lowercased, trimmed label before the keyword
// scan, so "hand held" classifies as handheld while "hand held 2" does not
// gain anything it would not get from the scan.
var deviceAliases = map[string]string{
	"hand held":    "handheld",
	"pos terminal": "pos",
}

const (
	keywordHandheld = "handheld"
	keywordPOS      = "pos"
)

// Header repairs one column label: embedded line breaks and runs of
// whitespace collapse to single spaces, surrounding whitespace is dropped.
func Header(label string) string {
	return strings.Join(strings.Fields(label), " ")
}

// Headers repairs every label in place-order. Unrecognized labels are the
// caller's concern; repair never fails.
func Headers(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = Header(l)
	}
	return out
}

// Classify maps a free-form device orders label onto a channel. The label is
// lowercased and trimmed, full-string aliases are applied, then the text is
// scanned for the handheld/pos keywords; the leftmost match wins. Labels
// matching neither keyword classify as unknown, never as an error.
func Classify(label string) domain.Channel {
	s := strings.ToLower(strings.TrimSpace(label))
	if alias, ok := deviceAliases[s]; ok {
		s = alias
	}

	hh := strings.Index(s, keywordHandheld)
	pos := strings.Index(s, keywordPOS)
	switch {
	case hh >= 0 && (pos < 0 || hh < pos):
		return domain.ChannelHandheld
	case pos >= 0:
		return domain.ChannelPOS
	default:
		return domain.ChannelUnknown
	}
}

// Amount coerces a base amount cell to a decimal. Thousands separators are
// tolerated because re-ingested exports carry them; anything else that does
// not parse coerces to zero rather than failing the row.
func Amount(text string) decimal.Decimal {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", "")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Records normalizes raw rows one-to-one, preserving order. No row is
// dropped: rows with an empty staff label group under the empty string, and
// malformed cells fall back to their defaults.
func Records(raws []domain.RawRecord) []domain.SalesRecord {
	records := make([]domain.SalesRecord, len(raws))
	for i, raw := range raws {
		records[i] = domain.SalesRecord{
			Staff:   strings.TrimSpace(raw.Staff),
			Channel: Classify(raw.Device),
			Amount:  Amount(raw.Base),
		}
	}
	return records
}
