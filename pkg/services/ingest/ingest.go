package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/LumpsRGood/tablet-use-app/pkg/models/domain"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/normalize"
)

// Decoder reads a delimited sales-activity export into raw records using a
// header mapping profile to locate the staff, device and base amount columns.
type Decoder struct {
	mapping domain.HeaderMapping
}

func NewDecoder(mapping domain.HeaderMapping) *Decoder {
	return &Decoder{mapping: mapping}
}

// Decode reads the whole stream. Header labels are repaired before lookup and
// matched case-insensitively against the mapping variants; columns the
// mapping does not name pass through unrecognized. Structural problems (no
// header, a required column missing, malformed framing) fail the whole
// decode; no partial result is returned.
func (d *Decoder) Decode(r io.Reader) ([]domain.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("input has no header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	labels := normalize.Headers(header)
	staff := matchColumn(labels, d.mapping.Staff)
	device := matchColumn(labels, d.mapping.Device)
	base := matchColumn(labels, d.mapping.Base)

	var missing []string
	if staff < 0 {
		missing = append(missing, "staff")
	}
	if device < 0 {
		missing = append(missing, "device")
	}
	if base < 0 {
		missing = append(missing, "base amount")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column(s) %s for mapping profile %q",
			strings.Join(missing, ", "), d.mapping.Name)
	}

	var raws []domain.RawRecord
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		raws = append(raws, domain.RawRecord{
			Staff:  cell(rec, staff),
			Device: cell(rec, device),
			Base:   cell(rec, base),
		})
	}
	return raws, nil
}

// matchColumn returns the index of the first label matching any variant,
// case-insensitively, or -1.
func matchColumn(labels, variants []string) int {
	for i, label := range labels {
		for _, v := range variants {
			if strings.EqualFold(label, normalize.Header(v)) {
				return i
			}
		}
	}
	return -1
}

// cell tolerates ragged rows: anything past the row's end reads as empty.
func cell(rec []string, idx int) string {
	if idx < len(rec) {
		return rec[idx]
	}
	return ""
}
