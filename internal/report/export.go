package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cleared-dev/bizledger/internal/entitlement"
	"github.com/cleared-dev/bizledger/internal/model"
)

// Format is an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// ParseFormat converts a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatText, "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Feature is the entitlement that unlocks the format.
func (f Format) Feature() entitlement.Feature {
	if f == FormatText {
		return entitlement.FeatureTextReportExport
	}
	return entitlement.FeatureCSVExport
}

// Extension is the file suffix for the format.
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return "csv"
}

// FileName is the download name, e.g. "monthly-report-2024-03-13.csv".
func FileName(p model.Period, f Format, generated time.Time) string {
	return fmt.Sprintf("%s-report-%s.%s", p, generated.Format(model.DateFormat), f.Extension())
}

// Export encodes r after checking that tier may use the format. A denied
// check returns *entitlement.DeniedError and no content.
func Export(tier model.Tier, f Format, r Report, generated time.Time) ([]byte, error) {
	decision := entitlement.CheckFeatureAccess(tier, f.Feature())
	if err := entitlement.Require(decision, tier, string(f)+" export"); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	var err error
	switch f {
	case FormatCSV:
		err = WriteCSV(&buf, r)
	case FormatText:
		err = WriteText(&buf, r, generated)
	default:
		return nil, fmt.Errorf("unknown export format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding %s report: %w", f, err)
	}
	return buf.Bytes(), nil
}
