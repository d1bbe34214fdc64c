// Package report renders campaign estimates and waterfall analyses as
// tables, CSV, JSON, XLSX workbooks and Liquid summaries.
package report

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/outbound-cli/internal/estimate"
)

// Format is an output format.
type Format string

// Output formats. XLSX is written to a file with WriteXLSX.
const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatXLSX     Format = "xlsx"
	FormatTemplate Format = "template"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatCSV, FormatJSON, FormatXLSX, FormatTemplate:
		return f, nil
	}
	return "", eris.Errorf("report: unsupported format %q", s)
}

var printer = message.NewPrinter(language.English)

// cents rounds a dollar amount half away from zero to two places.
func cents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Money formats v as dollars with thousands separators.
func Money(v float64) string {
	return printer.Sprintf("$%.2f", cents(v).InexactFloat64())
}

// Count formats n with thousands separators.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Percent formats a rate as a percentage with one decimal.
func Percent(rate float64) string {
	return printer.Sprintf("%.1f%%", rate*100)
}

// Write renders res to w. FormatXLSX and FormatTemplate are not streamed
// here; use WriteXLSX and RenderSummary.
func Write(w io.Writer, format Format, res *estimate.Result) error {
	switch format {
	case FormatTable:
		return WriteTable(w, res)
	case FormatCSV:
		return WriteCSV(w, res)
	case FormatJSON:
		return WriteJSON(w, res)
	}
	return eris.Errorf("report: format %q cannot be streamed", format)
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "report: encode JSON")
	}
	return nil
}
