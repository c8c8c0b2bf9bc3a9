package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Format is an output format for a payroll result.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatPDF   Format = "pdf"
	FormatXLSX  Format = "xlsx"
)

// Formats lists every supported format.
var Formats = []Format{FormatTable, FormatCSV, FormatPDF, FormatXLSX}

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown report format %q (want table, csv, pdf or xlsx)", s)
}

// Binary reports whether the format should not be written to a terminal.
func (f Format) Binary() bool {
	return f == FormatPDF || f == FormatXLSX
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
