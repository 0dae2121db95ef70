package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Row is one record from a tabular source - column name to raw string value.
// Rows come from outside (csv files, quote feeds) and are never mutated here.
type Row map[string]string

// GetString returns the raw value of a column. ok is false when the column
// is absent or blank after trimming.
func (r Row) GetString(col string) (string, bool) {
	v, found := r[col]
	if !found || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// GetNumeric parses a column through the given parser. ok is false when the
// column is missing or the value doesn't parse to a finite number - callers
// are expected to skip the row, not error.
func (r Row) GetNumeric(col string, parse ValueParser) (decimal.Decimal, bool) {
	v, found := r.GetString(col)
	if !found {
		return decimal.Zero, false
	}
	d, err := parse(v)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
