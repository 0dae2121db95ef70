package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ValueParser turns a raw column value into a number. Parsers return an
// error for anything that isn't a finite decimal; the aggregation layer
// treats that as "skip the row".
type ValueParser func(raw string) (decimal.Decimal, error)

// ParsePercent accepts signed decimals with an optional trailing percent
// sign, e.g. "+2.00%", "-0.35", "1.2 %".
func ParsePercent(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	return decimal.NewFromString(s)
}

// ParseMagnitude accepts signed decimals with optional thousands separators,
// e.g. "1,052,911,000" or "352200".
func ParseMagnitude(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(s)
}

// FoldConfig tells the aggregation service how to fold one numeric field of
// a dataset: where the identity lives, where the value lives, and how the
// value parses. The two dataset flavors differ only in these mappings.
type FoldConfig struct {
	Category        AssetCategory
	IdentifierField string
	// NameField optionally maps a pretty display-name column. Blank means
	// the dataset has none.
	NameField  string
	ValueField string
	Parser     ValueParser
}

// DatasetConfig describes one tabular dataset end to end: the change fold
// feeds ranked movers, the magnitude fold feeds the heatmap areas.
type DatasetConfig struct {
	Name      string
	Category  AssetCategory
	Change    FoldConfig
	Magnitude FoldConfig
}

// Dataset is a config plus its already-loaded rows. Fresh per request -
// nothing here is cached or shared.
type Dataset struct {
	Config DatasetConfig
	Rows   []Row
}

// EquitiesDatasetConfig maps the stock screener export layout: percent
// change column with a % suffix, share volume as plain integers.
func EquitiesDatasetConfig() DatasetConfig {
	return DatasetConfig{
		Name:     "equities",
		Category: AssetCategory_Stocks,
		Change: FoldConfig{
			Category:        AssetCategory_Stocks,
			IdentifierField: "Ticker",
			NameField:       "Name",
			ValueField:      "Chg%",
			Parser:          ParsePercent,
		},
		Magnitude: FoldConfig{
			Category:        AssetCategory_Stocks,
			IdentifierField: "Ticker",
			NameField:       "Name",
			ValueField:      "Volume",
			Parser:          ParseMagnitude,
		},
	}
}

// CryptoDatasetConfig maps the crypto listing layout: 24h percent change
// without a % suffix, market cap with comma thousands separators.
func CryptoDatasetConfig() DatasetConfig {
	return DatasetConfig{
		Name:     "crypto",
		Category: AssetCategory_Crypto,
		Change: FoldConfig{
			Category:        AssetCategory_Crypto,
			IdentifierField: "Symbol",
			NameField:       "Name",
			ValueField:      "Chg 24H",
			Parser:          ParsePercent,
		},
		Magnitude: FoldConfig{
			Category:        AssetCategory_Crypto,
			IdentifierField: "Symbol",
			NameField:       "Name",
			ValueField:      "Market Cap",
			Parser:          ParseMagnitude,
		},
	}
}
