package domain

import "math"

type AssetCategory string

const (
	AssetCategory_Stocks AssetCategory = "Stocks"
	AssetCategory_Crypto AssetCategory = "Crypto"
)

// GroupKey is the normalized identity rows are merged on. Two rows share a
// key iff they represent the same asset (case and surrounding whitespace
// don't count).
type GroupKey string

// Aggregate is the running statistic for one asset. Sum and Count accumulate
// while folding; Mean is computed once at the end of the fold.
type Aggregate struct {
	Key      GroupKey      `json:"-"`
	Category AssetCategory `json:"category"`
	// Code is the display label - the identifier exactly as it appeared on
	// the first row seen for this group.
	Code  string  `json:"code"`
	Name  string  `json:"name,omitempty"`
	Sum   float64 `json:"sum"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
}

func (a Aggregate) AbsMean() float64 {
	return math.Abs(a.Mean)
}

// NormalizedAggregate carries an aggregate's share of its partition total,
// for area encodings. Values across a partition sum to 1.
type NormalizedAggregate struct {
	Aggregate
	Value float64 `json:"value"`
}

// SelectionSet is the ordered, bounded top/bottom subset picked for ranked
// bar rendering.
type SelectionSet []Aggregate
