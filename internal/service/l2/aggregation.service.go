package l2_service

import (
	"strings"

	"marketmap/internal/domain"

	"github.com/shopspring/decimal"
)

// NormalizeGroupKey derives the identity rows merge on: trimmed and
// case-folded. ok is false for identifiers that are empty after trimming -
// rows like that don't belong to any group.
func NormalizeGroupKey(identifier string) (domain.GroupKey, bool) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return "", false
	}
	return domain.GroupKey(strings.ToLower(trimmed)), true
}

type AggregationService interface {
	// Aggregate folds rows into one Aggregate per group key. Rows with a
	// missing identifier or an unparsable value are skipped, never errors.
	Aggregate(rows []domain.Row, fold domain.FoldConfig) map[domain.GroupKey]domain.Aggregate

	// AggregateOrdered is the same fold, returned in first-seen row order.
	// Downstream sorts are stable, so this order is the tie-break.
	AggregateOrdered(rows []domain.Row, fold domain.FoldConfig) []domain.Aggregate
}

func NewAggregationService() AggregationService {
	return aggregationServiceHandler{}
}

type aggregationServiceHandler struct{}

// accumulator is the mutable state for one group while the fold runs. The
// sum stays decimal until the fold completes so repeated float addition
// doesn't drift.
type accumulator struct {
	key      domain.GroupKey
	category domain.AssetCategory
	code     string
	name     string
	sum      decimal.Decimal
	count    int
}

func (h aggregationServiceHandler) fold(rows []domain.Row, fold domain.FoldConfig) []*accumulator {
	byKey := map[domain.GroupKey]*accumulator{}
	ordered := []*accumulator{}

	for _, row := range rows {
		identifier, ok := row.GetString(fold.IdentifierField)
		if !ok {
			continue
		}
		key, ok := NormalizeGroupKey(identifier)
		if !ok {
			continue
		}
		value, ok := row.GetNumeric(fold.ValueField, fold.Parser)
		if !ok {
			continue
		}

		acc, found := byKey[key]
		if !found {
			// display label and name are fixed at first sight; later rows
			// with different casing or whitespace don't update them
			acc = &accumulator{
				key:      key,
				category: fold.Category,
				code:     identifier,
				sum:      decimal.Zero,
			}
			if fold.NameField != "" {
				if name, ok := row.GetString(fold.NameField); ok {
					acc.name = name
				}
			}
			byKey[key] = acc
			ordered = append(ordered, acc)
		}

		acc.sum = acc.sum.Add(value)
		acc.count++
	}

	return ordered
}

func (acc accumulator) finalize() domain.Aggregate {
	// mean computed once here, not incrementally during the fold
	mean := acc.sum.Div(decimal.NewFromInt(int64(acc.count))).InexactFloat64()
	return domain.Aggregate{
		Key:      acc.key,
		Category: acc.category,
		Code:     acc.code,
		Name:     acc.name,
		Sum:      acc.sum.InexactFloat64(),
		Count:    acc.count,
		Mean:     mean,
	}
}

func (h aggregationServiceHandler) Aggregate(rows []domain.Row, fold domain.FoldConfig) map[domain.GroupKey]domain.Aggregate {
	out := map[domain.GroupKey]domain.Aggregate{}
	for _, acc := range h.fold(rows, fold) {
		out[acc.key] = acc.finalize()
	}
	return out
}

func (h aggregationServiceHandler) AggregateOrdered(rows []domain.Row, fold domain.FoldConfig) []domain.Aggregate {
	accumulators := h.fold(rows, fold)
	out := make([]domain.Aggregate, 0, len(accumulators))
	for _, acc := range accumulators {
		out = append(out, acc.finalize())
	}
	return out
}
