package l3_service

import (
	"sort"

	"marketmap/internal/domain"
)

// MoversService picks the bounded top/bottom subset of aggregates for
// ranked bar rendering.
type MoversService interface {
	SelectMovers(aggregates []domain.Aggregate, posN, negN int) domain.SelectionSet
}

func NewMoversService() MoversService {
	return moversServiceHandler{}
}

type moversServiceHandler struct{}

// SelectMovers returns up to posN gainers ordered best-first, followed by up
// to negN losers ordered so the most-negative entry sits at the very end of
// the sequence - in the bar layout that puts the worst loser furthest from
// the zero baseline. Aggregates with a zero mean get no slot at all.
func (h moversServiceHandler) SelectMovers(aggregates []domain.Aggregate, posN, negN int) domain.SelectionSet {
	// a negative bound reads as "none of this side"
	if posN < 0 {
		posN = 0
	}
	if negN < 0 {
		negN = 0
	}

	positives := []domain.Aggregate{}
	negatives := []domain.Aggregate{}
	for _, a := range aggregates {
		if a.Mean > 0 {
			positives = append(positives, a)
		} else if a.Mean < 0 {
			negatives = append(negatives, a)
		}
	}

	// stable sorts: ties keep the input's first-seen order
	sort.SliceStable(positives, func(i, j int) bool {
		return positives[i].Mean > positives[j].Mean
	})
	sort.SliceStable(negatives, func(i, j int) bool {
		return negatives[i].Mean < negatives[j].Mean
	})

	if posN < len(positives) {
		positives = positives[:posN]
	}
	if negN < len(negatives) {
		negatives = negatives[:negN]
	}

	// losers were picked most-negative-first; flip them so the most
	// negative lands last in the merged display order
	for i, j := 0, len(negatives)-1; i < j; i, j = i+1, j-1 {
		negatives[i], negatives[j] = negatives[j], negatives[i]
	}

	// a group can't be both a gainer and a loser, so this dedup should
	// never drop anything; it guards the invariant all the same
	seen := map[domain.GroupKey]bool{}
	selection := domain.SelectionSet{}
	for _, a := range append(positives, negatives...) {
		if seen[a.Key] {
			continue
		}
		seen[a.Key] = true
		selection = append(selection, a)
	}

	return selection
}
