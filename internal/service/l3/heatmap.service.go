package l3_service

import (
	"marketmap/internal/domain"
	l2_service "marketmap/internal/service/l2"
	"marketmap/internal/util"
)

// HeatmapService reduces datasets into the three-level hierarchy the area
// renderer consumes: root -> Stocks/Crypto -> one leaf per asset, leaf area
// proportional to its share of the partition's total magnitude.
type HeatmapService interface {
	BuildHeatmap(datasets []domain.Dataset) domain.HierarchyNode
}

func NewHeatmapService(aggregationService l2_service.AggregationService) HeatmapService {
	return heatmapServiceHandler{
		AggregationService: aggregationService,
	}
}

type heatmapServiceHandler struct {
	AggregationService l2_service.AggregationService
}

// Normalize rescales the aggregates' magnitudes so they sum to 1 within the
// partition. Aggregates with a non-positive magnitude can't be area-encoded
// and are dropped first. A zero partition total divides by 1 instead, so a
// fully-degenerate partition yields zeros rather than NaNs. No sorting
// happens here - display order is the renderer's concern.
func Normalize(aggregates []domain.Aggregate, rawValue func(domain.Aggregate) float64) []domain.NormalizedAggregate {
	filtered := []domain.Aggregate{}
	total := 0.0
	for _, a := range aggregates {
		if rawValue(a) > 0 {
			filtered = append(filtered, a)
			total += rawValue(a)
		}
	}
	if total == 0 {
		total = 1
	}

	out := make([]domain.NormalizedAggregate, 0, len(filtered))
	for _, a := range filtered {
		out = append(out, domain.NormalizedAggregate{
			Aggregate: a,
			Value:     rawValue(a) / total,
		})
	}
	return out
}

func (h heatmapServiceHandler) BuildHeatmap(datasets []domain.Dataset) domain.HierarchyNode {
	categories := []domain.AssetCategory{
		domain.AssetCategory_Stocks,
		domain.AssetCategory_Crypto,
	}

	categoryNodes := []domain.HierarchyNode{}
	for _, category := range categories {
		magnitudes := []domain.Aggregate{}
		changeByKey := map[domain.GroupKey]domain.Aggregate{}
		for _, dataset := range datasets {
			if dataset.Config.Category != category {
				continue
			}
			magnitudes = append(magnitudes, h.AggregationService.AggregateOrdered(dataset.Rows, dataset.Config.Magnitude)...)
			for key, agg := range h.AggregationService.Aggregate(dataset.Rows, dataset.Config.Change) {
				changeByKey[key] = agg
			}
		}

		// each category normalizes independently - stocks don't shrink
		// because crypto caps dwarf share volumes
		normalized := Normalize(magnitudes, func(a domain.Aggregate) float64 {
			return a.Sum
		})

		leaves := []domain.HierarchyNode{}
		for _, n := range normalized {
			leaf := domain.HierarchyNode{
				Name:  leafName(n.Aggregate),
				Code:  n.Code,
				Value: n.Value,
				Count: n.Count,
			}
			if change, ok := changeByKey[n.Key]; ok {
				leaf.AvgChange = util.FloatPointer(change.Mean)
			}
			leaves = append(leaves, leaf)
		}

		categoryNodes = append(categoryNodes, domain.HierarchyNode{
			Name:     string(category),
			Children: leaves,
		})
	}

	return domain.NewHierarchyRoot(categoryNodes...)
}

func leafName(a domain.Aggregate) string {
	if a.Name != "" {
		return a.Name
	}
	return a.Code
}
