package calculator

import (
	"fmt"

	"marketmap/internal/domain"

	"github.com/montanaflynn/stats"
)

// PartitionStats summarizes the distribution of mean changes across one
// partition - breadth plus central tendency, served as metadata next to the
// movers lists.
type PartitionStats struct {
	Count        int     `json:"count"`
	Advancers    int     `json:"advancers"`
	Decliners    int     `json:"decliners"`
	Unchanged    int     `json:"unchanged"`
	MeanChange   float64 `json:"meanChange"`
	MedianChange float64 `json:"medianChange"`
	StdevChange  float64 `json:"stdevChange"`
}

func CalculatePartitionStats(aggregates []domain.Aggregate) (*PartitionStats, error) {
	out := &PartitionStats{
		Count: len(aggregates),
	}
	if len(aggregates) == 0 {
		return out, nil
	}

	means := make([]float64, 0, len(aggregates))
	for _, a := range aggregates {
		means = append(means, a.Mean)
		switch {
		case a.Mean > 0:
			out.Advancers++
		case a.Mean < 0:
			out.Decliners++
		default:
			out.Unchanged++
		}
	}

	mean, err := stats.Mean(means)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate mean change: %w", err)
	}
	out.MeanChange = mean

	median, err := stats.Median(means)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate median change: %w", err)
	}
	out.MedianChange = median

	if len(means) >= 2 {
		stdev, err := stats.StandardDeviationSample(means)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate stdev of changes: %w", err)
		}
		out.StdevChange = stdev
	}

	return out, nil
}
