package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"marketmap/internal/calculator"
	"marketmap/internal/domain"
	"marketmap/internal/logger"
	l1_service "marketmap/internal/service/l1"
	l2_service "marketmap/internal/service/l2"
	l3_service "marketmap/internal/service/l3"

	"github.com/google/uuid"
)

const (
	defaultPosN = 10
	defaultNegN = 10
)

type SnapshotHandler struct {
	DatasetServices    []l1_service.DatasetService
	AggregationService l2_service.AggregationService
	ScreenService      l2_service.ScreenService
	HeatmapService     l3_service.HeatmapService
	MoversService      l3_service.MoversService
}

type SnapshotRequest struct {
	PosN   *int
	NegN   *int
	Screen string
}

// DatasetMovers is one dataset's ranked selection plus the partition-wide
// stats it was drawn from.
type DatasetMovers struct {
	Dataset  string                     `json:"dataset"`
	Category domain.AssetCategory       `json:"category"`
	Movers   domain.SelectionSet        `json:"movers"`
	Stats    *calculator.PartitionStats `json:"stats"`
}

type SnapshotResponse struct {
	SnapshotID  uuid.UUID            `json:"snapshotId"`
	GeneratedAt time.Time            `json:"generatedAt"`
	Hierarchy   domain.HierarchyNode `json:"hierarchy"`
	Movers      []DatasetMovers      `json:"movers"`
	Profile     *domain.Profile      `json:"profile,omitempty"`
}

// loadDatasets fetches every configured dataset concurrently. Aggregation
// itself stays synchronous - only the fetches overlap. One dataset failing
// fails the whole load; callers never see a partial snapshot.
func (h SnapshotHandler) loadDatasets(ctx context.Context) ([]domain.Dataset, error) {
	type loadResult struct {
		index   int
		dataset domain.Dataset
		span    *domain.Span
		err     error
	}

	resultCh := make(chan loadResult, len(h.DatasetServices))
	var wg sync.WaitGroup
	for i, datasetService := range h.DatasetServices {
		wg.Add(1)
		go func(i int, datasetService l1_service.DatasetService) {
			defer wg.Done()
			span, endSpan := domain.NewSpan(fmt.Sprintf("load %s", datasetService.Name()))
			dataset, err := datasetService.LoadDataset(ctx)
			endSpan()
			resultCh <- loadResult{
				index:   i,
				dataset: dataset,
				span:    span,
				err:     err,
			}
		}(i, datasetService)
	}
	wg.Wait()
	close(resultCh)

	log := logger.FromContext(ctx)
	profile := domain.ProfileFromContext(ctx)
	datasets := make([]domain.Dataset, len(h.DatasetServices))
	for result := range resultCh {
		if result.err != nil {
			return nil, result.err
		}
		if profile != nil {
			profile.AddSpan(result.span)
		}
		log.Debugf("loaded %s dataset: %d rows", result.dataset.Config.Name, len(result.dataset.Rows))
		datasets[result.index] = result.dataset
	}

	return datasets, nil
}

func (h SnapshotHandler) buildMovers(datasets []domain.Dataset, req SnapshotRequest) ([]DatasetMovers, error) {
	posN := defaultPosN
	if req.PosN != nil {
		posN = *req.PosN
	}
	negN := defaultNegN
	if req.NegN != nil {
		negN = *req.NegN
	}

	out := []DatasetMovers{}
	for _, dataset := range datasets {
		aggregates := h.AggregationService.AggregateOrdered(dataset.Rows, dataset.Config.Change)

		// stats cover the whole partition, before any screen narrows it
		partitionStats, err := calculator.CalculatePartitionStats(aggregates)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate stats for %s: %w", dataset.Config.Name, err)
		}

		if req.Screen != "" {
			screened := []domain.Aggregate{}
			for _, a := range aggregates {
				matches, err := h.ScreenService.Matches(req.Screen, a)
				if err != nil {
					return nil, fmt.Errorf("failed to apply screen to %s: %w", dataset.Config.Name, err)
				}
				if matches {
					screened = append(screened, a)
				}
			}
			aggregates = screened
		}

		out = append(out, DatasetMovers{
			Dataset:  dataset.Config.Name,
			Category: dataset.Config.Category,
			Movers:   h.MoversService.SelectMovers(aggregates, posN, negN),
			Stats:    partitionStats,
		})
	}

	return out, nil
}

// BuildSnapshot runs the full pipeline: concurrent loads, then the heatmap
// hierarchy and the per-dataset movers off the same row sets.
func (h SnapshotHandler) BuildSnapshot(ctx context.Context, req SnapshotRequest) (*SnapshotResponse, error) {
	profile := domain.ProfileFromContext(ctx)

	datasets, err := h.loadDatasets(ctx)
	if err != nil {
		return nil, err
	}

	var endSpan func()
	if profile != nil {
		_, endSpan = profile.StartSpan("build heatmap")
	}
	hierarchy := h.HeatmapService.BuildHeatmap(datasets)
	if endSpan != nil {
		endSpan()
	}

	if profile != nil {
		_, endSpan = profile.StartSpan("select movers")
	}
	movers, err := h.buildMovers(datasets, req)
	if err != nil {
		return nil, err
	}
	if endSpan != nil {
		endSpan()
	}

	return &SnapshotResponse{
		SnapshotID:  uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Hierarchy:   hierarchy,
		Movers:      movers,
	}, nil
}

// BuildHeatmap loads and reduces just the hierarchy.
func (h SnapshotHandler) BuildHeatmap(ctx context.Context) (*domain.HierarchyNode, error) {
	datasets, err := h.loadDatasets(ctx)
	if err != nil {
		return nil, err
	}
	hierarchy := h.HeatmapService.BuildHeatmap(datasets)
	return &hierarchy, nil
}

// BuildMovers loads and reduces just the ranked selections.
func (h SnapshotHandler) BuildMovers(ctx context.Context, req SnapshotRequest) ([]DatasetMovers, error) {
	datasets, err := h.loadDatasets(ctx)
	if err != nil {
		return nil, err
	}
	return h.buildMovers(datasets, req)
}
