package l1_service

import (
	"context"
	"fmt"

	"marketmap/internal/domain"
	"marketmap/internal/repository"
)

// DatasetService binds one row source to its field mappings. It holds no
// state between calls - every LoadDataset is a fresh fetch.
type DatasetService interface {
	Name() string
	LoadDataset(ctx context.Context) (domain.Dataset, error)
}

func NewDatasetService(source repository.RowSource, config domain.DatasetConfig) DatasetService {
	return datasetServiceHandler{
		Source: source,
		Config: config,
	}
}

type datasetServiceHandler struct {
	Source repository.RowSource
	Config domain.DatasetConfig
}

func (h datasetServiceHandler) Name() string {
	return h.Config.Name
}

func (h datasetServiceHandler) LoadDataset(ctx context.Context) (domain.Dataset, error) {
	rows, err := h.Source.Load(ctx)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to load %s dataset: %w", h.Config.Name, err)
	}

	return domain.Dataset{
		Config: h.Config,
		Rows:   rows,
	}, nil
}
