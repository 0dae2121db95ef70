package repository

import (
	"context"
	"fmt"
	"marketmap/internal/domain"
	"marketmap/pkg/coincap"
)

// NewCoincapRepository turns a coincap assets listing into crypto rows.
// Market caps come back as plain decimal strings; they ride through the
// magnitude parser the same way a comma-grouped csv value would.
func NewCoincapRepository(client coincap.Client, limit int) RowSource {
	return coincapRepositoryHandler{
		Client: client,
		Limit:  limit,
	}
}

type coincapRepositoryHandler struct {
	Client coincap.Client
	Limit  int
}

func (h coincapRepositoryHandler) Load(ctx context.Context) ([]domain.Row, error) {
	assets, err := h.Client.GetAssets(ctx, h.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list coincap assets: %s", domain.ErrDataSourceFailure, err)
	}

	rows := []domain.Row{}
	for _, a := range assets {
		rows = append(rows, domain.Row{
			"Symbol":     a.Symbol,
			"Name":       a.Name,
			"Chg 24H":    a.ChangePercent24Hr,
			"Market Cap": a.MarketCapUsd,
		})
	}

	return rows, nil
}
