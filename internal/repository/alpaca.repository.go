package repository

import (
	"context"
	"fmt"
	"marketmap/internal/domain"
	"strconv"
	"strings"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

// NewAlpacaRepository serves crypto rows from alpaca's marketdata snapshots.
// Pairs are quoted like "BTC/USD"; the identifier column carries just the
// base symbol. The feed has no market-cap figure, so the magnitude column
// carries daily notional volume (close * volume) instead - still a
// liquidity magnitude, which is all the heatmap needs.
func NewAlpacaRepository(apiKey, apiSecret string, pairs []string) RowSource {
	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return alpacaRepositoryHandler{
		MdClient: mdClient,
		Pairs:    pairs,
	}
}

type alpacaRepositoryHandler struct {
	MdClient *marketdata.Client
	Pairs    []string
}

func (h alpacaRepositoryHandler) Load(ctx context.Context) ([]domain.Row, error) {
	if len(h.Pairs) == 0 {
		return nil, fmt.Errorf("%w: no crypto pairs configured", domain.ErrDataSourceFailure)
	}

	snapshots, err := h.MdClient.GetCryptoSnapshots(h.Pairs, marketdata.GetCryptoSnapshotRequest{})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch crypto snapshots: %s", domain.ErrDataSourceFailure, err)
	}

	rows := []domain.Row{}
	for _, pair := range h.Pairs {
		snapshot, ok := snapshots[pair]
		if ok && snapshot.DailyBar != nil && snapshot.PrevDailyBar != nil && snapshot.PrevDailyBar.Close != 0 {
			change := (snapshot.DailyBar.Close - snapshot.PrevDailyBar.Close) / snapshot.PrevDailyBar.Close * 100
			notional := snapshot.DailyBar.Close * snapshot.DailyBar.Volume
			rows = append(rows, domain.Row{
				"Symbol":     strings.TrimSuffix(pair, "/USD"),
				"Name":       pair,
				"Chg 24H":    strconv.FormatFloat(change, 'f', 4, 64),
				"Market Cap": strconv.FormatFloat(notional, 'f', 0, 64),
			})
		} else {
			// emit the identifier with no numbers; the aggregation stage
			// skips it like any other incomplete row
			rows = append(rows, domain.Row{
				"Symbol": strings.TrimSuffix(pair, "/USD"),
				"Name":   pair,
			})
		}
	}

	return rows, nil
}
