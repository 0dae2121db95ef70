package repository

import (
	"context"
	"fmt"
	"marketmap/internal/domain"
	"strconv"

	"github.com/piquette/finance-go/quote"
)

// NewFinanceRepository streams live equity quotes for a fixed symbol list
// and reshapes them into the equities dataset's column conventions, so the
// aggregation pipeline can't tell live rows from csv rows.
func NewFinanceRepository(symbols []string) RowSource {
	return financeRepositoryHandler{
		Symbols: symbols,
	}
}

type financeRepositoryHandler struct {
	Symbols []string
}

func (h financeRepositoryHandler) Load(ctx context.Context) ([]domain.Row, error) {
	if len(h.Symbols) == 0 {
		return nil, fmt.Errorf("%w: no equity symbols configured", domain.ErrDataSourceFailure)
	}

	iter := quote.List(h.Symbols)

	rows := []domain.Row{}
	for iter.Next() {
		q := iter.Quote()
		rows = append(rows, domain.Row{
			"Ticker": q.Symbol,
			"Name":   q.ShortName,
			"Chg%":   strconv.FormatFloat(q.RegularMarketChangePercent, 'f', 2, 64) + "%",
			"Volume": strconv.Itoa(q.RegularMarketVolume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to fetch quotes: %s", domain.ErrDataSourceFailure, err)
	}

	return rows, nil
}
