package l2_service

import (
	"testing"

	"marketmap/internal/domain"

	"github.com/stretchr/testify/require"
)

func changeFold() domain.FoldConfig {
	return domain.EquitiesDatasetConfig().Change
}

func Test_NormalizeGroupKey(t *testing.T) {
	t.Run("trims and folds case", func(t *testing.T) {
		key, ok := NormalizeGroupKey("  AaPl ")
		require.True(t, ok)
		require.Equal(t, domain.GroupKey("aapl"), key)
	})

	t.Run("rejects blank identifiers", func(t *testing.T) {
		_, ok := NormalizeGroupKey("   ")
		require.False(t, ok)
		_, ok = NormalizeGroupKey("")
		require.False(t, ok)
	})
}

func Test_Aggregate(t *testing.T) {
	handler := NewAggregationService()

	t.Run("merges rows differing only in case and whitespace", func(t *testing.T) {
		rows := []domain.Row{
			{"Ticker": "AAA", "Chg%": "+2.00%"},
			{"Ticker": "aaa", "Chg%": "-1.00%"},
		}

		out := handler.Aggregate(rows, changeFold())
		require.Len(t, out, 1)

		agg, found := out["aaa"]
		require.True(t, found)
		require.Equal(t, 2, agg.Count)
		require.Equal(t, 1.0, agg.Sum)
		require.Equal(t, 0.5, agg.Mean)
		// display label fixed at first sight
		require.Equal(t, "AAA", agg.Code)
	})

	t.Run("skips rows with unparsable values without touching other groups", func(t *testing.T) {
		rows := []domain.Row{
			{"Ticker": "AAA", "Chg%": "1.00%"},
			{"Ticker": "AAA", "Chg%": "n/a"},
			{"Ticker": "BBB", "Chg%": "garbage"},
		}

		out := handler.Aggregate(rows, changeFold())
		require.Len(t, out, 1)
		require.Equal(t, 1, out["aaa"].Count)
		require.Equal(t, 1.0, out["aaa"].Mean)
	})

	t.Run("skips rows with a missing or blank identifier", func(t *testing.T) {
		rows := []domain.Row{
			{"Chg%": "1.00%"},
			{"Ticker": "   ", "Chg%": "2.00%"},
			{"Ticker": "CCC", "Chg%": "3.00%"},
		}

		out := handler.Aggregate(rows, changeFold())
		require.Len(t, out, 1)
		require.Contains(t, out, domain.GroupKey("ccc"))
	})

	t.Run("no empty groups are materialized", func(t *testing.T) {
		rows := []domain.Row{
			{"Ticker": "DDD", "Chg%": "not a number"},
		}
		out := handler.Aggregate(rows, changeFold())
		require.Empty(t, out)
	})

	t.Run("display name fixed at first sight", func(t *testing.T) {
		rows := []domain.Row{
			{"Ticker": "EEE", "Name": "Evergreen", "Chg%": "1%"},
			{"Ticker": "eee", "Name": "Evergreen Inc.", "Chg%": "2%"},
		}
		out := handler.Aggregate(rows, changeFold())
		require.Equal(t, "Evergreen", out["eee"].Name)
	})
}

func Test_AggregateOrdered(t *testing.T) {
	handler := NewAggregationService()

	t.Run("preserves first-seen order", func(t *testing.T) {
		rows := []domain.Row{
			{"Ticker": "ZZZ", "Chg%": "1%"},
			{"Ticker": "AAA", "Chg%": "2%"},
			{"Ticker": "zzz", "Chg%": "3%"},
			{"Ticker": "MMM", "Chg%": "4%"},
		}

		out := handler.AggregateOrdered(rows, changeFold())
		require.Len(t, out, 3)
		require.Equal(t, "ZZZ", out[0].Code)
		require.Equal(t, "AAA", out[1].Code)
		require.Equal(t, "MMM", out[2].Code)
	})

	t.Run("idempotent across runs", func(t *testing.T) {
		rows := []domain.Row{
			{"Ticker": "AAA", "Chg%": "1.5%"},
			{"Ticker": "BBB", "Chg%": "-0.5%"},
			{"Ticker": "aaa", "Chg%": "0.5%"},
		}

		first := handler.AggregateOrdered(rows, changeFold())
		second := handler.AggregateOrdered(rows, changeFold())
		require.Equal(t, first, second)
	})

	t.Run("mean equals sum over count", func(t *testing.T) {
		rows := []domain.Row{
			{"Ticker": "AAA", "Chg%": "0.1%"},
			{"Ticker": "AAA", "Chg%": "0.2%"},
			{"Ticker": "AAA", "Chg%": "0.3%"},
		}

		out := handler.AggregateOrdered(rows, changeFold())
		require.Len(t, out, 1)
		require.GreaterOrEqual(t, out[0].Count, 1)
		require.InEpsilon(t, out[0].Sum/float64(out[0].Count), out[0].Mean, 1e-12)
		// decimal accumulation keeps the sum exact
		require.Equal(t, 0.6, out[0].Sum)
		require.Equal(t, 0.2, out[0].Mean)
	})

	t.Run("magnitude fold strips thousands separators", func(t *testing.T) {
		rows := []domain.Row{
			{"Symbol": "BTC", "Market Cap": "1,052,911,000", "Chg 24H": "1"},
		}

		out := handler.AggregateOrdered(rows, domain.CryptoDatasetConfig().Magnitude)
		require.Len(t, out, 1)
		require.Equal(t, 1052911000.0, out[0].Sum)
	})
}
