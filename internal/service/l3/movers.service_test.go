package l3_service

import (
	"testing"

	"marketmap/internal/domain"

	"github.com/stretchr/testify/require"
)

func aggWithMean(code string, mean float64) domain.Aggregate {
	return domain.Aggregate{
		Key:      domain.GroupKey(code),
		Category: domain.AssetCategory_Stocks,
		Code:     code,
		Sum:      mean,
		Count:    1,
		Mean:     mean,
	}
}

func meansOf(selection domain.SelectionSet) []float64 {
	out := []float64{}
	for _, a := range selection {
		out = append(out, a.Mean)
	}
	return out
}

func Test_SelectMovers(t *testing.T) {
	handler := NewMoversService()

	t.Run("top gainers then losers with most negative last", func(t *testing.T) {
		aggregates := []domain.Aggregate{
			aggWithMean("a", 5),
			aggWithMean("b", 3),
			aggWithMean("c", 1),
			aggWithMean("d", -2),
			aggWithMean("e", -7),
		}

		selection := handler.SelectMovers(aggregates, 2, 1)
		require.Equal(t, []float64{5, 3, -7}, meansOf(selection))
	})

	t.Run("loser slice is reversed in display order", func(t *testing.T) {
		aggregates := []domain.Aggregate{
			aggWithMean("a", -1),
			aggWithMean("b", -5),
			aggWithMean("c", -3),
		}

		selection := handler.SelectMovers(aggregates, 3, 2)
		// picked most-negative-first (-5, -3), then flipped
		require.Equal(t, []float64{-3, -5}, meansOf(selection))
	})

	t.Run("zero means get no slot", func(t *testing.T) {
		aggregates := []domain.Aggregate{
			aggWithMean("a", 0),
			aggWithMean("b", 0),
		}

		selection := handler.SelectMovers(aggregates, 5, 5)
		require.Empty(t, selection)
	})

	t.Run("never exceeds posN plus negN", func(t *testing.T) {
		aggregates := []domain.Aggregate{}
		for _, mean := range []float64{9, 8, 7, 6, -6, -7, -8, -9} {
			aggregates = append(aggregates, aggWithMean(string(rune('a'+len(aggregates))), mean))
		}

		selection := handler.SelectMovers(aggregates, 2, 2)
		require.LessOrEqual(t, len(selection), 4)
		require.Equal(t, []float64{9, 8, -8, -9}, meansOf(selection))
		for _, a := range selection {
			require.NotZero(t, a.Mean)
		}
	})

	t.Run("returns all available when fewer than requested", func(t *testing.T) {
		aggregates := []domain.Aggregate{
			aggWithMean("a", 1),
			aggWithMean("b", -1),
		}

		selection := handler.SelectMovers(aggregates, 10, 10)
		require.Equal(t, []float64{1, -1}, meansOf(selection))
	})

	t.Run("empty input yields empty selection", func(t *testing.T) {
		selection := handler.SelectMovers(nil, 3, 3)
		require.Empty(t, selection)
	})

	t.Run("negative bounds behave like zero", func(t *testing.T) {
		aggregates := []domain.Aggregate{
			aggWithMean("a", 5),
			aggWithMean("b", -5),
		}

		require.NotPanics(t, func() {
			selection := handler.SelectMovers(aggregates, -1, 1)
			require.Equal(t, []float64{-5}, meansOf(selection))
		})
		require.Empty(t, handler.SelectMovers(aggregates, -1, -1))
	})

	t.Run("ties keep input order", func(t *testing.T) {
		aggregates := []domain.Aggregate{
			aggWithMean("first", 2),
			aggWithMean("second", 2),
			aggWithMean("third", 2),
		}

		selection := handler.SelectMovers(aggregates, 2, 0)
		require.Len(t, selection, 2)
		require.Equal(t, "first", selection[0].Code)
		require.Equal(t, "second", selection[1].Code)
	})

	t.Run("selected gainers are the true top-N", func(t *testing.T) {
		aggregates := []domain.Aggregate{
			aggWithMean("a", 1.2),
			aggWithMean("b", 4.5),
			aggWithMean("c", 0.3),
			aggWithMean("d", 2.2),
			aggWithMean("e", 3.1),
		}

		selection := handler.SelectMovers(aggregates, 2, 0)
		require.Equal(t, []float64{4.5, 3.1}, meansOf(selection))

		// every unreturned positive mean is <= every returned one
		for _, a := range aggregates {
			if a.Code == "b" || a.Code == "e" {
				continue
			}
			for _, picked := range selection {
				require.LessOrEqual(t, a.Mean, picked.Mean)
			}
		}
	})
}
