package calculator

import (
	"testing"

	"marketmap/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_CalculatePartitionStats(t *testing.T) {
	t.Run("breadth and central tendency", func(t *testing.T) {
		aggregates := []domain.Aggregate{
			{Code: "a", Mean: 2, Count: 1},
			{Code: "b", Mean: -1, Count: 1},
			{Code: "c", Mean: 0, Count: 1},
			{Code: "d", Mean: 3, Count: 1},
		}

		out, err := CalculatePartitionStats(aggregates)
		require.NoError(t, err)
		require.Equal(t, 4, out.Count)
		require.Equal(t, 2, out.Advancers)
		require.Equal(t, 1, out.Decliners)
		require.Equal(t, 1, out.Unchanged)
		require.Equal(t, 1.0, out.MeanChange)
		require.Equal(t, 1.0, out.MedianChange)
		require.Greater(t, out.StdevChange, 0.0)
	})

	t.Run("empty partition yields zero stats", func(t *testing.T) {
		out, err := CalculatePartitionStats(nil)
		require.NoError(t, err)
		require.Equal(t, 0, out.Count)
		require.Equal(t, 0.0, out.MeanChange)
	})

	t.Run("single aggregate has no stdev", func(t *testing.T) {
		out, err := CalculatePartitionStats([]domain.Aggregate{{Code: "a", Mean: 1.5, Count: 1}})
		require.NoError(t, err)
		require.Equal(t, 1.5, out.MeanChange)
		require.Equal(t, 0.0, out.StdevChange)
	})
}
