package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"marketmap/internal/domain"
	mock_repository "marketmap/internal/repository/mocks"
	l1_service "marketmap/internal/service/l1"
	l2_service "marketmap/internal/service/l2"
	l3_service "marketmap/internal/service/l3"
	"marketmap/internal/util"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestHandler(datasetServices ...l1_service.DatasetService) SnapshotHandler {
	aggregationService := l2_service.NewAggregationService()
	return SnapshotHandler{
		DatasetServices:    datasetServices,
		AggregationService: aggregationService,
		ScreenService:      l2_service.NewScreenService(),
		HeatmapService:     l3_service.NewHeatmapService(aggregationService),
		MoversService:      l3_service.NewMoversService(),
	}
}

func Test_BuildSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path over two datasets", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		equitiesSource := mock_repository.NewMockRowSource(ctrl)
		equitiesSource.EXPECT().
			Load(gomock.Any()).
			Return([]domain.Row{
				{"Ticker": "AAA", "Chg%": "+2.00%", "Volume": "300"},
				{"Ticker": "BBB", "Chg%": "-1.00%", "Volume": "100"},
			}, nil)

		cryptoSource := mock_repository.NewMockRowSource(ctrl)
		cryptoSource.EXPECT().
			Load(gomock.Any()).
			Return([]domain.Row{
				{"Symbol": "BTC", "Chg 24H": "1.5", "Market Cap": "1,000,000"},
			}, nil)

		handler := newTestHandler(
			l1_service.NewDatasetService(equitiesSource, domain.EquitiesDatasetConfig()),
			l1_service.NewDatasetService(cryptoSource, domain.CryptoDatasetConfig()),
		)

		response, err := handler.BuildSnapshot(ctx, SnapshotRequest{})
		require.NoError(t, err)

		require.Equal(t, "Assets", response.Hierarchy.Name)
		require.Len(t, response.Movers, 2)

		wantEquityMovers := domain.SelectionSet{
			{Key: "aaa", Category: domain.AssetCategory_Stocks, Code: "AAA", Sum: 2, Count: 1, Mean: 2},
			{Key: "bbb", Category: domain.AssetCategory_Stocks, Code: "BBB", Sum: -1, Count: 1, Mean: -1},
		}
		diff := cmp.Diff(wantEquityMovers, response.Movers[0].Movers,
			cmpopts.IgnoreFields(domain.Aggregate{}, "Name"),
		)
		require.Empty(t, diff)

		require.Equal(t, 2, response.Movers[0].Stats.Count)
		require.Equal(t, 1, response.Movers[0].Stats.Advancers)
		require.Equal(t, 1, response.Movers[0].Stats.Decliners)
	})

	t.Run("one failing dataset fails the whole snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		equitiesSource := mock_repository.NewMockRowSource(ctrl)
		equitiesSource.EXPECT().
			Load(gomock.Any()).
			Return([]domain.Row{
				{"Ticker": "AAA", "Chg%": "+2.00%", "Volume": "300"},
			}, nil).
			AnyTimes()

		cryptoSource := mock_repository.NewMockRowSource(ctrl)
		cryptoSource.EXPECT().
			Load(gomock.Any()).
			Return(nil, fmt.Errorf("%w: connection refused", domain.ErrDataSourceFailure))

		handler := newTestHandler(
			l1_service.NewDatasetService(equitiesSource, domain.EquitiesDatasetConfig()),
			l1_service.NewDatasetService(cryptoSource, domain.CryptoDatasetConfig()),
		)

		response, err := handler.BuildSnapshot(ctx, SnapshotRequest{})
		require.Error(t, err)
		require.True(t, errors.Is(err, domain.ErrDataSourceFailure))
		// nothing partial comes back
		require.Nil(t, response)
	})

	t.Run("screen narrows movers but not stats", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		source := mock_repository.NewMockRowSource(ctrl)
		source.EXPECT().
			Load(gomock.Any()).
			Return([]domain.Row{
				{"Ticker": "AAA", "Chg%": "+2.00%", "Volume": "300"},
				{"Ticker": "BBB", "Chg%": "-0.10%", "Volume": "100"},
			}, nil)

		handler := newTestHandler(
			l1_service.NewDatasetService(source, domain.EquitiesDatasetConfig()),
		)

		movers, err := handler.BuildMovers(ctx, SnapshotRequest{
			Screen: "absMean > 1",
		})
		require.NoError(t, err)
		require.Len(t, movers, 1)
		require.Len(t, movers[0].Movers, 1)
		require.Equal(t, "AAA", movers[0].Movers[0].Code)
		require.Equal(t, 2, movers[0].Stats.Count)
	})

	t.Run("bad screen surfaces an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		source := mock_repository.NewMockRowSource(ctrl)
		source.EXPECT().
			Load(gomock.Any()).
			Return([]domain.Row{
				{"Ticker": "AAA", "Chg%": "+2.00%", "Volume": "300"},
			}, nil)

		handler := newTestHandler(
			l1_service.NewDatasetService(source, domain.EquitiesDatasetConfig()),
		)

		_, err := handler.BuildMovers(ctx, SnapshotRequest{
			Screen: "mean >",
		})
		require.Error(t, err)
	})

	t.Run("posN and negN bound the selections", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		source := mock_repository.NewMockRowSource(ctrl)
		source.EXPECT().
			Load(gomock.Any()).
			Return([]domain.Row{
				{"Ticker": "A", "Chg%": "5%", "Volume": "1"},
				{"Ticker": "B", "Chg%": "3%", "Volume": "1"},
				{"Ticker": "C", "Chg%": "1%", "Volume": "1"},
				{"Ticker": "D", "Chg%": "-2%", "Volume": "1"},
				{"Ticker": "E", "Chg%": "-7%", "Volume": "1"},
			}, nil)

		handler := newTestHandler(
			l1_service.NewDatasetService(source, domain.EquitiesDatasetConfig()),
		)

		movers, err := handler.BuildMovers(ctx, SnapshotRequest{
			PosN: util.IntPointer(2),
			NegN: util.IntPointer(1),
		})
		require.NoError(t, err)
		require.Len(t, movers[0].Movers, 3)
		require.Equal(t, "A", movers[0].Movers[0].Code)
		require.Equal(t, "B", movers[0].Movers[1].Code)
		require.Equal(t, "E", movers[0].Movers[2].Code)
	})
}
