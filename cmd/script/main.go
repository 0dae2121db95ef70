package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"marketmap/internal/app"
	"marketmap/internal/domain"
	"marketmap/internal/repository"
	l1_service "marketmap/internal/service/l1"
	l2_service "marketmap/internal/service/l2"
	l3_service "marketmap/internal/service/l3"
	"marketmap/internal/util"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

var (
	equitiesCsvPath string
	cryptoCsvPath   string
	posN            int
	negN            int
	screen          string
	outPath         string
)

// moverReportRow is the flat csv shape for exported selections.
type moverReportRow struct {
	Dataset    string  `csv:"dataset"`
	Code       string  `csv:"code"`
	Name       string  `csv:"name"`
	MeanChange float64 `csv:"mean_change"`
	Count      int     `csv:"count"`
}

func buildHandler() (app.SnapshotHandler, error) {
	datasetServices := []l1_service.DatasetService{}
	if equitiesCsvPath != "" {
		datasetServices = append(datasetServices, l1_service.NewDatasetService(
			repository.NewCSVRepository(equitiesCsvPath, ';'),
			domain.EquitiesDatasetConfig(),
		))
	}
	if cryptoCsvPath != "" {
		datasetServices = append(datasetServices, l1_service.NewDatasetService(
			repository.NewCSVRepository(cryptoCsvPath, ','),
			domain.CryptoDatasetConfig(),
		))
	}
	if len(datasetServices) == 0 {
		return app.SnapshotHandler{}, fmt.Errorf("at least one of --equities-csv or --crypto-csv is required")
	}

	aggregationService := l2_service.NewAggregationService()
	return app.SnapshotHandler{
		DatasetServices:    datasetServices,
		AggregationService: aggregationService,
		ScreenService:      l2_service.NewScreenService(),
		HeatmapService:     l3_service.NewHeatmapService(aggregationService),
		MoversService:      l3_service.NewMoversService(),
	}, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	handler, err := buildHandler()
	if err != nil {
		return err
	}

	response, err := handler.BuildSnapshot(context.Background(), app.SnapshotRequest{
		PosN:   util.IntPointer(posN),
		NegN:   util.IntPointer(negN),
		Screen: screen,
	})
	if err != nil {
		return err
	}

	for _, datasetMovers := range response.Movers {
		fmt.Printf("%s (%d groups, %d up / %d down)\n",
			datasetMovers.Dataset,
			datasetMovers.Stats.Count,
			datasetMovers.Stats.Advancers,
			datasetMovers.Stats.Decliners,
		)
		for _, a := range datasetMovers.Movers {
			fmt.Printf("  %-8s %+.2f%% (n=%d)\n", a.Code, a.Mean, a.Count)
		}
	}

	if outPath != "" {
		reportRows := []moverReportRow{}
		for _, datasetMovers := range response.Movers {
			for _, a := range datasetMovers.Movers {
				reportRows = append(reportRows, moverReportRow{
					Dataset:    datasetMovers.Dataset,
					Code:       a.Code,
					Name:       a.Name,
					MeanChange: a.Mean,
					Count:      a.Count,
				})
			}
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outPath, err)
		}
		defer f.Close()
		if err := gocsv.MarshalFile(&reportRows, f); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("wrote %d rows to %s\n", len(reportRows), outPath)
	}

	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "marketmap-script",
		Short: "run the marketmap pipeline against local csv files",
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "build a snapshot and print the movers",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVar(&equitiesCsvPath, "equities-csv", "", "path to semicolon-delimited equities export")
	snapshotCmd.Flags().StringVar(&cryptoCsvPath, "crypto-csv", "", "path to comma-delimited crypto listing")
	snapshotCmd.Flags().IntVar(&posN, "pos", 10, "number of top gainers")
	snapshotCmd.Flags().IntVar(&negN, "neg", 10, "number of top losers")
	snapshotCmd.Flags().StringVar(&screen, "screen", "", "optional screen expression, e.g. 'absMean > 1'")
	snapshotCmd.Flags().StringVar(&outPath, "out", "", "optional csv report path")

	rootCmd.AddCommand(snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
