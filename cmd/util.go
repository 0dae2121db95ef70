package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"marketmap/api"
	"marketmap/internal/app"
	"marketmap/internal/domain"
	"marketmap/internal/logger"
	"marketmap/internal/repository"
	l1_service "marketmap/internal/service/l1"
	l2_service "marketmap/internal/service/l2"
	l3_service "marketmap/internal/service/l3"
	"marketmap/internal/util"
	"marketmap/pkg/coincap"
)

var defaultEquitySymbols = []string{
	"AAPL", "MSFT", "NVDA", "GOOG", "AMZN", "META", "TSLA", "BRK-B",
	"JPM", "V", "UNH", "XOM", "LLY", "JNJ", "PG", "MA", "HD", "COST",
	"AVGO", "MRK",
}

var defaultCryptoPairs = []string{
	"BTC/USD", "ETH/USD", "SOL/USD", "DOGE/USD", "LTC/USD", "AVAX/USD",
	"LINK/USD", "DOT/USD", "UNI/USD", "AAVE/USD",
}

func equitiesSource() repository.RowSource {
	if path := os.Getenv("MARKETMAP_EQUITIES_CSV"); path != "" {
		return repository.NewCSVRepository(path, ';')
	}
	return repository.NewFinanceRepository(defaultEquitySymbols)
}

func cryptoSource(secrets *util.Secrets) repository.RowSource {
	if path := os.Getenv("MARKETMAP_CRYPTO_CSV"); path != "" {
		return repository.NewCSVRepository(path, ',')
	}
	if secrets.Alpaca.ApiKey != "" {
		return repository.NewAlpacaRepository(secrets.Alpaca.ApiKey, secrets.Alpaca.ApiSecret, defaultCryptoPairs)
	}
	return repository.NewCoincapRepository(coincap.Client{
		HttpClient: http.DefaultClient,
	}, 50)
}

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	var gptRepository repository.GptRepository
	if secrets.ChatGPTApiKey != "" {
		gptRepository, err = repository.NewGptRepository(secrets.ChatGPTApiKey)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Info("no gpt api key configured - commentary disabled")
	}

	aggregationService := l2_service.NewAggregationService()
	snapshotHandler := app.SnapshotHandler{
		DatasetServices: []l1_service.DatasetService{
			l1_service.NewDatasetService(equitiesSource(), domain.EquitiesDatasetConfig()),
			l1_service.NewDatasetService(cryptoSource(secrets), domain.CryptoDatasetConfig()),
		},
		AggregationService: aggregationService,
		ScreenService:      l2_service.NewScreenService(),
		HeatmapService:     l3_service.NewHeatmapService(aggregationService),
		MoversService:      l3_service.NewMoversService(),
	}

	return &api.ApiHandler{
		SnapshotHandler: snapshotHandler,
		GptRepository:   gptRepository,
		JwtSigningKey:   strings.TrimSpace(secrets.JwtSigningKey),
	}, nil
}
