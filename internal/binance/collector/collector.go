package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/thetrueharvey/mono-trading/config"
	"github.com/thetrueharvey/mono-trading/internal/binance/memorystore"
	"github.com/thetrueharvey/mono-trading/internal/binance/snapshot"
	"github.com/thetrueharvey/mono-trading/internal/binance/stream"
	"github.com/thetrueharvey/mono-trading/internal/binance/symbolmeta"
	"github.com/thetrueharvey/mono-trading/pkg/binance"
	"github.com/thetrueharvey/mono-trading/pkg/storage/postgres"

	"go.uber.org/zap"
)

// StartCollector initializes the data pipeline for Binance spot market data.
// It builds the REST client (connectivity check + catalog load), selects the
// symbols to collect, backfills their recent history into Postgres, and then
// streams live klines over WebSocket.
func StartCollector(cfg *config.Config, logger *zap.Logger) error {

	// Initialize PostgreSQL client
	postgresClient, err := postgres.InitializeAndMigrateCandleRecord(cfg.Postgres, cfg.Log.Environment, true)
	if err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}

	// Validate the configured interval before any network call
	interval, err := binance.ParseInterval(cfg.Binance.Interval)
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", cfg.Binance.Interval, err)
	}
	token, _ := interval.WireToken()

	// Build the market data client; this pings the exchange and loads the
	// full symbol catalog, failing fast on either.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Binance.REST.Timeout)
	restClient, err := binance.NewRESTClient(ctx, cfg.Binance.REST.BaseURL, cfg.Binance.REST.Timeout, logger)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to build market data client: %w", err)
	}

	// Select symbols via the snapshot loader, re-run daily at UTC midnight
	// so newly listed pairs join the collection set
	loader := &snapshot.SymbolLoader{
		Client:     restClient,
		QuoteAsset: cfg.Binance.QuoteAsset,
		Timeout:    cfg.Binance.REST.Timeout,
		Logger:     logger,
	}

	symbolStore := memorystore.NewSymbolStore()
	firstLoad := make(chan struct{})
	var once sync.Once

	refresher := &symbolmeta.MidnightLoader{Load: symbolmeta.DefaultLoadFn(loader)}
	refresher.Start(func(ch <-chan string) {
		<-symbolStore.StartWorker(ch)
		once.Do(func() { close(firstLoad) })
	})
	<-firstLoad // wait until the store is populated

	// Backfill recent history per symbol with bounded concurrency
	backfill(cfg, logger, restClient, postgresClient, symbolStore.GetAll(), interval, token)

	// Initialize WebSocket client for live candles
	wsClient := binance.NewWSClient(cfg.Binance.WS.URL, token, symbolStore, logger)
	candleStore := memorystore.NewCandleStore()

	wsClient.SetMessageHandler(stream.MakeMessageHandler(logger, candleStore, postgresClient))

	// Periodically print stored candle count for visibility
	go func() {
		for {
			count := candleStore.CountAll()
			logger.Info("current saved candles", zap.Int("count", count))

			time.Sleep(5 * time.Second)
		}
	}()

	if err := wsClient.Connect(); err != nil {
		return err
	}
	go wsClient.Listen() // explicitly start listener

	return nil
}

// backfill fetches up to one page of history per symbol and inserts the
// decoded candles into Postgres. Failures are logged per symbol; one
// symbol's failure never aborts the others.
func backfill(cfg *config.Config, logger *zap.Logger, restClient *binance.RESTClient,
	postgresClient *postgres.PostgresClient, symbols []string, interval binance.Interval, token string) {

	concurrency := cfg.Binance.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	since := time.Now().Add(-24 * time.Hour)

	for _, symbol := range symbols {
		symbol := symbol // capture
		sem <- struct{}{}
		wg.Add(1)

		go func() {
			defer func() { <-sem; wg.Done() }()

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Binance.REST.Timeout)
			table, err := restClient.GetSymbolData(ctx, symbol, interval, since)
			cancel()
			if err != nil {
				logger.Warn("failed to fetch candles", zap.String("symbol", symbol), zap.Error(err))
				return
			}

			records := postgres.CandleRecordsFromTable(symbol, token, table)

			dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err = postgresClient.InsertCandles(dbCtx, records)
			cancel()
			if err != nil {
				logger.Warn("failed to insert candles", zap.String("symbol", symbol), zap.Error(err))
				return
			}

			logger.Info("backfill completed for symbol",
				zap.String("symbol", symbol), zap.Int("rows", table.Len()))
		}()
	}

	wg.Wait()
}
