package stream

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/thetrueharvey/mono-trading/internal/binance/memorystore"
	"github.com/thetrueharvey/mono-trading/pkg/storage/postgres"

	"go.uber.org/zap"
)

// CandleSink persists finalized candles. *postgres.PostgresClient satisfies
// it; tests use a fake.
type CandleSink interface {
	InsertCandle(ctx context.Context, record *postgres.CandleRecord) error
}

// MakeMessageHandler returns a function that handles incoming WebSocket
// messages by parsing kline events and storing closed candles in memory
// and in the sink.
func MakeMessageHandler(logger *zap.Logger, store *memorystore.CandleStore, sink CandleSink) func(msg []byte) {
	return func(msg []byte) {
		// Subscription acks and other control frames have no event type;
		// filter on it before a full parse.
		var meta struct {
			EventType string `json:"e"`
		}
		if err := json.Unmarshal(msg, &meta); err != nil {
			logger.Warn("failed to extract event type", zap.Error(err))
			return
		}
		if meta.EventType != "kline" {
			return
		}

		var event KlineEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			logger.Warn("failed to parse kline event", zap.Error(err))
			return
		}

		// Only finalized buckets are stored; an open bucket is re-sent on
		// every trade and would produce duplicates.
		if !event.Kline.Closed {
			return
		}

		candle, err := toCandle(event.Kline)
		if err != nil {
			logger.Warn("failed to parse kline prices",
				zap.String("symbol", event.Symbol), zap.Error(err))
			return
		}

		store.Add(memorystore.SymbolCandle{
			Symbol: event.Symbol,
			Candle: candle,
		})

		record := postgres.ToCandleRecord(event.Symbol, candle)
		ctx := context.Background()
		if err := sink.InsertCandle(ctx, record); err != nil {
			logger.Warn("failed to insert candle record",
				zap.String("symbol", event.Symbol), zap.Error(err))
		}
	}
}

// toCandle parses the stream payload's decimal strings into a typed candle.
func toCandle(k StreamKline) (memorystore.Candle, error) {
	open, err := strconv.ParseFloat(k.Open, 64)
	if err != nil {
		return memorystore.Candle{}, err
	}
	high, err := strconv.ParseFloat(k.High, 64)
	if err != nil {
		return memorystore.Candle{}, err
	}
	low, err := strconv.ParseFloat(k.Low, 64)
	if err != nil {
		return memorystore.Candle{}, err
	}
	closePrice, err := strconv.ParseFloat(k.Close, 64)
	if err != nil {
		return memorystore.Candle{}, err
	}
	volume, err := strconv.ParseFloat(k.Volume, 64)
	if err != nil {
		return memorystore.Candle{}, err
	}

	return memorystore.Candle{
		OpenTime:  k.StartTime,
		CloseTime: k.CloseTime,
		Interval:  k.Interval,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePrice,
		Volume:    volume,
	}, nil
}
