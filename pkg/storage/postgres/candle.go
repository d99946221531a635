package postgres

import (
	"context"
	"time"

	"github.com/thetrueharvey/mono-trading/internal/binance/memorystore"
	"github.com/thetrueharvey/mono-trading/pkg/binance"

	"gorm.io/gorm/clause"
)

// InsertCandle inserts one candle record. A record for the same
// (symbol, interval, open_time) already in the table is skipped silently;
// backfill and live streaming overlap at the boundary, so duplicates are
// routine rather than errors.
func (p *PostgresClient) InsertCandle(ctx context.Context, record *CandleRecord) error {
	return p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "symbol"},
			{Name: "interval"},
			{Name: "open_time"},
		},
		DoNothing: true,
	}).Create(record).Error
}

// InsertCandles inserts a batch of candle records with the same
// duplicate-skipping behavior as InsertCandle.
func (p *PostgresClient) InsertCandles(ctx context.Context, records []CandleRecord) error {
	if len(records) == 0 {
		return nil
	}
	return p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "symbol"},
			{Name: "interval"},
			{Name: "open_time"},
		},
		DoNothing: true,
	}).CreateInBatches(records, 500).Error
}

func (p *PostgresClient) GetCandle(ctx context.Context, symbol, interval string, openTime time.Time) (*CandleRecord, error) {
	var candle CandleRecord
	err := p.DB.WithContext(ctx).
		Where("symbol = ? AND interval = ? AND open_time = ?", symbol, interval, openTime).
		First(&candle).Error

	if err != nil {
		return nil, err
	}
	return &candle, nil
}

// GetCandleRange returns candles for a symbol/interval whose open time lies
// in [from, to), ordered by open time.
func (p *PostgresClient) GetCandleRange(ctx context.Context, symbol, interval string, from, to time.Time) ([]CandleRecord, error) {
	var candles []CandleRecord
	err := p.DB.WithContext(ctx).
		Where("symbol = ? AND interval = ? AND open_time >= ? AND open_time < ?", symbol, interval, from, to).
		Order("open_time").
		Find(&candles).Error

	if err != nil {
		return nil, err
	}
	return candles, nil
}

func (p *PostgresClient) DeleteCandlesBefore(ctx context.Context, before time.Time) error {
	return p.DB.WithContext(ctx).
		Where("open_time < ?", before).
		Delete(&CandleRecord{}).Error
}

// ToCandleRecord converts an in-memory candle and its symbol into a record
// for DB insertion.
func ToCandleRecord(symbol string, c memorystore.Candle) *CandleRecord {
	return &CandleRecord{
		Symbol:    symbol,
		Interval:  c.Interval,
		OpenTime:  time.UnixMilli(c.OpenTime),
		CloseTime: time.UnixMilli(c.CloseTime),
		Open:      c.Open,
		High:      c.High,
		Low:       c.Low,
		Close:     c.Close,
		Volume:    c.Volume,
	}
}

// CandleRecordsFromTable converts a decoded columnar table into records for
// batch insertion. The table's columns are equal-length by construction.
func CandleRecordsFromTable(symbol, interval string, t *binance.CandleTable) []CandleRecord {
	records := make([]CandleRecord, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		records = append(records, CandleRecord{
			Symbol:    symbol,
			Interval:  interval,
			OpenTime:  time.UnixMilli(t.OpenTime[i]),
			CloseTime: time.UnixMilli(t.CloseTime[i]),
			Open:      t.Open[i],
			High:      t.High[i],
			Low:       t.Low[i],
			Close:     t.Close[i],
			Volume:    t.Volume[i],
		})
	}
	return records
}
