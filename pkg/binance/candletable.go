package binance

import "fmt"

// CandleTable is the normalized columnar form of a kline batch: parallel
// columns of equal length, row i across all columns describing the same
// candle, in the order the exchange returned them (ascending open time).
// The table is never mutated by this package after it is returned.
type CandleTable struct {
	OpenTime  []int64 // ms since epoch
	CloseTime []int64 // ms since epoch
	Open      []float64
	High      []float64
	Low       []float64
	Close     []float64
	Volume    []float64
}

func newCandleTable(n int) *CandleTable {
	return &CandleTable{
		OpenTime:  make([]int64, 0, n),
		CloseTime: make([]int64, 0, n),
		Open:      make([]float64, 0, n),
		High:      make([]float64, 0, n),
		Low:       make([]float64, 0, n),
		Close:     make([]float64, 0, n),
		Volume:    make([]float64, 0, n),
	}
}

// Len returns the number of rows.
func (t *CandleTable) Len() int { return len(t.OpenTime) }

// checkAligned verifies that every column holds exactly n rows.
func (t *CandleTable) checkAligned(n int) error {
	cols := map[string]int{
		"open_time":  len(t.OpenTime),
		"close_time": len(t.CloseTime),
		"open":       len(t.Open),
		"high":       len(t.High),
		"low":        len(t.Low),
		"close":      len(t.Close),
		"volume":     len(t.Volume),
	}
	for name, l := range cols {
		if l != n {
			return fmt.Errorf("column %s has %d rows, want %d", name, l, n)
		}
	}
	return nil
}
