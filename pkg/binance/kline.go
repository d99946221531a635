package binance

import (
	"fmt"
	"strconv"
)

// DecodeKlines converts raw kline tuples into a columnar CandleTable.
// Timestamps are carried over directly; the five decimal-as-string fields
// are parsed into float64 here and nowhere else. A parse failure on any
// row fails the whole batch — a partially decoded financial series is
// worse than an explicit error, so no row is ever skipped or null-filled.
// On success every column has exactly len(raw) rows, in input order.
func DecodeKlines(raw []RawKline) (*CandleTable, error) {
	table := newCandleTable(len(raw))

	for i, k := range raw {
		open, err := parsePrice(i, "open", k.Open)
		if err != nil {
			return nil, err
		}
		high, err := parsePrice(i, "high", k.High)
		if err != nil {
			return nil, err
		}
		low, err := parsePrice(i, "low", k.Low)
		if err != nil {
			return nil, err
		}
		closePrice, err := parsePrice(i, "close", k.Close)
		if err != nil {
			return nil, err
		}
		volume, err := parsePrice(i, "volume", k.Volume)
		if err != nil {
			return nil, err
		}

		table.OpenTime = append(table.OpenTime, k.OpenTime)
		table.CloseTime = append(table.CloseTime, k.CloseTime)
		table.Open = append(table.Open, open)
		table.High = append(table.High, high)
		table.Low = append(table.Low, low)
		table.Close = append(table.Close, closePrice)
		table.Volume = append(table.Volume, volume)
	}

	if err := table.checkAligned(len(raw)); err != nil {
		return nil, newDecodeError(err)
	}
	return table, nil
}

func parsePrice(row int, field, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, newDecodeError(fmt.Errorf("row %d %s %q: %w", row, field, s, err))
	}
	return v, nil
}
