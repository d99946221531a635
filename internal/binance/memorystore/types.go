package memorystore

// SymbolCandle is a candle with an attached trading symbol, typically built
// by combining a stream name (e.g. "btcusdt@kline_1m") with the event payload.
type SymbolCandle struct {
	Symbol string
	Candle
}

// Candle is one finalized candlestick held in memory. Prices and volume are
// already parsed; string-to-number conversion happens at the decode boundary,
// not here.
type Candle struct {
	OpenTime  int64  // start of the bucket (ms since epoch)
	CloseTime int64  // end of the bucket (ms since epoch)
	Interval  string // wire token, e.g. "1m"
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}
