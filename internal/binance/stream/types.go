package stream

// KlineEvent is one kline event from a Binance <symbol>@kline_<interval>
// stream.
type KlineEvent struct {
	EventType string      `json:"e"` // "kline"
	EventTime int64       `json:"E"` // ms since epoch
	Symbol    string      `json:"s"` // e.g. "BTCUSDT"
	Kline     StreamKline `json:"k"`
}

// StreamKline is the candle payload inside a KlineEvent. Prices arrive as
// decimal strings, same as the REST tuple.
type StreamKline struct {
	StartTime   int64  `json:"t"` // bucket open (ms)
	CloseTime   int64  `json:"T"` // bucket close (ms)
	Symbol      string `json:"s"`
	Interval    string `json:"i"` // wire token, e.g. "1m"
	Open        string `json:"o"`
	Close       string `json:"c"`
	High        string `json:"h"`
	Low         string `json:"l"`
	Volume      string `json:"v"`
	TradeCount  int64  `json:"n"`
	Closed      bool   `json:"x"` // true once the bucket is finalized
	QuoteVolume string `json:"q"`
}
