package binance

import (
	"encoding/json"
	"fmt"
)

// ExchangeInfo is the raw /api/v3/exchangeInfo response.
type ExchangeInfo struct {
	Timezone   string       `json:"timezone"`
	ServerTime int64        `json:"serverTime"` // milliseconds since epoch
	Symbols    []SymbolInfo `json:"symbols"`
}

// SymbolInfo is one tradable pair's static metadata from the exchange listing.
// Immutable once decoded.
type SymbolInfo struct {
	Symbol                     string   `json:"symbol"`
	Status                     string   `json:"status"` // e.g. "TRADING"
	BaseAsset                  string   `json:"baseAsset"`
	BaseAssetPrecision         uint8    `json:"baseAssetPrecision"`
	QuoteAsset                 string   `json:"quoteAsset"`
	QuotePrecision             uint8    `json:"quotePrecision"`
	OrderTypes                 []string `json:"orderTypes"`
	IcebergAllowed             bool     `json:"icebergAllowed"`
	OcoAllowed                 bool     `json:"ocoAllowed"`
	QuoteOrderQtyMarketAllowed bool     `json:"quoteOrderQtyMarketAllowed"`
	IsSpotTradingAllowed       bool     `json:"isSpotTradingAllowed"`
	IsMarginTradingAllowed     bool     `json:"isMarginTradingAllowed"`
	Permissions                []string `json:"permissions"`
}

// rawKlineArity is the number of positional fields in a /api/v3/klines row.
const rawKlineArity = 12

// RawKline is one candle as returned by /api/v3/klines: a 12-element
// positional array mixing integer timestamps and decimal-as-string fields.
// Prices and volume stay strings here; DecodeKlines is the single site
// where they are parsed into numbers.
type RawKline struct {
	OpenTime    int64  // field 0, ms since epoch
	Open        string // field 1
	High        string // field 2
	Low         string // field 3
	Close       string // field 4
	Volume      string // field 5
	CloseTime   int64  // field 6, ms since epoch
	QuoteVolume string // field 7, unused downstream
	TradeCount  int64  // field 8, unused downstream
	// fields 9-11 (taker volumes and an ignored field) are dropped here
}

// UnmarshalJSON decodes the positional tuple into named fields. A field of
// the wrong JSON type fails the whole tuple.
func (k *RawKline) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("kline tuple: %w", err)
	}
	if len(fields) < rawKlineArity {
		return fmt.Errorf("kline tuple has %d fields, want %d", len(fields), rawKlineArity)
	}

	targets := []struct {
		pos  int
		name string
		dst  interface{}
	}{
		{0, "openTime", &k.OpenTime},
		{1, "open", &k.Open},
		{2, "high", &k.High},
		{3, "low", &k.Low},
		{4, "close", &k.Close},
		{5, "volume", &k.Volume},
		{6, "closeTime", &k.CloseTime},
		{7, "quoteVolume", &k.QuoteVolume},
		{8, "tradeCount", &k.TradeCount},
	}
	for _, t := range targets {
		if err := json.Unmarshal(fields[t.pos], t.dst); err != nil {
			return fmt.Errorf("kline field %d (%s): %w", t.pos, t.name, err)
		}
	}
	return nil
}
