package snapshot

import (
	"testing"

	"github.com/thetrueharvey/mono-trading/pkg/binance"
)

func testCatalog() *binance.ExchangeCatalog {
	catalog, _ := binance.NewCatalog(binance.ExchangeInfo{
		Timezone: "UTC",
		Symbols: []binance.SymbolInfo{
			{Symbol: "ETHUSDT", Status: "TRADING", QuoteAsset: "USDT", IsSpotTradingAllowed: true},
			{Symbol: "BTCUSDT", Status: "TRADING", QuoteAsset: "USDT", IsSpotTradingAllowed: true},
			{Symbol: "ETHBTC", Status: "TRADING", QuoteAsset: "BTC", IsSpotTradingAllowed: true},
			{Symbol: "OLDUSDT", Status: "BREAK", QuoteAsset: "USDT", IsSpotTradingAllowed: true},
			{Symbol: "PERPUSDT", Status: "TRADING", QuoteAsset: "USDT", IsSpotTradingAllowed: false},
		},
	})
	return catalog
}

// go test -v --run TestSelectSymbolsFiltered
func TestSelectSymbolsFiltered(t *testing.T) {
	got := SelectSymbols(testCatalog(), "USDT")

	want := []string{"BTCUSDT", "ETHUSDT"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("symbol %d = %q, want %q (sorted order)", i, got[i], want[i])
		}
	}
}

// go test -v --run TestSelectSymbolsNoFilter
func TestSelectSymbolsNoFilter(t *testing.T) {
	// All trading spot pairs regardless of quote asset
	if got := SelectSymbols(testCatalog(), ""); len(got) != 3 {
		t.Errorf("got %v, want 3 symbols", got)
	}
}
