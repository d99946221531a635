package snapshot

import (
	"context"
	"sort"
	"time"

	"github.com/thetrueharvey/mono-trading/pkg/binance"

	"go.uber.org/zap"
)

// SymbolLoader selects the tradable symbols to collect. Each load fetches a
// fresh exchange listing, so scheduled re-runs pick up newly listed pairs.
type SymbolLoader struct {
	Client     *binance.RESTClient
	QuoteAsset string // keep only pairs quoted in this asset; empty keeps all
	Timeout    time.Duration
	Logger     *zap.Logger
}

// LoadSymbols fetches the current listing, selects symbols, and streams
// them into ch before closing it.
func (l *SymbolLoader) LoadSymbols(ch chan<- string) error {
	defer close(ch) // Ensure downstream consumers can exit cleanly

	ctx, cancel := context.WithTimeout(context.Background(), l.Timeout)
	defer cancel()

	info, err := l.Client.GetExchangeInfo(ctx)
	if err != nil {
		l.Logger.Error("failed to fetch exchange listing", zap.Error(err))
		return err
	}
	catalog, _ := binance.NewCatalog(info)

	selected := SelectSymbols(catalog, l.QuoteAsset)
	l.Logger.Info("selected symbols for collection",
		zap.Int("count", len(selected)),
		zap.String("quote_asset", l.QuoteAsset))

	for _, symbol := range selected {
		ch <- symbol
	}
	return nil
}

// SelectSymbols returns the identifiers of actively trading spot pairs in
// the catalog, optionally restricted to one quote asset, sorted so
// collection order is stable across runs.
func SelectSymbols(catalog *binance.ExchangeCatalog, quoteAsset string) []string {
	var selected []string
	for _, info := range catalog.Symbols() {
		if info.Status != "TRADING" || !info.IsSpotTradingAllowed {
			continue
		}
		if quoteAsset != "" && info.QuoteAsset != quoteAsset {
			continue
		}
		selected = append(selected, info.Symbol)
	}
	sort.Strings(selected)
	return selected
}
