package binance

// ExchangeCatalog indexes a full exchange listing by symbol identifier.
// It is built once during client construction and never mutated after,
// so concurrent readers need no coordination.
type ExchangeCatalog struct {
	timezone   string
	serverTime int64
	symbols    map[string]SymbolInfo
}

// NewCatalog builds a catalog from a raw listing. The exchange is assumed
// to list unique identifiers; if it does not, the later entry wins and the
// overwritten identifiers are returned so the caller can log the anomaly.
func NewCatalog(info ExchangeInfo) (*ExchangeCatalog, []string) {
	symbols := make(map[string]SymbolInfo, len(info.Symbols))
	var duplicates []string
	for _, s := range info.Symbols {
		if _, seen := symbols[s.Symbol]; seen {
			duplicates = append(duplicates, s.Symbol)
		}
		symbols[s.Symbol] = s
	}
	return &ExchangeCatalog{
		timezone:   info.Timezone,
		serverTime: info.ServerTime,
		symbols:    symbols,
	}, duplicates
}

// Lookup returns the metadata for a symbol identifier. Matching is exact
// and case-sensitive — identifiers must be supplied as the exchange defines
// them (e.g. "BTCUSDT", not "btcusdt").
func (c *ExchangeCatalog) Lookup(symbol string) (SymbolInfo, error) {
	info, ok := c.symbols[symbol]
	if !ok {
		return SymbolInfo{}, newSymbolNotFound(symbol)
	}
	return info, nil
}

// Timezone returns the exchange timezone identifier from the listing.
func (c *ExchangeCatalog) Timezone() string { return c.timezone }

// ServerTime returns the exchange server timestamp (ms) at load time.
func (c *ExchangeCatalog) ServerTime() int64 { return c.serverTime }

// Len returns the number of indexed symbols.
func (c *ExchangeCatalog) Len() int { return len(c.symbols) }

// Symbols returns the metadata of every indexed symbol, in no particular order.
func (c *ExchangeCatalog) Symbols() []SymbolInfo {
	out := make([]SymbolInfo, 0, len(c.symbols))
	for _, s := range c.symbols {
		out = append(out, s)
	}
	return out
}
