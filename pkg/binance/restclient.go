package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// klineLimit is the per-call row ceiling of /api/v3/klines. This layer does
// not paginate beyond it.
const klineLimit = 1000

// Proactive request pacing; Binance weights public endpoints generously,
// 8 req/s is well inside the spot API budget.
const (
	requestRate  = rate.Limit(8)
	requestBurst = 8
)

// RESTClient fetches market data from the Binance spot REST API.
//
// Construction is fail-fast: the connectivity check and the catalog load
// both have to succeed or no client comes into existence. After that the
// catalog is immutable and the client is safe for concurrent use.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	catalog    *ExchangeCatalog
	logger     *zap.Logger
}

// NewRESTClient pings the exchange, loads the full symbol listing, and
// returns a ready client. A failed ping or listing fetch aborts
// construction; there is no degraded or lazily-loaded client.
func NewRESTClient(ctx context.Context, baseURL string, timeout time.Duration, logger *zap.Logger) (*RESTClient, error) {
	c := &RESTClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(requestRate, requestBurst),
		logger:     logger,
	}

	if err := c.Ping(ctx); err != nil {
		return nil, err
	}

	info, err := c.GetExchangeInfo(ctx)
	if err != nil {
		return nil, err
	}

	catalog, duplicates := NewCatalog(info)
	for _, symbol := range duplicates {
		logger.Warn("duplicate symbol in exchange listing, later entry kept",
			zap.String("symbol", symbol))
	}
	c.catalog = catalog

	logger.Info("exchange catalog loaded",
		zap.Int("symbols", catalog.Len()),
		zap.String("timezone", catalog.Timezone()))

	return c, nil
}

// Catalog returns the symbol catalog loaded at construction.
func (c *RESTClient) Catalog() *ExchangeCatalog { return c.catalog }

// HTTPClient exposes the underlying transport, mainly for tests.
func (c *RESTClient) HTTPClient() *http.Client { return c.httpClient }

// Ping performs the lightweight connectivity check.
func (c *RESTClient) Ping(ctx context.Context) error {
	// Body is an empty JSON object on success; only the status matters.
	_, err := c.get(ctx, "ping", "/api/v3/ping", nil)
	return err
}

// GetExchangeInfo fetches the raw full symbol listing.
func (c *RESTClient) GetExchangeInfo(ctx context.Context) (ExchangeInfo, error) {
	body, err := c.get(ctx, "exchangeInfo", "/api/v3/exchangeInfo", nil)
	if err != nil {
		return ExchangeInfo{}, err
	}

	var info ExchangeInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return ExchangeInfo{}, newRequestFailure("exchangeInfo", fmt.Errorf("decode listing: %w", err))
	}
	return info, nil
}

// GetSymbolData validates the request against the loaded catalog, fetches
// up to klineLimit candles for the symbol at the given interval, and
// returns them as a columnar table.
//
// Validation order is fixed: symbol first, then interval, then since. An
// unknown symbol combined with an unsupported interval always reports
// SymbolNotFound. Validation failures never touch the network.
//
// since is validated (not before epoch, not in the future) but is not yet
// forwarded as a request window; it is reserved for pagination.
func (c *RESTClient) GetSymbolData(ctx context.Context, symbol string, interval Interval, since time.Time) (*CandleTable, error) {
	if _, err := c.catalog.Lookup(symbol); err != nil {
		return nil, err
	}

	token, err := interval.WireToken()
	if err != nil {
		return nil, err
	}

	if err := validateSince(since); err != nil {
		return nil, err
	}

	raw, err := c.getKlines(ctx, symbol, token, klineLimit)
	if err != nil {
		return nil, err
	}

	return DecodeKlines(raw)
}

// getKlines fetches raw kline tuples for an already-validated symbol and
// wire token.
func (c *RESTClient) getKlines(ctx context.Context, symbol, token string, limit int) ([]RawKline, error) {
	query := url.Values{}
	query.Set("symbol", symbol)
	query.Set("interval", token)
	query.Set("limit", fmt.Sprintf("%d", limit))

	body, err := c.get(ctx, "klines", "/api/v3/klines", query)
	if err != nil {
		return nil, err
	}

	var raw []RawKline
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, newDecodeError(err)
	}
	return raw, nil
}

// get performs one rate-limited GET round trip and returns the response
// body. Network errors and non-200 statuses surface as RequestFailure.
func (c *RESTClient) get(ctx context.Context, op, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, newRequestFailure(op, err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newRequestFailure(op, fmt.Errorf("creating request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newRequestFailure(op, fmt.Errorf("making request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newRequestFailure(op, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newRequestFailure(op, fmt.Errorf("binance status %d: %s", resp.StatusCode, body))
	}

	return body, nil
}

// validateSince bounds the reserved pagination timestamp: zero means "not
// provided" and is accepted, anything else must lie between the epoch and
// now.
func validateSince(since time.Time) error {
	if since.IsZero() {
		return nil
	}
	if since.UnixMilli() < 0 {
		return newRequestFailure("klines", fmt.Errorf("since %s is before the epoch", since))
	}
	if since.After(time.Now()) {
		return newRequestFailure("klines", fmt.Errorf("since %s is in the future", since))
	}
	return nil
}
