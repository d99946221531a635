package binance

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

const testListingJSON = `{
	"timezone": "UTC",
	"serverTime": 1625097600000,
	"symbols": [
		{
			"symbol": "BTCUSDT",
			"status": "TRADING",
			"baseAsset": "BTC",
			"baseAssetPrecision": 8,
			"quoteAsset": "USDT",
			"quotePrecision": 2,
			"orderTypes": ["LIMIT", "MARKET"],
			"icebergAllowed": true,
			"ocoAllowed": true,
			"quoteOrderQtyMarketAllowed": true,
			"isSpotTradingAllowed": true,
			"isMarginTradingAllowed": true,
			"permissions": ["SPOT"]
		}
	]
}`

const testKlinesJSON = `[
	[1609459200000, "29000.10", "29100.00", "28950.00", "29050.50", "10.5", 1609459259999, "305030.25", 120, "5.25", "152515.12", "0"],
	[1609459260000, "29050.50", "29200.00", "29000.00", "29150.00", "8.25", 1609459319999, "240487.50", 98, "4.10", "119543.00", "0"],
	[1609459320000, "29150.00", "29300.00", "29100.00", "29250.75", "12.75", 1609459379999, "372946.31", 143, "6.30", "184263.75", "0"]
]`

// stubExchange spins up a Binance API stub. klineCalls counts hits on the
// klines endpoint so tests can assert validation short-circuits.
func stubExchange(t *testing.T, pingStatus int, klinesBody string, klineCalls *atomic.Int64) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(pingStatus)
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/api/v3/exchangeInfo", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testListingJSON))
	})
	mux.HandleFunc("/api/v3/klines", func(w http.ResponseWriter, r *http.Request) {
		if klineCalls != nil {
			klineCalls.Add(1)
		}
		q := r.URL.Query()
		if q.Get("symbol") == "" || q.Get("interval") == "" || q.Get("limit") == "" {
			t.Errorf("klines request missing parameters: %s", r.URL.RawQuery)
		}
		w.Write([]byte(klinesBody))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// go test -v --run TestGetSymbolData
func TestGetSymbolData(t *testing.T) {
	srv := stubExchange(t, http.StatusOK, testKlinesJSON, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := NewRESTClient(ctx, srv.URL, 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	since := time.Now().Add(-time.Hour)
	table, err := client.GetSymbolData(ctx, "BTCUSDT", Minutes(1), since)
	if err != nil {
		t.Fatalf("GetSymbolData returned error: %v", err)
	}

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}
	for i := 1; i < table.Len(); i++ {
		if table.OpenTime[i] < table.OpenTime[i-1] {
			t.Errorf("open_time decreases at row %d", i)
		}
	}
	if table.Open[0] != 29000.10 || table.Close[2] != 29250.75 || table.Volume[1] != 8.25 {
		t.Errorf("decoded values do not match stub data: %+v", table)
	}

	// Catalog metadata survives alongside per-request calls
	info, err := client.Catalog().Lookup("BTCUSDT")
	if err != nil {
		t.Fatalf("catalog lookup failed: %v", err)
	}
	if info.BaseAssetPrecision != 8 || info.QuotePrecision != 2 {
		t.Errorf("unexpected precisions: %d/%d", info.BaseAssetPrecision, info.QuotePrecision)
	}
}

// go test -v --run TestConstructionPingFailure
func TestConstructionPingFailure(t *testing.T) {
	srv := stubExchange(t, http.StatusServiceUnavailable, testKlinesJSON, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := NewRESTClient(ctx, srv.URL, 5*time.Second, zap.NewNop())
	if err == nil {
		t.Fatal("expected construction to fail on ping, got nil error")
	}
	if !errors.Is(err, ErrRequestFailure) {
		t.Errorf("error = %v, want ErrRequestFailure", err)
	}
	if client != nil {
		t.Error("expected no client on construction failure")
	}
}

// go test -v --run TestValidationOrdering
func TestValidationOrdering(t *testing.T) {
	var klineCalls atomic.Int64
	srv := stubExchange(t, http.StatusOK, testKlinesJSON, &klineCalls)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := NewRESTClient(ctx, srv.URL, 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	// Unknown symbol plus unsupported interval must report the symbol,
	// and never reach the network.
	_, err = client.GetSymbolData(ctx, "DOGEUSDT", Minutes(2), time.Time{})
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("error = %v, want ErrSymbolNotFound", err)
	}
	if errors.Is(err, ErrIntervalNotSupported) {
		t.Error("error reports the interval before the symbol")
	}

	// Known symbol with unsupported interval reports the interval.
	_, err = client.GetSymbolData(ctx, "BTCUSDT", Hours(3), time.Time{})
	if !errors.Is(err, ErrIntervalNotSupported) {
		t.Errorf("error = %v, want ErrIntervalNotSupported", err)
	}

	if n := klineCalls.Load(); n != 0 {
		t.Errorf("klines endpoint hit %d times during validation failures, want 0", n)
	}
}

// go test -v --run TestSinceValidation
func TestSinceValidation(t *testing.T) {
	var klineCalls atomic.Int64
	srv := stubExchange(t, http.StatusOK, testKlinesJSON, &klineCalls)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := NewRESTClient(ctx, srv.URL, 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	// Future timestamp is rejected before any network call
	_, err = client.GetSymbolData(ctx, "BTCUSDT", Minutes(1), time.Now().Add(time.Hour))
	if !errors.Is(err, ErrRequestFailure) {
		t.Errorf("future since: error = %v, want ErrRequestFailure", err)
	}

	// Pre-epoch timestamp is rejected too
	_, err = client.GetSymbolData(ctx, "BTCUSDT", Minutes(1), time.UnixMilli(-1))
	if !errors.Is(err, ErrRequestFailure) {
		t.Errorf("pre-epoch since: error = %v, want ErrRequestFailure", err)
	}

	if n := klineCalls.Load(); n != 0 {
		t.Errorf("klines endpoint hit %d times during since validation, want 0", n)
	}

	// Zero value means "not provided" and passes
	if _, err := client.GetSymbolData(ctx, "BTCUSDT", Minutes(1), time.Time{}); err != nil {
		t.Errorf("zero since rejected: %v", err)
	}
}

// go test -v --run TestGetSymbolDataDecodeFailure
func TestGetSymbolDataDecodeFailure(t *testing.T) {
	// Second row carries a non-numeric open price
	malformed := `[
		[1609459200000, "29000.10", "29100.00", "28950.00", "29050.50", "10.5", 1609459259999, "305030.25", 120, "5.25", "152515.12", "0"],
		[1609459260000, "bogus", "29200.00", "29000.00", "29150.00", "8.25", 1609459319999, "240487.50", 98, "4.10", "119543.00", "0"]
	]`
	srv := stubExchange(t, http.StatusOK, malformed, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := NewRESTClient(ctx, srv.URL, 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	table, err := client.GetSymbolData(ctx, "BTCUSDT", Minutes(1), time.Time{})
	if !errors.Is(err, ErrDecode) {
		t.Errorf("error = %v, want ErrDecode", err)
	}
	if table != nil {
		t.Error("expected no partial table on decode failure")
	}

	// A failed request leaves the catalog intact for subsequent requests
	if _, err := client.Catalog().Lookup("BTCUSDT"); err != nil {
		t.Errorf("catalog unusable after decode failure: %v", err)
	}
}
