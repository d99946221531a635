package memorystore

import (
	"sync"
	"testing"
)

func testCandle(openTime int64) Candle {
	return Candle{
		OpenTime:  openTime,
		CloseTime: openTime + 59_999,
		Interval:  "1m",
		Open:      100,
		High:      101,
		Low:       99,
		Close:     100.5,
		Volume:    10,
	}
}

// go test -v --run TestCandleStore
func TestCandleStore(t *testing.T) {
	store := NewCandleStore()

	store.Add(SymbolCandle{Symbol: "BTCUSDT", Candle: testCandle(0)})
	store.Add(SymbolCandle{Symbol: "BTCUSDT", Candle: testCandle(60_000)})
	store.Add(SymbolCandle{Symbol: "ETHUSDT", Candle: testCandle(0)})

	if got := len(store.GetBySymbol("BTCUSDT")); got != 2 {
		t.Errorf("GetBySymbol(BTCUSDT) returned %d candles, want 2", got)
	}
	if got := store.GetBySymbol("DOGEUSDT"); got != nil {
		t.Errorf("GetBySymbol(DOGEUSDT) = %v, want nil", got)
	}
	if got := store.CountAll(); got != 3 {
		t.Errorf("CountAll() = %d, want 3", got)
	}

	all := store.GetAll()
	if len(all) != 2 || len(all["BTCUSDT"]) != 2 || len(all["ETHUSDT"]) != 1 {
		t.Errorf("unexpected GetAll result: %v", all)
	}

	// Returned slices are copies; mutating them must not affect the store
	candles := store.GetBySymbol("BTCUSDT")
	candles[0].Open = -1
	if store.GetBySymbol("BTCUSDT")[0].Open == -1 {
		t.Error("GetBySymbol returned a live reference into the store")
	}
}

// go test -v --run TestCandleStoreConcurrentAdd
func TestCandleStoreConcurrentAdd(t *testing.T) {
	store := NewCandleStore()
	symbols := []string{"BTCUSDT", "ETHUSDT", "BNBUSDT"}

	var wg sync.WaitGroup
	for _, symbol := range symbols {
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(symbol string, i int) {
				defer wg.Done()
				store.Add(SymbolCandle{Symbol: symbol, Candle: testCandle(int64(i) * 60_000)})
			}(symbol, i)
		}
	}
	wg.Wait()

	if got := store.CountAll(); got != 150 {
		t.Errorf("CountAll() = %d, want 150", got)
	}
}

// go test -v --run TestSymbolStoreWorker
func TestSymbolStoreWorker(t *testing.T) {
	store := NewSymbolStore()

	ch := make(chan string, 3)
	ch <- "BTCUSDT"
	ch <- "ETHUSDT"
	ch <- "BNBUSDT"
	close(ch)

	<-store.StartWorker(ch)

	symbols := store.GetAll()
	if len(symbols) != 3 {
		t.Fatalf("GetAll() returned %d symbols, want 3", len(symbols))
	}
}
