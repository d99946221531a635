package binance

import (
	"testing"

	"github.com/thetrueharvey/mono-trading/internal/binance/memorystore"

	"go.uber.org/zap"
)

// go test -v --run TestStreamNames
func TestStreamNames(t *testing.T) {
	store := memorystore.NewSymbolStore()
	store.Add("BTCUSDT")
	store.Add("ETHUSDT")

	client := NewWSClient("wss://stream.binance.com:9443/ws", "1m", store, zap.NewNop())

	names := client.streamNames()
	want := []string{"btcusdt@kline_1m", "ethusdt@kline_1m"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("stream %d = %q, want %q", i, names[i], want[i])
		}
	}

	// Symbols added later show up on the next (re)subscription
	store.Add("BNBUSDT")
	if got := len(client.streamNames()); got != 3 {
		t.Errorf("after add: %d streams, want 3", got)
	}
}
