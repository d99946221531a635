package memorystore

import "sync"

// SymbolStore accumulates the symbols selected for collection. It is fed
// by a channel worker during snapshot loads and read by the WebSocket
// client when building subscriptions. Loads repeat daily, so Add dedups:
// re-delivered symbols are kept once, in first-seen order.
type SymbolStore struct {
	mu      sync.Mutex
	seen    map[string]bool
	symbols []string
}

func NewSymbolStore() *SymbolStore {
	return &SymbolStore{
		seen:    make(map[string]bool),
		symbols: make([]string, 0),
	}
}

func (s *SymbolStore) Add(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[symbol] {
		return
	}
	s.seen[symbol] = true
	s.symbols = append(s.symbols, symbol)
}

// StartWorker consumes symbols from ch until it is closed. The returned
// channel is closed once the input is drained, so callers can wait for the
// store to be fully populated.
func (s *SymbolStore) StartWorker(ch <-chan string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for symbol := range ch {
			s.Add(symbol)
		}
	}()
	return done
}

func (s *SymbolStore) GetAll() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out
}
