package memorystore

import (
	"sync"
)

// CandleStore holds candles per symbol. The global map is guarded by a
// read-write lock; each symbol bucket has its own mutex so writers for
// different symbols do not contend.
type CandleStore struct {
	globalMu sync.RWMutex
	data     map[string]*symbolCandles
}

type symbolCandles struct {
	mu      sync.Mutex
	candles []Candle
}

func NewCandleStore() *CandleStore {
	return &CandleStore{
		data: make(map[string]*symbolCandles),
	}
}

func (s *CandleStore) Add(c SymbolCandle) {
	// Fast path: lock per-symbol bucket only
	s.globalMu.RLock()
	bucket, ok := s.data[c.Symbol]
	s.globalMu.RUnlock()

	if !ok {
		// Need to initialize a new symbol bucket (exclusive lock)
		s.globalMu.Lock()
		if bucket, ok = s.data[c.Symbol]; !ok {
			bucket = &symbolCandles{}
			s.data[c.Symbol] = bucket
		}
		s.globalMu.Unlock()
	}

	bucket.mu.Lock()
	bucket.candles = append(bucket.candles, c.Candle)
	bucket.mu.Unlock()
}

func (s *CandleStore) GetBySymbol(symbol string) []Candle {
	s.globalMu.RLock()
	bucket, ok := s.data[symbol]
	s.globalMu.RUnlock()
	if !ok {
		return nil
	}

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	cp := make([]Candle, len(bucket.candles))
	copy(cp, bucket.candles)
	return cp
}

func (s *CandleStore) GetAll() map[string][]Candle {
	s.globalMu.RLock()
	defer s.globalMu.RUnlock()

	result := make(map[string][]Candle, len(s.data))
	for sym, bucket := range s.data {
		bucket.mu.Lock()
		cp := make([]Candle, len(bucket.candles))
		copy(cp, bucket.candles)
		bucket.mu.Unlock()
		result[sym] = cp
	}
	return result
}

// CountAll returns the total number of candles stored across all symbols.
func (s *CandleStore) CountAll() int {
	s.globalMu.RLock()
	defer s.globalMu.RUnlock()

	total := 0
	for _, bucket := range s.data {
		bucket.mu.Lock()
		total += len(bucket.candles)
		bucket.mu.Unlock()
	}
	return total
}
