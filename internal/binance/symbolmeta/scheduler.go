package symbolmeta

import (
	"time"

	"github.com/thetrueharvey/mono-trading/internal/binance/snapshot"

	"go.uber.org/zap"
)

// MidnightLoader runs a symbol load once at startup and then daily at UTC
// midnight, so newly listed pairs are picked up without a restart.
type MidnightLoader struct {
	Load func() <-chan string
}

// DefaultLoadFn adapts a snapshot.SymbolLoader into the scheduler's load
// function.
func DefaultLoadFn(loader *snapshot.SymbolLoader) func() <-chan string {
	return func() <-chan string {
		symbolCh := make(chan string, 100)

		go func() {
			if err := loader.LoadSymbols(symbolCh); err != nil {
				loader.Logger.Error("failed to load symbols", zap.Error(err))
			}
		}()

		return symbolCh
	}
}

// Start schedules the load function to run once immediately and then every
// 24 hours starting at the next UTC midnight.
func (m *MidnightLoader) Start(proc func(<-chan string)) {
	go func() {
		// Run immediately once at startup
		m.runOnce(proc)

		// Wait until next UTC midnight
		now := time.Now().UTC()
		nextMidnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
		time.Sleep(time.Until(nextMidnight))

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			m.runOnce(proc)
			<-ticker.C
		}
	}()
}

func (m *MidnightLoader) runOnce(proc func(<-chan string)) {
	symbolCh := m.Load()
	proc(symbolCh)
}
