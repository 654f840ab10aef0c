package app

import (
	"context"
	"sync"

	"github.com/movewise/swap-router/business/routing/domain"
	"github.com/movewise/swap-router/internal/logger"
)

// FanOut runs the Quoter across every registered DEX concurrently.
type FanOut struct {
	quoter *Quoter
	pools  LiquidityOracle
	dexes  []domain.DexDescriptor
	log    logger.LoggerInterface
}

// NewFanOut creates a FanOut over the static DEX registry.
func NewFanOut(quoter *Quoter, pools LiquidityOracle, dexes []domain.DexDescriptor, log logger.LoggerInterface) *FanOut {
	return &FanOut{quoter: quoter, pools: pools, dexes: dexes, log: log}
}

// AllQuotes returns one slot per registered DEX in registry order; a
// DEX that cannot quote the pair keeps a nil slot so callers can see
// which DEXes had no answer. All quotes run concurrently and every one
// is waited for, even when siblings fail.
func (f *FanOut) AllQuotes(ctx context.Context, tokenIn, tokenOut string, amount float64) []*domain.DexQuote {
	// One shared refresh for every DEX quote in this call. A failed
	// refresh is not fatal: the quoter degrades to nil per DEX.
	if err := f.pools.EnsureFresh(ctx); err != nil {
		f.log.Warn(ctx, "pool refresh failed before fan-out", "error", err.Error())
	}

	// Batch both prices ahead of the fan-out so concurrent quoters hit
	// a warm cache instead of queueing on the price rate limiter.
	f.quoter.prices.USDPrices(ctx, []string{tokenIn, tokenOut})

	quotes := make([]*domain.DexQuote, len(f.dexes))

	var wg sync.WaitGroup
	for i, dex := range f.dexes {
		wg.Add(1)
		go func(i int, dex domain.DexDescriptor) {
			defer wg.Done()
			quotes[i] = f.quoter.Quote(ctx, dex, tokenIn, tokenOut, amount)
		}(i, dex)
	}
	wg.Wait()

	return quotes
}
