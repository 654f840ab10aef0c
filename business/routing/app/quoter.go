package app

import (
	"context"
	"fmt"
	"math"

	"github.com/movewise/swap-router/business/routing/domain"
	"github.com/movewise/swap-router/internal/logger"
	"github.com/movewise/swap-router/internal/token"
)

const (
	// slippageCap bounds modeled price impact at 10%.
	slippageCap = 0.1
	// referenceTVL is the pool depth at which the liquidity factor
	// reaches 1.0 and the floor the slippage model divides by.
	referenceTVL = 1_000_000.0
	// liquidityFloor is the worst-case liquidity penalty.
	liquidityFloor = 0.9
)

// Quoter estimates a swap output for one DEX from cached prices, a
// liquidity-derived slippage model, and the DEX's fixed fee.
type Quoter struct {
	prices PriceOracle
	pools  LiquidityOracle
	log    logger.LoggerInterface
}

// NewQuoter creates a Quoter over the given oracles.
func NewQuoter(prices PriceOracle, pools LiquidityOracle, log logger.LoggerInterface) *Quoter {
	return &Quoter{prices: prices, pools: pools, log: log}
}

// Quote estimates the output of swapping amount tokenIn for tokenOut on
// one DEX. Returns nil when the DEX cannot price the pair (no pool
// snapshot, unresolvable price). It never returns an error or panics:
// anything unexpected during the math degrades to a nil quote.
func (q *Quoter) Quote(ctx context.Context, dex domain.DexDescriptor, tokenIn, tokenOut string, amount float64) (quote *domain.DexQuote) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Warn(ctx, "dex quote panicked", "dex", dex.Key, "panic", fmt.Sprint(r))
			quote = nil
		}
	}()

	priceIn := q.prices.USDPrice(ctx, tokenIn).USD
	priceOut := q.prices.USDPrice(ctx, tokenOut).USD
	if priceIn <= 0 || priceOut <= 0 {
		return nil
	}

	snap, ok := q.pools.Snapshot(dex.Name)
	if !ok {
		return nil
	}

	liquidityFactor := 1.0
	if snap.HasTVL {
		liquidityFactor = clamp(math.Log10(snap.TVLUsd)/math.Log10(referenceTVL), liquidityFloor, 1.0)
	}

	perfectOutput := amount * priceIn / priceOut

	amountUsd := amount * priceIn
	slippageFactor := math.Min(slippageCap, amountUsd/math.Max(snap.TVLUsd, referenceTVL))

	output := perfectOutput * liquidityFactor * (1 - slippageFactor) * (1 - dex.FeeFraction)
	if output < 0 || math.IsNaN(output) || math.IsInf(output, 0) {
		return nil
	}

	return &domain.DexQuote{
		DexKey:             dex.Key,
		DexName:            dex.Name,
		OutputAmount:       token.FormatOutput(output),
		PriceImpactPercent: token.FormatPercent(slippageFactor * 100),
		FeePercent:         dex.FeePercent(),
		DexURL:             dex.URL,
		GasEstimate:        dex.GasEstimate,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
