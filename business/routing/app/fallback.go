package app

import (
	"context"
	"strings"

	"github.com/movewise/swap-router/business/routing/domain"
	"github.com/movewise/swap-router/internal/logger"
	"github.com/movewise/swap-router/internal/token"
)

const (
	fallbackPriceImpact = 0.5
	fallbackGasEstimate = 0.0002
	// alternativeRatio prices the synthetic alternative slightly worse
	// than the primary so the alternatives list keeps its shape.
	alternativeRatio = 0.995
)

// Fallback synthesizes a route from prices alone, with no liquidity
// modeling. It is the terminal tier: it always produces a route.
type Fallback struct {
	prices PriceOracle
	dexes  []domain.DexDescriptor
	log    logger.LoggerInterface
}

// NewFallback creates a Fallback naming the first registered DEX as the
// synthetic protocol.
func NewFallback(prices PriceOracle, dexes []domain.DexDescriptor, log logger.LoggerInterface) *Fallback {
	if len(dexes) == 0 {
		panic("routing: fallback needs at least one dex")
	}
	return &Fallback{prices: prices, dexes: dexes, log: log}
}

// Route builds the price-only estimate. Price lookups themselves never
// fail (they cascade to static defaults), so neither does this.
func (f *Fallback) Route(ctx context.Context, tokenIn, tokenOut string, amount float64) domain.SwapRoute {
	results := f.prices.USDPrices(ctx, []string{tokenIn, tokenOut})

	priceIn := results[strings.ToLower(tokenIn)].USD
	priceOut := results[strings.ToLower(tokenOut)].USD
	if priceIn <= 0 {
		priceIn = 1.0
	}
	if priceOut <= 0 {
		priceOut = 1.0
	}

	output := amount * priceIn / priceOut

	primary := f.dexes[0]
	altName := primary.Name
	if len(f.dexes) > 1 {
		altName = f.dexes[1].Name
	}

	return domain.SwapRoute{
		FromToken:          tokenIn,
		ToToken:            tokenOut,
		FromAmount:         token.FormatOutput(amount),
		ExpectedOutput:     token.FormatOutput(output),
		PriceImpactPercent: fallbackPriceImpact,
		EstimatedGas:       fallbackGasEstimate,
		Protocol:           primary.Name,
		Source:             domain.RouteSourceFallback,
		AlternativeRoutes: []domain.AlternativeRoute{
			{
				Protocol:           altName,
				ExpectedOutput:     token.FormatOutput(output * alternativeRatio),
				PriceImpactPercent: fallbackPriceImpact,
				EstimatedGas:       fallbackGasEstimate,
			},
		},
	}
}
