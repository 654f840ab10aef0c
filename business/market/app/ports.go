// Package app contains application services and port definitions for the market context.
package app

import (
	"context"

	"github.com/movewise/swap-router/business/market/domain"
)

// PriceSource fetches USD prices for token symbols from an upstream API.
// Implementations map symbols to upstream coin IDs themselves.
type PriceSource interface {
	// FetchPrices returns USD prices keyed by lowercase symbol. Symbols the
	// upstream does not know are simply absent from the result.
	FetchPrices(ctx context.Context, symbols []string) (map[string]float64, error)
}

// LiquiditySource fetches per-project pool statistics from an upstream
// TVL API, filtered to the configured chain.
type LiquiditySource interface {
	FetchPools(ctx context.Context, project string) ([]domain.PoolStat, error)
}
