// Package app contains application services and port definitions for the routing context.
package app

import (
	"context"

	marketdomain "github.com/movewise/swap-router/business/market/domain"
	"github.com/movewise/swap-router/business/routing/domain"
)

// AggregatorProvider is the external swap-aggregator quote endpoint.
// Implementations return an error for anything unusable (network
// failure, malformed body, zero candidates); the router treats every
// error as "tier failed" and moves on.
type AggregatorProvider interface {
	BestRoute(ctx context.Context, req AggregatorRequest) (*domain.SwapRoute, error)
}

// AggregatorRequest carries resolved addresses for an aggregator call.
type AggregatorRequest struct {
	FromSymbol  string
	ToSymbol    string
	FromAddress string
	ToAddress   string
	Amount      float64
	AmountRaw   string // base units of the input token
}

// PriceOracle resolves USD prices. Lookups never fail; the Origin on
// each result says how degraded the answer is.
type PriceOracle interface {
	USDPrice(ctx context.Context, symbol string) marketdomain.PriceResult
	USDPrices(ctx context.Context, symbols []string) map[string]marketdomain.PriceResult
}

// LiquidityOracle serves cached per-DEX liquidity snapshots.
type LiquidityOracle interface {
	EnsureFresh(ctx context.Context) error
	Snapshot(dexName string) (marketdomain.PoolSnapshot, bool)
}
