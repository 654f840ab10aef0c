// Package domain contains the core domain types for the market-data context.
package domain

import (
	"strings"
	"time"
)

// Origin says how trustworthy a price or route is.
type Origin string

const (
	// OriginLive means the value came from a fresh upstream response.
	OriginLive Origin = "live"
	// OriginStale means an expired cache entry was served after an upstream failure.
	OriginStale Origin = "stale"
	// OriginDefault means the static default table was used.
	OriginDefault Origin = "default"
)

// PriceEntry is one cached USD price. Entries never expire out of the
// cache map; freshness is judged at read time.
type PriceEntry struct {
	Symbol    string
	USD       float64
	FetchedAt time.Time
}

// Fresh reports whether the entry is within the given TTL.
func (e PriceEntry) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) < ttl
}

// PriceResult is a resolved price plus where it came from, so callers
// can tell a real answer from a degraded one.
type PriceResult struct {
	Symbol string
	USD    float64
	Origin Origin
}

// defaultUSD is the last-resort price table used when no upstream data
// and no cache entry exist for a symbol.
var defaultUSD = map[string]float64{
	"apt":  6.75,
	"usdc": 1.0,
	"usdt": 1.0,
	"dai":  1.0,
}

// DefaultUSD returns the static default price for a symbol. Unknown
// symbols default to 1.0.
func DefaultUSD(symbol string) float64 {
	if p, ok := defaultUSD[strings.ToLower(symbol)]; ok {
		return p
	}
	return 1.0
}
