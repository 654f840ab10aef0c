package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/movewise/swap-router/business/market/domain"
	"github.com/movewise/swap-router/internal/logger"
	"github.com/movewise/swap-router/internal/ratelimit"
)

const metricPriceLookups = "price_cache_lookups_total"

// PriceService caches USD prices per symbol and serializes upstream
// calls through a process-wide rate limiter. Lookups never fail: the
// fallback order is fresh cache, live fetch, stale cache, static
// default table.
type PriceService struct {
	source  PriceSource
	limiter *ratelimit.Limiter
	ttl     time.Duration
	log     logger.LoggerInterface

	mu    sync.Mutex
	cache map[string]domain.PriceEntry

	lookupCounter metric.Int64Counter

	now func() time.Time
}

// NewPriceService creates a PriceService. The limiter is shared across
// all lookups so consecutive upstream calls keep their minimum spacing
// regardless of which symbol triggered them.
func NewPriceService(source PriceSource, limiter *ratelimit.Limiter, ttl time.Duration, log logger.LoggerInterface) *PriceService {
	meter := otel.GetMeterProvider().Meter("market_prices")
	lookupCounter, err := meter.Int64Counter(
		metricPriceLookups,
		metric.WithDescription("Price lookups, by answer origin"),
	)
	if err != nil {
		panic("failed to create price lookup counter: " + err.Error())
	}

	return &PriceService{
		source:        source,
		limiter:       limiter,
		ttl:           ttl,
		log:           log,
		cache:         make(map[string]domain.PriceEntry),
		lookupCounter: lookupCounter,
		now:           time.Now,
	}
}

// USDPrice resolves one symbol to a USD price. The Origin on the result
// tells the caller whether the value is live, served stale after an
// upstream failure, or a static default.
func (s *PriceService) USDPrice(ctx context.Context, symbol string) domain.PriceResult {
	results := s.USDPrices(ctx, []string{symbol})
	return results[strings.ToLower(symbol)]
}

// USDPrices resolves a batch of symbols with at most one upstream call.
// Every requested symbol is present in the result.
func (s *PriceService) USDPrices(ctx context.Context, symbols []string) map[string]domain.PriceResult {
	results := s.resolve(ctx, symbols)
	for _, res := range results {
		s.lookupCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("origin", string(res.Origin)),
		))
	}
	return results
}

func (s *PriceService) resolve(ctx context.Context, symbols []string) map[string]domain.PriceResult {
	keys := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		keys = append(keys, strings.ToLower(sym))
	}

	results := make(map[string]domain.PriceResult, len(keys))

	missing := s.collectFresh(keys, results)
	if len(missing) == 0 {
		return results
	}

	if err := s.limiter.Wait(ctx); err != nil {
		s.log.Warn(ctx, "price limiter wait aborted", "error", err.Error())
		s.resolveWithoutUpstream(missing, results)
		return results
	}

	// Another caller may have refreshed these symbols while we queued.
	missing = s.collectFresh(missing, results)
	if len(missing) == 0 {
		return results
	}

	fetched, err := s.source.FetchPrices(ctx, missing)
	if err != nil {
		s.log.Warn(ctx, "price fetch failed, serving cached or default prices", "error", err.Error(), "symbols", strings.Join(missing, ","))
		s.resolveWithoutUpstream(missing, results)
		return results
	}

	now := s.now()
	s.mu.Lock()
	for _, key := range missing {
		usd, ok := fetched[key]
		if !ok || usd <= 0 {
			// Upstream answered but not for this symbol.
			results[key] = s.degradedLocked(key)
			continue
		}
		s.cache[key] = domain.PriceEntry{Symbol: key, USD: usd, FetchedAt: now}
		results[key] = domain.PriceResult{Symbol: key, USD: usd, Origin: domain.OriginLive}
	}
	s.mu.Unlock()

	return results
}

// collectFresh fills results with fresh cache hits and returns the keys
// that still need resolving.
func (s *PriceService) collectFresh(keys []string, results map[string]domain.PriceResult) []string {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var missing []string
	for _, key := range keys {
		if entry, ok := s.cache[key]; ok && entry.Fresh(now, s.ttl) {
			results[key] = domain.PriceResult{Symbol: key, USD: entry.USD, Origin: domain.OriginLive}
			continue
		}
		missing = append(missing, key)
	}
	return missing
}

// resolveWithoutUpstream serves the stale-cache-then-default cascade.
func (s *PriceService) resolveWithoutUpstream(keys []string, results map[string]domain.PriceResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		results[key] = s.degradedLocked(key)
	}
}

func (s *PriceService) degradedLocked(key string) domain.PriceResult {
	if entry, ok := s.cache[key]; ok {
		return domain.PriceResult{Symbol: key, USD: entry.USD, Origin: domain.OriginStale}
	}
	return domain.PriceResult{Symbol: key, USD: domain.DefaultUSD(key), Origin: domain.OriginDefault}
}

// CachedSymbols reports how many symbols currently hold a cache entry,
// fresh or stale.
func (s *PriceService) CachedSymbols() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

// Reset drops every cached price. Called on network-mode switches.
func (s *PriceService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]domain.PriceEntry)
}
