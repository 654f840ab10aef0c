package app

import (
	"context"
	"sync"
	"time"

	"github.com/movewise/swap-router/business/market/domain"
	"github.com/movewise/swap-router/internal/apperror"
	"github.com/movewise/swap-router/internal/logger"
)

// DexSource names one DEX and its project ID at the liquidity source.
type DexSource struct {
	Name    string
	Project string
}

// PoolService caches per-DEX liquidity snapshots. A refresh fans out one
// upstream request per DEX and then replaces the whole cache in one
// swap; a DEX whose fetch failed simply has no entry afterwards.
type PoolService struct {
	source LiquiditySource
	dexes  []DexSource
	ttl    time.Duration
	log    logger.LoggerInterface

	mu          sync.Mutex
	cache       map[string]domain.PoolSnapshot
	refreshedAt time.Time
	inflight    chan struct{}

	now func() time.Time
}

// NewPoolService creates a PoolService for the configured DEX set.
func NewPoolService(source LiquiditySource, dexes []DexSource, ttl time.Duration, log logger.LoggerInterface) *PoolService {
	return &PoolService{
		source: source,
		dexes:  dexes,
		ttl:    ttl,
		log:    log,
		cache:  make(map[string]domain.PoolSnapshot),
		now:    time.Now,
	}
}

// EnsureFresh refreshes the cache if the TTL has lapsed. Concurrent
// callers share one refresh instead of racing duplicate fetches. The
// returned error is non-nil only when the refresh produced nothing AND
// no prior cache exists; otherwise the old snapshots stay in place.
func (s *PoolService) EnsureFresh(ctx context.Context) error {
	s.mu.Lock()
	if !s.refreshedAt.IsZero() && s.now().Sub(s.refreshedAt) < s.ttl {
		s.mu.Unlock()
		return nil
	}

	if s.inflight != nil {
		done := s.inflight
		s.mu.Unlock()

		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	done := make(chan struct{})
	s.inflight = done
	s.mu.Unlock()

	err := s.refresh(ctx)

	s.mu.Lock()
	s.inflight = nil
	s.mu.Unlock()
	close(done)

	return err
}

func (s *PoolService) refresh(ctx context.Context) error {
	type result struct {
		dex   DexSource
		pools []domain.PoolStat
		err   error
	}

	results := make([]result, len(s.dexes))

	var wg sync.WaitGroup
	for i, dex := range s.dexes {
		wg.Add(1)
		go func(i int, dex DexSource) {
			defer wg.Done()
			pools, err := s.source.FetchPools(ctx, dex.Project)
			results[i] = result{dex: dex, pools: pools, err: err}
		}(i, dex)
	}
	wg.Wait()

	now := s.now()
	fresh := make(map[string]domain.PoolSnapshot)
	for _, r := range results {
		if r.err != nil {
			s.log.Warn(ctx, "pool fetch failed for dex", "dex", r.dex.Name, "error", r.err.Error())
			continue
		}
		fresh[r.dex.Name] = domain.NewPoolSnapshot(r.dex.Name, r.pools, now)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(fresh) == 0 {
		if len(s.cache) == 0 {
			return apperror.New(apperror.CodePoolFetchFailed,
				apperror.WithContext("all liquidity fetches failed and no prior cache exists"))
		}
		// Keep serving the prior snapshots.
		s.log.Warn(ctx, "pool refresh produced no snapshots, keeping prior cache")
		return nil
	}

	s.cache = fresh
	s.refreshedAt = now
	return nil
}

// Snapshot returns the cached snapshot for a DEX display name.
func (s *PoolService) Snapshot(dexName string) (domain.PoolSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.cache[dexName]
	return snap, ok
}

// Reset drops every snapshot so the next EnsureFresh refetches.
// Called on network-mode switches.
func (s *PoolService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]domain.PoolSnapshot)
	s.refreshedAt = time.Time{}
}
