package domain

import "time"

// PoolStat is one liquidity pool row from the TVL source, already
// filtered to the target chain and project.
type PoolStat struct {
	Pool   string  `json:"pool"`
	Chain  string  `json:"chain"`
	Symbol string  `json:"symbol"`
	TVLUsd float64 `json:"tvlUsd"`
	APY    float64 `json:"apy"`
}

// PoolSnapshot is the cached liquidity view for one DEX. TVLUsd is the
// sum over the DEX's pools; HasTVL distinguishes "zero liquidity" from
// "the source reported no TVL at all".
type PoolSnapshot struct {
	DexName   string
	Pools     []PoolStat
	TVLUsd    float64
	HasTVL    bool
	FetchedAt time.Time
}

// NewPoolSnapshot aggregates pool rows into a snapshot.
func NewPoolSnapshot(dexName string, pools []PoolStat, now time.Time) PoolSnapshot {
	snap := PoolSnapshot{
		DexName:   dexName,
		Pools:     pools,
		FetchedAt: now,
	}
	for _, p := range pools {
		if p.TVLUsd > 0 {
			snap.TVLUsd += p.TVLUsd
			snap.HasTVL = true
		}
	}
	return snap
}
