// Package defillama implements the liquidity source port against the
// DefiLlama yields API.
package defillama

import (
	"context"
	"fmt"

	"github.com/movewise/swap-router/business/market/domain"
	"github.com/movewise/swap-router/internal/apperror"
	"github.com/movewise/swap-router/internal/circuitbreaker"
	"github.com/movewise/swap-router/internal/httpclient"
	"github.com/movewise/swap-router/internal/logger"
)

const poolsPath = "/pools"

// Client fetches pool statistics per project, filtered to one chain.
type Client struct {
	http    httpclient.Client
	chain   string
	breaker *circuitbreaker.CircuitBreaker[[]domain.PoolStat]
	log     logger.LoggerInterface
}

type poolsResponse struct {
	Status string `json:"status"`
	Data   []struct {
		Pool    string  `json:"pool"`
		Chain   string  `json:"chain"`
		Project string  `json:"project"`
		Symbol  string  `json:"symbol"`
		TVLUsd  float64 `json:"tvlUsd"`
		APY     float64 `json:"apy"`
	} `json:"data"`
}

// New creates a DefiLlama client scoped to one chain name as the API
// spells it (for example "Aptos").
func New(http httpclient.Client, chain string, log logger.LoggerInterface) *Client {
	return &Client{
		http:    http,
		chain:   chain,
		breaker: circuitbreaker.New[[]domain.PoolStat]("defillama", log),
		log:     log,
	}
}

// FetchPools returns the chain's pools for one project. The upstream
// endpoint is a bulk listing, so filtering happens client-side.
func (c *Client) FetchPools(ctx context.Context, project string) ([]domain.PoolStat, error) {
	return c.breaker.Execute(func() ([]domain.PoolStat, error) {
		var body poolsResponse

		resp, err := c.http.NewRequest().
			SetResult(&body).
			Get(ctx, poolsPath)
		if err != nil {
			return nil, apperror.External(apperror.CodePoolFetchFailed, "defillama request failed", err)
		}
		if resp.IsError() {
			return nil, apperror.New(apperror.CodePoolFetchFailed,
				apperror.WithContext(fmt.Sprintf("defillama returned status %d", resp.StatusCode)))
		}

		var pools []domain.PoolStat
		for _, p := range body.Data {
			if p.Chain != c.chain || p.Project != project {
				continue
			}
			pools = append(pools, domain.PoolStat{
				Pool:   p.Pool,
				Chain:  p.Chain,
				Symbol: p.Symbol,
				TVLUsd: p.TVLUsd,
				APY:    p.APY,
			})
		}
		return pools, nil
	})
}
