package defillama

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/movewise/swap-router/internal/httpclient"
	"github.com/movewise/swap-router/internal/logger"
)

const poolsBody = `{
	"status": "success",
	"data": [
		{"pool": "abc", "chain": "Aptos", "project": "liquidswap", "symbol": "APT-USDC", "tvlUsd": 2000000, "apy": 12.5},
		{"pool": "def", "chain": "Aptos", "project": "pancakeswap-amm", "symbol": "APT-USDC", "tvlUsd": 500000, "apy": 8.1},
		{"pool": "ghi", "chain": "Ethereum", "project": "liquidswap", "symbol": "ETH-USDC", "tvlUsd": 9000000, "apy": 3.0}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	http, err := httpclient.NewInstrumentedClient(
		httpclient.WithBaseURL(srv.URL),
		httpclient.WithProviderName("defillama-test"),
	)
	if err != nil {
		t.Fatalf("NewInstrumentedClient: %v", err)
	}

	log := logger.New(io.Discard, logger.LevelError, "test", nil)
	return New(http, "Aptos", log)
}

func TestFetchPoolsFiltersChainAndProject(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pools" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(poolsBody))
	})

	pools, err := client.FetchPools(context.Background(), "liquidswap")
	if err != nil {
		t.Fatalf("FetchPools: %v", err)
	}
	if len(pools) != 1 {
		t.Fatalf("pools = %d, want 1 (other chains and projects filtered out)", len(pools))
	}
	if pools[0].TVLUsd != 2_000_000 || pools[0].Symbol != "APT-USDC" {
		t.Errorf("pool = %+v", pools[0])
	}
}

func TestFetchPoolsNoMatches(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(poolsBody))
	})

	pools, err := client.FetchPools(context.Background(), "unknown-project")
	if err != nil {
		t.Fatalf("FetchPools: %v", err)
	}
	if len(pools) != 0 {
		t.Errorf("pools = %v, want none", pools)
	}
}

func TestFetchPoolsUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := client.FetchPools(context.Background(), "liquidswap"); err == nil {
		t.Fatal("expected error on 502 response")
	}
}
