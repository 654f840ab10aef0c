package coingecko

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/movewise/swap-router/internal/httpclient"
	"github.com/movewise/swap-router/internal/logger"
)

var testIDs = map[string]string{
	"apt":  "aptos",
	"usdc": "usd-coin",
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	http, err := httpclient.NewInstrumentedClient(
		httpclient.WithBaseURL(srv.URL),
		httpclient.WithProviderName("coingecko-test"),
	)
	if err != nil {
		t.Fatalf("NewInstrumentedClient: %v", err)
	}

	log := logger.New(io.Discard, logger.LevelError, "test", nil)
	return New(http, testIDs, log)
}

func TestFetchPrices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/simple/price" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("vs_currencies"); got != "usd" {
			t.Errorf("vs_currencies = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"aptos":{"usd":6.81},"usd-coin":{"usd":0.9998}}`))
	})

	prices, err := client.FetchPrices(context.Background(), []string{"APT", "usdc"})
	if err != nil {
		t.Fatalf("FetchPrices: %v", err)
	}
	if prices["apt"] != 6.81 {
		t.Errorf("apt = %v, want 6.81", prices["apt"])
	}
	if prices["usdc"] != 0.9998 {
		t.Errorf("usdc = %v, want 0.9998", prices["usdc"])
	}
}

func TestFetchPricesSkipsUnknownSymbols(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`{}`))
	})

	prices, err := client.FetchPrices(context.Background(), []string{"doge"})
	if err != nil {
		t.Fatalf("FetchPrices: %v", err)
	}
	if len(prices) != 0 {
		t.Errorf("prices = %v, want empty", prices)
	}
	if called {
		t.Error("no upstream call should happen when no symbol has a coin id")
	}
}

func TestFetchPricesUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	if _, err := client.FetchPrices(context.Background(), []string{"apt"}); err == nil {
		t.Fatal("expected error on 429 response")
	}
}

func TestFetchPricesOmitsMissingCoins(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"aptos":{"usd":6.81}}`))
	})

	prices, err := client.FetchPrices(context.Background(), []string{"apt", "usdc"})
	if err != nil {
		t.Fatalf("FetchPrices: %v", err)
	}
	if _, ok := prices["usdc"]; ok {
		t.Error("usdc should be absent when upstream omits it")
	}
}
