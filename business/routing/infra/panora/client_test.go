package panora

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/movewise/swap-router/business/routing/app"
	"github.com/movewise/swap-router/internal/apperror"
	"github.com/movewise/swap-router/internal/httpclient"
	"github.com/movewise/swap-router/internal/logger"
	"github.com/movewise/swap-router/internal/token"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	httpc, err := httpclient.NewInstrumentedClient(
		httpclient.WithBaseURL(srv.URL),
		httpclient.WithProviderName("panora-test"),
	)
	if err != nil {
		t.Fatalf("NewInstrumentedClient: %v", err)
	}

	log := logger.New(io.Discard, logger.LevelError, "test", nil)
	cfg := Config{SlippagePercent: 0.5, ChainID: 1, ChainIDTestnet: 2}
	return New(httpc, cfg, token.NewState(token.Mainnet), log)
}

var testRequest = app.AggregatorRequest{
	FromSymbol:  "APT",
	ToSymbol:    "USDC",
	FromAddress: "0x1::aptos_coin::AptosCoin",
	ToAddress:   "0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa::asset::USDC",
	Amount:      10,
	AmountRaw:   "1000000000",
}

func TestBestRouteMapsTopCandidate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/swap/quote" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		var req quoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.ChainID != 1 || req.SlippagePercentage != 0.5 || !req.GetTransactionData {
			t.Errorf("request = %+v", req)
		}
		if req.FromTokenAmount != "1000000000" {
			t.Errorf("fromTokenAmount = %q", req.FromTokenAmount)
		}

		w.Write([]byte(`{"quotes":[
			{"protocol":"Liquidswap","toTokenAmount":"67.39","priceImpact":0.12,
			 "txData":{"type":"entry_function_payload","function":"0xabc::scripts_v2::swap","type_arguments":[],"arguments":[]}},
			{"protocol":"ThalaSwap","toTokenAmount":"67.10"}
		]}`))
	})

	route, err := client.BestRoute(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("BestRoute: %v", err)
	}
	if route.ExpectedOutput != "67.390000" {
		t.Errorf("ExpectedOutput = %q", route.ExpectedOutput)
	}
	if route.Protocol != "Liquidswap" {
		t.Errorf("Protocol = %q", route.Protocol)
	}
	if route.PriceImpactPercent != 0.12 {
		t.Errorf("PriceImpactPercent = %v", route.PriceImpactPercent)
	}
	if route.TransactionPayload == nil || route.TransactionPayload.Function != "0xabc::scripts_v2::swap" {
		t.Errorf("TransactionPayload = %+v", route.TransactionPayload)
	}
	if len(route.AlternativeRoutes) != 1 || route.AlternativeRoutes[0].Protocol != "ThalaSwap" {
		t.Errorf("AlternativeRoutes = %+v", route.AlternativeRoutes)
	}
	// Missing fields pick up the documented defaults.
	if got := route.AlternativeRoutes[0].PriceImpactPercent; got != defaultPriceImpact {
		t.Errorf("alternative price impact = %v, want %v", got, defaultPriceImpact)
	}
	if route.EstimatedGas != defaultGasEstimate {
		t.Errorf("EstimatedGas = %v, want default %v", route.EstimatedGas, defaultGasEstimate)
	}
}

func TestBestRouteNoCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quotes":[]}`))
	})

	_, err := client.BestRoute(context.Background(), testRequest)
	if apperror.GetCode(err) != apperror.CodeNoQuoteAvailable {
		t.Fatalf("error = %v, want CodeNoQuoteAvailable", err)
	}
}

func TestBestRouteUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.BestRoute(context.Background(), testRequest)
	if apperror.GetCode(err) != apperror.CodeAggregatorUnavailable {
		t.Fatalf("error = %v, want CodeAggregatorUnavailable", err)
	}
}

func TestBestRouteMalformedTopCandidate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quotes":[{"protocol":"Liquidswap","toTokenAmount":"not-a-number"}]}`))
	})

	_, err := client.BestRoute(context.Background(), testRequest)
	if apperror.GetCode(err) != apperror.CodeMalformedQuote {
		t.Fatalf("error = %v, want CodeMalformedQuote", err)
	}
}

func TestBestRouteUsesTestnetChainID(t *testing.T) {
	var gotChainID uint32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req quoteRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotChainID = req.ChainID
		w.Write([]byte(`{"quotes":[{"toTokenAmount":"1.0"}]}`))
	})
	client.state.SetTestnet(true)

	if _, err := client.BestRoute(context.Background(), testRequest); err != nil {
		t.Fatalf("BestRoute: %v", err)
	}
	if gotChainID != 2 {
		t.Errorf("chainId = %d, want 2 on testnet", gotChainID)
	}
}
