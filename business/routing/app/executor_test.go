package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/movewise/swap-router/business/routing/domain"
	"github.com/movewise/swap-router/internal/token"
)

const testWallet = "0xc0ffee254729296a45a3885639ac7e10f9d54979"

func newTestExecutor(agg AggregatorProvider) *Executor {
	log := routingTestLogger()
	prices := &fakePrices{usd: map[string]float64{"apt": 6.75, "usdc": 1.0}}
	pools := &fakePools{}

	registry := token.DefaultRegistry()
	state := token.NewState(token.Mainnet)

	quoter := NewQuoter(prices, pools, log)
	fanout := NewFanOut(quoter, pools, testDexSet, log)
	fallback := NewFallback(prices, testDexSet, log)
	router := NewRouter(agg, fanout, fallback, registry, state, log)

	return NewExecutor(router, registry, state, testDexSet, log)
}

func TestExecuteSwapPassesAggregatorPayloadThrough(t *testing.T) {
	payload := &domain.EntryFunctionPayload{
		Type:          "entry_function_payload",
		Function:      "0xabc::aggregator::swap",
		TypeArguments: []string{"0x1::aptos_coin::AptosCoin"},
		Arguments:     []any{"1000000000", "67000000"},
	}
	agg := &fakeAggregator{route: &domain.SwapRoute{
		ExpectedOutput:     "67.390000",
		Protocol:           "Panora",
		TransactionPayload: payload,
	}}

	e := newTestExecutor(agg)
	result := e.ExecuteSwap(context.Background(), testWallet, "APT", "USDC", "10", 0.5, 300)
	if !result.Success {
		t.Fatalf("result = %+v", result)
	}
	if result.Payload != payload {
		t.Errorf("payload not passed through verbatim: %+v", result.Payload)
	}
}

func TestExecuteSwapBuildsLocalPayload(t *testing.T) {
	// Aggregator down: the route has no embedded payload, so one is
	// built against the default DEX router.
	e := newTestExecutor(&fakeAggregator{err: errors.New("aggregator down")})

	result := e.ExecuteSwap(context.Background(), testWallet, "APT", "USDC", "10", 0.5, 300)
	if !result.Success {
		t.Fatalf("result = %+v", result)
	}

	p := result.Payload
	if p == nil {
		t.Fatal("payload is nil")
	}
	if p.Type != "entry_function_payload" {
		t.Errorf("Type = %q", p.Type)
	}
	wantFn := "0x190d44266241744264b964a37b8f09863167a12d3e70cda39376cfb4e3561e12::scripts_v2::swap"
	if p.Function != wantFn {
		t.Errorf("Function = %q, want %q", p.Function, wantFn)
	}
	if len(p.TypeArguments) != 3 {
		t.Fatalf("TypeArguments = %v", p.TypeArguments)
	}
	if p.TypeArguments[0] != "0x1::aptos_coin::AptosCoin" {
		t.Errorf("TypeArguments[0] = %q", p.TypeArguments[0])
	}
	if !strings.HasSuffix(p.TypeArguments[2], "::curves::Uncorrelated") {
		t.Errorf("TypeArguments[2] = %q", p.TypeArguments[2])
	}
	// 10 APT at 8 decimals, zero minimum output.
	if len(p.Arguments) != 2 || p.Arguments[0] != "1000000000" || p.Arguments[1] != "0" {
		t.Errorf("Arguments = %v", p.Arguments)
	}
}

func TestExecuteSwapFailuresAreValues(t *testing.T) {
	e := newTestExecutor(&fakeAggregator{err: errors.New("down")})
	ctx := context.Background()

	cases := []struct {
		name     string
		wallet   string
		tokenIn  string
		tokenOut string
		amount   string
		slippage float64
	}{
		{"empty wallet", "", "APT", "USDC", "10", 0.5},
		{"unknown token", testWallet, "DOGE", "USDC", "10", 0.5},
		{"bad amount", testWallet, "APT", "USDC", "-1", 0.5},
		{"bad slippage", testWallet, "APT", "USDC", "10", 250},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := e.ExecuteSwap(ctx, tc.wallet, tc.tokenIn, tc.tokenOut, tc.amount, tc.slippage, 300)
			if result.Success {
				t.Fatalf("result = %+v, want failure", result)
			}
			if result.Error == "" {
				t.Error("failure carries no error message")
			}
			if result.Payload != nil {
				t.Errorf("failed result carries payload %+v", result.Payload)
			}
		})
	}
}
