package app

import (
	"context"
	"errors"
	"strconv"
	"testing"

	marketdomain "github.com/movewise/swap-router/business/market/domain"
	"github.com/movewise/swap-router/business/routing/domain"
	"github.com/movewise/swap-router/internal/apperror"
	"github.com/movewise/swap-router/internal/token"
)

type fakeAggregator struct {
	route *domain.SwapRoute
	err   error
	calls int
}

func (f *fakeAggregator) BestRoute(context.Context, AggregatorRequest) (*domain.SwapRoute, error) {
	f.calls++
	return f.route, f.err
}

var testDexSet = []domain.DexDescriptor{
	{Key: "liquidswap", Name: "Liquidswap", FeeFraction: 0.003, GasEstimate: 0.0002,
		RouterMainnet: "0x190d44266241744264b964a37b8f09863167a12d3e70cda39376cfb4e3561e12"},
	{Key: "pancakeswap", Name: "PancakeSwap", FeeFraction: 0.0025, GasEstimate: 0.0002,
		RouterMainnet: "0xc7efb4076dbe143cbcd98cfaaa929ecfc8f299203dfff63b95ccb6bfe19850fa"},
	{Key: "thala", Name: "ThalaSwap", FeeFraction: 0.003, GasEstimate: 0.0003,
		RouterMainnet: "0x48271d39d0b05bd6efca2278f22277d6fcc375504f9839fd73f74ace240861af"},
}

func newTestRouter(agg AggregatorProvider, prices PriceOracle, pools LiquidityOracle, dexes []domain.DexDescriptor) *Router {
	log := routingTestLogger()
	quoter := NewQuoter(prices, pools, log)
	fanout := NewFanOut(quoter, pools, dexes, log)
	fallback := NewFallback(prices, dexes, log)
	return NewRouter(agg, fanout, fallback, token.DefaultRegistry(), token.NewState(token.Mainnet), log)
}

func TestRouterAggregatorShortCircuits(t *testing.T) {
	agg := &fakeAggregator{route: &domain.SwapRoute{
		ExpectedOutput:     "67.390000",
		Protocol:           "Panora",
		PriceImpactPercent: 0.12,
		EstimatedGas:       0.0001,
	}}
	pools := &fakePools{}
	r := newTestRouter(agg, &fakePrices{usd: map[string]float64{"apt": 6.75, "usdc": 1.0}}, pools, testDexSet)

	route, err := r.BestSwapRoute(context.Background(), "APT", "USDC", "10")
	if err != nil {
		t.Fatalf("BestSwapRoute: %v", err)
	}
	if route.Source != domain.RouteSourceAggregator {
		t.Errorf("Source = %s, want aggregator", route.Source)
	}
	if route.ExpectedOutput != "67.390000" || route.Protocol != "Panora" {
		t.Errorf("route = %+v", route)
	}
	if route.FromToken != "APT" || route.ToToken != "USDC" || route.FromAmount != "10.000000" {
		t.Errorf("route identity = %+v", route)
	}
	if pools.ensureCalls != 0 {
		t.Errorf("fan-out tier ran despite aggregator success (ensureCalls=%d)", pools.ensureCalls)
	}
}

func TestRouterFanOutOrdering(t *testing.T) {
	// Aggregator down; three DEXes with pools plus one without, engineered
	// so PancakeSwap clearly wins.
	agg := &fakeAggregator{err: errors.New("aggregator down")}
	prices := &fakePrices{usd: map[string]float64{"apt": 6.75, "usdc": 1.0}}
	pools := &fakePools{snaps: map[string]marketdomain.PoolSnapshot{
		"Liquidswap":  snapshotWithTVL("Liquidswap", 100_000),   // 0.9 floor
		"PancakeSwap": snapshotWithTVL("PancakeSwap", 5_000_000), // deep
		// ThalaSwap has no snapshot: absent slot.
	}}
	r := newTestRouter(agg, prices, pools, testDexSet)

	slots, err := r.AllDexQuotes(context.Background(), "APT", "USDC", "100")
	if err != nil {
		t.Fatalf("AllDexQuotes: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("slots = %d, want one per dex", len(slots))
	}
	if slots[2] != nil {
		t.Errorf("ThalaSwap slot = %+v, want nil", slots[2])
	}

	route, err := r.BestSwapRoute(context.Background(), "APT", "USDC", "100")
	if err != nil {
		t.Fatalf("BestSwapRoute: %v", err)
	}
	if route.Source != domain.RouteSourceFanOut {
		t.Fatalf("Source = %s, want fanout", route.Source)
	}
	if route.Protocol != "PancakeSwap" {
		t.Errorf("Protocol = %q, want PancakeSwap", route.Protocol)
	}
	if len(route.AlternativeRoutes) != 1 || route.AlternativeRoutes[0].Protocol != "Liquidswap" {
		t.Errorf("AlternativeRoutes = %+v", route.AlternativeRoutes)
	}

	best, _ := strconv.ParseFloat(route.ExpectedOutput, 64)
	alt, _ := strconv.ParseFloat(route.AlternativeRoutes[0].ExpectedOutput, 64)
	if best <= alt {
		t.Errorf("primary %v not better than alternative %v", best, alt)
	}
}

func TestRouterDegradesToFallback(t *testing.T) {
	agg := &fakeAggregator{err: errors.New("aggregator down")}
	prices := &fakePrices{usd: map[string]float64{}} // everything defaults
	pools := &fakePools{ensureErr: errors.New("pools down")}
	r := newTestRouter(agg, prices, pools, testDexSet)

	route, err := r.BestSwapRoute(context.Background(), "APT", "USDC", "10")
	if err != nil {
		t.Fatalf("BestSwapRoute: %v", err)
	}
	if route.Source != domain.RouteSourceFallback {
		t.Fatalf("Source = %s, want fallback", route.Source)
	}
	// Default prices: APT 6.75, USDC 1.0.
	if route.ExpectedOutput != "67.500000" {
		t.Errorf("ExpectedOutput = %q, want 67.500000", route.ExpectedOutput)
	}
	if route.PriceImpactPercent != 0.5 || route.EstimatedGas != 0.0002 {
		t.Errorf("route = %+v", route)
	}
	if len(route.AlternativeRoutes) != 1 {
		t.Fatalf("AlternativeRoutes = %+v, want one synthetic entry", route.AlternativeRoutes)
	}
	// The synthetic alternative sits at 99.5% of the primary.
	if got := route.AlternativeRoutes[0].ExpectedOutput; got != "67.162500" {
		t.Errorf("alternative output = %q, want 67.162500", got)
	}
}

func TestRouterNeverFailsWhenEverythingIsDown(t *testing.T) {
	agg := &fakeAggregator{err: errors.New("aggregator down")}
	prices := &fakePrices{usd: map[string]float64{}}
	pools := &fakePools{ensureErr: errors.New("pools down")}
	r := newTestRouter(agg, prices, pools, testDexSet)

	pairs := [][2]string{{"APT", "USDC"}, {"USDC", "APT"}, {"USDT", "DAI"}, {"DAI", "APT"}}
	for _, pair := range pairs {
		route, err := r.BestSwapRoute(context.Background(), pair[0], pair[1], "3.5")
		if err != nil {
			t.Fatalf("%s->%s: %v", pair[0], pair[1], err)
		}
		out, perr := strconv.ParseFloat(route.ExpectedOutput, 64)
		if perr != nil || out < 0 {
			t.Errorf("%s->%s output = %q", pair[0], pair[1], route.ExpectedOutput)
		}
	}
}

func TestRouterValidation(t *testing.T) {
	r := newTestRouter(&fakeAggregator{}, &fakePrices{}, &fakePools{}, testDexSet)
	ctx := context.Background()

	cases := []struct {
		name                    string
		tokenIn, tokenOut, amt  string
		wantCode                apperror.Code
	}{
		{"unknown token", "DOGE", "USDC", "10", apperror.CodeUnsupportedToken},
		{"same token", "APT", "apt", "10", apperror.CodeInvalidAmount},
		{"zero amount", "APT", "USDC", "0", apperror.CodeInvalidAmount},
		{"negative amount", "APT", "USDC", "-5", apperror.CodeInvalidAmount},
		{"garbage amount", "APT", "USDC", "ten", apperror.CodeInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.BestSwapRoute(ctx, tc.tokenIn, tc.tokenOut, tc.amt)
			if apperror.GetCode(err) != tc.wantCode {
				t.Errorf("error = %v, want code %s", err, tc.wantCode)
			}
		})
	}
}

func TestRouterTestnetAddressGap(t *testing.T) {
	// DAI has no testnet deployment: switching networks turns a valid
	// request into an unsupported-token error.
	r := newTestRouter(&fakeAggregator{err: errors.New("down")}, &fakePrices{}, &fakePools{}, testDexSet)
	r.state.SetTestnet(true)

	_, err := r.BestSwapRoute(context.Background(), "DAI", "USDC", "10")
	if apperror.GetCode(err) != apperror.CodeUnsupportedToken {
		t.Fatalf("error = %v, want CodeUnsupportedToken on testnet", err)
	}
}
