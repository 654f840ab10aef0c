package app

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/movewise/swap-router/business/routing/domain"
	"github.com/movewise/swap-router/internal/apperror"
	"github.com/movewise/swap-router/internal/logger"
	"github.com/movewise/swap-router/internal/token"
)

const metricRoutesTotal = "swap_routes_total"

// Router selects the best swap route by trying three tiers in priority
// order: the external aggregator, the synthetic multi-DEX fan-out, and
// the price-only fallback. A tier that errors or comes back empty hands
// over to the next; the fallback tier always answers, so a validated
// request always gets a route.
type Router struct {
	aggregator AggregatorProvider
	fanout     *FanOut
	fallback   *Fallback
	registry   *token.Registry
	state      *token.State
	log        logger.LoggerInterface

	routeCounter metric.Int64Counter
}

// NewRouter creates a Router over the three quote tiers.
func NewRouter(
	aggregator AggregatorProvider,
	fanout *FanOut,
	fallback *Fallback,
	registry *token.Registry,
	state *token.State,
	log logger.LoggerInterface,
) *Router {
	meter := otel.GetMeterProvider().Meter("swap_router")
	routeCounter, err := meter.Int64Counter(
		metricRoutesTotal,
		metric.WithDescription("Routes served, by producing tier"),
	)
	if err != nil {
		panic("failed to create route counter: " + err.Error())
	}

	return &Router{
		aggregator:   aggregator,
		fanout:       fanout,
		fallback:     fallback,
		registry:     registry,
		state:        state,
		log:          log,
		routeCounter: routeCounter,
	}
}

// swapRequest is a validated quote request.
type swapRequest struct {
	in      *token.Token
	out     *token.Token
	inAddr  string
	outAddr string
	amount  float64
	raw     string
}

// validate resolves both symbols on the current network and parses the
// amount. Unsupported tokens and bad amounts are the only errors this
// service surfaces to callers.
func (r *Router) validate(tokenIn, tokenOut, amount string) (*swapRequest, error) {
	if strings.EqualFold(tokenIn, tokenOut) {
		return nil, apperror.Validation(apperror.CodeInvalidAmount,
			"tokenIn and tokenOut must differ")
	}

	amt, err := token.ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	network := r.state.Current()

	in, ok := r.registry.Get(tokenIn)
	if !ok {
		return nil, apperror.New(apperror.CodeUnsupportedToken, apperror.WithContext(tokenIn))
	}
	out, ok := r.registry.Get(tokenOut)
	if !ok {
		return nil, apperror.New(apperror.CodeUnsupportedToken, apperror.WithContext(tokenOut))
	}

	inAddr, err := in.Address(network)
	if err != nil {
		return nil, err
	}
	outAddr, err := out.Address(network)
	if err != nil {
		return nil, err
	}

	return &swapRequest{
		in:      in,
		out:     out,
		inAddr:  inAddr,
		outAddr: outAddr,
		amount:  amt,
		raw:     amount,
	}, nil
}

// AllDexQuotes returns one slot per registered DEX, nil where that DEX
// could not quote the pair.
func (r *Router) AllDexQuotes(ctx context.Context, tokenIn, tokenOut, amount string) ([]*domain.DexQuote, error) {
	req, err := r.validate(tokenIn, tokenOut, amount)
	if err != nil {
		return nil, err
	}

	return r.fanout.AllQuotes(ctx, req.in.Symbol(), req.out.Symbol(), req.amount), nil
}

// BestSwapRoute runs the tier cascade and returns a single route. The
// only errors are validation ones; degraded upstreams shift the result
// to a later tier instead of failing.
func (r *Router) BestSwapRoute(ctx context.Context, tokenIn, tokenOut, amount string) (domain.SwapRoute, error) {
	req, err := r.validate(tokenIn, tokenOut, amount)
	if err != nil {
		return domain.SwapRoute{}, err
	}

	if route, ok := r.tryAggregator(ctx, req); ok {
		return route, nil
	}
	if route, ok := r.tryFanOut(ctx, req); ok {
		return route, nil
	}

	route := r.fallback.Route(ctx, req.in.Symbol(), req.out.Symbol(), req.amount)
	r.recordRoute(ctx, domain.RouteSourceFallback)
	return route, nil
}

func (r *Router) tryAggregator(ctx context.Context, req *swapRequest) (domain.SwapRoute, bool) {
	route, err := r.aggregator.BestRoute(ctx, AggregatorRequest{
		FromSymbol:  req.in.Symbol(),
		ToSymbol:    req.out.Symbol(),
		FromAddress: req.inAddr,
		ToAddress:   req.outAddr,
		Amount:      req.amount,
		AmountRaw:   token.BaseUnits(req.amount, req.in.Decimals()),
	})
	if err != nil {
		r.log.Warn(ctx, "aggregator tier failed, trying dex fan-out", "error", err.Error())
		return domain.SwapRoute{}, false
	}
	if route == nil {
		return domain.SwapRoute{}, false
	}

	route.FromToken = req.in.Symbol()
	route.ToToken = req.out.Symbol()
	route.FromAmount = token.FormatOutput(req.amount)
	route.Source = domain.RouteSourceAggregator

	r.recordRoute(ctx, domain.RouteSourceAggregator)
	return *route, true
}

func (r *Router) tryFanOut(ctx context.Context, req *swapRequest) (domain.SwapRoute, bool) {
	slots := r.fanout.AllQuotes(ctx, req.in.Symbol(), req.out.Symbol(), req.amount)

	quotes := make([]domain.DexQuote, 0, len(slots))
	for _, q := range slots {
		if q != nil {
			quotes = append(quotes, *q)
		}
	}
	if len(quotes) == 0 {
		r.log.Warn(ctx, "no dex produced a quote, using fallback route",
			"tokenIn", req.in.Symbol(), "tokenOut", req.out.Symbol())
		return domain.SwapRoute{}, false
	}

	domain.SortQuotesDescending(quotes)

	best := quotes[0]
	alternatives := make([]domain.AlternativeRoute, 0, len(quotes)-1)
	for _, q := range quotes[1:] {
		alternatives = append(alternatives, domain.AlternativeRoute{
			Protocol:           q.DexName,
			ExpectedOutput:     q.OutputAmount,
			PriceImpactPercent: parsePercent(q.PriceImpactPercent),
			EstimatedGas:       q.GasEstimate,
		})
	}

	r.recordRoute(ctx, domain.RouteSourceFanOut)
	return domain.SwapRoute{
		FromToken:          req.in.Symbol(),
		ToToken:            req.out.Symbol(),
		FromAmount:         token.FormatOutput(req.amount),
		ExpectedOutput:     best.OutputAmount,
		PriceImpactPercent: parsePercent(best.PriceImpactPercent),
		EstimatedGas:       best.GasEstimate,
		Protocol:           best.DexName,
		Source:             domain.RouteSourceFanOut,
		AlternativeRoutes:  alternatives,
	}, true
}

func (r *Router) recordRoute(ctx context.Context, source domain.RouteSource) {
	r.routeCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", string(source)),
	))
}

func parsePercent(s string) float64 {
	v, err := token.ParseAmount(s)
	if err != nil {
		return 0
	}
	return v
}
