// Package panora implements the aggregator provider port against the
// Panora swap-quote API.
package panora

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/movewise/swap-router/business/routing/app"
	"github.com/movewise/swap-router/business/routing/domain"
	"github.com/movewise/swap-router/internal/apm"
	"github.com/movewise/swap-router/internal/apperror"
	"github.com/movewise/swap-router/internal/circuitbreaker"
	"github.com/movewise/swap-router/internal/httpclient"
	"github.com/movewise/swap-router/internal/logger"
	"github.com/movewise/swap-router/internal/token"
)

const (
	swapQuotePath = "/swap/quote"

	defaultPriceImpact = 0.5
	defaultGasEstimate = 0.0001
)

// Config holds the aggregator call parameters.
type Config struct {
	SlippagePercent float64
	ChainID         uint32
	ChainIDTestnet  uint32
}

// Client quotes swaps through the external aggregator.
type Client struct {
	http    httpclient.Client
	cfg     Config
	state   *token.State
	breaker *circuitbreaker.CircuitBreaker[*domain.SwapRoute]
	tracer  apm.Tracer
	log     logger.LoggerInterface
}

type quoteRequest struct {
	ChainID            uint32  `json:"chainId"`
	FromTokenAddress   string  `json:"fromTokenAddress"`
	ToTokenAddress     string  `json:"toTokenAddress"`
	FromTokenAmount    string  `json:"fromTokenAmount"`
	SlippagePercentage float64 `json:"slippagePercentage"`
	GetTransactionData bool    `json:"getTransactionData"`
}

type quoteCandidate struct {
	Protocol      string                       `json:"protocol"`
	ToTokenAmount string                       `json:"toTokenAmount"`
	PriceImpact   *float64                     `json:"priceImpact"`
	EstimatedGas  *float64                     `json:"estimatedGas"`
	TxData        *domain.EntryFunctionPayload `json:"txData"`
}

type quoteResponse struct {
	Quotes []quoteCandidate `json:"quotes"`
}

// New creates an aggregator client.
func New(http httpclient.Client, cfg Config, state *token.State, log logger.LoggerInterface) *Client {
	return &Client{
		http:    http,
		cfg:     cfg,
		state:   state,
		breaker: circuitbreaker.New[*domain.SwapRoute]("panora", log),
		tracer:  apm.NewTracer("panora"),
		log:     log,
	}
}

func (c *Client) chainID() uint32 {
	if c.state.Current() == token.Testnet {
		return c.cfg.ChainIDTestnet
	}
	return c.cfg.ChainID
}

// BestRoute asks the aggregator for ranked candidates and maps the top
// one into a SwapRoute, the rest into alternatives. Every unusable
// outcome is an error so the router can move to the next tier.
func (c *Client) BestRoute(ctx context.Context, req app.AggregatorRequest) (*domain.SwapRoute, error) {
	ctx, span := c.tracer.StartSpanFromContext(ctx, "panora.best_route")
	defer span.End()

	span.SetAttributes(
		attribute.String("swap.from", req.FromSymbol),
		attribute.String("swap.to", req.ToSymbol),
		attribute.Float64("swap.amount", req.Amount),
	)

	route, err := c.quote(ctx, req)
	if err != nil {
		span.NoticeError(err)
		return nil, err
	}

	span.SetAttribute(attribute.String("swap.protocol", route.Protocol))
	return route, nil
}

func (c *Client) quote(ctx context.Context, req app.AggregatorRequest) (*domain.SwapRoute, error) {
	return c.breaker.Execute(func() (*domain.SwapRoute, error) {
		var body quoteResponse

		resp, err := c.http.NewRequest().
			SetBody(quoteRequest{
				ChainID:            c.chainID(),
				FromTokenAddress:   req.FromAddress,
				ToTokenAddress:     req.ToAddress,
				FromTokenAmount:    req.AmountRaw,
				SlippagePercentage: c.cfg.SlippagePercent,
				GetTransactionData: true,
			}).
			SetResult(&body).
			Post(ctx, swapQuotePath)
		if err != nil {
			return nil, apperror.External(apperror.CodeAggregatorUnavailable, "aggregator request failed", err)
		}
		if resp.IsError() {
			return nil, apperror.New(apperror.CodeAggregatorUnavailable,
				apperror.WithContext(fmt.Sprintf("aggregator returned status %d", resp.StatusCode)))
		}
		if len(body.Quotes) == 0 {
			return nil, apperror.New(apperror.CodeNoQuoteAvailable,
				apperror.WithContext(req.FromSymbol+"->"+req.ToSymbol))
		}

		top := body.Quotes[0]
		output, err := parseOutput(top.ToTokenAmount)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeMalformedQuote, "top candidate output")
		}

		route := &domain.SwapRoute{
			ExpectedOutput:     token.FormatOutput(output),
			PriceImpactPercent: orDefault(top.PriceImpact, defaultPriceImpact),
			EstimatedGas:       orDefault(top.EstimatedGas, defaultGasEstimate),
			Protocol:           protocolName(top),
			TransactionPayload: top.TxData,
		}

		for _, alt := range body.Quotes[1:] {
			altOutput, err := parseOutput(alt.ToTokenAmount)
			if err != nil {
				c.log.Debug(ctx, "skipping malformed alternative quote", "amount", alt.ToTokenAmount)
				continue
			}
			route.AlternativeRoutes = append(route.AlternativeRoutes, domain.AlternativeRoute{
				Protocol:           protocolName(alt),
				ExpectedOutput:     token.FormatOutput(altOutput),
				PriceImpactPercent: orDefault(alt.PriceImpact, defaultPriceImpact),
				EstimatedGas:       orDefault(alt.EstimatedGas, defaultGasEstimate),
			})
		}

		return route, nil
	})
}

func parseOutput(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative output amount %q", s)
	}
	return v, nil
}

func protocolName(q quoteCandidate) string {
	if q.Protocol != "" {
		return q.Protocol
	}
	return "Panora"
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
