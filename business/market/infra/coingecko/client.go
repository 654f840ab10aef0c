// Package coingecko implements the price source port against the
// CoinGecko simple-price API.
package coingecko

import (
	"context"
	"fmt"
	"strings"

	"github.com/movewise/swap-router/internal/apperror"
	"github.com/movewise/swap-router/internal/circuitbreaker"
	"github.com/movewise/swap-router/internal/httpclient"
	"github.com/movewise/swap-router/internal/logger"
)

const simplePricePath = "/api/v3/simple/price"

// Client fetches USD prices by coin ID.
type Client struct {
	http    httpclient.Client
	ids     map[string]string // lowercase symbol -> coin id
	breaker *circuitbreaker.CircuitBreaker[map[string]float64]
	log     logger.LoggerInterface
}

// priceResponse is keyed by coin id, then by vs currency.
type priceResponse map[string]map[string]float64

// New creates a CoinGecko client. ids maps lowercase token symbols to
// CoinGecko coin IDs.
func New(http httpclient.Client, ids map[string]string, log logger.LoggerInterface) *Client {
	return &Client{
		http:    http,
		ids:     ids,
		breaker: circuitbreaker.New[map[string]float64]("coingecko", log),
		log:     log,
	}
}

// FetchPrices returns USD prices keyed by lowercase symbol. Symbols
// without a configured coin ID or missing from the response are absent
// from the result.
func (c *Client) FetchPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	idToSymbol := make(map[string]string, len(symbols))
	ids := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		key := strings.ToLower(sym)
		id, ok := c.ids[key]
		if !ok {
			c.log.Debug(ctx, "no coin id configured for symbol", "symbol", key)
			continue
		}
		idToSymbol[id] = key
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return map[string]float64{}, nil
	}

	return c.breaker.Execute(func() (map[string]float64, error) {
		var body priceResponse

		resp, err := c.http.NewRequest().
			SetQueryParam("ids", strings.Join(ids, ",")).
			SetQueryParam("vs_currencies", "usd").
			SetResult(&body).
			Get(ctx, simplePricePath)
		if err != nil {
			return nil, apperror.External(apperror.CodePriceFetchFailed, "coingecko request failed", err)
		}
		if resp.IsError() {
			return nil, apperror.New(apperror.CodePriceFetchFailed,
				apperror.WithContext(fmt.Sprintf("coingecko returned status %d", resp.StatusCode)))
		}

		prices := make(map[string]float64, len(body))
		for id, quote := range body {
			sym, ok := idToSymbol[id]
			if !ok {
				continue
			}
			if usd, ok := quote["usd"]; ok && usd > 0 {
				prices[sym] = usd
			}
		}
		return prices, nil
	})
}
